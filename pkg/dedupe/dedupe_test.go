package dedupe

import (
	"context"
	"testing"
)

func TestNilDeduperReportsFirstSeen(t *testing.T) {
	var d *Deduper

	seen, err := d.Seen(context.Background(), "wamid.123")
	if err != nil {
		t.Fatalf("Seen on nil deduper: %v", err)
	}
	if seen {
		t.Error("nil deduper must never flag a duplicate")
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close on nil deduper: %v", err)
	}
}
