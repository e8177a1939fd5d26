package store

import (
	"fmt"
	"testing"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/entity"
)

func TestFindShownPicksDeterministically(t *testing.T) {
	sess := NewSession("s1")
	// Many terms whose rows all match the same vague mention. The pick
	// must not depend on map iteration order.
	for i := 9; i >= 0; i-- {
		sess.CacheShown(fmt.Sprintf("term-%d", i), []entity.Product{
			{Name: fmt.Sprintf("Aceite Variante %d", i)},
		})
	}

	first := sess.FindShown("aceite")
	if first == nil {
		t.Fatal("expected a match")
	}
	if first.Name != "Aceite Variante 0" {
		t.Fatalf("first pick = %q, want the row under the lowest sorted term", first.Name)
	}
	for i := 0; i < 50; i++ {
		if got := sess.FindShown("aceite"); got.Name != first.Name {
			t.Fatalf("pick changed between calls: %q vs %q", got.Name, first.Name)
		}
	}
}

func TestRecordExchangeHonorsConfiguredWindow(t *testing.T) {
	sess := NewSession("s1")
	sess.Window = 2

	for i := 0; i < 4; i++ {
		sess.RecordExchange(fmt.Sprintf("pregunta %d", i), "respuesta")
	}

	if len(sess.Exchanges) != 2 {
		t.Fatalf("exchanges = %d, want 2", len(sess.Exchanges))
	}
	if sess.Exchanges[0].Customer != "pregunta 2" {
		t.Errorf("oldest kept = %q, want pregunta 2", sess.Exchanges[0].Customer)
	}
}

func TestRecordExchangeDefaultsToMaxExchanges(t *testing.T) {
	sess := NewSession("s1")
	for i := 0; i < MaxExchanges+3; i++ {
		sess.RecordExchange("hola", "¡hola!")
	}
	if len(sess.Exchanges) != MaxExchanges {
		t.Fatalf("exchanges = %d, want %d", len(sess.Exchanges), MaxExchanges)
	}
}
