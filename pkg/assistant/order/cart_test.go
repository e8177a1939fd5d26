package order

import (
	"strings"
	"testing"
)

func TestCartAddMergesSameProduct(t *testing.T) {
	cart := NewCart("s1")
	cart.Add("Aceite Girasol Marolio", 2, 450)
	cart.Add("aceite girasol marolio", 1, 450)

	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 merged line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", cart.Items[0].Quantity)
	}
	if cart.Items[0].Subtotal != 1350 {
		t.Errorf("expected subtotal 1350, got %.2f", cart.Items[0].Subtotal)
	}
}

func TestCartAddKeepsOriginalUnitPrice(t *testing.T) {
	cart := NewCart("s1")
	cart.Add("Leche Entera", 1, 980)
	cart.Add("Leche Entera", 1, 1050) // price drifted, line keeps first price

	if cart.Items[0].UnitPrice != 980 {
		t.Errorf("expected unit price 980, got %.2f", cart.Items[0].UnitPrice)
	}
	if cart.Items[0].Subtotal != 1960 {
		t.Errorf("expected subtotal 1960, got %.2f", cart.Items[0].Subtotal)
	}
}

func TestCartAddZeroQuantityDefaultsToOne(t *testing.T) {
	cart := NewCart("s1")
	cart.Add("Yerba Mate", 0, 2300)

	if cart.Items[0].Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", cart.Items[0].Quantity)
	}
}

func TestCartRemove(t *testing.T) {
	tests := []struct {
		name         string
		removeQty    int
		wantFound    bool
		wantLines    int
		wantQuantity int
	}{
		{"partial", 1, true, 1, 2},
		{"exact", 3, true, 0, 0},
		{"over", 5, true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := NewCart("s1")
			cart.Add("Fideos Matarazzo", 3, 700)

			found := cart.Remove("Fideos Matarazzo", tt.removeQty)
			if found != tt.wantFound {
				t.Fatalf("Remove found = %v, want %v", found, tt.wantFound)
			}
			if len(cart.Items) != tt.wantLines {
				t.Fatalf("lines = %d, want %d", len(cart.Items), tt.wantLines)
			}
			if tt.wantLines > 0 && cart.Items[0].Quantity != tt.wantQuantity {
				t.Errorf("quantity = %d, want %d", cart.Items[0].Quantity, tt.wantQuantity)
			}
		})
	}
}

func TestCartRemoveMissingProduct(t *testing.T) {
	cart := NewCart("s1")
	cart.Add("Azúcar Ledesma", 1, 900)

	if cart.Remove("Harina", 1) {
		t.Error("expected Remove to report missing product")
	}
	if len(cart.Items) != 1 {
		t.Errorf("cart should be untouched, has %d lines", len(cart.Items))
	}
}

func TestCartTotalIsSumOfSubtotals(t *testing.T) {
	cart := NewCart("s1")
	cart.Add("Aceite Girasol Marolio", 2, 450)
	cart.Add("Leche Entera", 1, 980)

	if got := cart.Total(); got != 1880 {
		t.Errorf("total = %.2f, want 1880", got)
	}
}

func TestCartRenderEmpty(t *testing.T) {
	cart := NewCart("s1")
	got := cart.Render()
	if !strings.Contains(got, "todavía no tenés productos") {
		t.Errorf("empty render should use the empty-order notice, got %q", got)
	}
}

func TestCartRenderItemized(t *testing.T) {
	cart := NewCart("s1")
	cart.Add("Aceite Girasol Marolio", 2, 450)

	got := cart.Render()
	if !strings.Contains(got, "* Aceite Girasol Marolio — $450.00 x2 = $900.00") {
		t.Errorf("render missing itemized line, got %q", got)
	}
	if !strings.Contains(got, "Total acumulado: $900.00") {
		t.Errorf("render missing total, got %q", got)
	}
}
