package quantity

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"quiero 2 aceites marolio", 2},
		{"dame 15 unidades", 15},
		{"quiero dos leches", 2},
		{"una gaseosa", 1},
		{"un paquete de fideos", 1},
		{"doce huevos", 12},
		{"una docena de huevos", 12},
		{"media docena de facturas", 6},
		{"un par de cervezas", 2},
		{"veinte alfajores", 20},
		{"veintidós caramelos", 22},
		{"veintidos caramelos", 22},
		{"treinta y cinco servilletas", 35},
		{"cuarenta y ocho latas", 48},
		{"treinta botellas", 30},
		{"quiero aceite", 1},
		{"", 1},
		{"mostrame el pedido", 1},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Parse(tt.text); got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseDigitsWinOverWords(t *testing.T) {
	// "quiero 3, no dos" keeps the explicit digit
	if got := Parse("quiero 3, no dos"); got != 3 {
		t.Errorf("Parse = %d, want 3", got)
	}
}
