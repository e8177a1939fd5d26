package quantity

import (
	"regexp"
	"strconv"
	"strings"
)

// Parse extracts how many units the customer asked for. The chain is:
// explicit digits, then the Spanish quantity lexicon, then compositional
// numerals ("veintidós", "treinta y cinco"). When nothing matches the
// customer gets one unit, never zero.
func Parse(text string) int {
	normalized := normalize(text)

	if n, ok := parseDigits(normalized); ok {
		return n
	}
	if n, ok := parseCompositional(normalized); ok {
		return n
	}
	if n, ok := parseLexicon(normalized); ok {
		return n
	}
	return 1
}

var digitRe = regexp.MustCompile(`\b(\d+)\b`)

func parseDigits(text string) (int, bool) {
	m := digitRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// units covers the words that map straight to a number, plus the grocery
// idioms that matter at a counter.
var units = map[string]int{
	"un": 1, "uno": 1, "una": 1,
	"dos": 2, "tres": 3, "cuatro": 4, "cinco": 5,
	"seis": 6, "siete": 7, "ocho": 8, "nueve": 9, "diez": 10,
	"once": 11, "doce": 12, "trece": 13, "catorce": 14, "quince": 15,
	"dieciseis": 16, "diecisiete": 17, "dieciocho": 18, "diecinueve": 19,
	"veinte": 20,
}

var tens = map[string]int{
	"treinta": 30, "cuarenta": 40, "cincuenta": 50,
	"sesenta": 60, "setenta": 70, "ochenta": 80, "noventa": 90,
}

func parseLexicon(text string) (int, bool) {
	// Counter idioms first: "un par" and "una docena" carry the quantity,
	// not their article.
	if strings.Contains(text, "media docena") {
		return 6, true
	}
	if strings.Contains(text, "docena") {
		return 12, true
	}
	if strings.Contains(text, "par de") {
		return 2, true
	}
	for _, word := range strings.Fields(text) {
		if n, ok := units[word]; ok {
			return n, true
		}
		if n, ok := tens[word]; ok {
			return n, true
		}
	}
	return 0, false
}

// parseCompositional handles the fused twenties and the "tens y units"
// construction. It runs before the lexicon so "treinta y cinco" reads as
// 35, not 30.
func parseCompositional(text string) (int, bool) {
	words := strings.Fields(text)
	for i, word := range words {
		if strings.HasPrefix(word, "veinti") {
			rest := strings.TrimPrefix(word, "veinti")
			if n, ok := units[rest]; ok && n < 10 {
				return 20 + n, true
			}
		}
		if ten, ok := tens[word]; ok && i+2 < len(words) && words[i+1] == "y" {
			if unit, ok := units[words[i+2]]; ok && unit < 10 {
				return ten + unit, true
			}
		}
	}
	return 0, false
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u",
)

func normalize(text string) string {
	return accentReplacer.Replace(strings.ToLower(text))
}
