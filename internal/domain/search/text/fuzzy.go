package text

import (
	"strings"
	"unicode/utf8"
)

// Fuzzy scores how many query words have an approximate match among text words.
type Fuzzy interface {
	Score(queryWords, textWords []string) float64
}

// PrefixFuzzy treats words as similar when one contains the other or when
// both are long and share a 3-rune prefix. Short words must match exactly.
type PrefixFuzzy struct{}

// Score returns the fraction of query words with at least one similar text word.
func (PrefixFuzzy) Score(queryWords, textWords []string) float64 {
	if len(queryWords) == 0 || len(textWords) == 0 {
		return 0
	}
	matched := 0
	for _, q := range queryWords {
		for _, w := range textWords {
			if Similar(q, w) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(queryWords))
}

// Similar is the word similarity used by PrefixFuzzy.
func Similar(a, b string) bool {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la < 3 || lb < 3 {
		return a == b
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return la > 4 && lb > 4 && prefix(a, 3) == prefix(b, 3)
}

func prefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
