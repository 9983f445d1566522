package signal

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/snapdex/internal/domain/item"
	"github.com/kailas-cloud/snapdex/internal/domain/search/lexicon"
	"github.com/kailas-cloud/snapdex/internal/domain/search/text"
)

// Color-context signal confidences.
const (
	ColorContextDirect  = 1.0
	ColorContextBoosted = 0.95
	ColorContextColor   = 0.8
	ColorContextMeaning = 0.7
)

// The boosted pairing: an "error" query against a red color.
const (
	boostKey   = "error"
	boostColor = "red"
)

// ColorContextSignal scores the query against the item's color → meaning map,
// directly or through the semantic meaning table.
type ColorContextSignal struct {
	meanings []lexicon.Meaning
}

// NewColorContextSignal creates a ColorContextSignal.
func NewColorContextSignal(v lexicon.Vocabulary) *ColorContextSignal {
	meanings := make([]lexicon.Meaning, 0, len(v.ColorMeanings))
	for _, m := range v.ColorMeanings {
		if isBlank(m.Key) {
			continue
		}
		meanings = append(meanings, lexicon.Meaning{Key: strings.ToLower(m.Key), Terms: lowerNonBlank(m.Terms)})
	}
	return &ColorContextSignal{meanings: meanings}
}

// Score implements Calculator. Pairs are visited in color order; the first
// pair that scores decides.
func (s *ColorContextSignal) Score(query string, it item.Item) float64 {
	ctx := it.Features().ColorContext
	if len(ctx) == 0 || isBlank(query) {
		return 0
	}
	q := strings.ToLower(query)

	for _, color := range sortedKeys(ctx) {
		c := strings.ToLower(strings.TrimSpace(color))
		m := strings.ToLower(strings.TrimSpace(ctx[color]))
		if c == "" || m == "" {
			continue
		}

		if (strings.Contains(q, c) && strings.Contains(q, m)) || strings.Contains(m, q) {
			return ColorContextDirect
		}

		for _, mm := range s.meanings {
			if !strings.Contains(q, mm.Key) {
				continue
			}
			if text.Contains(mm.Terms, c) || containsAny(c, mm.Terms) {
				if mm.Key == boostKey && strings.Contains(c, boostColor) {
					return ColorContextBoosted
				}
				return ColorContextColor
			}
			if containsAny(m, mm.Terms) {
				return ColorContextMeaning
			}
		}
	}
	return 0
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
