package signal

import (
	"strings"

	"github.com/kailas-cloud/snapdex/internal/domain/item"
	"github.com/kailas-cloud/snapdex/internal/domain/search/lexicon"
	"github.com/kailas-cloud/snapdex/internal/domain/search/text"
)

// UISignal scores UI-vocabulary query words against detected UI element labels.
type UISignal struct {
	words    *text.Extractor
	keywords map[string]struct{}
}

// NewUISignal creates a UISignal.
func NewUISignal(words *text.Extractor, v lexicon.Vocabulary) *UISignal {
	return &UISignal{words: words, keywords: lexicon.Set(v.UIKeywords)}
}

// Score implements Calculator.
func (s *UISignal) Score(query string, it item.Item) float64 {
	labels := lowerNonBlank(it.Features().UIElements)
	if len(labels) == 0 || isBlank(query) {
		return 0
	}

	total, hits := 0, 0
	for _, w := range s.words.Words(query) {
		if _, ok := s.keywords[w]; !ok {
			continue
		}
		total++
		if containsInAny(labels, w) {
			hits++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// Matches returns the UI labels that contain a UI-vocabulary query word.
func (s *UISignal) Matches(query string, it item.Item) []string {
	var out []string
	qw := s.words.Words(query)
	for _, label := range it.Features().UIElements {
		l := strings.ToLower(label)
		for _, w := range qw {
			if _, ok := s.keywords[w]; ok && strings.Contains(l, w) {
				out = appendUnique(out, label)
				break
			}
		}
	}
	return out
}

// containsInAny reports whether any label contains w.
func containsInAny(labels []string, w string) bool {
	for _, l := range labels {
		if strings.Contains(l, w) {
			return true
		}
	}
	return false
}
