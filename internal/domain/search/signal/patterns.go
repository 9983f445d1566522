package signal

import (
	"strings"

	"github.com/kailas-cloud/snapdex/internal/domain/item"
	"github.com/kailas-cloud/snapdex/internal/domain/search/lexicon"
	"github.com/kailas-cloud/snapdex/internal/domain/search/text"
)

// Visual-pattern signal confidences.
const (
	PatternMatch        = 0.95
	patternKeywordScale = 0.8
)

// PatternSignal scores the query against visual-pattern labels.
type PatternSignal struct {
	words    *text.Extractor
	keywords map[string]struct{}
}

// NewPatternSignal creates a PatternSignal.
func NewPatternSignal(words *text.Extractor, v lexicon.Vocabulary) *PatternSignal {
	return &PatternSignal{words: words, keywords: lexicon.Set(v.PatternKeywords)}
}

// Score implements Calculator.
func (s *PatternSignal) Score(query string, it item.Item) float64 {
	labels := lowerNonBlank(it.Features().VisualPatterns)
	if len(labels) == 0 || isBlank(query) {
		return 0
	}
	q := strings.ToLower(query)

	for _, l := range labels {
		if strings.Contains(l, q) || strings.Contains(q, l) {
			return PatternMatch
		}
	}

	total, hits := 0, 0
	for _, w := range s.words.Words(q) {
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
	return float64(hits) / float64(total) * patternKeywordScale
}

// Matches returns the pattern labels related to the query.
func (s *PatternSignal) Matches(query string, it item.Item) []string {
	q := strings.ToLower(query)
	qw := s.words.Words(q)
	var out []string
	for _, label := range it.Features().VisualPatterns {
		if isBlank(label) {
			continue
		}
		l := strings.ToLower(label)
		if strings.Contains(l, q) || strings.Contains(q, l) {
			out = appendUnique(out, label)
			continue
		}
		for _, w := range qw {
			if _, ok := s.keywords[w]; ok && strings.Contains(l, w) {
				out = appendUnique(out, label)
				break
			}
		}
	}
	return out
}
