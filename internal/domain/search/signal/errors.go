package signal

import (
	"strings"

	"github.com/kailas-cloud/snapdex/internal/domain/item"
	"github.com/kailas-cloud/snapdex/internal/domain/search/lexicon"
	"github.com/kailas-cloud/snapdex/internal/domain/search/text"
)

// Error-state signal confidences.
const (
	ErrorStateMatch   = 1.0
	errorKeywordScale = 0.9
)

// ErrorSignal scores the query against detected error-state labels.
type ErrorSignal struct {
	words    *text.Extractor
	keywords []string
	set      map[string]struct{}
}

// NewErrorSignal creates an ErrorSignal.
func NewErrorSignal(words *text.Extractor, v lexicon.Vocabulary) *ErrorSignal {
	kw := lowerNonBlank(v.ErrorKeywords)
	return &ErrorSignal{words: words, keywords: kw, set: lexicon.Set(kw)}
}

// Score implements Calculator.
//
// An error word in the query correlates with the item when any label contains
// that word or any label carries an error keyword at all.
func (s *ErrorSignal) Score(query string, it item.Item) float64 {
	labels := lowerNonBlank(it.Features().ErrorStates)
	if len(labels) == 0 || isBlank(query) {
		return 0
	}
	q := strings.ToLower(query)

	for _, l := range labels {
		if strings.Contains(l, q) || strings.Contains(q, l) {
			return ErrorStateMatch
		}
	}

	anyKeyword := false
	for _, l := range labels {
		if containsAny(l, s.keywords) {
			anyKeyword = true
			break
		}
	}

	total, hits := 0, 0
	for _, w := range s.words.Words(q) {
		if _, ok := s.set[w]; !ok {
			continue
		}
		total++
		if anyKeyword || containsInAny(labels, w) {
			hits++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * errorKeywordScale
}

// Matches returns the error-state labels related to the query.
func (s *ErrorSignal) Matches(query string, it item.Item) []string {
	q := strings.ToLower(query)
	qw := s.words.Words(q)
	var out []string
	for _, label := range it.Features().ErrorStates {
		if isBlank(label) {
			continue
		}
		l := strings.ToLower(label)
		if strings.Contains(l, q) || strings.Contains(q, l) {
			out = appendUnique(out, label)
			continue
		}
		for _, w := range qw {
			if _, ok := s.set[w]; ok && strings.Contains(l, w) {
				out = appendUnique(out, label)
				break
			}
		}
	}
	return out
}
