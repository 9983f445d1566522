package signal

import (
	"strings"

	"github.com/kailas-cloud/snapdex/internal/domain/item"
	"github.com/kailas-cloud/snapdex/internal/domain/search/lexicon"
	"github.com/kailas-cloud/snapdex/internal/domain/search/text"
)

// Visual signal confidences.
const (
	VisualExactMatch   = 0.9
	visualKeywordScale = 0.8
	visualContentScale = 0.8
	visualGenericScale = 0.6
)

// VisualSignal scores the query against the visual description.
type VisualSignal struct {
	words     *text.Extractor
	keywords  map[string]struct{}
	nouns     map[string]struct{}
	questions []string
}

// NewVisualSignal creates a VisualSignal from the vocabulary's visual keywords,
// generic image nouns and temporal question phrases.
func NewVisualSignal(words *text.Extractor, v lexicon.Vocabulary) *VisualSignal {
	return &VisualSignal{
		words:     words,
		keywords:  lexicon.Set(v.VisualKeywords),
		nouns:     lexicon.Set(v.ImageNouns),
		questions: lowerNonBlank(v.QuestionPhrases),
	}
}

// Score implements Calculator.
//
// Queries phrased as temporal questions ("when did I take the picture of the
// babies") score on their content words alone, so generic nouns do not dilute
// the match.
func (s *VisualSignal) Score(query string, it item.Item) float64 {
	desc := it.Features().Description()
	if desc == "" || isBlank(query) {
		return 0
	}
	q := strings.ToLower(query)
	d := strings.ToLower(desc)

	if strings.Contains(d, q) {
		return VisualExactMatch
	}

	qw := s.words.Words(q)
	dw := s.words.Words(d)

	total, hits := 0, 0
	for _, w := range qw {
		if _, ok := s.keywords[w]; !ok {
			continue
		}
		total++
		if text.Contains(dw, w) {
			hits++
		}
	}
	if total > 0 {
		return float64(hits) / float64(total) * visualKeywordScale
	}

	contentWords, contentHits := 0, 0
	for _, w := range qw {
		if _, ok := s.nouns[w]; ok {
			continue
		}
		contentWords++
		if text.Contains(dw, w) || strings.Contains(d, w) {
			contentHits++
		}
	}
	if contentWords > 0 && contentHits > 0 && containsAny(q, s.questions) {
		return float64(contentHits) / float64(contentWords) * visualContentScale
	}

	if len(qw) == 0 {
		return 0
	}
	matched := 0
	for _, w := range qw {
		if text.Contains(dw, w) {
			matched++
		}
	}
	return float64(matched) / float64(len(qw)) * visualGenericScale
}
