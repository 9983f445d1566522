package signal

import (
	"math"
	"strings"

	"github.com/kailas-cloud/snapdex/internal/domain/item"
	"github.com/kailas-cloud/snapdex/internal/domain/search/entity"
	"github.com/kailas-cloud/snapdex/internal/domain/search/text"
)

// Text signal confidences.
const (
	TextExactMatch  = 1.0
	TextEntityMatch = 0.95
	textWordScale   = 0.8
	textFuzzyScale  = 0.6
)

// TextSignal scores the query against the recognized screen text.
type TextSignal struct {
	words    *text.Extractor
	fuzzy    text.Fuzzy
	entities *entity.Set
}

// NewTextSignal creates a TextSignal. entities may be nil.
func NewTextSignal(words *text.Extractor, fuzzy text.Fuzzy, entities *entity.Set) *TextSignal {
	return &TextSignal{words: words, fuzzy: fuzzy, entities: entities}
}

// Score implements Calculator.
func (s *TextSignal) Score(query string, it item.Item) float64 {
	body := it.Features().Text()
	if body == "" || isBlank(query) {
		return 0
	}
	q := strings.ToLower(query)
	t := strings.ToLower(body)

	if strings.Contains(t, q) {
		return TextExactMatch
	}
	if _, ok := s.entities.Match(q, t); ok {
		return TextEntityMatch
	}

	qw := s.words.Words(q)
	if len(qw) == 0 {
		return 0
	}
	tw := s.words.Words(t)

	matched := 0
	for _, w := range qw {
		if text.Contains(tw, w) {
			matched++
		}
	}
	ratio := float64(matched) / float64(len(qw))
	return math.Max(ratio*textWordScale, s.fuzzy.Score(qw, tw)*textFuzzyScale)
}

// Matches returns the query words present in the text, or the entity term.
func (s *TextSignal) Matches(query string, it item.Item) []string {
	body := it.Features().Text()
	if body == "" || isBlank(query) {
		return nil
	}
	q := strings.ToLower(query)
	t := strings.ToLower(body)
	if strings.Contains(t, q) {
		return []string{strings.TrimSpace(q)}
	}
	if term, ok := s.entities.Match(q, t); ok {
		return []string{term}
	}
	tw := s.words.Words(t)
	var out []string
	for _, w := range s.words.Words(q) {
		if text.Contains(tw, w) {
			out = appendUnique(out, w)
		}
	}
	return out
}
