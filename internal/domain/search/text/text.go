// Package text turns free text into normalized word sequences and scores
// approximate word overlap.
package text

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/snapdex/internal/domain/search/lexicon"
)

var wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// MinWordLength is the shortest token kept by the extractor.
const MinWordLength = 3

// Extractor tokenizes text and drops stop words and temporal-question words.
type Extractor struct {
	stop map[string]struct{}
}

// NewExtractor builds an Extractor from the vocabulary's stop and question words.
func NewExtractor(v lexicon.Vocabulary) *Extractor {
	words := make([]string, 0, len(v.StopWords)+len(v.QuestionWords))
	words = append(words, v.StopWords...)
	words = append(words, v.QuestionWords...)
	return &Extractor{stop: lexicon.Set(words)}
}

// Words returns the lower-cased content words of s in order of appearance.
func (e *Extractor) Words(s string) []string {
	if s == "" {
		return nil
	}
	tokens := wordRegex.FindAllString(strings.ToLower(s), -1)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) < MinWordLength {
			continue
		}
		if _, ok := e.stop[tok]; ok {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Contains reports whether words holds w.
func Contains(words []string, w string) bool {
	for _, x := range words {
		if x == w {
			return true
		}
	}
	return false
}
