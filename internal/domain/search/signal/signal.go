// Package signal holds the per-feature confidence calculators and the weighted
// aggregation over a named signal set.
//
// Every calculator is a pure function of (query, item) and returns a value in
// [0,1]. Calculators return exactly 0 when their source field is empty or the
// query is blank.
package signal

import (
	"strings"

	"github.com/kailas-cloud/snapdex/internal/domain/item"
	"github.com/kailas-cloud/snapdex/internal/domain/search/entity"
	"github.com/kailas-cloud/snapdex/internal/domain/search/lexicon"
	"github.com/kailas-cloud/snapdex/internal/domain/search/text"
)

// Name identifies a signal.
type Name string

// Known signals.
const (
	Text         Name = "text"
	Visual       Name = "visual"
	UI           Name = "ui"
	Color        Name = "color"
	ErrorStates  Name = "error_states"
	Patterns     Name = "visual_patterns"
	ColorContext Name = "color_context"
)

// Names lists every known signal in canonical order.
var Names = []Name{Text, Visual, UI, Color, ErrorStates, Patterns, ColorContext}

// IsValid reports whether n is a known signal.
func (n Name) IsValid() bool {
	for _, k := range Names {
		if k == n {
			return true
		}
	}
	return false
}

// Calculator scores one feature dimension of an item against a query.
type Calculator interface {
	Score(query string, it item.Item) float64
}

// Matcher is implemented by calculators that can report which item values
// contributed to their score.
type Matcher interface {
	Matches(query string, it item.Item) []string
}

// Calculators maps each signal to its calculator.
type Calculators map[Name]Calculator

// NewCalculators builds all known calculators from one vocabulary.
// A nil fuzzy strategy defaults to text.PrefixFuzzy.
func NewCalculators(v lexicon.Vocabulary, entities *entity.Set, fuzzy text.Fuzzy) Calculators {
	if fuzzy == nil {
		fuzzy = text.PrefixFuzzy{}
	}
	words := text.NewExtractor(v)
	return Calculators{
		Text:         NewTextSignal(words, fuzzy, entities),
		Visual:       NewVisualSignal(words, v),
		UI:           NewUISignal(words, v),
		Color:        NewColorSignal(v),
		ErrorStates:  NewErrorSignal(words, v),
		Patterns:     NewPatternSignal(words, v),
		ColorContext: NewColorContextSignal(v),
	}
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// lowerNonBlank lower-cases labels and drops blank ones.
func lowerNonBlank(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if isBlank(l) {
			continue
		}
		out = append(out, strings.ToLower(l))
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
