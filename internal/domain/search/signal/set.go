package signal

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/snapdex/internal/domain/item"
)

// Named signal sets.
const (
	SetSeven = "seven"
	SetFour  = "four"
)

// DefaultThreshold is the overall confidence an item must exceed to be kept.
const DefaultThreshold = 0.1

const weightTolerance = 1e-9

// Weight pairs a signal with its share of the overall confidence.
type Weight struct {
	Name   Name
	Weight float64
}

// SevenWeights is the reference weighting over all seven signals.
func SevenWeights() []Weight {
	return []Weight{
		{Text, 0.25},
		{Visual, 0.20},
		{UI, 0.15},
		{Color, 0.10},
		{ErrorStates, 0.15},
		{Patterns, 0.10},
		{ColorContext, 0.05},
	}
}

// FourWeights is the reduced weighting over text, visual, UI and color.
func FourWeights() []Weight {
	return []Weight{
		{Text, 0.4},
		{Visual, 0.3},
		{UI, 0.2},
		{Color, 0.1},
	}
}

// WeightsFor returns the weights of a named set.
func WeightsFor(name string) ([]Weight, error) {
	switch name {
	case "", SetSeven:
		return SevenWeights(), nil
	case SetFour:
		return FourWeights(), nil
	default:
		return nil, fmt.Errorf("unknown signal set %q (want %q or %q)", name, SetSeven, SetFour)
	}
}

// Entry is one (name, calculator, weight) triple of a Set.
type Entry struct {
	Name       Name
	Calculator Calculator
	Weight     float64
}

// Set is a named, validated list of weighted signals plus the acceptance threshold.
type Set struct {
	name      string
	entries   []Entry
	threshold float64
}

// NewSet validates entries: known unique names, non-nil calculators,
// weights in [0,1] summing to 1.
func NewSet(name string, entries []Entry, threshold float64) (*Set, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("signal set %q: no entries", name)
	}
	if threshold < 0 || threshold >= 1 {
		return nil, fmt.Errorf("signal set %q: threshold must be in [0,1)", name)
	}
	seen := make(map[Name]struct{}, len(entries))
	sum := 0.0
	for _, e := range entries {
		if !e.Name.IsValid() {
			return nil, fmt.Errorf("signal set %q: unknown signal %q", name, e.Name)
		}
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("signal set %q: duplicate signal %q", name, e.Name)
		}
		seen[e.Name] = struct{}{}
		if e.Calculator == nil {
			return nil, fmt.Errorf("signal set %q: signal %q has no calculator", name, e.Name)
		}
		if e.Weight < 0 || e.Weight > 1 {
			return nil, fmt.Errorf("signal set %q: weight of %q must be in [0,1]", name, e.Name)
		}
		sum += e.Weight
	}
	if math.Abs(sum-1) > weightTolerance {
		return nil, fmt.Errorf("signal set %q: weights sum to %.4f, want 1.0", name, sum)
	}
	return &Set{name: name, entries: append([]Entry(nil), entries...), threshold: threshold}, nil
}

// Build assembles a named set from calculators. overrides replace the weight
// of individual signals; the result must still sum to 1.
func Build(name string, calcs Calculators, overrides map[Name]float64, threshold float64) (*Set, error) {
	weights, err := WeightsFor(name)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = SetSeven
	}
	inSet := make(map[Name]struct{}, len(weights))
	entries := make([]Entry, 0, len(weights))
	for _, w := range weights {
		inSet[w.Name] = struct{}{}
		weight := w.Weight
		if o, ok := overrides[w.Name]; ok {
			weight = o
		}
		entries = append(entries, Entry{Name: w.Name, Calculator: calcs[w.Name], Weight: weight})
	}
	for n := range overrides {
		if _, ok := inSet[n]; !ok {
			return nil, fmt.Errorf("signal set %q: weight override for signal %q outside the set", name, n)
		}
	}
	return NewSet(name, entries, threshold)
}

// Name returns the set name.
func (s *Set) Name() string { return s.name }

// Threshold returns the acceptance threshold.
func (s *Set) Threshold() float64 { return s.threshold }

// Entries returns a copy of the weighted signals.
func (s *Set) Entries() []Entry { return append([]Entry(nil), s.entries...) }

// Score is one signal's confidence within a Breakdown.
type Score struct {
	Name   Name
	Value  float64
	Weight float64
}

// Breakdown is the result of evaluating one item against one query.
type Breakdown struct {
	Scores   []Score
	Overall  float64
	Accepted bool
	Matches  map[Name][]string
}

// Value returns the confidence of signal n, or 0 if it is not in the set.
func (b Breakdown) Value(n Name) float64 {
	for _, s := range b.Scores {
		if s.Name == n {
			return s.Value
		}
	}
	return 0
}

// Values returns the per-signal confidences keyed by name.
func (b Breakdown) Values() map[Name]float64 {
	out := make(map[Name]float64, len(b.Scores))
	for _, s := range b.Scores {
		out[s.Name] = s.Value
	}
	return out
}

// Evaluate scores the item with every signal and combines the results.
func (s *Set) Evaluate(query string, it item.Item) Breakdown {
	b := Breakdown{Scores: make([]Score, 0, len(s.entries))}
	overall := 0.0
	for _, e := range s.entries {
		v := clamp(e.Calculator.Score(query, it))
		b.Scores = append(b.Scores, Score{Name: e.Name, Value: v, Weight: e.Weight})
		overall += v * e.Weight
	}
	b.Overall = clamp(overall)
	b.Accepted = b.Overall > s.threshold
	return b
}

// Explain is Evaluate plus the item values each signal matched.
func (s *Set) Explain(query string, it item.Item) Breakdown {
	b := s.Evaluate(query, it)
	b.Matches = make(map[Name][]string)
	for _, e := range s.entries {
		m, ok := e.Calculator.(Matcher)
		if !ok {
			continue
		}
		if got := m.Matches(query, it); len(got) > 0 {
			b.Matches[e.Name] = got
		}
	}
	return b
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
