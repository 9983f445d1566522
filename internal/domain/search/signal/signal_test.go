package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/snapdex/internal/domain/item"
	"github.com/kailas-cloud/snapdex/internal/domain/search/entity"
	"github.com/kailas-cloud/snapdex/internal/domain/search/lexicon"
)

func calcs() Calculators {
	return NewCalculators(lexicon.Default(), entity.MustCompile(entity.DefaultRules()), nil)
}

func withFeatures(f item.Features) item.Item {
	return item.Reconstruct("it-1", "alice", item.StatusCompleted, item.File{Name: "a.png"}, f,
		"", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), nil)
}

func str(s string) *string { return &s }

func TestText_ExactSubstring(t *testing.T) {
	c := calcs()[Text]
	it := withFeatures(item.Features{ExtractedText: str("ERROR: Payment Declined by issuer")})

	assert.Equal(t, 1.0, c.Score("payment declined", it))
}

func TestText_EntityVariants(t *testing.T) {
	c := calcs()[Text]
	it := withFeatures(item.Features{ExtractedText: str("Support portal\nCase ID: 12345")})

	assert.Equal(t, 0.95, c.Score("CaseId", it))
	assert.Equal(t, 0.95, c.Score("Case_Id", it))
}

func TestText_WordRatioAndFuzzy(t *testing.T) {
	c := calcs()[Text]
	it := withFeatures(item.Features{ExtractedText: str("Invoice payments overdue")})

	// "invoice" exact, "refund" nothing: ratio 0.5*0.8 = 0.4, fuzzy 0.5*0.6 = 0.3
	assert.InDelta(t, 0.4, c.Score("invoice refund", it), 1e-9)
	// "overdue" exact, "payment" only fuzzily via "payments": max(0.5*0.8, 1*0.6)
	assert.InDelta(t, 0.6, c.Score("payment overdue", it), 1e-9)
}

func TestText_Degradation(t *testing.T) {
	c := calcs()[Text]

	empty := withFeatures(item.Features{})
	assert.Zero(t, c.Score("anything at all", empty))

	it := withFeatures(item.Features{ExtractedText: str("some text")})
	assert.Zero(t, c.Score("", it), "blank query")
	assert.Zero(t, c.Score("the of it", it), "only stop words")
}

func TestVisual(t *testing.T) {
	c := calcs()[Visual]
	it := withFeatures(item.Features{
		VisualDescription: str("A login form with a blue submit button and photos of babies"),
	})

	tests := []struct {
		name  string
		query string
		want  float64
	}{
		{"exact phrase", "blue submit button", 0.9},
		{"visual keywords", "button dialog", 0.4},
		{"temporal question content", "when did I take picture of babies", 0.8},
		{"generic overlap", "babies sleeping", 0.3},
		{"no overlap", "invoice", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, c.Score(tt.query, it), 1e-9)
		})
	}

	assert.Zero(t, c.Score("button", withFeatures(item.Features{})))
}

func TestUI(t *testing.T) {
	c := calcs()[UI]
	it := withFeatures(item.Features{UIElements: []string{"Submit Button", "Search input", "Nav menu"}})

	assert.Equal(t, 1.0, c.Score("button", it))
	assert.Equal(t, 0.5, c.Score("button checkbox", it))
	assert.Zero(t, c.Score("babies", it), "no UI vocabulary in query")
	assert.Zero(t, c.Score("button", withFeatures(item.Features{})))

	assert.Equal(t, []string{"Submit Button"}, c.(Matcher).Matches("red button", it))
}

func TestColor(t *testing.T) {
	c := calcs()[Color]
	red := withFeatures(item.Features{DominantColors: []string{"#FF0000", "#ffffff"}})
	teal := withFeatures(item.Features{DominantColors: []string{"#008080"}})

	assert.Equal(t, 1.0, c.Score("#ff0000", red), "hex match is case-insensitive")
	assert.Equal(t, 0.8, c.Score("red alert", red))
	assert.Equal(t, 0.3, c.Score("red alert", teal))
	assert.Zero(t, c.Score("#123456", red))
	assert.Zero(t, c.Score("red", withFeatures(item.Features{})))

	// A named color decides before any hex code is looked at.
	assert.Equal(t, 0.3, c.Score("blue #ff0000", red))

	assert.Equal(t, []string{"#FF0000"}, c.(Matcher).Matches("red", red))
}

func TestErrorStates(t *testing.T) {
	c := calcs()[ErrorStates]
	it := withFeatures(item.Features{ErrorStates: []string{"Access Denied", "403 Forbidden"}})

	assert.Equal(t, 1.0, c.Score("access denied", it))
	assert.Equal(t, 1.0, c.Score("got 403 forbidden from api", it), "label inside query")
	assert.InDelta(t, 0.9, c.Score("timeout problem", it), 1e-9, "labels carry error keywords")
	assert.Zero(t, c.Score("babies", it))

	plain := withFeatures(item.Features{ErrorStates: []string{"Something odd"}})
	assert.Zero(t, c.Score("odd error timeout", plain), "labels without error keywords")
}

func TestPatterns(t *testing.T) {
	c := calcs()[Patterns]
	it := withFeatures(item.Features{VisualPatterns: []string{"dark theme", "card layout"}})

	assert.Equal(t, 0.95, c.Score("dark theme", it))
	assert.InDelta(t, 0.4, c.Score("gradient layout", it), 1e-9)
	assert.Zero(t, c.Score("babies", it))
}

func TestColorContext(t *testing.T) {
	c := calcs()[ColorContext]
	it := withFeatures(item.Features{ColorContext: map[string]string{"red": "payment failure"}})

	assert.Equal(t, 1.0, c.Score("red payment failure", it), "color and meaning in query")
	assert.Equal(t, 1.0, c.Score("failure", it), "query inside meaning")
	assert.Equal(t, 0.95, c.Score("error screens", it), "error boosted for red")
	assert.Equal(t, 0.8, c.Score("blocked screens", it), "red in blocked terms")

	hex := withFeatures(item.Features{ColorContext: map[string]string{"#dc3545": "critical notice"}})
	assert.Equal(t, 0.7, c.Score("error screens", hex), "meaning carries an error term")
	assert.Zero(t, c.Score("success", hex))
}

func TestSet_WeightsSumToOne(t *testing.T) {
	for _, name := range []string{SetSeven, SetFour} {
		s, err := Build(name, calcs(), nil, DefaultThreshold)
		require.NoError(t, err, name)
		sum := 0.0
		for _, e := range s.Entries() {
			sum += e.Weight
		}
		assert.InDelta(t, 1.0, sum, 1e-9, name)
	}
}

func TestBuild_Validation(t *testing.T) {
	_, err := Build("nine", calcs(), nil, DefaultThreshold)
	assert.Error(t, err)

	_, err = Build(SetSeven, calcs(), map[Name]float64{Text: 0.5}, DefaultThreshold)
	assert.Error(t, err, "weights no longer sum to 1")

	_, err = Build(SetFour, calcs(), map[Name]float64{ErrorStates: 0}, DefaultThreshold)
	assert.Error(t, err, "override outside the set")

	s, err := Build(SetFour, calcs(), map[Name]float64{Text: 0.3, Visual: 0.4}, DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, SetFour, s.Name())
}

func TestNewSet_Validation(t *testing.T) {
	c := calcs()
	_, err := NewSet("x", []Entry{{Name: Text, Calculator: c[Text], Weight: 0.5}, {Name: Text, Calculator: c[Text], Weight: 0.5}}, 0.1)
	assert.Error(t, err, "duplicate")

	_, err = NewSet("x", []Entry{{Name: "bogus", Calculator: c[Text], Weight: 1}}, 0.1)
	assert.Error(t, err, "unknown name")

	_, err = NewSet("x", []Entry{{Name: Text, Weight: 1}}, 0.1)
	assert.Error(t, err, "nil calculator")

	_, err = NewSet("x", []Entry{{Name: Text, Calculator: c[Text], Weight: 1}}, 1.5)
	assert.Error(t, err, "threshold")
}

func TestEvaluate(t *testing.T) {
	s, err := Build(SetSeven, calcs(), nil, DefaultThreshold)
	require.NoError(t, err)

	it := withFeatures(item.Features{
		ExtractedText:  str("Payment declined"),
		DominantColors: []string{"#dc3545"},
		ErrorStates:    []string{"payment declined"},
		UIElements:     []string{"Retry button"},
	})

	b := s.Evaluate("payment declined", it)
	// text 1.0*.25 + error 1.0*.15
	assert.InDelta(t, 0.40, b.Overall, 1e-9)
	assert.True(t, b.Accepted)
	assert.Len(t, b.Scores, 7)
	assert.Equal(t, 1.0, b.Value(Text))
	assert.Equal(t, 1.0, b.Values()[ErrorStates])
	assert.Zero(t, b.Value("missing"))

	miss := s.Evaluate("babies", it)
	assert.False(t, miss.Accepted)
	assert.GreaterOrEqual(t, miss.Overall, 0.0)
	assert.LessOrEqual(t, miss.Overall, 1.0)
}

func TestEvaluate_ThresholdIsExclusive(t *testing.T) {
	c := calcs()
	s, err := NewSet("single", []Entry{{Name: Color, Calculator: c[Color], Weight: 1}}, 0.3)
	require.NoError(t, err)

	it := withFeatures(item.Features{DominantColors: []string{"#008080"}})
	b := s.Evaluate("red", it)
	assert.Equal(t, 0.3, b.Overall)
	assert.False(t, b.Accepted)
}

func TestExplain_Matches(t *testing.T) {
	s, err := Build(SetSeven, calcs(), nil, DefaultThreshold)
	require.NoError(t, err)

	it := withFeatures(item.Features{
		ExtractedText:  str("Checkout failed"),
		UIElements:     []string{"Pay button"},
		DominantColors: []string{"#DC3545"},
	})
	b := s.Explain("red button checkout", it)
	assert.Equal(t, []string{"checkout"}, b.Matches[Text])
	assert.Equal(t, []string{"Pay button"}, b.Matches[UI])
	assert.Equal(t, []string{"#DC3545"}, b.Matches[Color])
	_, ok := b.Matches[Visual]
	assert.False(t, ok)
}
