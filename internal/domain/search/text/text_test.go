package text

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kailas-cloud/snapdex/internal/domain/search/lexicon"
)

func TestWords(t *testing.T) {
	ex := NewExtractor(lexicon.Default())

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"lowercases and drops short tokens", "Go TO the Login Page", []string{"login", "page"}},
		{"drops stop words", "this is the error that they had", []string{"error"}},
		{"drops temporal question words", "when did I take this screenshot of babies", []string{"babies"}},
		{"splits on punctuation", "Case_ID: 12345, status=denied", []string{"case_id", "12345", "status", "denied"}},
		{"keeps order and duplicates", "error again error", []string{"error", "again", "error"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ex.Words(tt.in)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWords_Deterministic(t *testing.T) {
	ex := NewExtractor(lexicon.Default())
	in := "Payment failed: card declined on checkout"
	assert.Equal(t, ex.Words(in), ex.Words(in))
}

func TestSimilar(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"go", "go", true},
		{"go", "gopher", false},
		{"login", "logins", true},
		{"payment", "pay", true},
		{"dashboard", "dashing", true},
		{"dash", "dashing", true},
		{"data", "date", false},
		{"error", "erratic", true},
		{"error", "banner", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Similar(tt.a, tt.b), "%s ~ %s", tt.a, tt.b)
	}
}

func TestPrefixFuzzy_Score(t *testing.T) {
	var f PrefixFuzzy

	assert.Zero(t, f.Score(nil, []string{"x"}))
	assert.Zero(t, f.Score([]string{"x"}, nil))
	assert.InDelta(t, 0.5, f.Score([]string{"payments", "refund"}, []string{"payment", "failed"}), 1e-9)
	assert.InDelta(t, 1.0, f.Score([]string{"login"}, []string{"logins"}), 1e-9)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b"}, "b"))
	assert.False(t, Contains(nil, "b"))
}
