package signal

import (
	"regexp"
	"strings"

	"github.com/kailas-cloud/snapdex/internal/domain/item"
	"github.com/kailas-cloud/snapdex/internal/domain/search/lexicon"
)

var hexInQuery = regexp.MustCompile(`#[0-9a-fA-F]{6}`)

// Color signal confidences.
const (
	ColorHexMatch     = 1.0
	ColorNameMatch    = 0.8
	ColorNameMismatch = 0.3
)

// ColorSignal scores color names and hex codes in the query against the
// dominant colors.
type ColorSignal struct {
	colors []lexicon.ColorName
}

// NewColorSignal creates a ColorSignal. The first color name found in the query
// decides the score, so table order matters.
func NewColorSignal(v lexicon.Vocabulary) *ColorSignal {
	colors := make([]lexicon.ColorName, 0, len(v.Colors))
	for _, c := range v.Colors {
		if isBlank(c.Name) {
			continue
		}
		colors = append(colors, lexicon.ColorName{Name: strings.ToLower(c.Name), Codes: lowerNonBlank(c.Codes)})
	}
	return &ColorSignal{colors: colors}
}

// Score implements Calculator.
func (s *ColorSignal) Score(query string, it item.Item) float64 {
	dominant := lexicon.Set(it.Features().DominantColors)
	if len(dominant) == 0 || isBlank(query) {
		return 0
	}
	q := strings.ToLower(query)

	for _, c := range s.colors {
		if !strings.Contains(q, c.Name) {
			continue
		}
		for _, code := range c.Codes {
			if _, ok := dominant[code]; ok {
				return ColorNameMatch
			}
		}
		return ColorNameMismatch
	}

	for _, code := range hexInQuery.FindAllString(query, -1) {
		if _, ok := dominant[strings.ToLower(code)]; ok {
			return ColorHexMatch
		}
	}
	return 0
}

// Matches returns the dominant colors named or quoted by the query.
func (s *ColorSignal) Matches(query string, it item.Item) []string {
	q := strings.ToLower(query)
	wanted := lexicon.Set(hexInQuery.FindAllString(query, -1))
	for _, c := range s.colors {
		if strings.Contains(q, c.Name) {
			for _, code := range c.Codes {
				wanted[code] = struct{}{}
			}
		}
	}
	var out []string
	for _, dc := range it.Features().DominantColors {
		if _, ok := wanted[strings.ToLower(dc)]; ok {
			out = appendUnique(out, dc)
		}
	}
	return out
}
