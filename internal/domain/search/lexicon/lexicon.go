// Package lexicon holds the word lists and lookup tables the ranking engine
// is configured with. Tables are plain values so deployments can extend or
// replace them and tests can pin them.
package lexicon

import "strings"

// ColorName maps a color word to the hex codes that count as that color.
type ColorName struct {
	Name  string   `yaml:"name"`
	Codes []string `yaml:"codes"`
}

// Meaning maps a semantic key ("error", "success") to the color names and
// words associated with it.
type Meaning struct {
	Key   string   `yaml:"key"`
	Terms []string `yaml:"terms"`
}

// Vocabulary is the full set of tables used by the word extractor and the
// signal calculators. Order matters for Colors and ColorMeanings: the first
// match wins.
type Vocabulary struct {
	StopWords       []string    `yaml:"stop_words"`
	QuestionWords   []string    `yaml:"question_words"`
	QuestionPhrases []string    `yaml:"question_phrases"`
	VisualKeywords  []string    `yaml:"visual_keywords"`
	ImageNouns      []string    `yaml:"image_nouns"`
	UIKeywords      []string    `yaml:"ui_keywords"`
	ErrorKeywords   []string    `yaml:"error_keywords"`
	PatternKeywords []string    `yaml:"pattern_keywords"`
	Colors          []ColorName `yaml:"colors"`
	ColorMeanings   []Meaning   `yaml:"color_meanings"`
}

// Default returns the stock English vocabulary.
func Default() Vocabulary {
	return Vocabulary{
		StopWords: []string{
			"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by",
			"is", "are", "was", "were", "be", "been", "being", "have", "has", "had",
			"do", "does", "did", "will", "would", "could", "should", "may", "might", "must",
			"this", "that", "these", "those",
			"i", "you", "he", "she", "it", "we", "they", "me", "him", "her", "us", "them",
		},
		QuestionWords: []string{
			"when", "what", "time", "take", "taken", "capture", "captured",
			"screenshot", "save", "saved", "get",
		},
		QuestionPhrases: []string{"when did", "what time", "when was"},
		VisualKeywords: []string{
			"button", "menu", "form", "dialog", "popup", "modal", "header", "footer",
			"sidebar", "navigation", "nav", "card", "panel", "widget", "icon", "image",
			"photo", "layout", "design", "interface", "ui", "screen", "page", "website",
			"app", "application",
		},
		ImageNouns: []string{"picture", "image", "photo", "screenshot"},
		UIKeywords: []string{
			"button", "link", "menu", "dropdown", "select", "input", "form", "field",
			"checkbox", "radio", "toggle", "switch", "tab", "accordion", "modal", "dialog",
			"popup", "tooltip", "icon", "badge", "alert", "notification", "banner",
		},
		ErrorKeywords: []string{
			"error", "fail", "failed", "failure", "problem", "issue", "blocked", "denied",
			"forbidden", "unauthorized", "invalid", "timeout", "expired", "unavailable",
			"down", "offline", "warning", "alert", "critical", "exception", "crash",
		},
		PatternKeywords: []string{
			"layout", "design", "style", "appearance", "look", "visual", "interface", "ui",
			"ux", "theme", "color", "background", "border", "shadow", "gradient",
			"animation", "transition",
		},
		Colors: []ColorName{
			{Name: "red", Codes: []string{"#ff0000", "#dc3545", "#e74c3c", "#c0392b"}},
			{Name: "blue", Codes: []string{"#0000ff", "#007bff", "#3498db", "#2980b9"}},
			{Name: "green", Codes: []string{"#00ff00", "#28a745", "#2ecc71", "#27ae60"}},
			{Name: "yellow", Codes: []string{"#ffff00", "#ffc107", "#f1c40f", "#f39c12"}},
			{Name: "orange", Codes: []string{"#ffa500", "#fd7e14", "#e67e22", "#d35400"}},
			{Name: "purple", Codes: []string{"#800080", "#6f42c1", "#9b59b6", "#8e44ad"}},
			{Name: "pink", Codes: []string{"#ffc0cb", "#e91e63", "#e83e8c"}},
			{Name: "black", Codes: []string{"#000000", "#343a40", "#2c3e50"}},
			{Name: "white", Codes: []string{"#ffffff", "#f8f9fa", "#ecf0f1"}},
			{Name: "gray", Codes: []string{"#808080", "#6c757d", "#95a5a6", "#7f8c8d"}},
			{Name: "brown", Codes: []string{"#a52a2a", "#8b4513", "#d2691e"}},
		},
		ColorMeanings: []Meaning{
			{Key: "error", Terms: []string{"red", "danger", "critical", "fail"}},
			{Key: "success", Terms: []string{"green", "ok", "pass", "complete"}},
			{Key: "warning", Terms: []string{"yellow", "orange", "caution", "alert"}},
			{Key: "info", Terms: []string{"blue", "information", "notice"}},
			{Key: "blocked", Terms: []string{"red", "stop", "forbidden", "denied"}},
			{Key: "loading", Terms: []string{"blue", "progress", "wait"}},
			{Key: "disabled", Terms: []string{"gray", "inactive", "unavailable"}},
		},
	}
}

// Extend appends the entries of other to v, skipping duplicates.
// Colors and meanings with an existing name/key get their lists merged.
func (v Vocabulary) Extend(other Vocabulary) Vocabulary {
	out := Vocabulary{
		StopWords:       mergeWords(v.StopWords, other.StopWords),
		QuestionWords:   mergeWords(v.QuestionWords, other.QuestionWords),
		QuestionPhrases: mergeWords(v.QuestionPhrases, other.QuestionPhrases),
		VisualKeywords:  mergeWords(v.VisualKeywords, other.VisualKeywords),
		ImageNouns:      mergeWords(v.ImageNouns, other.ImageNouns),
		UIKeywords:      mergeWords(v.UIKeywords, other.UIKeywords),
		ErrorKeywords:   mergeWords(v.ErrorKeywords, other.ErrorKeywords),
		PatternKeywords: mergeWords(v.PatternKeywords, other.PatternKeywords),
	}

	out.Colors = make([]ColorName, 0, len(v.Colors)+len(other.Colors))
	for _, c := range v.Colors {
		out.Colors = append(out.Colors, ColorName{Name: c.Name, Codes: mergeWords(nil, c.Codes)})
	}
	for _, c := range other.Colors {
		name := strings.ToLower(c.Name)
		if i := colorIndex(out.Colors, name); i >= 0 {
			out.Colors[i].Codes = mergeWords(out.Colors[i].Codes, c.Codes)
			continue
		}
		out.Colors = append(out.Colors, ColorName{Name: name, Codes: mergeWords(nil, c.Codes)})
	}

	out.ColorMeanings = make([]Meaning, 0, len(v.ColorMeanings)+len(other.ColorMeanings))
	for _, m := range v.ColorMeanings {
		out.ColorMeanings = append(out.ColorMeanings, Meaning{Key: m.Key, Terms: mergeWords(nil, m.Terms)})
	}
	for _, m := range other.ColorMeanings {
		key := strings.ToLower(m.Key)
		if i := meaningIndex(out.ColorMeanings, key); i >= 0 {
			out.ColorMeanings[i].Terms = mergeWords(out.ColorMeanings[i].Terms, m.Terms)
			continue
		}
		out.ColorMeanings = append(out.ColorMeanings, Meaning{Key: key, Terms: mergeWords(nil, m.Terms)})
	}
	return out
}

// Set builds a lookup set of lower-cased words.
func Set(words []string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[strings.ToLower(w)] = struct{}{}
	}
	return s
}

func mergeWords(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, w := range list {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" {
				continue
			}
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}

func colorIndex(cs []ColorName, name string) int {
	for i, c := range cs {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func meaningIndex(ms []Meaning, key string) int {
	for i, m := range ms {
		if m.Key == key {
			return i
		}
	}
	return -1
}
