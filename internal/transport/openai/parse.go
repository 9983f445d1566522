package openai

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/kailas-cloud/snapdex/internal/domain/item"
)

var errNoJSON = errors.New("no JSON object in response")

// analysisDoc is the JSON document the model is asked to produce.
type analysisDoc struct {
	ExtractedText     string            `json:"extracted_text"`
	VisualDescription string            `json:"visual_description"`
	UIElements        []string          `json:"ui_elements"`
	DominantColors    []string          `json:"dominant_colors"`
	ErrorStates       []string          `json:"error_states"`
	VisualPatterns    []string          `json:"visual_patterns"`
	ColorContext      map[string]string `json:"color_context"`
}

// parseJSON decodes the span between the first '{' and the last '}'.
func parseJSON(text string) (item.Features, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return item.Features{}, errNoJSON
	}
	var doc analysisDoc
	if err := json.Unmarshal([]byte(text[start:end+1]), &doc); err != nil {
		return item.Features{}, err
	}
	return doc.features(), nil
}

func (d analysisDoc) features() item.Features {
	f := item.Features{
		ExtractedText:     item.StringPtr(strings.TrimSpace(d.ExtractedText)),
		VisualDescription: item.StringPtr(strings.TrimSpace(d.VisualDescription)),
		UIElements:        nonBlank(d.UIElements),
		DominantColors:    hexColors(d.DominantColors),
		ErrorStates:       nonBlank(d.ErrorStates),
		VisualPatterns:    nonBlank(d.VisualPatterns),
	}
	if len(d.ColorContext) > 0 {
		f.ColorContext = make(map[string]string, len(d.ColorContext))
		for k, v := range d.ColorContext {
			k, v = strings.TrimSpace(k), strings.TrimSpace(v)
			if k != "" && v != "" {
				f.ColorContext[k] = v
			}
		}
	}
	return f
}

type section int

const (
	sectionNone section = iota
	sectionText
	sectionDescription
	sectionUI
	sectionColors
	sectionErrors
	sectionPatterns
	sectionColorContext
)

// sectionHeaders is checked in order; the first phrase found in a line
// starts that section.
var sectionHeaders = []struct {
	phrase  string
	section section
}{
	{"extracted text", sectionText},
	{"visual description", sectionDescription},
	{"ui elements", sectionUI},
	{"dominant colors", sectionColors},
	{"error states", sectionErrors},
	{"error and state", sectionErrors},
	{"visual patterns", sectionPatterns},
	{"color context", sectionColorContext},
	{"visual context", sectionColorContext},
}

var (
	hexColorRe     = regexp.MustCompile(`#[0-9a-fA-F]{6}`)
	colorContextRe = regexp.MustCompile(`(#[0-9a-fA-F]{6}|\b\w+\b)\s*[:=]\s*(.+)`)
)

// parseSections reads a free-form answer organized under section headers.
// Lists take only "-" or "*" bullets.
func parseSections(text string) item.Features {
	var (
		current     section
		extracted   []string
		description []string
		f           item.Features
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if s := headerOf(line); s != sectionNone {
			current = s
			continue
		}
		switch current {
		case sectionText:
			extracted = append(extracted, line)
		case sectionDescription:
			description = append(description, line)
		case sectionUI:
			if b, ok := bullet(line); ok {
				f.UIElements = append(f.UIElements, strings.ToLower(b))
			}
		case sectionColors:
			f.DominantColors = append(f.DominantColors, hexColors(hexColorRe.FindAllString(line, -1))...)
		case sectionErrors:
			if b, ok := bullet(line); ok {
				f.ErrorStates = append(f.ErrorStates, b)
			}
		case sectionPatterns:
			if b, ok := bullet(line); ok {
				f.VisualPatterns = append(f.VisualPatterns, b)
			}
		case sectionColorContext:
			if m := colorContextRe.FindStringSubmatch(line); m != nil {
				if f.ColorContext == nil {
					f.ColorContext = map[string]string{}
				}
				f.ColorContext[strings.TrimSpace(m[1])] = strings.TrimSpace(m[2])
			}
		case sectionNone:
		}
	}
	f.ExtractedText = item.StringPtr(strings.Join(extracted, " "))
	f.VisualDescription = item.StringPtr(strings.Join(description, " "))
	return f
}

func headerOf(line string) section {
	lower := strings.ToLower(line)
	for _, h := range sectionHeaders {
		if strings.Contains(lower, h.phrase) {
			return h.section
		}
	}
	return sectionNone
}

func bullet(line string) (string, bool) {
	if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "*") {
		return "", false
	}
	b := strings.TrimSpace(strings.TrimLeft(line, "-* "))
	return b, b != ""
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// hexColors keeps valid #rrggbb codes, lowercased.
func hexColors(in []string) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		if item.IsHexColor(c) {
			out = append(out, strings.ToLower(strings.TrimSpace(c)))
		}
	}
	return out
}
