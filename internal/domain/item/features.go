package item

import (
	"fmt"
	"regexp"
	"strings"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Features holds the fields extracted from a screenshot by the ingestion pipeline.
// Text fields are nil when the extractor produced nothing.
type Features struct {
	ExtractedText     *string
	VisualDescription *string
	UIElements        []string
	DominantColors    []string
	ErrorStates       []string
	VisualPatterns    []string
	ColorContext      map[string]string
}

// Normalize returns a copy with empty lists and maps in place of nil ones.
func (f Features) Normalize() Features {
	return Features{
		ExtractedText:     f.ExtractedText,
		VisualDescription: f.VisualDescription,
		UIElements:        cloneStrings(f.UIElements),
		DominantColors:    cloneStrings(f.DominantColors),
		ErrorStates:       cloneStrings(f.ErrorStates),
		VisualPatterns:    cloneStrings(f.VisualPatterns),
		ColorContext:      cloneStringMap(f.ColorContext),
	}
}

// Validate checks that dominant colors are #rrggbb codes.
func (f Features) Validate() error {
	for _, c := range f.DominantColors {
		if !hexColorRegex.MatchString(c) {
			return fmt.Errorf("dominant color %q must be a #rrggbb hex code", c)
		}
	}
	return nil
}

// Text returns the extracted text or "" when absent.
func (f Features) Text() string {
	if f.ExtractedText == nil {
		return ""
	}
	return *f.ExtractedText
}

// Description returns the visual description or "" when absent.
func (f Features) Description() string {
	if f.VisualDescription == nil {
		return ""
	}
	return *f.VisualDescription
}

// IsHexColor reports whether s is a #rrggbb code.
func IsHexColor(s string) bool { return hexColorRegex.MatchString(strings.TrimSpace(s)) }

// StringPtr returns nil for blank strings and a pointer otherwise.
func StringPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func cloneStrings(in []string) []string {
	out := make([]string, 0, len(in))
	return append(out, in...)
}

func cloneStringMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
