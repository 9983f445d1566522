// Package entity recognizes domain identifiers written in several surface
// forms ("CaseId", "case id", "case_id", "Case-ID").
package entity

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule is a canonical multi-word identifier plus extra literal variants.
type Rule struct {
	Term     string   `yaml:"term"`
	Variants []string `yaml:"variants"`
}

// DefaultRules returns the stock rule set.
func DefaultRules() []Rule {
	return []Rule{{Term: "case id"}}
}

type matcher struct {
	term  string
	query []*regexp.Regexp
	text  []*regexp.Regexp
}

// Set is a compiled list of rules.
type Set struct {
	matchers []matcher
}

// Compile builds the query and text patterns for every rule.
//
// For a term made of words w1..wn the generated forms are:
// concatenated (w1w2), gapped (w1 w2; optional gap in queries, required in
// text) and joined by '-' or '_'. Variants are matched literally on word
// boundaries in both query and text.
func Compile(rules []Rule) (*Set, error) {
	s := &Set{matchers: make([]matcher, 0, len(rules))}
	for _, r := range rules {
		words := strings.Fields(strings.ToLower(r.Term))
		if len(words) == 0 {
			return nil, fmt.Errorf("entity rule: term is required")
		}
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = regexp.QuoteMeta(w)
		}

		forms := []string{strings.Join(quoted, "")}
		queryForms := append([]string{}, forms...)
		textForms := append([]string{}, forms...)
		if len(words) > 1 {
			queryForms = append(queryForms, strings.Join(quoted, `\s*`), strings.Join(quoted, `[_-]`))
			textForms = append(textForms, strings.Join(quoted, `\s+`), strings.Join(quoted, `[_-]`))
		}
		for _, v := range r.Variants {
			v = strings.TrimSpace(strings.ToLower(v))
			if v == "" {
				continue
			}
			queryForms = append(queryForms, regexp.QuoteMeta(v))
			textForms = append(textForms, regexp.QuoteMeta(v))
		}

		m := matcher{term: strings.Join(words, " ")}
		var err error
		if m.query, err = compileAll(queryForms); err != nil {
			return nil, fmt.Errorf("entity rule %q: %w", r.Term, err)
		}
		if m.text, err = compileAll(textForms); err != nil {
			return nil, fmt.Errorf("entity rule %q: %w", r.Term, err)
		}
		s.matchers = append(s.matchers, m)
	}
	return s, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(rules []Rule) *Set {
	s, err := Compile(rules)
	if err != nil {
		panic(err)
	}
	return s
}

// Match reports the canonical term of the first rule the query asks for that
// also appears in text in any surface form.
func (s *Set) Match(query, text string) (string, bool) {
	if s == nil || query == "" || text == "" {
		return "", false
	}
	q := strings.ToLower(query)
	t := strings.ToLower(text)
	for _, m := range s.matchers {
		if anyMatch(m.query, q) && anyMatch(m.text, t) {
			return m.term, true
		}
	}
	return "", false
}

// Len returns the number of compiled rules.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.matchers)
}

func compileAll(forms []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(forms))
	for _, f := range forms {
		re, err := regexp.Compile(`\b` + f + `\b`)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", f, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func anyMatch(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
