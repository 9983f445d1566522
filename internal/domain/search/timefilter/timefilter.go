// Package timefilter derives a time-range predicate from relative time phrases
// in a search query ("last week", "past 3 days", "yesterday").
package timefilter

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/snapdex/internal/domain/item"
)

// Field names the item timestamp a Filter applies to.
type Field string

// Filterable timestamps.
const (
	FieldUploaded     Field = "uploaded_at"
	FieldFileCreated  Field = "file_created_at"
	FieldFileModified Field = "file_modified_at"
)

const day = 24 * time.Hour

// maxLookback caps numeric windows so "last 99999999 days" cannot overflow.
const maxLookback = 100 * 365 * day

var (
	// Questions about when something happened are answered by content, not
	// by narrowing the candidate set.
	questionPatterns = compile(
		`\bwhen did i take\b`,
		`\bwhen was this taken\b`,
		`\bwhen did i capture\b`,
		`\bwhen did i screenshot\b`,
		`\bwhat time did i\b`,
		`\bwhen did i save\b`,
		`\bwhen did i get\b`,
	)

	numericDays  = regexp.MustCompile(`\b(?:last|past) (\d+) days?\b`)
	numericHours = regexp.MustCompile(`\b(?:last|past) (\d+) hours?\b`)

	createdWord  = regexp.MustCompile(`\bcreated\b`)
	modifiedWord = regexp.MustCompile(`\bmodified\b`)
)

// window is a lookback range [now-from, now-to]; to is 0 for windows ending now.
type window struct {
	pattern *regexp.Regexp
	from    time.Duration
	to      time.Duration
}

var phraseTable = []window{
	{regexp.MustCompile(`\b(recent|recently)\b`), 7 * day, 0},
	{regexp.MustCompile(`\btoday\b`), day, 0},
	{regexp.MustCompile(`\byesterday\b`), 2 * day, day},
	{regexp.MustCompile(`\blast week\b`), 14 * day, 7 * day},
	{regexp.MustCompile(`\bthis week\b`), 7 * day, 0},
	{regexp.MustCompile(`\bpast week\b`), 7 * day, 0},
	{regexp.MustCompile(`\blast month\b`), 60 * day, 30 * day},
	{regexp.MustCompile(`\bthis month\b`), 30 * day, 0},
	{regexp.MustCompile(`\bpast month\b`), 30 * day, 0},
}

// Filter is an inclusive time range over one item timestamp.
type Filter struct {
	Field Field
	From  time.Time
	To    time.Time
}

// Match reports whether the item's timestamp lies within the range.
// Items without the timestamp never match.
func (f *Filter) Match(it item.Item) bool {
	var ts time.Time
	switch f.Field {
	case FieldFileCreated:
		if p := it.File().CreatedAt; p != nil {
			ts = *p
		}
	case FieldFileModified:
		if p := it.File().ModifiedAt; p != nil {
			ts = *p
		}
	default:
		ts = it.UploadedAt()
	}
	if ts.IsZero() {
		return false
	}
	return !ts.Before(f.From) && !ts.After(f.To)
}

// Parser turns queries into filters relative to its clock.
type Parser struct {
	now func() time.Time
}

// NewParser creates a Parser. A nil clock defaults to time.Now.
func NewParser(now func() time.Time) *Parser {
	if now == nil {
		now = time.Now
	}
	return &Parser{now: now}
}

// Parse returns the filter implied by query, or nil when the query names no
// time range or asks when something happened.
//
// Numeric windows ("last 3 days", "past 12 hours") are checked before the
// phrase table. Mentioning "created" or "modified" moves the range onto the
// file's own timestamps instead of the upload time.
func (p *Parser) Parse(query string) *Filter {
	q := strings.ToLower(query)
	for _, re := range questionPatterns {
		if re.MatchString(q) {
			return nil
		}
	}

	now := p.now()
	field := fieldFor(q)

	if d, ok := numeric(numericDays, q, day); ok {
		return &Filter{Field: field, From: now.Add(-d), To: now}
	}
	if d, ok := numeric(numericHours, q, time.Hour); ok {
		return &Filter{Field: field, From: now.Add(-d), To: now}
	}
	for _, w := range phraseTable {
		if w.pattern.MatchString(q) {
			return &Filter{Field: field, From: now.Add(-w.from), To: now.Add(-w.to)}
		}
	}
	return nil
}

func fieldFor(q string) Field {
	switch {
	case createdWord.MatchString(q):
		return FieldFileCreated
	case modifiedWord.MatchString(q):
		return FieldFileModified
	default:
		return FieldUploaded
	}
}

func numeric(re *regexp.Regexp, q string, unit time.Duration) (time.Duration, bool) {
	m := re.FindStringSubmatch(q)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || n > int64(maxLookback/unit) {
		return maxLookback, true
	}
	return time.Duration(n) * unit, true
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}
