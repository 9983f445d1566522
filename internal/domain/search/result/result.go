package result

import (
	"math"
	"unicode/utf8"

	"github.com/kailas-cloud/snapdex/internal/domain/item"
	"github.com/kailas-cloud/snapdex/internal/domain/score"
)

// ExcerptLength is the default number of runes kept by Excerpt.
const ExcerptLength = 200

// Result is a single search hit: the score record plus the item it scored.
type Result struct {
	record score.Record
	item   item.Item
}

// New creates a search result.
func New(record score.Record, it item.Item) Result {
	return Result{record: record, item: it}
}

// Record returns the score record.
func (r *Result) Record() score.Record { return r.record }

// Item returns the scored item.
func (r *Result) Item() item.Item { return r.item }

// ID returns the item identifier.
func (r *Result) ID() string { return r.record.ItemID() }

// Overall returns the overall confidence.
func (r *Result) Overall() float64 { return r.record.Overall() }

// Excerpt returns the extracted text cut to n runes, with "..." appended
// when it was cut.
func (r *Result) Excerpt(n int) string {
	text := r.item.Features().Text()
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n]) + "..."
}

// Round rounds a confidence to three decimal places for display.
func Round(v float64) float64 {
	return math.Round(v*1000) / 1000
}
