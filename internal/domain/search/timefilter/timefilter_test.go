package timefilter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/snapdex/internal/domain/item"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func parser() *Parser { return NewParser(func() time.Time { return now }) }

func uploadedAgo(d time.Duration) item.Item {
	return item.Reconstruct("id", "alice", item.StatusCompleted, item.File{Name: "a.png"},
		item.Features{}, "", now.Add(-d), nil)
}

func TestParse_NoFilter(t *testing.T) {
	p := parser()
	for _, q := range []string{"", "login error", "red button", "lastly weekly"} {
		assert.Nil(t, p.Parse(q), q)
	}
}

func TestParse_TemporalQuestions(t *testing.T) {
	p := parser()
	for _, q := range []string{
		"when did I take picture of babies",
		"When was this taken? last week",
		"what time did I open the dashboard",
		"when did i save the invoice yesterday",
	} {
		assert.Nil(t, p.Parse(q), q)
	}
}

func TestParse_NumericDays(t *testing.T) {
	f := parser().Parse("errors from the last 3 days")
	require.NotNil(t, f)
	assert.Equal(t, FieldUploaded, f.Field)
	assert.Equal(t, now.Add(-3*day), f.From)
	assert.Equal(t, now, f.To)

	assert.True(t, f.Match(uploadedAgo(2*day)))
	assert.True(t, f.Match(uploadedAgo(3*day)))
	assert.False(t, f.Match(uploadedAgo(3*day+time.Second)))
	assert.False(t, f.Match(uploadedAgo(40*day)))
}

func TestParse_NumericHours(t *testing.T) {
	f := parser().Parse("past 1 hour")
	require.NotNil(t, f)
	assert.Equal(t, now.Add(-time.Hour), f.From)
	assert.Equal(t, now, f.To)
}

func TestParse_NumericBeforePhrase(t *testing.T) {
	f := parser().Parse("last 2 days this month")
	require.NotNil(t, f)
	assert.Equal(t, now.Add(-2*day), f.From)
}

func TestParse_HugeNumberIsCapped(t *testing.T) {
	f := parser().Parse("last 99999999999999999999 days")
	require.NotNil(t, f)
	assert.Equal(t, now.Add(-maxLookback), f.From)
}

func TestParse_PhraseTable(t *testing.T) {
	tests := []struct {
		query    string
		from, to time.Duration
	}{
		{"recent login", 7 * day, 0},
		{"recently", 7 * day, 0},
		{"today", day, 0},
		{"yesterday", 2 * day, day},
		{"last week", 14 * day, 7 * day},
		{"this week", 7 * day, 0},
		{"past week", 7 * day, 0},
		{"last month", 60 * day, 30 * day},
		{"this month", 30 * day, 0},
		{"past month", 30 * day, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			f := parser().Parse(tt.query)
			require.NotNil(t, f)
			assert.Equal(t, FieldUploaded, f.Field)
			assert.Equal(t, now.Add(-tt.from), f.From)
			assert.Equal(t, now.Add(-tt.to), f.To)
		})
	}
}

func TestMatch_TwoSidedWindow(t *testing.T) {
	f := parser().Parse("dashboard last week")
	require.NotNil(t, f)

	assert.False(t, f.Match(uploadedAgo(3*day)), "too recent")
	assert.True(t, f.Match(uploadedAgo(10*day)))
	assert.False(t, f.Match(uploadedAgo(20*day)), "too old")
}

func TestParse_FileTimestamps(t *testing.T) {
	created := now.Add(-12 * time.Hour)
	modified := now.Add(-10 * day)
	it := item.Reconstruct("id", "alice", item.StatusCompleted,
		item.File{Name: "a.png", CreatedAt: &created, ModifiedAt: &modified},
		item.Features{}, "", now.Add(-90*day), nil)

	f := parser().Parse("files created today")
	require.NotNil(t, f)
	assert.Equal(t, FieldFileCreated, f.Field)
	assert.True(t, f.Match(it))

	f = parser().Parse("modified last week")
	require.NotNil(t, f)
	assert.Equal(t, FieldFileModified, f.Field)
	assert.True(t, f.Match(it))

	f = parser().Parse("uploaded today")
	require.NotNil(t, f)
	assert.False(t, f.Match(it))
}

func TestMatch_MissingTimestamp(t *testing.T) {
	it := item.Reconstruct("id", "alice", item.StatusCompleted, item.File{Name: "a.png"},
		item.Features{}, "", now, nil)

	f := parser().Parse("created yesterday")
	require.NotNil(t, f)
	assert.False(t, f.Match(it))
}

func TestNewParser_DefaultClock(t *testing.T) {
	f := NewParser(nil).Parse("today")
	require.NotNil(t, f)
	assert.WithinDuration(t, time.Now(), f.To, time.Minute)
}
