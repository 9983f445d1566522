package score

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/kailas-cloud/snapdex/internal/domain/search/signal"
)

// Record is the persisted outcome of scoring one item against one query.
// (ItemID, Query) is the natural key.
type Record struct {
	itemID   string
	owner    string
	query    string
	signals  map[signal.Name]float64
	overall  float64
	matches  map[signal.Name][]string
	scoredAt time.Time
}

// New creates a Record from an evaluation breakdown.
func New(itemID, owner, query string, b signal.Breakdown, scoredAt time.Time) Record {
	return Record{
		itemID:   itemID,
		owner:    owner,
		query:    query,
		signals:  b.Values(),
		overall:  b.Overall,
		matches:  cloneMatches(b.Matches),
		scoredAt: scoredAt,
	}
}

// Reconstruct creates a Record without validation (storage hydration).
func Reconstruct(
	itemID, owner, query string, signals map[signal.Name]float64, overall float64,
	matches map[signal.Name][]string, scoredAt time.Time,
) Record {
	return Record{
		itemID: itemID, owner: owner, query: query, signals: signals, overall: overall,
		matches: matches, scoredAt: scoredAt,
	}
}

// ItemID returns the scored item identifier.
func (r Record) ItemID() string { return r.itemID }

// Owner returns the owner of the scored item.
func (r Record) Owner() string { return r.owner }

// Query returns the raw query text.
func (r Record) Query() string { return r.query }

// Signals returns the per-signal confidences.
func (r Record) Signals() map[signal.Name]float64 { return r.signals }

// Signal returns one signal's confidence, 0 if it was not computed.
func (r Record) Signal(n signal.Name) float64 { return r.signals[n] }

// Overall returns the weighted overall confidence.
func (r Record) Overall() float64 { return r.overall }

// Matches returns the matched item values per signal.
func (r Record) Matches() map[signal.Name][]string { return r.matches }

// ScoredAt returns when the record was computed.
func (r Record) ScoredAt() time.Time { return r.scoredAt }

// Key returns the natural key of the record.
func (r Record) Key() string { return Key(r.itemID, r.query) }

// Key builds the storage key for (itemID, query). The query is hashed so
// arbitrary text fits in a key.
func Key(itemID, query string) string {
	return itemID + ":" + QueryHash(query)
}

// QueryHash returns a stable hex digest of the query text.
func QueryHash(query string) string {
	sum := sha256.Sum256([]byte(query))
	return hex.EncodeToString(sum[:16])
}

// Less orders records by overall confidence descending, then most recent
// first, then by item ID.
func Less(a, b Record) bool {
	if a.overall != b.overall {
		return a.overall > b.overall
	}
	if !a.scoredAt.Equal(b.scoredAt) {
		return a.scoredAt.After(b.scoredAt)
	}
	return strings.Compare(a.itemID, b.itemID) < 0
}

func cloneMatches(in map[signal.Name][]string) map[signal.Name][]string {
	out := make(map[signal.Name][]string, len(in))
	for k, v := range in {
		out[k] = append([]string(nil), v...)
	}
	return out
}
