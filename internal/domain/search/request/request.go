package request

import (
	"fmt"
	"strings"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultLimit   = 5
	MaxLimit       = 100
)

// Request is a validated search query.
type Request struct {
	query string
	owner string
	limit int
}

// New validates and normalizes search parameters.
// An empty owner means the search is not scoped to one user; the search
// service decides whether that is allowed. limit <= 0 selects DefaultLimit,
// larger values are clamped to MaxLimit.
func New(query, owner string, limit int) (Request, error) {
	if strings.TrimSpace(query) == "" {
		return Request{}, fmt.Errorf("query is required")
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Request{query: query, owner: owner, limit: limit}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Owner returns the owner scope, "" for unscoped searches.
func (r *Request) Owner() string { return r.owner }

// Scoped reports whether the search is limited to one owner.
func (r *Request) Scoped() bool { return r.owner != "" }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }
