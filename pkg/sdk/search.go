package snapdex

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/snapdex/internal/domain"
	"github.com/kailas-cloud/snapdex/internal/domain/search/request"
)

// Search ranks the owner's completed screenshots against query and returns
// at most limit results, best first. limit <= 0 selects the default of 5.
func (c *Client) Search(ctx context.Context, owner, query string, limit int) (_ []SearchResult, err error) {
	start := time.Now()
	var n int
	defer func() { c.obs.observe("search", start, err, "owner", owner, "results", n) }()

	req, err := request.New(query, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("search: %w: %w", domain.ErrInvalidQuery, err)
	}
	results, err := c.searchSvc.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	out := make([]SearchResult, len(results))
	for i := range results {
		out[i] = fromInternalResult(&results[i])
	}
	n = len(out)
	c.obs.observeResults(n)
	return out, nil
}

// Explain scores one screenshot against query without storing anything.
func (c *Client) Explain(ctx context.Context, owner, query, id string) (_ Explanation, err error) {
	start := time.Now()
	defer func() { c.obs.observe("explain", start, err, "owner", owner) }()

	exp, err := c.searchSvc.Explain(ctx, query, owner, id)
	if err != nil {
		return Explanation{}, fmt.Errorf("explain: %w", err)
	}
	return fromInternalExplanation(id, query, exp, c.setName, c.threshold), nil
}

// Status counts the owner's screenshots per status. An empty owner counts all.
func (c *Client) Status(ctx context.Context, owner string) (_ StatusSummary, err error) {
	start := time.Now()
	defer func() { c.obs.observe("status", start, err, "owner", owner) }()

	st, err := c.itemSvc.Status(ctx, owner)
	if err != nil {
		return StatusSummary{}, fmt.Errorf("status: %w", err)
	}
	return fromInternalStatus(st), nil
}
