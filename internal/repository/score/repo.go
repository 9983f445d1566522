package score

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/snapdex/internal/domain"
	"github.com/kailas-cloud/snapdex/internal/domain/score"
)

// store is the consumer interface for score records (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Repo implements the score store used by search and item deletion.
// Records are hashes keyed by (item, query hash); a per-item set tracks
// them for cascade deletes.
type Repo struct {
	store  store
	prefix string
}

// New creates a score repository. prefix namespaces all keys.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Upsert writes the record, replacing any record for the same (item, query).
func (r *Repo) Upsert(ctx context.Context, rec score.Record) error {
	fields, err := recordToHash(rec)
	if err != nil {
		return err
	}
	key := r.recordKey(rec.Key())
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	if err := r.store.SAdd(ctx, r.itemIndexKey(rec.ItemID()), rec.Key()); err != nil {
		return fmt.Errorf("index score %s: %w", key, err)
	}
	return nil
}

// Get returns the record for (itemID, query).
func (r *Repo) Get(ctx context.Context, itemID, query string) (score.Record, error) {
	key := r.recordKey(score.Key(itemID, query))
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return score.Record{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return score.Record{}, fmt.Errorf("score %s: %w", key, domain.ErrScoreNotFound)
	}
	return recordFromHash(m)
}

// ListByItem returns all records of an item in no particular order.
func (r *Repo) ListByItem(ctx context.Context, itemID string) ([]score.Record, error) {
	keys, err := r.recordKeys(ctx, itemID)
	if err != nil || len(keys) == 0 {
		return nil, err
	}
	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load scores: %w", err)
	}
	out := make([]score.Record, 0, len(maps))
	for i, m := range maps {
		if len(m) == 0 {
			continue
		}
		rec, err := recordFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// DeleteByItem removes every record of an item and its index.
func (r *Repo) DeleteByItem(ctx context.Context, itemID string) error {
	keys, err := r.recordKeys(ctx, itemID)
	if err != nil {
		return err
	}
	keys = append(keys, r.itemIndexKey(itemID))
	if err := r.store.Del(ctx, keys...); err != nil {
		return fmt.Errorf("del scores of %s: %w", itemID, err)
	}
	return nil
}

func (r *Repo) recordKeys(ctx context.Context, itemID string) ([]string, error) {
	idx := r.itemIndexKey(itemID)
	members, err := r.store.SMembers(ctx, idx)
	if err != nil {
		return nil, fmt.Errorf("smembers %s: %w", idx, err)
	}
	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = r.recordKey(m)
	}
	return keys, nil
}

func (r *Repo) recordKey(k string) string         { return r.prefix + "score:" + k }
func (r *Repo) itemIndexKey(itemID string) string { return r.prefix + "item:" + itemID + ":scores" }
