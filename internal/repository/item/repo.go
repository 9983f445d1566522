package item

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/kailas-cloud/snapdex/internal/db"
	"github.com/kailas-cloud/snapdex/internal/domain"
	"github.com/kailas-cloud/snapdex/internal/domain/item"
)

// store is the consumer interface for items (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Repo implements usecase/item.Repository.
// Items are hashes; per-owner and global sets index their IDs.
type Repo struct {
	store  store
	prefix string
}

// New creates an item repository. prefix namespaces all keys.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Save creates or overwrites an item and indexes it.
func (r *Repo) Save(ctx context.Context, it item.Item) error {
	fields, err := itemToHash(it)
	if err != nil {
		return err
	}
	key := r.itemKey(it.ID())
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	if err := r.store.SAdd(ctx, r.ownerKey(it.Owner()), it.ID()); err != nil {
		return fmt.Errorf("index owner %s: %w", it.Owner(), err)
	}
	if err := r.store.SAdd(ctx, r.allKey(), it.ID()); err != nil {
		return fmt.Errorf("index item %s: %w", it.ID(), err)
	}
	return nil
}

// Get returns an item by ID.
func (r *Repo) Get(ctx context.Context, id string) (item.Item, error) {
	key := r.itemKey(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return item.Item{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return item.Item{}, domain.ErrItemNotFound
	}
	it, err := itemFromHash(m)
	if err != nil {
		return item.Item{}, fmt.Errorf("decode %s: %w", key, err)
	}
	return it, nil
}

// List returns the owner's items newest first. An empty owner lists all items.
func (r *Repo) List(ctx context.Context, owner string) ([]item.Item, error) {
	setKey := r.allKey()
	if owner != "" {
		setKey = r.ownerKey(owner)
	}
	ids, err := r.store.SMembers(ctx, setKey)
	if err != nil {
		return nil, fmt.Errorf("smembers %s: %w", setKey, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.itemKey(id)
	}
	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}

	items := make([]item.Item, 0, len(maps))
	for i, m := range maps {
		if len(m) == 0 {
			continue // deleted between SMEMBERS and HGETALL
		}
		it, err := itemFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		items = append(items, it)
	}

	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.UploadedAt().Equal(b.UploadedAt()) {
			return a.UploadedAt().After(b.UploadedAt())
		}
		return a.ID() < b.ID()
	})
	return items, nil
}

// Delete removes an item, its image and its index entries.
func (r *Repo) Delete(ctx context.Context, id string) error {
	it, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := r.store.Del(ctx, r.itemKey(id), r.imageKey(id)); err != nil {
		return fmt.Errorf("del %s: %w", id, err)
	}
	if err := r.store.SRem(ctx, r.ownerKey(it.Owner()), id); err != nil {
		return fmt.Errorf("unindex owner %s: %w", it.Owner(), err)
	}
	if err := r.store.SRem(ctx, r.allKey(), id); err != nil {
		return fmt.Errorf("unindex item %s: %w", id, err)
	}
	return nil
}

// SaveImage stores the raw image bytes of an item.
func (r *Repo) SaveImage(ctx context.Context, id string, data []byte) error {
	if err := r.store.Set(ctx, r.imageKey(id), data); err != nil {
		return fmt.Errorf("set image %s: %w", id, err)
	}
	return nil
}

// Image returns the raw image bytes of an item.
func (r *Repo) Image(ctx context.Context, id string) ([]byte, error) {
	data, err := r.store.Get(ctx, r.imageKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("image %s: %w", id, domain.ErrItemNotFound)
		}
		return nil, fmt.Errorf("get image %s: %w", id, err)
	}
	return data, nil
}

func (r *Repo) itemKey(id string) string     { return r.prefix + "item:" + id }
func (r *Repo) imageKey(id string) string    { return r.prefix + "item:" + id + ":image" }
func (r *Repo) ownerKey(owner string) string { return r.prefix + "owner:" + owner + ":items" }
func (r *Repo) allKey() string               { return r.prefix + "items" }
