package analysiscache

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/snapdex/internal/db"
	"github.com/kailas-cloud/snapdex/internal/domain/item"
)

type mockAnalyzer struct {
	result item.Features
	err    error
	calls  int
}

func (m *mockAnalyzer) Analyze(_ context.Context, _ []byte, _ string) (item.Features, error) {
	m.calls++
	return m.result, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func newTestCachedAnalyzer(t *testing.T, inner *mockAnalyzer) (*CachedAnalyzer, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	ca := New(inner, ms, "snapdex:analysis:gpt-4o:", nil, zap.NewNop())
	return ca, ms
}
