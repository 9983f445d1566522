package snapdex

import (
	"context"
	"sync"
	"time"

	domitem "github.com/kailas-cloud/snapdex/internal/domain/item"
	"github.com/kailas-cloud/snapdex/internal/domain/search/request"
	"github.com/kailas-cloud/snapdex/internal/domain/search/result"
	itemuc "github.com/kailas-cloud/snapdex/internal/usecase/item"
	searchuc "github.com/kailas-cloud/snapdex/internal/usecase/search"
)

// --- Analyzer mock ---

type fakeAnalyzer struct {
	mu       sync.Mutex
	calls    int
	features Features
	err      error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ []byte, _ string) (Features, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.features, f.err
}

// --- itemUseCase mock ---

type mockItemUC struct {
	createFn          func(ctx context.Context, owner string, file domitem.File, image []byte) (domitem.Item, error)
	importFn          func(ctx context.Context, owner, id string, file domitem.File, f domitem.Features, at time.Time) (domitem.Item, error)
	getFn             func(ctx context.Context, owner, id string) (domitem.Item, error)
	listFn            func(ctx context.Context, owner string) ([]domitem.Item, error)
	deleteFn          func(ctx context.Context, owner, id string) error
	reprocessFn       func(ctx context.Context, owner, id string) (domitem.Item, error)
	reprocessFailedFn func(ctx context.Context, owner string) (int, error)
	statusFn          func(ctx context.Context, owner string) (itemuc.Status, error)
}

func (m *mockItemUC) Create(ctx context.Context, owner string, file domitem.File, image []byte) (domitem.Item, error) {
	return m.createFn(ctx, owner, file, image)
}

func (m *mockItemUC) Import(
	ctx context.Context, owner, id string, file domitem.File, f domitem.Features, at time.Time,
) (domitem.Item, error) {
	return m.importFn(ctx, owner, id, file, f, at)
}

func (m *mockItemUC) Get(ctx context.Context, owner, id string) (domitem.Item, error) {
	return m.getFn(ctx, owner, id)
}

func (m *mockItemUC) List(ctx context.Context, owner string) ([]domitem.Item, error) {
	return m.listFn(ctx, owner)
}

func (m *mockItemUC) Delete(ctx context.Context, owner, id string) error {
	return m.deleteFn(ctx, owner, id)
}

func (m *mockItemUC) Reprocess(ctx context.Context, owner, id string) (domitem.Item, error) {
	return m.reprocessFn(ctx, owner, id)
}

func (m *mockItemUC) ReprocessFailed(ctx context.Context, owner string) (int, error) {
	return m.reprocessFailedFn(ctx, owner)
}

func (m *mockItemUC) Status(ctx context.Context, owner string) (itemuc.Status, error) {
	return m.statusFn(ctx, owner)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn  func(ctx context.Context, req request.Request) ([]result.Result, error)
	explainFn func(ctx context.Context, query, owner, itemID string) (searchuc.Explanation, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req request.Request) ([]result.Result, error) {
	return m.searchFn(ctx, req)
}

func (m *mockSearchUC) Explain(ctx context.Context, query, owner, itemID string) (searchuc.Explanation, error) {
	return m.explainFn(ctx, query, owner, itemID)
}
