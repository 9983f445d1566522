package item

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/snapdex/internal/db"
	"github.com/kailas-cloud/snapdex/internal/db/badger"
	"github.com/kailas-cloud/snapdex/internal/domain"
	"github.com/kailas-cloud/snapdex/internal/domain/item"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// --- Save ---

func TestSave_WritesHashAndIndexes(t *testing.T) {
	repo, ms := newTestRepo(t)
	it := testItem(t, "shot-1", t0)

	var hashKey string
	var fields map[string]string
	ms.hsetFn = func(_ context.Context, key string, f map[string]string) error {
		hashKey, fields = key, f
		return nil
	}
	var indexed []string
	ms.saddFn = func(_ context.Context, key string, members ...string) error {
		indexed = append(indexed, key+"="+members[0])
		return nil
	}

	if err := repo.Save(context.Background(), it); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hashKey != "snapdex:item:shot-1" {
		t.Errorf("hash key = %q", hashKey)
	}
	if fields["status"] != "pending" || fields["owner"] != "alice" {
		t.Errorf("fields = %v", fields)
	}
	if fields["processed_at"] != "" {
		t.Errorf("processed_at must be empty, got %q", fields["processed_at"])
	}
	want := []string{"snapdex:owner:alice:items=shot-1", "snapdex:items=shot-1"}
	if len(indexed) != 2 || indexed[0] != want[0] || indexed[1] != want[1] {
		t.Errorf("indexed = %v, want %v", indexed, want)
	}
}

func TestSave_HSetError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hsetFn = func(_ context.Context, _ string, _ map[string]string) error {
		return errors.New("connection lost")
	}
	var saddCalled bool
	ms.saddFn = func(_ context.Context, _ string, _ ...string) error {
		saddCalled = true
		return nil
	}

	if err := repo.Save(context.Background(), testItem(t, "shot-1", t0)); err == nil {
		t.Fatal("expected error on HSET failure")
	}
	if saddCalled {
		t.Error("must not index an item that was not written")
	}
}

// --- Get ---

func TestGet_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestGet_CorruptFeatures(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hgetAllFn = func(_ context.Context, _ string) (map[string]string, error) {
		return map[string]string{"id": "x", "features_json": "{not json"}, nil
	}

	if _, err := repo.Get(context.Background(), "x"); err == nil {
		t.Fatal("expected decode error")
	}
}

// --- Image ---

func TestImage_NotFound(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return nil, db.ErrKeyNotFound
	}

	_, err := repo.Image(context.Background(), "shot-1")
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

// --- Round trip on an embedded store ---

func TestRoundTrip_Badger(t *testing.T) {
	ctx := context.Background()
	s, err := badger.Open(badger.Config{InMemory: true})
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	defer s.Close()
	repo := New(s, testPrefix)

	created := t0.Add(-48 * time.Hour)
	older, err := item.New("old", "alice", item.File{Name: "old.png", Size: 1, CreatedAt: &created}, t0)
	if err != nil {
		t.Fatal(err)
	}
	done, err := older.Complete(item.Features{
		ExtractedText:  item.StringPtr("Case ID: 12345"),
		UIElements:     []string{"Submit button"},
		DominantColors: []string{"#FF0000"},
		ColorContext:   map[string]string{"red": "error"},
	}, t0.Add(time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	newer := testItem(t, "new", t0.Add(time.Hour))
	other, err := item.New("bob-1", "bob", item.File{Name: "b.png"}, t0)
	if err != nil {
		t.Fatal(err)
	}

	for _, it := range []item.Item{done, newer, other} {
		if err := repo.Save(ctx, it); err != nil {
			t.Fatalf("Save(%s): %v", it.ID(), err)
		}
	}

	got, err := repo.Get(ctx, "old")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status() != item.StatusCompleted {
		t.Errorf("Status() = %q", got.Status())
	}
	if got.Features().Text() != "Case ID: 12345" {
		t.Errorf("Text() = %q", got.Features().Text())
	}
	if got.Features().VisualDescription != nil {
		t.Error("absent description must stay nil")
	}
	if got.Features().ColorContext["red"] != "error" {
		t.Errorf("ColorContext = %v", got.Features().ColorContext)
	}
	if got.File().CreatedAt == nil || !got.File().CreatedAt.Equal(created) {
		t.Errorf("File().CreatedAt = %v", got.File().CreatedAt)
	}
	if got.ProcessedAt() == nil || !got.ProcessedAt().Equal(t0.Add(time.Minute)) {
		t.Errorf("ProcessedAt() = %v", got.ProcessedAt())
	}

	list, err := repo.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID() != "new" || list[1].ID() != "old" {
		t.Fatalf("List(alice) = %v", ids(list))
	}
	all, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("List(all): %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List(all) = %v", ids(all))
	}

	if err := repo.SaveImage(ctx, "old", []byte("png")); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	if err := repo.Delete(ctx, "old"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "old"); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("Get after delete: %v", err)
	}
	if _, err := repo.Image(ctx, "old"); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("Image after delete: %v", err)
	}
	list, err = repo.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("List after delete = %v", ids(list))
	}
	if err := repo.Delete(ctx, "old"); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("second Delete: %v", err)
	}
}

func ids(items []item.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID()
	}
	return out
}
