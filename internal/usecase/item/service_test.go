package item

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/snapdex/internal/domain"
	domitem "github.com/kailas-cloud/snapdex/internal/domain/item"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// --- Mocks ---

type memRepo struct {
	items   map[string]domitem.Item
	images  map[string][]byte
	saveErr error
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[string]domitem.Item{}, images: map[string][]byte{}}
}

func (m *memRepo) Save(_ context.Context, it domitem.Item) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items[it.ID()] = it
	return nil
}

func (m *memRepo) Get(_ context.Context, id string) (domitem.Item, error) {
	it, ok := m.items[id]
	if !ok {
		return domitem.Item{}, domain.ErrItemNotFound
	}
	return it, nil
}

func (m *memRepo) List(_ context.Context, owner string) ([]domitem.Item, error) {
	var out []domitem.Item
	for _, it := range m.items {
		if owner == "" || it.Owner() == owner {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	delete(m.images, id)
	return nil
}

func (m *memRepo) SaveImage(_ context.Context, id string, data []byte) error {
	m.images[id] = data
	return nil
}

func (m *memRepo) Image(_ context.Context, id string) ([]byte, error) {
	data, ok := m.images[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return data, nil
}

type mockScores struct {
	deleted []string
	err     error
}

func (m *mockScores) DeleteByItem(_ context.Context, itemID string) error {
	m.deleted = append(m.deleted, itemID)
	return m.err
}

type mockQueue struct {
	ids []string
	err error
}

func (m *mockQueue) Enqueue(_ context.Context, id string) error {
	m.ids = append(m.ids, id)
	return m.err
}

func newTestService() (*Service, *memRepo, *mockScores, *mockQueue) {
	repo := newMemRepo()
	scores := &mockScores{}
	queue := &mockQueue{}
	n := 0
	svc := New(repo, scores).WithQueue(queue).WithClock(func() time.Time { return now })
	svc.newID = func() string {
		n++
		return "id-" + string(rune('0'+n))
	}
	return svc, repo, scores, queue
}

func png() domitem.File { return domitem.File{Name: "shot.png", MIMEType: "image/png"} }

// --- Create ---

func TestCreate_HappyPath(t *testing.T) {
	svc, repo, _, queue := newTestService()

	it, err := svc.Create(context.Background(), "alice", png(), []byte("fake-png"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.ID() != "id-1" || it.Status() != domitem.StatusPending {
		t.Errorf("got %s/%s", it.ID(), it.Status())
	}
	if it.File().Size != int64(len("fake-png")) {
		t.Errorf("File().Size = %d", it.File().Size)
	}
	if !it.UploadedAt().Equal(now) {
		t.Errorf("UploadedAt() = %v", it.UploadedAt())
	}
	if string(repo.images["id-1"]) != "fake-png" {
		t.Error("image not stored")
	}
	if len(queue.ids) != 1 || queue.ids[0] != "id-1" {
		t.Errorf("queued = %v", queue.ids)
	}
}

func TestCreate_Limits(t *testing.T) {
	svc, _, _, _ := newTestService()
	svc.WithMaxImageBytes(4)

	_, err := svc.Create(context.Background(), "alice", png(), []byte("12345"))
	if !errors.Is(err, domain.ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}

	_, err = svc.Create(context.Background(), "alice",
		domitem.File{Name: "notes.txt", MIMEType: "text/plain"}, []byte("hi"))
	if !errors.Is(err, domain.ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
}

func TestCreate_InvalidOwner(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), "", png(), []byte("x"))
	if !errors.Is(err, domain.ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema, got %v", err)
	}
}

func TestCreate_QueueFullKeepsItem(t *testing.T) {
	svc, repo, _, queue := newTestService()
	queue.err = errors.New("pool overload")

	it, err := svc.Create(context.Background(), "alice", png(), []byte("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.items[it.ID()]; !ok {
		t.Error("item must stay stored as pending")
	}
}

// --- Import ---

func TestImport_Completes(t *testing.T) {
	svc, _, _, queue := newTestService()

	it, err := svc.Import(context.Background(), "alice", "shot-7", png(),
		domitem.Features{ExtractedText: domitem.StringPtr("hello")}, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.ID() != "shot-7" || !it.IsSearchable() {
		t.Errorf("got %s/%s", it.ID(), it.Status())
	}
	if len(queue.ids) != 0 {
		t.Error("imported items are not analyzed")
	}
}

func TestImport_InvalidColor(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Import(context.Background(), "alice", "", png(),
		domitem.Features{DominantColors: []string{"red"}}, time.Time{})
	if !errors.Is(err, domain.ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema, got %v", err)
	}
}

// --- Get / Delete ---

func TestGet_OtherOwnerHidden(t *testing.T) {
	svc, _, _, _ := newTestService()
	it, err := svc.Create(context.Background(), "alice", png(), []byte("x"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Get(context.Background(), "bob", it.ID()); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound for another owner, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "", it.ID()); err != nil {
		t.Errorf("unscoped Get should succeed: %v", err)
	}
}

func TestDelete_Cascades(t *testing.T) {
	svc, repo, scores, _ := newTestService()
	it, err := svc.Create(context.Background(), "alice", png(), []byte("x"))
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(context.Background(), "alice", it.ID()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scores.deleted) != 1 || scores.deleted[0] != it.ID() {
		t.Errorf("scores deleted = %v", scores.deleted)
	}
	if _, ok := repo.items[it.ID()]; ok {
		t.Error("item still stored")
	}
}

func TestDelete_ScoreErrorKeepsItem(t *testing.T) {
	svc, repo, scores, _ := newTestService()
	it, err := svc.Create(context.Background(), "alice", png(), []byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	scores.err = errors.New("connection lost")

	if err := svc.Delete(context.Background(), "alice", it.ID()); err == nil {
		t.Fatal("expected error")
	}
	if _, ok := repo.items[it.ID()]; !ok {
		t.Error("item must survive a failed cascade")
	}
}

// --- Lifecycle ---

func TestLifecycle_ProcessFailReprocess(t *testing.T) {
	svc, _, _, queue := newTestService()
	ctx := context.Background()
	it, err := svc.Create(ctx, "alice", png(), []byte("x"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.MarkProcessing(ctx, it.ID()); err != nil {
		t.Fatalf("MarkProcessing: %v", err)
	}
	failed, err := svc.Fail(ctx, it.ID(), "provider down")
	if err != nil {
		t.Fatalf("Fail: %v", err)
	}
	if failed.Status() != domitem.StatusFailed || failed.ProcessingError() != "provider down" {
		t.Errorf("got %s/%q", failed.Status(), failed.ProcessingError())
	}

	if _, err := svc.Complete(ctx, it.ID(), domitem.Features{}); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("completing a failed item: expected ErrInvalidState, got %v", err)
	}

	reset, err := svc.Reprocess(ctx, "alice", it.ID())
	if err != nil {
		t.Fatalf("Reprocess: %v", err)
	}
	if reset.Status() != domitem.StatusPending || reset.ProcessingError() != "" || reset.ProcessedAt() != nil {
		t.Errorf("reset item = %s/%q/%v", reset.Status(), reset.ProcessingError(), reset.ProcessedAt())
	}
	if len(queue.ids) != 2 {
		t.Errorf("expected upload and reprocess to enqueue, got %v", queue.ids)
	}

	done, err := svc.Complete(ctx, it.ID(), domitem.Features{ExtractedText: domitem.StringPtr("ok")})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !done.IsSearchable() || done.ProcessedAt() == nil {
		t.Errorf("completed item = %s/%v", done.Status(), done.ProcessedAt())
	}
}

func TestReprocess_NoQueue(t *testing.T) {
	svc := New(newMemRepo(), &mockScores{})

	if _, err := svc.Reprocess(context.Background(), "alice", "x"); !errors.Is(err, domain.ErrAnalyzerNotConfigured) {
		t.Fatalf("expected ErrAnalyzerNotConfigured, got %v", err)
	}
}

func TestReprocessFailed_OnlyFailed(t *testing.T) {
	svc, repo, _, queue := newTestService()
	ctx := context.Background()
	repo.items["f1"] = domitem.Reconstruct("f1", "alice", domitem.StatusFailed, png(), domitem.Features{}, "x", now, nil)
	repo.items["f2"] = domitem.Reconstruct("f2", "alice", domitem.StatusFailed, png(), domitem.Features{}, "x", now, nil)
	repo.items["ok"] = domitem.Reconstruct("ok", "alice", domitem.StatusCompleted, png(), domitem.Features{}, "", now, nil)
	repo.items["bob"] = domitem.Reconstruct("bob", "bob", domitem.StatusFailed, png(), domitem.Features{}, "x", now, nil)

	n, err := svc.ReprocessFailed(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 || len(queue.ids) != 2 {
		t.Errorf("requeued %d (%v), want 2", n, queue.ids)
	}
	if repo.items["bob"].Status() != domitem.StatusFailed {
		t.Error("other owners must not be touched")
	}
}

// --- Status ---

func TestStatus_CountsAndRecent(t *testing.T) {
	svc, repo, _, _ := newTestService()
	for i := range RecentLimit + 5 {
		id := "c" + string(rune('a'+i))
		repo.items[id] = domitem.Reconstruct(id, "alice", domitem.StatusCompleted, png(), domitem.Features{}, "", now, nil)
	}
	repo.items["p"] = domitem.Reconstruct("p", "alice", domitem.StatusPending, png(), domitem.Features{}, "", now, nil)

	st, err := svc.Status(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Total != RecentLimit+6 {
		t.Errorf("Total = %d", st.Total)
	}
	if st.Counts[domitem.StatusCompleted] != RecentLimit+5 || st.Counts[domitem.StatusPending] != 1 {
		t.Errorf("Counts = %v", st.Counts)
	}
	if _, ok := st.Counts[domitem.StatusFailed]; !ok {
		t.Error("every status must be present in Counts")
	}
	if len(st.Recent) != RecentLimit {
		t.Errorf("len(Recent) = %d", len(st.Recent))
	}
}
