package badger

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/snapdex/internal/db"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(Config{})
	require.Error(t, err)
}

func TestOpen_OnDisk(t *testing.T) {
	s, err := Open(Config{Path: t.TempDir()})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.WaitForReady(context.Background(), 0))
}

func TestPing_AfterClose(t *testing.T) {
	s, err := Open(Config{InMemory: true})
	require.NoError(t, err)

	require.NoError(t, s.Ping(context.Background()))
	s.Close()
	assert.Error(t, s.Ping(context.Background()))
}

func TestHash_MergeAndRead(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.HSet(ctx, "item:1", map[string]string{"a": "1", "b": "2"}))
	require.NoError(t, s.HSet(ctx, "item:1", map[string]string{"b": "3"}))

	m, err := s.HGetAll(ctx, "item:1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "3"}, m)

	missing, err := s.HGetAll(ctx, "item:2")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestHash_ConcurrentMerge(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	const writers = 32
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f := strconv.Itoa(i)
			errs[i] = s.HSet(ctx, "item:1", map[string]string{"f" + f: f, "last": f})
		}()
	}
	wg.Wait()
	for i, err := range errs {
		require.NoError(t, err, "writer %d", i)
	}

	m, err := s.HGetAll(ctx, "item:1")
	require.NoError(t, err)
	assert.Len(t, m, writers+1, "every writer's field survives the merge")
	assert.Contains(t, m, "last")
}

func TestHash_Multi(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.HSetMulti(ctx, []db.HashSetItem{
		{Key: "k1", Fields: map[string]string{"f": "a"}},
		{Key: "k2", Fields: map[string]string{"f": "b"}},
	}))

	out, err := s.HGetAllMulti(ctx, []string{"k1", "missing", "k2"})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0]["f"])
	assert.Empty(t, out[1])
	assert.Equal(t, "b", out[2]["f"])
}

func TestKV_GetSet(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.Get(ctx, "blob")
	require.ErrorIs(t, err, db.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "blob", []byte{0x89, 'P', 'N', 'G'}))
	data, err := s.Get(ctx, "blob")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
}

func TestSet_Members(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.SAdd(ctx, "owner:alice", "b", "a", "a"))
	require.NoError(t, s.SAdd(ctx, "owner:alice:x", "z"))

	members, err := s.SMembers(ctx, "owner:alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, members)

	require.NoError(t, s.SRem(ctx, "owner:alice", "a"))
	members, err = s.SMembers(ctx, "owner:alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, members)
}

func TestDel_AllTypes(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.HSet(ctx, "h", map[string]string{"f": "v"}))
	require.NoError(t, s.Set(ctx, "v", []byte("x")))
	require.NoError(t, s.SAdd(ctx, "s", "m1", "m2"))

	for _, key := range []string{"h", "v", "s"} {
		ok, err := s.Exists(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok, key)
	}

	require.NoError(t, s.Del(ctx, "h", "v", "s", "never-existed"))

	for _, key := range []string{"h", "v", "s"} {
		ok, err := s.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}
}
