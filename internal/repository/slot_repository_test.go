package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *SlotRepository {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "nested", "planly.db"), false)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewSlotRepository(db)
}

func TestSlotRepository_GetMissing(t *testing.T) {
	repo := newTestDB(t)

	v, ok, err := repo.Get(context.Background(), "store")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSlotRepository_SetOverwrites(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "store", `{"page":"home"}`))
	require.NoError(t, repo.Set(ctx, "store", `{"page":"physics"}`))
	require.NoError(t, repo.Set(ctx, "other", `x`))

	v, ok, err := repo.Get(ctx, "store")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"page":"physics"}`, v)

	v, ok, err = repo.Get(ctx, "other")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestSlotRepository_EmptyKeyMatchesNothing(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, "other", "secret"))

	v, ok, err := repo.Get(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSqliteDir(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"planly.db", ""},
		{":memory:", ""},
		{"file::memory:?cache=shared&mode=memory", ""},
		{"/var/lib/planly/planly.db", "/var/lib/planly"},
		{"file:/tmp/p/planly.db?_busy_timeout=5000", "/tmp/p"},
		{"data/planly.db", "data"},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDir(tt.dsn))
		})
	}
}

func TestFileSlots(t *testing.T) {
	dir := t.TempDir()
	slots, err := NewFileSlots(filepath.Join(dir, "data"))
	require.NoError(t, err)
	ctx := context.Background()

	_, ok, err := slots.Get(ctx, "store")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, slots.Set(ctx, "store", "one"))
	require.NoError(t, slots.Set(ctx, "store", "two"))

	v, ok, err := slots.Get(ctx, "store")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", v)
	assert.FileExists(t, filepath.Join(dir, "data", "store.json"))

	matches, err := filepath.Glob(filepath.Join(dir, "data", "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFileSlots_RejectsPathKeys(t *testing.T) {
	slots, err := NewFileSlots(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, slots.Set(context.Background(), "../escape", "x"))
	_, _, err = slots.Get(context.Background(), "a/b")
	assert.Error(t, err)
}

func TestMemorySlots(t *testing.T) {
	slots := NewMemorySlots()
	ctx := context.Background()

	_, ok, _ := slots.Get(ctx, "store")
	assert.False(t, ok)

	require.NoError(t, slots.Set(ctx, "store", "v"))
	v, ok, err := slots.Get(ctx, "store")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
