package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/extstorage/internal/models"
)

func TestSet_CreatesRecord(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.Set(ctx, "ext-id", models.JSONMap{"key1": "v1"}))

	record, err := s.GetLocalRecord(ctx, "ext-id")
	require.NoError(t, err)
	assert.Equal(t, models.JSONMap{"key1": "v1"}, record.Data)
	assert.Equal(t, models.SyncStatusNew, record.SyncStatus)
	assert.Equal(t, int64(1), record.ChangeCounter)
}

func TestSet_MergesAndCounts(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.Set(ctx, "ext-id", models.JSONMap{"key1": "v1", "key2": "v2"}))
	require.NoError(t, s.Set(ctx, "ext-id", models.JSONMap{"key2": "changed", "key3": float64(3)}))

	got, err := s.Get(ctx, "ext-id", nil)
	require.NoError(t, err)
	assert.Equal(t, models.JSONMap{"key1": "v1", "key2": "changed", "key3": float64(3)}, got)

	record, err := s.GetLocalRecord(ctx, "ext-id")
	require.NoError(t, err)
	assert.Equal(t, int64(2), record.ChangeCounter)
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.Set(ctx, "ext-id", models.JSONMap{"a": "1", "b": "2"}))

	tests := []struct {
		want  models.JSONMap
		name  string
		extID string
		keys  []string
	}{
		{name: "all keys", extID: "ext-id", want: models.JSONMap{"a": "1", "b": "2"}},
		{name: "selected keys", extID: "ext-id", keys: []string{"a", "missing"}, want: models.JSONMap{"a": "1"}},
		{name: "missing record", extID: "other", want: models.JSONMap{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Get(ctx, tt.extID, tt.keys)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.Set(ctx, "ext-id", models.JSONMap{"a": "1", "b": "2"}))

	// Удаление несуществующего ключа не меняет счётчик
	require.NoError(t, s.Remove(ctx, "ext-id", []string{"missing"}))
	record, err := s.GetLocalRecord(ctx, "ext-id")
	require.NoError(t, err)
	assert.Equal(t, int64(1), record.ChangeCounter)

	require.NoError(t, s.Remove(ctx, "ext-id", []string{"a"}))
	record, err = s.GetLocalRecord(ctx, "ext-id")
	require.NoError(t, err)
	assert.Equal(t, models.JSONMap{"b": "2"}, record.Data)
	assert.Equal(t, int64(2), record.ChangeCounter)

	// Для отсутствующей записи ничего не создаётся
	require.NoError(t, s.Remove(ctx, "other", []string{"a"}))
	assert.Equal(t, 1, countRows(t, s, "extension_data"))
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.Set(ctx, "ext-id", models.JSONMap{"a": "1"}))
	require.NoError(t, s.Clear(ctx, "ext-id"))
	// Повторная очистка tombstone ничего не меняет
	require.NoError(t, s.Clear(ctx, "ext-id"))

	record, err := s.GetLocalRecord(ctx, "ext-id")
	require.NoError(t, err)
	assert.Nil(t, record.Data)
	assert.Equal(t, int64(2), record.ChangeCounter)

	got, err := s.Get(ctx, "ext-id", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetBytesInUse(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	size, err := s.GetBytesInUse(ctx, "ext-id")
	require.NoError(t, err)
	assert.Equal(t, int64(0), size)

	require.NoError(t, s.Set(ctx, "ext-id", models.JSONMap{"a": "1"}))
	size, err = s.GetBytesInUse(ctx, "ext-id")
	require.NoError(t, err)
	assert.Equal(t, int64(len(`{"a":"1"}`)), size)

	require.NoError(t, s.Clear(ctx, "ext-id"))
	size, err = s.GetBytesInUse(ctx, "ext-id")
	require.NoError(t, err)
	assert.Equal(t, int64(0), size)
}
