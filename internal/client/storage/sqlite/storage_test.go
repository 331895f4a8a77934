package sqlite

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/extstorage/internal/client/storage"
)

// setupTestStorage создает in-memory хранилище для тестов
func setupTestStorage(t *testing.T) (*Storage, func()) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	s, err := New(context.Background(), ":memory:", logger)
	require.NoError(t, err)

	cleanup := func() {
		require.NoError(t, s.Close())
	}
	return s, cleanup
}

func countRows(t *testing.T, s *Storage, table string) int {
	t.Helper()

	var n int
	err := s.Read(context.Background(), func(q storage.Querier) error {
		return q.QueryRowContext(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	})
	require.NoError(t, err)
	return n
}

func TestNew_CreatesTables(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	for _, table := range []string{"extension_data", "extension_data_mirror", "temp.extension_data_staging"} {
		assert.Equal(t, 0, countRows(t, s, table), table)
	}
}

func TestNew_ReopenFile(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "storage.db")

	s, err := New(ctx, dbPath, nil)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "ext-id", map[string]any{"foo": "bar"}))
	require.NoError(t, s.Close())

	// Миграции повторно не ломаются, данные сохраняются
	s, err = New(ctx, dbPath, nil)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, "ext-id", nil)
	require.NoError(t, err)
	assert.Equal(t, "bar", got["foo"])
}

func TestTransaction_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	wantErr := errors.New("boom")
	err := s.Transaction(ctx, func(q storage.Querier) error {
		_, err := q.ExecContext(ctx, `INSERT INTO extension_data (ext_id, data) VALUES ('ext', '{}')`)
		require.NoError(t, err)
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 0, countRows(t, s, "extension_data"))
}

func TestTransaction_Commit(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	err := s.Transaction(ctx, func(q storage.Querier) error {
		_, err := q.ExecContext(ctx, `INSERT INTO temp.extension_data_staging (guid, ext_id, data, server_modified) VALUES ('g', 'ext', NULL, 1)`)
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 1, countRows(t, s, "temp.extension_data_staging"))
}

func TestStorage_Closed(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, ":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	// Повторное закрытие безопасно
	require.NoError(t, s.Close())

	err = s.Transaction(ctx, func(q storage.Querier) error { return nil })
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = s.Read(ctx, func(q storage.Querier) error { return nil })
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestGetRecords_NotFound(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.GetLocalRecord(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)

	_, err = s.GetMirrorRecord(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestGetMirrorRecord_InvalidJSON(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	err := s.Transaction(ctx, func(q storage.Querier) error {
		_, err := q.ExecContext(ctx, `INSERT INTO extension_data_mirror (guid, ext_id, server_modified, data) VALUES ('g', 'ext', 5, '[1,2]')`)
		return err
	})
	require.NoError(t, err)

	mirror, err := s.GetMirrorRecord(ctx, "ext")
	require.NoError(t, err)
	assert.Equal(t, "g", mirror.GUID)
	assert.Equal(t, int64(5), mirror.ServerModified)
	assert.Nil(t, mirror.Data)
}
