package sync

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/extstorage/internal/client/storage"
	"github.com/iudanet/extstorage/internal/client/storage/sqlite"
	"github.com/iudanet/extstorage/internal/interrupt"
	"github.com/iudanet/extstorage/internal/models"
	"github.com/iudanet/extstorage/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// setupTestEngine создает engine поверх in-memory SQLite
func setupTestEngine(t *testing.T) (*Engine, *sqlite.Storage) {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:", testLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return NewEngine(store, testLogger()), store
}

func execSQL(t *testing.T, store *sqlite.Storage, query string, args ...any) {
	t.Helper()

	err := store.Transaction(context.Background(), func(q storage.Querier) error {
		_, err := q.ExecContext(context.Background(), query, args...)
		return err
	})
	require.NoError(t, err)
}

func queryInt(t *testing.T, store *sqlite.Storage, query string, args ...any) int64 {
	t.Helper()

	var n int64
	err := store.Read(context.Background(), func(q storage.Querier) error {
		return q.QueryRowContext(context.Background(), query, args...).Scan(&n)
	})
	require.NoError(t, err)
	return n
}

type mirrorRow struct {
	Data           sql.NullString
	GUID           string
	ExtID          string
	ServerModified int64
}

func mirrorRows(t *testing.T, store *sqlite.Storage) []mirrorRow {
	t.Helper()

	var result []mirrorRow
	err := store.Read(context.Background(), func(q storage.Querier) error {
		rows, err := q.QueryContext(context.Background(),
			"SELECT guid, ext_id, server_modified, data FROM extension_data_mirror ORDER BY ext_id")
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var r mirrorRow
			if err := rows.Scan(&r.GUID, &r.ExtID, &r.ServerModified, &r.Data); err != nil {
				return err
			}
			result = append(result, r)
		}
		return rows.Err()
	})
	require.NoError(t, err)
	return result
}

func payload(guid, extID string, data models.JSONMap, lastModified api.ServerTimestamp) api.ServerPayload {
	p := api.ServerPayload{GUID: guid, ExtID: extID, LastModified: lastModified}
	if data == nil {
		p.Deleted = true
		return p
	}
	text, err := data.Text()
	if err != nil {
		panic(err)
	}
	p.Data = &text
	return p
}

// countdown is interrupted after n successful checks
type countdown struct {
	n int
}

func (c *countdown) ErrIfInterrupted() error {
	if c.n <= 0 {
		return interrupt.ErrInterrupted
	}
	c.n--
	return nil
}
