package sync

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iudanet/extstorage/internal/client/storage"
	"github.com/iudanet/extstorage/internal/interrupt"
	"github.com/iudanet/extstorage/pkg/api"
)

// StageIncoming stores an incoming batch in the staging table.
// Leftovers of an earlier unfinished pass are dropped first, so after a
// successful call staging holds exactly this batch (one row per guid).
// An interruption discards the whole batch.
func (e *Engine) StageIncoming(ctx context.Context, batch []api.ServerPayload, signal interrupt.Interruptee) error {
	err := e.store.Transaction(ctx, func(q storage.Querier) error {
		if _, err := q.ExecContext(ctx, "DELETE FROM temp.extension_data_staging"); err != nil {
			return fmt.Errorf("failed to clear staging: %w", err)
		}

		query := `
			INSERT OR REPLACE INTO temp.extension_data_staging
			(guid, ext_id, data, server_modified)
			VALUES (:guid, :ext_id, :data, :ts)
		`

		for _, payload := range batch {
			if err := signal.ErrIfInterrupted(); err != nil {
				return err
			}

			var data sql.NullString
			if !payload.IsTombstone() {
				data = sql.NullString{String: *payload.Data, Valid: true}
			}

			_, err := q.ExecContext(ctx, query,
				sql.Named("guid", payload.GUID),
				sql.Named("ext_id", payload.ExtID),
				sql.Named("data", data),
				sql.Named("ts", payload.LastModified.Millis()),
			)
			if err != nil {
				return fmt.Errorf("failed to stage record %s: %w", payload.GUID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.logger.Debug("staged incoming records", "count", len(batch))
	return nil
}
