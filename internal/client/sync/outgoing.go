package sync

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/iudanet/extstorage/internal/client/storage"
	"github.com/iudanet/extstorage/internal/interrupt"
	"github.com/iudanet/extstorage/internal/models"
	"github.com/iudanet/extstorage/pkg/api"
)

// OutgoingState is captured when a record is collected for upload and
// handed back to RecordUploaded once the upload succeeded.
type OutgoingState struct {
	ExtID         string
	ChangeCounter int64 // значение счётчика на момент сбора
}

// OutgoingInfo is one record to upload.
type OutgoingInfo struct {
	Payload api.ServerPayload
	State   OutgoingState
}

// GetOutgoing collects every local record with pending changes.
// The guid comes from the mirror, then from a staged record of the same
// extension, and is generated for records the server has never seen.
func (e *Engine) GetOutgoing(ctx context.Context, signal interrupt.Interruptee) ([]OutgoingInfo, error) {
	query := `
		SELECT
			l.ext_id,
			l.data,
			l.sync_change_counter,
			COALESCE(m.guid, (
				SELECT s.guid FROM temp.extension_data_staging s
				WHERE s.ext_id = l.ext_id
				ORDER BY s.server_modified DESC
				LIMIT 1
			)) AS guid
		FROM extension_data l
		LEFT JOIN extension_data_mirror m ON m.ext_id = l.ext_id
		WHERE l.sync_change_counter > 0
		ORDER BY l.ext_id
	`

	var items []OutgoingInfo

	err := e.store.Read(ctx, func(q storage.Querier) (err error) {
		rows, err := q.QueryContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to query outgoing records: %w", err)
		}
		defer func() {
			if cerr := rows.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		for rows.Next() {
			if err := signal.ErrIfInterrupted(); err != nil {
				return err
			}

			var (
				info OutgoingInfo
				data sql.NullString
				guid sql.NullString
			)
			if err := rows.Scan(&info.State.ExtID, &data, &info.State.ChangeCounter, &guid); err != nil {
				return fmt.Errorf("failed to scan outgoing record: %w", err)
			}

			info.Payload.ExtID = info.State.ExtID
			info.Payload.GUID = guid.String
			if !guid.Valid {
				info.Payload.GUID = uuid.NewString()
			}
			if data.Valid {
				text := data.String
				info.Payload.Data = &text
			} else {
				info.Payload.Deleted = true
			}

			items = append(items, info)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows iteration error: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("collected outgoing records", "count", len(items))
	return items, nil
}

// RecordUploaded is called once the server accepted items. In one
// transaction it subtracts the captured change counters, folds staging into
// the mirror, clears staging and stores the uploaded payloads in the mirror.
// On error or interruption nothing is changed and the pass can be retried.
func (e *Engine) RecordUploaded(ctx context.Context, items []OutgoingInfo, signal interrupt.Interruptee) error {
	e.logger.Debug("recording uploaded records", "count", len(items))

	err := e.store.Transaction(ctx, func(q storage.Querier) error {
		// Вычитаем захваченное значение, а не обнуляем: изменения,
		// сделанные во время загрузки, не должны потеряться
		counterQuery := `
			UPDATE extension_data SET
				sync_change_counter = MAX(0, sync_change_counter - :old_counter),
				sync_status = :sync_status_normal
			WHERE ext_id = :ext_id
		`
		for _, item := range items {
			if err := signal.ErrIfInterrupted(); err != nil {
				return err
			}
			_, err := q.ExecContext(ctx, counterQuery,
				sql.Named("old_counter", item.State.ChangeCounter),
				sql.Named("sync_status_normal", models.SyncStatusNormal),
				sql.Named("ext_id", item.State.ExtID),
			)
			if err != nil {
				return fmt.Errorf("failed to update change counter for %s: %w", item.State.ExtID, err)
			}
		}

		_, err := q.ExecContext(ctx, `
			REPLACE INTO extension_data_mirror (guid, ext_id, server_modified, data)
			SELECT guid, ext_id, server_modified, data FROM temp.extension_data_staging`)
		if err != nil {
			return fmt.Errorf("failed to copy staging into mirror: %w", err)
		}

		if _, err := q.ExecContext(ctx, "DELETE FROM temp.extension_data_staging"); err != nil {
			return fmt.Errorf("failed to clear staging: %w", err)
		}

		mirrorQuery := `
			REPLACE INTO extension_data_mirror (guid, ext_id, server_modified, data)
			VALUES (:guid, :ext_id, :server_modified, :data)
		`
		for _, item := range items {
			if err := signal.ErrIfInterrupted(); err != nil {
				return err
			}

			var data sql.NullString
			if !item.Payload.IsTombstone() {
				data = sql.NullString{String: *item.Payload.Data, Valid: true}
			}

			_, err := q.ExecContext(ctx, mirrorQuery,
				sql.Named("guid", item.Payload.GUID),
				sql.Named("ext_id", item.State.ExtID),
				sql.Named("server_modified", item.Payload.LastModified.Millis()),
				sql.Named("data", data),
			)
			if err != nil {
				return fmt.Errorf("failed to update mirror for %s: %w", item.State.ExtID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.logger.Debug("record uploaded committed", "count", len(items))
	return nil
}

// GetPendingCount returns the number of local records waiting for upload.
func (e *Engine) GetPendingCount(ctx context.Context) (int, error) {
	var count int
	err := e.store.Read(ctx, func(q storage.Querier) error {
		return q.QueryRowContext(ctx,
			"SELECT count(*) FROM extension_data WHERE sync_change_counter > 0",
		).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count pending records: %w", err)
	}
	return count, nil
}

// ResetSyncState forgets everything known about the server: the mirror and
// staging are emptied, local tombstones are dropped and every remaining
// record is marked new so the next pass uploads it again.
func (e *Engine) ResetSyncState(ctx context.Context) error {
	return e.store.Transaction(ctx, func(q storage.Querier) error {
		statements := []string{
			"DELETE FROM extension_data_mirror",
			"DELETE FROM temp.extension_data_staging",
			"DELETE FROM extension_data WHERE data IS NULL",
		}
		for _, stmt := range statements {
			if _, err := q.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to reset sync state: %w", err)
			}
		}

		_, err := q.ExecContext(ctx, `
			UPDATE extension_data SET
				sync_status = :sync_status_new,
				sync_change_counter = MAX(1, sync_change_counter)`,
			sql.Named("sync_status_new", models.SyncStatusNew),
		)
		if err != nil {
			return fmt.Errorf("failed to reset sync state: %w", err)
		}
		return nil
	})
}
