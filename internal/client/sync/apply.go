package sync

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iudanet/extstorage/internal/client/storage"
	"github.com/iudanet/extstorage/internal/interrupt"
	"github.com/iudanet/extstorage/internal/models"
)

// ApplyActions applies planned actions to the local records in one
// transaction. An interruption rolls back every action of the batch.
func (e *Engine) ApplyActions(ctx context.Context, actions []PlannedAction, signal interrupt.Interruptee) error {
	err := e.store.Transaction(ctx, func(q storage.Querier) error {
		for _, pa := range actions {
			if err := signal.ErrIfInterrupted(); err != nil {
				return err
			}

			e.logger.Debug("applying incoming action", "ext_id", pa.Item.ExtID, "action", pa.Action.String())

			if err := applyAction(ctx, q, pa.Item, pa.Action); err != nil {
				return fmt.Errorf("failed to apply %s for %s: %w", pa.Action, pa.Item.ExtID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.logger.Debug("applied incoming actions", "count", len(actions))
	return nil
}

func applyAction(ctx context.Context, q storage.Querier, item IncomingItem, action IncomingAction) error {
	switch a := action.(type) {
	case DeleteLocally:
		_, err := q.ExecContext(ctx,
			"DELETE FROM extension_data WHERE ext_id = :ext_id",
			sql.Named("ext_id", item.ExtID),
		)
		return err

	case DeleteRemotely:
		// Запись остаётся tombstone и будет отправлена как удаление
		_, err := q.ExecContext(ctx, `
			UPDATE extension_data
			SET data = NULL, sync_status = :sync_status_new
			WHERE ext_id = :ext_id`,
			sql.Named("ext_id", item.ExtID),
			sql.Named("sync_status_new", models.SyncStatusNew),
		)
		return err

	case TakeRemote:
		// Данные сервера полностью заменяют локальные, выгружать нечего
		data, err := nullableText(a.Data)
		if err != nil {
			return err
		}
		_, err = q.ExecContext(ctx, `
			INSERT INTO extension_data (ext_id, data, sync_status, sync_change_counter)
			VALUES (:ext_id, :data, :sync_status_normal, 0)
			ON CONFLICT(ext_id) DO UPDATE SET
				data = excluded.data,
				sync_status = excluded.sync_status,
				sync_change_counter = 0`,
			sql.Named("ext_id", item.ExtID),
			sql.Named("data", data),
			sql.Named("sync_status_normal", models.SyncStatusNormal),
		)
		return err

	case Merge:
		// Результат слияния отличается от сервера, поэтому запись остаётся "грязной"
		data, err := nullableText(a.Data)
		if err != nil {
			return err
		}
		_, err = q.ExecContext(ctx, `
			INSERT INTO extension_data (ext_id, data, sync_status, sync_change_counter)
			VALUES (:ext_id, :data, :sync_status_normal, 1)
			ON CONFLICT(ext_id) DO UPDATE SET
				data = excluded.data,
				sync_status = excluded.sync_status,
				sync_change_counter = sync_change_counter + 1`,
			sql.Named("ext_id", item.ExtID),
			sql.Named("data", data),
			sql.Named("sync_status_normal", models.SyncStatusNormal),
		)
		return err

	case Same:
		return nil

	default:
		return fmt.Errorf("unknown incoming action %T", action)
	}
}
