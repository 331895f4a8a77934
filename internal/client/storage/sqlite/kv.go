package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/extstorage/internal/client/storage"
	"github.com/iudanet/extstorage/internal/models"
)

// loadData reads the current object of extID inside q.
// exists is false when there is no row at all.
func (s *Storage) loadData(ctx context.Context, q storage.Querier, extID string) (models.JSONMap, bool, error) {
	var data sql.NullString
	err := q.QueryRowContext(ctx,
		"SELECT data FROM extension_data WHERE ext_id = :ext_id",
		sql.Named("ext_id", extID),
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load data: %w", err)
	}
	return s.decodeData("extension_data.data", data), true, nil
}

// saveData writes the object of extID and bumps its change counter.
// New rows start with sync_status New and a counter of 1.
func saveData(ctx context.Context, q storage.Querier, extID string, data models.JSONMap) error {
	var text sql.NullString
	if data != nil {
		s, err := data.Text()
		if err != nil {
			return err
		}
		text = sql.NullString{String: s, Valid: true}
	}

	query := `
		INSERT INTO extension_data (ext_id, data, sync_status, sync_change_counter)
		VALUES (:ext_id, :data, :sync_status_new, 1)
		ON CONFLICT(ext_id) DO UPDATE SET
			data = excluded.data,
			sync_change_counter = sync_change_counter + 1
	`

	_, err := q.ExecContext(ctx, query,
		sql.Named("ext_id", extID),
		sql.Named("data", text),
		sql.Named("sync_status_new", models.SyncStatusNew),
	)
	if err != nil {
		return fmt.Errorf("failed to save data: %w", err)
	}
	return nil
}

// Set merges values into the stored object of extID
func (s *Storage) Set(ctx context.Context, extID string, values models.JSONMap) error {
	return s.Transaction(ctx, func(q storage.Querier) error {
		current, _, err := s.loadData(ctx, q, extID)
		if err != nil {
			return err
		}

		merged := current.Clone()
		if merged == nil {
			merged = models.JSONMap{}
		}
		for k, v := range values {
			merged[k] = v
		}

		return saveData(ctx, q, extID, merged)
	})
}

// Get returns the stored object, or only the requested keys
func (s *Storage) Get(ctx context.Context, extID string, keys []string) (models.JSONMap, error) {
	var current models.JSONMap

	err := s.Read(ctx, func(q storage.Querier) error {
		var err error
		current, _, err = s.loadData(ctx, q, extID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		if current == nil {
			return models.JSONMap{}, nil
		}
		return current.Clone(), nil
	}

	result := models.JSONMap{}
	for _, k := range keys {
		if v, ok := current[k]; ok {
			result[k] = v
		}
	}
	return result, nil
}

// Remove deletes keys from the stored object.
// The change counter is bumped only when something was actually removed.
func (s *Storage) Remove(ctx context.Context, extID string, keys []string) error {
	return s.Transaction(ctx, func(q storage.Querier) error {
		current, exists, err := s.loadData(ctx, q, extID)
		if err != nil {
			return err
		}
		if !exists || current == nil {
			return nil
		}

		updated := current.Clone()
		changed := false
		for _, k := range keys {
			if _, ok := updated[k]; ok {
				delete(updated, k)
				changed = true
			}
		}
		if !changed {
			return nil
		}

		return saveData(ctx, q, extID, updated)
	})
}

// Clear removes all data of extID, leaving a tombstone for the next sync
func (s *Storage) Clear(ctx context.Context, extID string) error {
	return s.Transaction(ctx, func(q storage.Querier) error {
		_, err := q.ExecContext(ctx, `
			UPDATE extension_data
			SET data = NULL, sync_change_counter = sync_change_counter + 1
			WHERE ext_id = :ext_id AND data IS NOT NULL`,
			sql.Named("ext_id", extID),
		)
		if err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
		return nil
	})
}

// GetBytesInUse returns the size of the stored JSON text of extID
func (s *Storage) GetBytesInUse(ctx context.Context, extID string) (int64, error) {
	var size sql.NullInt64

	err := s.Read(ctx, func(q storage.Querier) error {
		return q.QueryRowContext(ctx,
			"SELECT length(CAST(data AS BLOB)) FROM extension_data WHERE ext_id = :ext_id",
			sql.Named("ext_id", extID),
		).Scan(&size)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get bytes in use: %w", err)
	}

	return size.Int64, nil
}
