package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/extstorage/internal/client/storage"
	"github.com/iudanet/extstorage/internal/models"
)

// GetLocalRecord retrieves the local record of an extension
// Returns ErrRecordNotFound if record doesn't exist
func (s *Storage) GetLocalRecord(ctx context.Context, extID string) (*models.LocalRecord, error) {
	query := `
		SELECT ext_id, data, sync_status, sync_change_counter
		FROM extension_data
		WHERE ext_id = :ext_id
	`

	record := &models.LocalRecord{}
	var data sql.NullString

	err := s.Read(ctx, func(q storage.Querier) error {
		return q.QueryRowContext(ctx, query, sql.Named("ext_id", extID)).Scan(
			&record.ExtID,
			&data,
			&record.SyncStatus,
			&record.ChangeCounter,
		)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get local record: %w", err)
	}

	record.Data = s.decodeData("extension_data.data", data)
	return record, nil
}

// GetMirrorRecord retrieves the mirror record of an extension
// Returns ErrRecordNotFound if the extension was never synced
func (s *Storage) GetMirrorRecord(ctx context.Context, extID string) (*models.MirrorRecord, error) {
	query := `
		SELECT guid, ext_id, server_modified, data
		FROM extension_data_mirror
		WHERE ext_id = :ext_id
	`

	record := &models.MirrorRecord{}
	var data sql.NullString

	err := s.Read(ctx, func(q storage.Querier) error {
		return q.QueryRowContext(ctx, query, sql.Named("ext_id", extID)).Scan(
			&record.GUID,
			&record.ExtID,
			&record.ServerModified,
			&data,
		)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get mirror record: %w", err)
	}

	record.Data = s.decodeData("extension_data_mirror.data", data)
	return record, nil
}

// decodeData converts a nullable JSON column into a JSONMap.
// Broken JSON is logged and treated as no data.
func (s *Storage) decodeData(column string, data sql.NullString) models.JSONMap {
	if !data.Valid {
		return nil
	}
	m, err := models.ParseJSONMap(data.String)
	if err != nil {
		s.logger.Warn("skipping invalid json", "column", column, "error", err)
		return nil
	}
	return m
}
