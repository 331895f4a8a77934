package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/extstorage/internal/server/storage"
	"github.com/iudanet/extstorage/pkg/api"
)

// GetRecordsSince returns records of userID modified after since, together
// with the collection last_modified. Both reads see the same snapshot, so
// the returned last_modified never covers a record missing from the result.
func (s *Storage) GetRecordsSince(ctx context.Context, userID string, since api.ServerTimestamp) ([]api.ServerPayload, api.ServerTimestamp, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	records, err := queryRecordsSince(ctx, tx, userID, since)
	if err != nil {
		return nil, 0, err
	}

	lastModified, err := collectionModified(ctx, tx, userID)
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit read transaction: %w", err)
	}

	return records, api.ServerTimestamp(lastModified), nil
}

func queryRecordsSince(ctx context.Context, tx *sql.Tx, userID string, since api.ServerTimestamp) (_ []api.ServerPayload, err error) {
	query := `
		SELECT guid, ext_id, data, deleted, last_modified
		FROM records
		WHERE user_id = :user_id AND last_modified > :since
		ORDER BY last_modified, guid
	`

	rows, err := tx.QueryContext(ctx, query,
		sql.Named("user_id", userID),
		sql.Named("since", since.Millis()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	records := make([]api.ServerPayload, 0)
	for rows.Next() {
		var (
			p            api.ServerPayload
			data         sql.NullString
			deleted      int
			lastModified int64
		)
		if err := rows.Scan(&p.GUID, &p.ExtID, &data, &deleted, &lastModified); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if data.Valid {
			text := data.String
			p.Data = &text
		}
		p.Deleted = deleted != 0
		p.LastModified = api.ServerTimestamp(lastModified)
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return records, nil
}

// PutRecords upserts a batch of records in one transaction
func (s *Storage) PutRecords(ctx context.Context, userID string, records []api.ServerPayload, nowMillis int64, ifUnmodifiedSince *api.ServerTimestamp) (*storage.PutResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	previous, err := collectionModified(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if ifUnmodifiedSince != nil && previous > ifUnmodifiedSince.Millis() {
		return nil, storage.ErrCollectionModified
	}

	// Время пакета строго растёт, даже если часы сервера отстают
	ts := nowMillis
	if ts <= previous {
		ts = previous + 1
	}

	result := &storage.PutResult{
		Failed:  make(map[string]string),
		Success: make([]string, 0, len(records)),
	}

	for _, p := range records {
		if err := putRecord(ctx, tx, userID, p, ts); err != nil {
			if errors.Is(err, storage.ErrExtIDConflict) {
				result.Failed[p.GUID] = err.Error()
				continue
			}
			return nil, err
		}
		result.Success = append(result.Success, p.GUID)
	}

	if len(result.Success) == 0 {
		// Ничего не изменилось, время коллекции остаётся прежним
		result.LastModified = api.ServerTimestamp(previous)
		return result, nil
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	result.LastModified = api.ServerTimestamp(ts)
	return result, nil
}

func putRecord(ctx context.Context, tx *sql.Tx, userID string, p api.ServerPayload, ts int64) error {
	var boundGUID string
	err := tx.QueryRowContext(ctx,
		"SELECT guid FROM records WHERE user_id = :user_id AND ext_id = :ext_id",
		sql.Named("user_id", userID),
		sql.Named("ext_id", p.ExtID),
	).Scan(&boundGUID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("failed to check ext_id %s: %w", p.ExtID, err)
	case boundGUID != p.GUID:
		return storage.ErrExtIDConflict
	}

	var data sql.NullString
	deleted := 1
	if !p.IsTombstone() {
		data = sql.NullString{String: *p.Data, Valid: true}
		deleted = 0
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO records (user_id, guid, ext_id, data, deleted, last_modified)
		VALUES (:user_id, :guid, :ext_id, :data, :deleted, :last_modified)
		ON CONFLICT(user_id, guid) DO UPDATE SET
			ext_id = excluded.ext_id,
			data = excluded.data,
			deleted = excluded.deleted,
			last_modified = excluded.last_modified`,
		sql.Named("user_id", userID),
		sql.Named("guid", p.GUID),
		sql.Named("ext_id", p.ExtID),
		sql.Named("data", data),
		sql.Named("deleted", deleted),
		sql.Named("last_modified", ts),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert record %s: %w", p.GUID, err)
	}
	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func collectionModified(ctx context.Context, q queryRower, userID string) (int64, error) {
	var lastModified int64
	err := q.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(last_modified), 0) FROM records WHERE user_id = :user_id",
		sql.Named("user_id", userID),
	).Scan(&lastModified)
	if err != nil {
		return 0, fmt.Errorf("failed to get collection last modified: %w", err)
	}
	return lastModified, nil
}
