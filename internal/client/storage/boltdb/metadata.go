package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/extstorage/internal/client/storage"
	"github.com/iudanet/extstorage/pkg/api"
)

const (
	keyLastSyncTimestamp = "last_sync_timestamp"
)

var _ storage.MetadataStorage = (*Storage)(nil)

// SaveLastSyncTimestamp saves the server timestamp of the last successful sync
func (s *Storage) SaveLastSyncTimestamp(ctx context.Context, timestamp api.ServerTimestamp) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		// Конвертируем миллисекунды в bytes
		timestampBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(timestampBytes, uint64(timestamp.Millis()))

		// Сохраняем timestamp
		if err := bucket.Put([]byte(keyLastSyncTimestamp), timestampBytes); err != nil {
			return fmt.Errorf("failed to save last sync timestamp: %w", err)
		}

		return nil
	})
}

// GetLastSyncTimestamp retrieves the server timestamp of the last successful sync
// Returns 0 if no sync has been performed yet
func (s *Storage) GetLastSyncTimestamp(ctx context.Context) (api.ServerTimestamp, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var timestamp api.ServerTimestamp

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		// Получаем timestamp
		timestampBytes := bucket.Get([]byte(keyLastSyncTimestamp))
		if timestampBytes == nil {
			// Если timestamp не найден, возвращаем 0 (первая синхронизация)
			return nil
		}
		if len(timestampBytes) != 8 {
			return fmt.Errorf("corrupted last sync timestamp: %d bytes", len(timestampBytes))
		}

		// Конвертируем bytes в миллисекунды
		timestamp = api.ServerTimestamp(int64(binary.BigEndian.Uint64(timestampBytes)))
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to get last sync timestamp: %w", err)
	}

	return timestamp, nil
}
