package storage

import (
	"context"

	"github.com/iudanet/extstorage/pkg/api"
)

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing sync metadata
type MetadataStorage interface {
	// SaveLastSyncTimestamp saves the server timestamp of the last successful sync
	SaveLastSyncTimestamp(ctx context.Context, timestamp api.ServerTimestamp) error

	// GetLastSyncTimestamp retrieves the server timestamp of the last successful sync
	// Returns 0 if no sync has been performed yet
	GetLastSyncTimestamp(ctx context.Context) (api.ServerTimestamp, error)
}
