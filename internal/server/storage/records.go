package storage

import (
	"context"

	"github.com/iudanet/extstorage/pkg/api"
)

//go:generate moq -out records_mock.go . RecordStorage

// PutResult is the outcome of storing one batch of records
type PutResult struct {
	Failed       map[string]string // guid -> причина отказа
	Success      []string
	LastModified api.ServerTimestamp
}

// RecordStorage defines interface for the per-user record collection
type RecordStorage interface {
	// GetRecordsSince returns all records (including tombstones) of userID
	// modified after since, ordered by modification time, together with the
	// collection's last modification time
	GetRecordsSince(ctx context.Context, userID string, since api.ServerTimestamp) ([]api.ServerPayload, api.ServerTimestamp, error)

	// PutRecords upserts records in one transaction. All stored records get
	// the same modification time, strictly greater than any previous one
	// of the collection. nowMillis is the current server time.
	// If ifUnmodifiedSince is not nil and the collection was modified after it,
	// nothing is stored and ErrCollectionModified is returned.
	PutRecords(ctx context.Context, userID string, records []api.ServerPayload, nowMillis int64, ifUnmodifiedSince *api.ServerTimestamp) (*PutResult, error)
}
