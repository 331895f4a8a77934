package storage

import (
	"context"
	"database/sql"

	"github.com/iudanet/extstorage/internal/models"
)

// Querier is the part of database/sql shared by *sql.Tx and *sql.Conn.
// Named parameters are bound with sql.Named.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RecordStorage is the relational store behind the sync engine.
// All access is serialized through a single writer connection.
type RecordStorage interface {
	// Transaction runs fn inside one transaction on the writer connection.
	// The transaction is committed only if fn returns nil.
	Transaction(ctx context.Context, fn func(q Querier) error) error

	// Read runs fn on the writer connection without a transaction.
	Read(ctx context.Context, fn func(q Querier) error) error
}

//go:generate moq -out keyvalue_mock.go . KeyValueStorage

// KeyValueStorage is the public key/value API of extension storage.
// Every mutation bumps the record change counter so the sync engine
// knows what to upload.
type KeyValueStorage interface {
	// Set merges values into the stored object of extID
	Set(ctx context.Context, extID string, values models.JSONMap) error

	// Get returns the stored object, or only the requested keys when keys is not empty
	// Missing records yield an empty object
	Get(ctx context.Context, extID string, keys []string) (models.JSONMap, error)

	// Remove deletes keys from the stored object
	Remove(ctx context.Context, extID string, keys []string) error

	// Clear removes all data of extID, leaving a tombstone to be synced
	Clear(ctx context.Context, extID string) error

	// GetBytesInUse returns the size of the stored JSON text
	GetBytesInUse(ctx context.Context, extID string) (int64, error)
}
