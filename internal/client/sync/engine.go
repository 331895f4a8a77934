package sync

import (
	"database/sql"
	"log/slog"

	"github.com/iudanet/extstorage/internal/client/storage"
	"github.com/iudanet/extstorage/internal/models"
)

// Engine implements the individual steps of a sync pass on top of the
// record store. Every multi-row step runs in one transaction and polls its
// interrupt.Interruptee once per row.
type Engine struct {
	store  storage.RecordStorage
	logger *slog.Logger
}

// NewEngine creates a new sync engine over store
func NewEngine(store storage.RecordStorage, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:  store,
		logger: logger,
	}
}

// jsonMapFromColumn reads a JSON object from a nullable column.
// Invalid JSON or a non-object value must not break syncing, so it is
// logged and treated as missing data.
func (e *Engine) jsonMapFromColumn(column string, value sql.NullString) models.JSONMap {
	if !value.Valid {
		return nil
	}
	m, err := models.ParseJSONMap(value.String)
	if err != nil {
		e.logger.Warn("skipping invalid json", "column", column, "error", err)
		return nil
	}
	return m
}

// nullableText converts a JSONMap to a nullable column value.
func nullableText(data models.JSONMap) (sql.NullString, error) {
	if data == nil {
		return sql.NullString{}, nil
	}
	text, err := data.Text()
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: text, Valid: true}, nil
}
