package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/iudanet/extstorage/internal/client/storage"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Staging живёт только в рамках соединения, поэтому создаётся как TEMP таблица
const createStagingSQL = `
	CREATE TEMP TABLE IF NOT EXISTS extension_data_staging (
		guid TEXT NOT NULL PRIMARY KEY,
		ext_id TEXT NOT NULL,
		data TEXT,
		server_modified INTEGER NOT NULL
	)`

// Storage represents SQLite storage implementation of extension records.
// Every statement goes through a single writer connection guarded by mu;
// the TEMP staging table exists only on that connection.
type Storage struct {
	db     *sql.DB
	conn   *sql.Conn
	logger *slog.Logger
	mu     sync.Mutex
	closed bool
}

var (
	_ storage.RecordStorage   = (*Storage)(nil)
	_ storage.KeyValueStorage = (*Storage)(nil)
)

// New creates a new SQLite storage instance
// dbPath is the path to the SQLite database file
// Use ":memory:" for in-memory database (useful for testing)
func New(ctx context.Context, dbPath string, logger *slog.Logger) (*Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}

	// Открываем соединение с БД
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Только один писатель: все операции идут через одно соединение
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to acquire writer connection: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
		"PRAGMA temp_store = MEMORY;",
	}

	for _, pragma := range pragmas {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			conn.Close()
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := conn.ExecContext(ctx, createStagingSQL); err != nil {
		conn.Close()
		db.Close()
		return nil, fmt.Errorf("failed to create staging table: %w", err)
	}

	logger.Debug("opened extension storage", "path", dbPath)

	return &Storage{db: db, conn: conn, logger: logger}, nil
}

// Close closes the writer connection and the database
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.conn.Close(); err != nil {
		s.db.Close()
		return fmt.Errorf("failed to close writer connection: %w", err)
	}
	return s.db.Close()
}

// runMigrations выполняет миграции из embedded FS
func runMigrations(db *sql.DB) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}

// Transaction runs fn inside a single transaction on the writer connection.
// The lock is held until the transaction is committed or rolled back, so
// transactions never interleave.
func (s *Storage) Transaction(ctx context.Context, fn func(q storage.Querier) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrStorageClosed
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Read runs fn on the writer connection without a transaction.
func (s *Storage) Read(ctx context.Context, fn func(q storage.Querier) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrStorageClosed
	}
	return fn(s.conn)
}
