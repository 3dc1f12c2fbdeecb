// ABOUTME: SQLite-backed store using modernc.org/sqlite behind a mutex guard
// ABOUTME: Owns the single database handle and serializes all access to it

package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// timeLayout is RFC 3339 with a fixed-width nanosecond fraction so the
// stored text sorts in chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements ThreadStore, MessageStore and SettingsStore over a
// single SQLite file. Every operation runs with mu held; there is no
// read/write split. SaveMessage's insert and thread touch share one lock
// acquisition, so the pair is observed atomically by other callers.
type SQLiteStore struct {
	mu     sync.Mutex
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the SQLite database at the given path,
// enables foreign key enforcement, and runs schema creation and migrations.
// Parent directories are created if needed. Any setup failure is returned
// to the caller; a broken schema must not be silently tolerated.
func Open(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One underlying connection: session pragmas apply to it, and the mutex
	// above it is the only concurrency control this store needs.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Not on by default in SQLite; must be enabled per session
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

// isForeignKeyViolation checks if the error is a SQLite foreign key
// constraint failure
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// formatTime renders a timestamp in the store's canonical text form
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime parses a stored timestamp. A malformed value degrades to the
// current time rather than failing the surrounding query.
func (s *SQLiteStore) parseTime(value, column string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		s.logger.Warn("failed to parse stored timestamp", "column", column, "value", value, "error", err)
		return time.Now().UTC()
	}
	return t
}

// Ensure SQLiteStore implements the store interfaces
var (
	_ ThreadStore   = (*SQLiteStore)(nil)
	_ MessageStore  = (*SQLiteStore)(nil)
	_ SettingsStore = (*SQLiteStore)(nil)
)
