package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteFile is the database file name created under the configured path.
const SQLiteFile = "planner.sqlite"

const createKV = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
)`

// SQLite keeps blobs in a single key/value table.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (or creates) planner.sqlite under dir.
func OpenSQLite(dir string) (*SQLite, error) {
	if dir == "" {
		return nil, errors.New("open: empty db path")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open: create db dir: %w", err)
	}
	path := filepath.Join(dir, SQLiteFile)

	db, err := sql.Open("sqlite", "file:"+path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("open: sql open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open: ping: %w", err)
	}
	if _, err := db.Exec(createKV); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open: migrate: %w", err)
	}
	return &SQLite{db: db, path: path}, nil
}

func (s *SQLite) Read(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLite) Write(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, data)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Location(string) string { return s.path }

func (s *SQLite) Close() error { return s.db.Close() }
