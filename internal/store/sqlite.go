package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
	path  TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLite is a Store backed by a local SQLite file. It serves two roles: the
// per-node persistent cache behind Mirrored, and (opened with ":memory:") the
// store used by tests.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the key-value database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Read returns the value at path, or ErrAbsent.
func (s *SQLite) Read(ctx context.Context, path string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE path = ?`, path).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrAbsent
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return value, nil
}

// Write overwrites the value at path.
func (s *SQLite) Write(ctx context.Context, path, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (path, value) VALUES (?, ?)
		ON CONFLICT (path) DO UPDATE SET value = excluded.value
	`, path, value)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Delete removes path and all children.
func (s *SQLite) Delete(ctx context.Context, path string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM kv WHERE path = ? OR path LIKE ? || '/%'`, path, path)
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

// List returns every stored path equal to prefix or below it.
func (s *SQLite) List(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path FROM kv WHERE path = ? OR path LIKE ? || '/%' ORDER BY path`, prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
