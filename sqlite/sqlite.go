// Package sqlite stores exported sites in a SQLite database, one row per
// page, as an alternative to a directory of Markdown files.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fwojciec/mdcopy"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// memory is the DSN of a private in-memory database.
const memory = ":memory:"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sites (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		exported_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS pages (
		id TEXT PRIMARY KEY,
		site_id TEXT NOT NULL REFERENCES sites(id) ON DELETE CASCADE,
		source_url TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		content_hash TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pages_site_id ON pages(site_id)`,
	`CREATE INDEX IF NOT EXISTS idx_pages_source_url ON pages(source_url)`,
}

// DB is an export database. It holds a single connection because SQLite
// serialises writers anyway.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for the file at path. Pass ":memory:" for a throwaway
// database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects, applies connection pragmas and creates missing tables.
// A database that cannot be opened is reported as EUNAVAILABLE.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return mdcopy.Errorf(mdcopy.EUNAVAILABLE, "open %s: %v", db.path, err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return mdcopy.Errorf(mdcopy.EUNAVAILABLE, "open %s: %v", db.path, err)
	}

	if err := setup(conn, db.path != memory); err != nil {
		conn.Close()
		return err
	}

	db.db = conn
	return nil
}

func setup(conn *sql.DB, wal bool) error {
	pragmas := []string{"PRAGMA busy_timeout = 5000", "PRAGMA foreign_keys = ON"}
	if wal {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, stmt := range append(pragmas, schema...) {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("init database: %w", err)
		}
	}
	return nil
}

// Close releases the connection. It is safe to call on an unopened DB.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}
