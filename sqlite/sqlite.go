// Package sqlite provides SQLite-based storage for scraped books and job postings.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Set busy timeout to wait 5 seconds before failing on lock contention.
	// This prevents immediate "database is locked" errors.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Enable WAL mode for file-based databases for better write performance.
	// WAL is ~7x faster for writes and allows concurrent reads during writes.
	// Trade-off: creates additional -wal and -shm files alongside the database.
	// Note: WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Enable foreign key constraints
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	// Create schema
	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// Stats returns database statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}

// createSchema creates the database tables if they don't exist.
//
// Structured article and job fields (content blocks, image lists,
// contact maps) are stored as JSON text: they are written and read as a
// whole, never queried by part. Columns that back FindBooks and
// FindJobs filters stay relational.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS books (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL,
			scraped_at TEXT NOT NULL,
			total_chapters INTEGER NOT NULL DEFAULT 0,
			total_articles INTEGER NOT NULL DEFAULT 0,
			total_images INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS chapters (
			id TEXT PRIMARY KEY,
			book_id TEXT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
			number INTEGER NOT NULL,
			title TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_chapters_book_id ON chapters(book_id);

		CREATE TABLE IF NOT EXISTS articles (
			id TEXT PRIMARY KEY,
			chapter_id TEXT NOT NULL REFERENCES chapters(id) ON DELETE CASCADE,
			number INTEGER NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT 'null',
			images TEXT NOT NULL DEFAULT 'null',
			metadata TEXT NOT NULL DEFAULT 'null',
			content_hash TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_articles_chapter_id ON articles(chapter_id);

		CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			title TEXT,
			company TEXT,
			location TEXT,
			salary TEXT,
			type TEXT,
			posted_date TEXT,
			deadline TEXT,
			experience_level TEXT,
			education TEXT,
			remote INTEGER NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT 'null',
			requirements TEXT NOT NULL DEFAULT 'null',
			responsibilities TEXT NOT NULL DEFAULT 'null',
			benefits TEXT NOT NULL DEFAULT 'null',
			skills TEXT NOT NULL DEFAULT 'null',
			contact TEXT NOT NULL DEFAULT 'null',
			raw_text TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL DEFAULT '',
			scraped_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_jobs_url ON jobs(url);
		CREATE INDEX IF NOT EXISTS idx_jobs_company ON jobs(company);
	`

	_, err := db.db.Exec(schema)
	return err
}
