// Package store keeps a history of analysis runs in SQLite so past results
// can be listed without re-parsing.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite connection for run history.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Run is one recorded analysis of one file.
type Run struct {
	ID          int64
	Path        string
	ContentHash string // hex-encoded 64-bit content fingerprint
	Functions   int
	Roots       int
	Orphans     int
	RootNames   []string
	ParsedAt    time.Time
}

// cacheDir returns the default directory for the history database.
func cacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	dir := filepath.Join(home, ".cache", "pars")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir cache: %w", err)
	}
	return dir, nil
}

// Open opens or creates the default history database.
func Open() (*Store, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	return OpenPath(filepath.Join(dir, "history.db"))
}

// OpenPath opens a history database at the given path.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// OpenMemory opens an in-memory history database (for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open memory db: %w", err)
	}
	// Each connection would get its own :memory: database.
	db.SetMaxOpenConns(1)
	s := &Store{db: db, dbPath: ":memory:"}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL,
		content_hash TEXT NOT NULL,
		functions INTEGER NOT NULL,
		roots INTEGER NOT NULL,
		orphans INTEGER NOT NULL,
		root_names TEXT NOT NULL DEFAULT '[]',
		parsed_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_path ON runs(path, parsed_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// RecordRun appends one run to the history.
func (s *Store) RecordRun(r Run) error {
	names, err := json.Marshal(r.RootNames)
	if err != nil {
		return fmt.Errorf("marshal roots: %w", err)
	}
	if r.ParsedAt.IsZero() {
		r.ParsedAt = time.Now().UTC()
	}
	_, err = s.db.Exec(
		`INSERT INTO runs (path, content_hash, functions, roots, orphans, root_names, parsed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Path, r.ContentHash, r.Functions, r.Roots, r.Orphans, string(names),
		r.ParsedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. An empty path lists
// runs for all files.
func (s *Store) ListRuns(path string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, path, content_hash, functions, roots, orphans, root_names, parsed_at
		  FROM runs`
	args := []any{}
	if path != "" {
		query += ` WHERE path = ?`
		args = append(args, path)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var names, parsedAt string
		if err := rows.Scan(&r.ID, &r.Path, &r.ContentHash, &r.Functions, &r.Roots, &r.Orphans, &names, &parsedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if err := json.Unmarshal([]byte(names), &r.RootNames); err != nil {
			r.RootNames = nil
		}
		if t, err := time.Parse(time.RFC3339, parsedAt); err == nil {
			r.ParsedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
