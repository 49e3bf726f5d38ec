// Package cache persists the last fetched task snapshot to a local
// SQLite database so the CLI can render a board while the spreadsheet
// service is unreachable. The cache is a convenience copy only; the
// next successful refresh overwrites it wholesale and nothing is ever
// written back to the remote from here.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/randalmurphal/sheetboard/internal/task"
)

// Cache is a single-snapshot store backed by SQLite.
type Cache struct {
	db   *sql.DB
	path string
}

// Open opens the snapshot database at the given path, creating the
// file and its parent directory when missing.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	// WAL mode and a busy timeout so a watch process and a one-shot
	// command can share the file.
	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshot (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			fetched_at TEXT NOT NULL,
			tasks TEXT NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}

	return &Cache{db: db, path: path}, nil
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.path
}

// Save replaces the stored snapshot.
func (c *Cache) Save(tasks []*task.Task, fetchedAt time.Time) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = c.db.Exec(`
		INSERT INTO snapshot (id, fetched_at, tasks) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			fetched_at = excluded.fetched_at,
			tasks = excluded.tasks
	`, fetchedAt.Format(time.RFC3339), string(data))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot and when it was fetched. An empty
// cache returns no tasks, a zero time and no error.
func (c *Cache) Load() ([]*task.Task, time.Time, error) {
	row := c.db.QueryRow(`SELECT fetched_at, tasks FROM snapshot WHERE id = 1`)

	var fetchedAt, data string
	if err := row.Scan(&fetchedAt, &data); err != nil {
		if err == sql.ErrNoRows {
			return nil, time.Time{}, nil
		}
		return nil, time.Time{}, fmt.Errorf("load snapshot: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("parse snapshot timestamp: %w", err)
	}

	var tasks []*task.Task
	if err := json.Unmarshal([]byte(data), &tasks); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return tasks, ts, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}
