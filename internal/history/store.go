// Package history keeps a small local log of successful resource
// resolutions so operators can see what a given experiment asked for over
// time without re-running the check command.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/pgierz/snakemake-wrapper-esm-master/internal/resources"
)

// Entry is one recorded resolution. Resource columns mirror the
// present-iff-specified semantics of the request: NULL in the database means
// the field was not in the finished config.
type Entry struct {
	ID        int64
	ExpID     string
	Task      string
	Runscript string
	Nodes     sql.NullInt64
	Tasks     sql.NullInt64
	MemMB     sql.NullInt64
	Runtime   sql.NullInt64
	Partition string
	Account   string
	CreatedAt time.Time
}

// Store wraps the SQLite-backed resolution log.
type Store struct {
	db *sql.DB
}

const createResolutions = `
CREATE TABLE IF NOT EXISTS resolutions (
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  expid      TEXT,
  task       TEXT,
  runscript  TEXT,
  nodes      INTEGER,
  tasks      INTEGER,
  mem_mb     INTEGER,
  runtime    INTEGER,
  partition  TEXT,
  account    TEXT,
  created_at TEXT
);`

// Open opens (creating if necessary) the resolution log at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0775); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database %s: %w", path, err)
	}
	if _, err := db.Exec(createResolutions); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends one resolution to the log.
func (s *Store) Record(expID, task, runscript string, req resources.Request) error {
	_, err := s.db.Exec(
		`INSERT INTO resolutions (expid, task, runscript, nodes, tasks, mem_mb, runtime, partition, account, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expID, task, runscript,
		nullableInt(req.Nodes), nullableInt(req.Tasks),
		nullableInt64(req.MemMB), nullableInt(req.Runtime),
		req.Partition, req.Account,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record resolution: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (s *Store) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, expid, task, runscript, nodes, tasks, mem_mb, runtime, partition, account, created_at
		 FROM resolutions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.ExpID, &e.Task, &e.Runscript,
			&e.Nodes, &e.Tasks, &e.MemMB, &e.Runtime,
			&e.Partition, &e.Account, &created); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, created); err == nil {
			e.CreatedAt = ts
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func nullableInt64(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
