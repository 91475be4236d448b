// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records one row per pubpage run in a local SQLite
// database. The artifacts themselves are whole-file overwrites, so the run
// log is the only place week-over-week numbers survive.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Run is one recorded invocation.
type Run struct {
	ID        int64
	AuthorID  string
	FetchedAt time.Time
	Total     int
	Skipped   int
	Status    string
}

// Run statuses.
const (
	StatusOK    = "ok"
	StatusEmpty = "empty"
)

// Store manages the run-log SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the run log at path, creating the schema on first
// use.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening run log: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		author_id TEXT NOT NULL,
		fetched_at TEXT NOT NULL,
		total INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		status TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record appends one run to the log.
func (s *Store) Record(r Run) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (author_id, fetched_at, total, skipped, status) VALUES (?, ?, ?, ?, ?)`,
		r.AuthorID, r.FetchedAt.UTC().Format(time.RFC3339), r.Total, r.Skipped, r.Status,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, author_id, fetched_at, total, skipped, status FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var fetchedAt string
		if err := rows.Scan(&r.ID, &r.AuthorID, &fetchedAt, &r.Total, &r.Skipped, &r.Status); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, fetchedAt); parseErr == nil {
			r.FetchedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
