// Package history records comparison invocations in a local DuckDB file so
// past runs can be reviewed with the history command.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
)

const schema = `
CREATE TABLE IF NOT EXISTS invocations (
	id         VARCHAR PRIMARY KEY,
	created_at TIMESTAMP NOT NULL,
	command    VARCHAR NOT NULL,
	platform   VARCHAR,
	runtime    VARCHAR,
	model_a    VARCHAR,
	model_b    VARCHAR,
	finish_a   VARCHAR,
	finish_b   VARCHAR,
	elapsed_a  DOUBLE,
	elapsed_b  DOUBLE,
	retried    BOOLEAN
)`

// Entry is one recorded invocation.
type Entry struct {
	ID        string
	CreatedAt time.Time
	Command   string
	Platform  string
	Runtime   string
	ModelA    string
	ModelB    string
	FinishA   string
	FinishB   string
	ElapsedA  float64
	ElapsedB  float64
	Retried   bool
}

type Store struct {
	db *sql.DB
}

// DefaultPath returns the per-user history database location, creating the
// parent directory if needed.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(homeDir, ".multi-draft")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create history directory: %w", err)
	}
	return filepath.Join(dir, "history.db"), nil
}

// Open opens (or creates) the history database at path. An empty path opens
// an in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create invocations table: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one invocation row. A missing ID or timestamp is filled in.
func (s *Store) Record(entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO invocations
			(id, created_at, command, platform, runtime, model_a, model_b, finish_a, finish_b, elapsed_a, elapsed_b, retried)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.CreatedAt, entry.Command, entry.Platform, entry.Runtime,
		entry.ModelA, entry.ModelB, entry.FinishA, entry.FinishB,
		entry.ElapsedA, entry.ElapsedB, entry.Retried,
	)
	if err != nil {
		return fmt.Errorf("failed to record invocation: %w", err)
	}
	return nil
}

// Recent returns the latest invocations, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, created_at, command, COALESCE(platform, ''), COALESCE(runtime, ''),
		       COALESCE(model_a, ''), COALESCE(model_b, ''),
		       COALESCE(finish_a, ''), COALESCE(finish_b, ''),
		       COALESCE(elapsed_a, 0), COALESCE(elapsed_b, 0), COALESCE(retried, false)
		FROM invocations
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query invocations: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Command, &e.Platform, &e.Runtime,
			&e.ModelA, &e.ModelB, &e.FinishA, &e.FinishB,
			&e.ElapsedA, &e.ElapsedB, &e.Retried); err != nil {
			return nil, fmt.Errorf("failed to scan invocation: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
