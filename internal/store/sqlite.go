package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"go-pipeline-builder/internal/model"
)

// SQLiteStore keeps pipelines in a single sqlite table, one JSON document
// per name.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	pipelineTable := `
	CREATE TABLE IF NOT EXISTS pipelines (
		name TEXT PRIMARY KEY,
		spec TEXT NOT NULL,
		steps INTEGER NOT NULL,
		created_at DATETIME
	);
	`
	if _, err := db.Exec(pipelineTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create pipelines table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Save stores a new pipeline
func (s *SQLiteStore) Save(ctx context.Context, name string, steps []model.PipelineStep) error {
	name, err := CleanName(name)
	if err != nil {
		return err
	}
	spec, err := encode(steps)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `INSERT INTO pipelines (name, spec, steps, created_at) VALUES (?, ?, ?, ?)`,
		name, string(spec), len(steps), now)
	if isConstraintError(err) {
		return fmt.Errorf("pipeline %q %w", name, ErrAlreadyExists)
	}
	return err
}

// Load fetches the steps of a saved pipeline
func (s *SQLiteStore) Load(ctx context.Context, name string) ([]model.PipelineStep, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}
	var spec string
	err = s.db.QueryRowContext(ctx, `SELECT spec FROM pipelines WHERE name = ?`, name).Scan(&spec)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pipeline %q %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return decode([]byte(spec))
}

// List returns all saved pipelines, newest first
func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, steps, created_at FROM pipelines ORDER BY created_at DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.Name, &sum.Steps, &sum.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes a saved pipeline
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	name, err := CleanName(name)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM pipelines WHERE name = ?`, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("pipeline %q %w", name, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// isConstraintError checks for a sqlite primary key or unique violation.
func isConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
