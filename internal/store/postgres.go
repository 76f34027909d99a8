package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-pipeline-builder/internal/model"
)

// PostgresStore keeps pipelines in PostgreSQL as JSONB documents.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to dsn and ensures the schema exists.
func NewPostgresStore(ctx context.Context, dsn string, maxConns int32) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pg config: %w", err)
	}
	if maxConns > 0 {
		poolCfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pg pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping pg: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.createTable(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) createTable(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS pipelines (
			name       TEXT        PRIMARY KEY,
			spec       JSONB       NOT NULL,
			steps      INTEGER     NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("create pipelines table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, name string, steps []model.PipelineStep) error {
	name, err := CleanName(name)
	if err != nil {
		return err
	}
	spec, err := encode(steps)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO pipelines (name, spec, steps, created_at) VALUES ($1, $2, $3, $4)`,
		name, spec, len(steps), time.Now().UTC())
	if isDuplicateError(err) {
		return fmt.Errorf("pipeline %q %w", name, ErrAlreadyExists)
	}
	return err
}

func (s *PostgresStore) Load(ctx context.Context, name string) ([]model.PipelineStep, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}
	var spec []byte
	err = s.pool.QueryRow(ctx, `SELECT spec FROM pipelines WHERE name = $1`, name).Scan(&spec)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("pipeline %q %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return decode(spec)
}

func (s *PostgresStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.pool.Query(ctx, `SELECT name, steps, created_at FROM pipelines ORDER BY created_at DESC, name`)
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

func (s *PostgresStore) Delete(ctx context.Context, name string) error {
	name, err := CleanName(name)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM pipelines WHERE name = $1`, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pipeline %q %w", name, ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// isDuplicateError checks for PostgreSQL unique-violation (23505).
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
