package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-pipeline-builder/internal/model"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrInvalidName   = errors.New("invalid pipeline name")
)

// Summary describes a saved pipeline without its steps.
type Summary struct {
	Name      string    `json:"name"`
	Steps     int       `json:"steps"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists named pipelines. Save never overwrites: a second save under
// the same name fails with ErrAlreadyExists.
type Store interface {
	Save(ctx context.Context, name string, steps []model.PipelineStep) error
	Load(ctx context.Context, name string) ([]model.PipelineStep, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// Config selects and configures a Store.
type Config struct {
	Driver   string `yaml:"driver" toml:"driver" json:"driver"`
	Path     string `yaml:"path" toml:"path" json:"path"`
	DSN      string `yaml:"dsn" toml:"dsn" json:"dsn"`
	MaxConns int32  `yaml:"max_conns" toml:"max_conns" json:"max_conns"`
}

// Open returns the store named by cfg.Driver: sqlite, postgres or memory.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite", "sqlite3":
		path := cfg.Path
		if path == "" {
			path = "pipelines.db"
		}
		return NewSQLiteStore(path)
	case "postgres", "pg":
		return NewPostgresStore(ctx, cfg.DSN, cfg.MaxConns)
	case "memory":
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// CleanName trims name and rejects blank names.
func CleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}
	return name, nil
}

// encode stores the downstream document, so saved pipelines carry no step ids.
func encode(steps []model.PipelineStep) ([]byte, error) {
	b, err := json.Marshal(model.Export(steps))
	if err != nil {
		return nil, fmt.Errorf("encode pipeline: %w", err)
	}
	return b, nil
}

func decode(b []byte) ([]model.PipelineStep, error) {
	var doc model.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode pipeline: %w", err)
	}
	if doc.Pipeline == nil {
		doc.Pipeline = []model.PipelineStep{}
	}
	return doc.Pipeline, nil
}
