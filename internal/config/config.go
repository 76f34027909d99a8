package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"go-pipeline-builder/internal/logging"
	"go-pipeline-builder/internal/store"
	"go-pipeline-builder/pkg/utils"
)

var ErrUnsupportedFormat = errors.New("unsupported config format")

type ServerConfig struct {
	Address         string `yaml:"address" toml:"address" json:"address"`
	ReadTimeout     string `yaml:"read_timeout" toml:"read_timeout" json:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout" toml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout" toml:"shutdown_timeout" json:"shutdown_timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level" json:"level"`
	Format string `yaml:"format" toml:"format" json:"format"`
}

type SessionConfig struct {
	Max           int    `yaml:"max" toml:"max" json:"max"`
	IdleTTL       string `yaml:"idle_ttl" toml:"idle_ttl" json:"idle_ttl"`
	SweepInterval string `yaml:"sweep_interval" toml:"sweep_interval" json:"sweep_interval"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" toml:"enabled" json:"enabled"`
	Path      string `yaml:"path" toml:"path" json:"path"`
	Namespace string `yaml:"namespace" toml:"namespace" json:"namespace"`
}

type ExportConfig struct {
	Dir string `yaml:"dir" toml:"dir" json:"dir"`
}

// AppConfig is the configuration of the builder service and CLI.
type AppConfig struct {
	Server   ServerConfig  `yaml:"server" toml:"server" json:"server"`
	Store    store.Config  `yaml:"store" toml:"store" json:"store"`
	Logging  LoggingConfig `yaml:"logging" toml:"logging" json:"logging"`
	Sessions SessionConfig `yaml:"sessions" toml:"sessions" json:"sessions"`
	Metrics  MetricsConfig `yaml:"metrics" toml:"metrics" json:"metrics"`
	Export   ExportConfig  `yaml:"export" toml:"export" json:"export"`
}

// Default returns the configuration used when no file is given.
func Default() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Address:         ":8080",
			ReadTimeout:     "15s",
			WriteTimeout:    "15s",
			ShutdownTimeout: "10s",
		},
		Store:    store.Config{Driver: "sqlite", Path: "pipelines.db"},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
		Sessions: SessionConfig{Max: 1000, IdleTTL: "30m", SweepInterval: "1m"},
		Metrics:  MetricsConfig{Enabled: true, Path: "/metrics", Namespace: "pipeline_builder"},
		Export:   ExportConfig{Dir: "output"},
	}
}

// Load reads path over the defaults. The decoder is chosen by extension:
// .yaml/.yml, .toml or .json. An empty path returns the defaults.
func Load(path string) (AppConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks values that would otherwise fail late at startup.
func (c AppConfig) Validate() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format: must be text or json, got %q", c.Logging.Format)
	}
	switch c.Store.Driver {
	case "", "sqlite", "sqlite3", "memory":
	case "postgres", "pg":
		if c.Store.DSN == "" {
			return errors.New("store.dsn: required for postgres")
		}
	default:
		return fmt.Errorf("store.driver: unknown driver %q", c.Store.Driver)
	}
	if c.Sessions.Max < 0 {
		return fmt.Errorf("sessions.max: must not be negative, got %d", c.Sessions.Max)
	}
	return nil
}

// Timeouts returns the parsed server timeouts.
func (s ServerConfig) Timeouts() (read, write, shutdown time.Duration) {
	return utils.ParseDuration(s.ReadTimeout, 15*time.Second),
		utils.ParseDuration(s.WriteTimeout, 15*time.Second),
		utils.ParseDuration(s.ShutdownTimeout, 10*time.Second)
}

// IdleTTLDuration returns how long an untouched session is kept. 0 keeps sessions
// until deleted.
func (s SessionConfig) IdleTTLDuration() time.Duration {
	return utils.ParseDuration(s.IdleTTL, 30*time.Minute)
}

func (s SessionConfig) SweepEvery() time.Duration {
	return utils.ParseDuration(s.SweepInterval, time.Minute)
}
