package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "builder.yaml", `
server:
  address: ":9090"
  read_timeout: 5s
store:
  driver: memory
logging:
  level: debug
  format: json
sessions:
  max: 10
  idle_ttl: 2m
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	read, write, shutdown := cfg.Server.Timeouts()
	assert.Equal(t, 5*time.Second, read)
	assert.Equal(t, 15*time.Second, write, "unset values keep defaults")
	assert.Equal(t, 10*time.Second, shutdown)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 10, cfg.Sessions.Max)
	assert.Equal(t, 2*time.Minute, cfg.Sessions.IdleTTLDuration())
	assert.Equal(t, time.Minute, cfg.Sessions.SweepEvery())
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "builder.toml", `
[store]
driver = "postgres"
dsn = "postgres://localhost/pipelines"
max_conns = 4

[metrics]
enabled = false
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, int32(4), cfg.Store.MaxConns)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":8080", cfg.Server.Address)
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "builder.json", `{"export": {"dir": "/tmp/out"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", cfg.Export.Dir)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeConfig(t, "builder.ini", "x=1"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "bad.yaml", "logging:\n  level: loud\n"))
	assert.ErrorContains(t, err, "logging.level")

	_, err = Load(writeConfig(t, "pg.yaml", "store:\n  driver: postgres\n"))
	assert.ErrorContains(t, err, "store.dsn")
}

func TestLoadEmptyPathIsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}
