package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pipeline-builder/internal/export"
)

const sampleDoc = `{"pipeline":[
	{"type":"sort","label":"Sort","params":{"by":["price"],"ascending":[true]}},
	{"type":"constant","label":"Constant","params":{"columns":{"source":"web"}}}
]}`

// testEnv writes a config with a sqlite store and an output directory under
// a temp dir and returns its path.
func testEnv(t *testing.T) (dir, configPath string) {
	t.Helper()
	dir = t.TempDir()
	configPath = filepath.Join(dir, "config.yaml")
	conf := "store:\n  driver: sqlite\n  path: " + filepath.Join(dir, "pipelines.db") +
		"\nexport:\n  dir: " + filepath.Join(dir, "out") +
		"\nlogging:\n  level: error\n"
	require.NoError(t, os.WriteFile(configPath, []byte(conf), 0o644))
	return dir, configPath
}

func writeDoc(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	exportFlags.format, exportFlags.query, exportFlags.outDir, exportFlags.name = export.FormatJSON, "", "", ""
	loadFlags.format = export.FormatJSON
	validateFlags.strict = false
	rootFlags.config = ""

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestOperators(t *testing.T) {
	out, err := execute(t, "operators")
	require.NoError(t, err)
	assert.Contains(t, out, "Filter")
	assert.Contains(t, out, "Value mapping")
	assert.Contains(t, out, "action fields:")
	assert.Contains(t, out, "no parameters")

	out, err = execute(t, "operators", "tag")
	require.NoError(t, err)
	assert.Contains(t, out, "aligned with tags")
	assert.NotContains(t, out, "Sort")

	_, err = execute(t, "operators", "pivot")
	assert.ErrorContains(t, err, `unknown operator "pivot"`)
}

func TestValidate(t *testing.T) {
	dir, conf := testEnv(t)
	good := writeDoc(t, dir, "good.json", sampleDoc)
	out, err := execute(t, "--config", conf, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "ok (2 steps)")

	bad := writeDoc(t, dir, "bad.yaml", "pipeline:\n  - type: pivot\n    label: Pivot\n")
	out, err = execute(t, "--config", conf, "validate", bad)
	assert.ErrorContains(t, err, "1 error(s)")
	assert.Contains(t, out, "error: step 1")

	empty := writeDoc(t, dir, "empty.json", `{"pipeline":[]}`)
	_, err = execute(t, "--config", conf, "validate", empty)
	require.NoError(t, err)
	_, err = execute(t, "--config", conf, "validate", "--strict", empty)
	assert.ErrorContains(t, err, "1 warning(s)")
}

func TestExport(t *testing.T) {
	dir, conf := testEnv(t)
	src := writeDoc(t, dir, "pipeline.json", sampleDoc)

	out, err := execute(t, "--config", conf, "export", src, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "type: sort")

	out, err = execute(t, "--config", conf, "export", src, "--query", ".pipeline[].type")
	require.NoError(t, err)
	assert.Equal(t, "\"sort\"\n\"constant\"\n", out)

	out, err = execute(t, "--config", conf, "export", src, "--name", "daily")
	require.NoError(t, err)
	want := filepath.Join(dir, "out", "daily", "pipeline.json")
	assert.Equal(t, want, strings.TrimSpace(out))
	_, err = os.Stat(want)
	assert.NoError(t, err)

	_, err = execute(t, "--config", conf, "export", src, "--format", "xml")
	assert.ErrorIs(t, err, export.ErrUnknownFormat)
}

func TestStoreCommands(t *testing.T) {
	dir, conf := testEnv(t)
	src := writeDoc(t, dir, "pipeline.json", sampleDoc)

	out, err := execute(t, "--config", conf, "save", "daily", src)
	require.NoError(t, err)
	assert.Contains(t, out, `saved "daily" (2 steps)`)

	_, err = execute(t, "--config", conf, "save", "daily", src)
	assert.ErrorContains(t, err, "already exists")

	out, err = execute(t, "--config", conf, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "daily")

	out, err = execute(t, "--config", conf, "load", "daily", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "type: constant")
	assert.NotContains(t, out, "id:")

	_, err = execute(t, "--config", conf, "delete", "daily")
	require.NoError(t, err)
	_, err = execute(t, "--config", conf, "load", "daily")
	assert.ErrorContains(t, err, "not found")
}
