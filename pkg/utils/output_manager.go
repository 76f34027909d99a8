package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputManager handles output file organization and path management for
// exported pipeline documents: one directory per pipeline name.
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// CreatePipelineOutputDir creates the directory for a pipeline's outputs
func (om *OutputManager) CreatePipelineOutputDir(name string) (string, error) {
	clean, err := cleanSegment(name)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(om.BaseOutputDir, clean)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create pipeline output directory: %w", err)
	}
	return dir, nil
}

// GetOutputFilePath generates a full path for an output file
func (om *OutputManager) GetOutputFilePath(name, fileName string) (string, error) {
	dir, err := om.CreatePipelineOutputDir(name)
	if err != nil {
		return "", err
	}

	// Clean the filename to remove any path separators
	return filepath.Join(dir, filepath.Base(fileName)), nil
}

// WriteFile writes data to <base>/<name>/<fileName> and returns the path.
func (om *OutputManager) WriteFile(name, fileName string, data []byte) (string, error) {
	path, err := om.GetOutputFilePath(name, fileName)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// GetFileType determines the export format from a file extension
func (om *OutputManager) GetFileType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "unknown"
	}
}

// EnsureOutputDirExists ensures the base output directory exists
func (om *OutputManager) EnsureOutputDirExists() error {
	return os.MkdirAll(om.BaseOutputDir, 0755)
}

func cleanSegment(name string) (string, error) {
	clean := filepath.Base(strings.TrimSpace(name))
	if clean == "" || clean == "." || clean == ".." || clean == string(filepath.Separator) {
		return "", fmt.Errorf("invalid output name %q", name)
	}
	return clean, nil
}
