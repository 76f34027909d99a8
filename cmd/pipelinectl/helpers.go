package main

import (
	"context"
	"fmt"
	"os"

	"charm.land/lipgloss/v2"

	"go-pipeline-builder/internal/export"
	"go-pipeline-builder/internal/model"
	"go-pipeline-builder/internal/store"
	"go-pipeline-builder/pkg/utils"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// readDocument decodes a pipeline document, picking json or yaml from the
// file extension. Unknown extensions are read as json.
func readDocument(path string) (model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	format := utils.NewOutputManager(cfg.Export.Dir).GetFileType(path)
	if format == "unknown" {
		format = export.FormatJSON
	}
	return export.Unmarshal(data, format)
}

func openStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
