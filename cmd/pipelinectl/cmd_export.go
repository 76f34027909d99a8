package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"go-pipeline-builder/internal/export"
	"go-pipeline-builder/pkg/utils"
)

var exportFlags struct {
	format string
	query  string
	outDir string
	name   string
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Re-encode a pipeline document, query it, or write it to the output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportFlags.format, "format", export.FormatJSON, "Output format: json or yaml")
	f.StringVar(&exportFlags.query, "query", "", "jq expression to run over the document")
	f.StringVar(&exportFlags.outDir, "out-dir", "", "Output directory (defaults to export.dir from config)")
	f.StringVar(&exportFlags.name, "name", "", "Write to <out-dir>/<name>/ instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if exportFlags.query != "" {
		results, err := export.Query(doc, exportFlags.query)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		for _, v := range results {
			if err := enc.Encode(v); err != nil {
				return err
			}
		}
		return nil
	}

	if exportFlags.name != "" {
		dir := exportFlags.outDir
		if dir == "" {
			dir = cfg.Export.Dir
		}
		path, err := export.WriteFile(utils.NewOutputManager(dir), exportFlags.name, doc, exportFlags.format)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, path)
		return nil
	}

	data, err := export.Marshal(doc, exportFlags.format)
	if err != nil {
		return err
	}
	out.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Fprintln(out)
	}
	return nil
}
