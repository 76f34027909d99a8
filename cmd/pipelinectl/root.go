package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-pipeline-builder/internal/config"
	"go-pipeline-builder/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	config string
}

// cfg is loaded once per invocation before any subcommand runs.
var cfg config.AppConfig

var rootCmd = &cobra.Command{
	Use:   "pipelinectl",
	Short: "Inspect, validate and store pipeline definitions",
	Long:  "pipelinectl works with the pipeline documents produced by the builder:\nlist operators, validate and export documents, and manage saved pipelines.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.config, "config", "", "Path to a yaml, toml or json config file")

	rootCmd.AddCommand(operatorsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.Version = version
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(rootFlags.config)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	logging.Init(level, c.Logging.Format, cmd.ErrOrStderr())
	cfg = c
	return nil
}
