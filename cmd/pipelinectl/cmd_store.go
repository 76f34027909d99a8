package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"go-pipeline-builder/internal/export"
	"go-pipeline-builder/internal/model"
)

var loadFlags struct {
	format string
}

var saveCmd = &cobra.Command{
	Use:   "save <name> <file>",
	Short: "Store a pipeline document under a unique name",
	Args:  cobra.ExactArgs(2),
	RunE:  runSave,
}

var loadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Print a saved pipeline",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoad,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved pipelines, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved pipeline",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	loadCmd.Flags().StringVar(&loadFlags.format, "format", export.FormatJSON, "Output format: json or yaml")
}

func runSave(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(args[1])
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Save(cmd.Context(), args[0], doc.Pipeline); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %q (%d steps)\n", args[0], len(doc.Pipeline))
	return nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	steps, err := st.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	data, err := export.Marshal(model.Export(steps), loadFlags.format)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	out.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Fprintln(out)
	}
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	list, err := st.List(cmd.Context())
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTEPS\tCREATED")
	for _, s := range list {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Name, s.Steps, s.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

func runDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %q\n", args[0])
	return nil
}
