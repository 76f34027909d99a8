package main

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"go-pipeline-builder/internal/validate"
)

var validateFlags struct {
	columns []string
	strict  bool
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a pipeline document for errors and warnings",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringSliceVar(&validateFlags.columns, "columns", nil, "Known input columns (comma-separated)")
	f.BoolVar(&validateFlags.strict, "strict", false, "Fail on warnings too")
}

func runValidate(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}
	rep := validate.Pipeline(doc.Pipeline, validateFlags.columns)

	out := cmd.OutOrStdout()
	for _, issue := range rep.Issues {
		style := warnStyle
		if issue.Severity == validate.SeverityError {
			style = errorStyle
		}
		lipgloss.Fprintln(out, style.Render(issue.String()))
	}

	switch {
	case !rep.Valid():
		return fmt.Errorf("%s: %d error(s)", args[0], len(rep.Errors()))
	case validateFlags.strict && len(rep.Issues) > 0:
		return fmt.Errorf("%s: %d warning(s)", args[0], len(rep.Issues))
	}
	lipgloss.Fprintln(out, okStyle.Render(fmt.Sprintf("%s: ok (%d steps)", args[0], len(doc.Pipeline))))
	return nil
}
