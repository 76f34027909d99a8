package main

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"go-pipeline-builder/internal/meta"
)

var operatorsCmd = &cobra.Command{
	Use:   "operators [type]",
	Short: "List operators and their parameters",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runOperators,
}

func runOperators(cmd *cobra.Command, args []string) error {
	ops := meta.All()
	if len(args) == 1 {
		m, ok := meta.Lookup(meta.OperatorType(args[0]))
		if !ok {
			return fmt.Errorf("unknown operator %q", args[0])
		}
		ops = []meta.OperatorMeta{m}
	}

	out := cmd.OutOrStdout()
	for i, m := range ops {
		if i > 0 {
			fmt.Fprintln(out)
		}
		lipgloss.Fprintln(out, headingStyle.Render(m.Title)+" "+dimStyle.Render("("+string(m.Type)+")"))
		params := meta.LookupParams(m.Type)
		if len(params) == 0 {
			lipgloss.Fprintln(out, dimStyle.Render("  no parameters"))
		}
		printParams(cmd, params, "  ")
		if m.Type == meta.Aggregate {
			fmt.Fprintln(out, "  action fields:")
			printParams(cmd, meta.AggregateActionParams(), "    ")
		}
	}
	return nil
}

func printParams(cmd *cobra.Command, params []meta.ParamMeta, indent string) {
	out := cmd.OutOrStdout()
	for _, p := range params {
		line := fmt.Sprintf("%s%-14s %-16s", indent, p.Key, p.UIType)
		if p.Required {
			line += " required"
		}
		if p.ReferenceKey != "" {
			line += " aligned with " + p.ReferenceKey
		}
		if len(p.Options) > 0 {
			vals := make([]string, len(p.Options))
			for i, o := range p.Options {
				vals[i] = o.Value
			}
			line += fmt.Sprintf(" %v", vals)
		}
		fmt.Fprintln(out, line)
	}
}
