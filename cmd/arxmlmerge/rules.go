// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"arxmlmerge/internal/issue"
	"arxmlmerge/pkg/merge"
	"arxmlmerge/pkg/types"

	"github.com/spf13/cobra"
)

var (
	rulesCmd = &cobra.Command{
		Use:   "rules",
		Short: "Inspect conflict resolution rules",
		Long: TitleStyle.Render("arxmlmerge rules") + SubtitleStyle.Render(" - Inspect conflict resolution rules") + `

Rule files bind (element type, conflict type) pairs to resolution
strategies. They are JSON with comments and are rejected wholesale when
any rule names an unknown element type, conflict type, or strategy.`,
	}

	rulesCheckCmd = &cobra.Command{
		Use:   "check <file>...",
		Short: "Check rule files and list the rules they load",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRulesCheck,
	}

	rulesListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the built-in rules used by the rule-based strategy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printRules(merge.DefaultRules())
			return nil
		},
	}
)

func init() {
	rulesCmd.AddCommand(rulesCheckCmd)
	rulesCmd.AddCommand(rulesListCmd)
}

func runRulesCheck(cmd *cobra.Command, args []string) error {
	rs := merge.EmptyRules()
	for _, path := range args {
		if err := rs.LoadFile(path); err != nil {
			renderIssue(issue.RuleFileRejectedId)
			return &ExitError{Code: types.ExitFailure, Err: issue.NewErrorContext().
				WithOperation("load rule file").
				WithResource(path).
				WithSuggestions(
					"Check the JSON syntax; comments and trailing commas are allowed.",
					"Check the conflict_type and resolution_strategy values.",
				).
				Wrap(err).
				Build()}
		}
	}
	fmt.Fprintln(os.Stdout, SuccessStyle.Render("OK ")+fmt.Sprintf("%d rule(s) loaded from %d file(s)", len(rs.Rules()), len(args)))
	printRules(rs)
	return nil
}

// printRules lists rules in consultation order.
func printRules(rs *merge.RuleSet) {
	for _, r := range rs.Rules() {
		line := fmt.Sprintf("  p%-3d %s %s -> %s",
			r.Priority, CmdStyle.Render(r.ElementType), r.Conflict.String(), r.Resolution.String())
		if r.CustomHandler != "" {
			line += VerboseStyle.Render(" (handler: " + r.CustomHandler + ")")
		}
		fmt.Fprintln(os.Stdout, line)
	}
}
