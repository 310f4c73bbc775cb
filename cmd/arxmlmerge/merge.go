// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"arxmlmerge/internal/issue"
	"arxmlmerge/internal/report"
	"arxmlmerge/pkg/arxml"
	"arxmlmerge/pkg/merge"
	"arxmlmerge/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	mergeOutput     string
	mergeStrategy   string
	mergeRuleFiles  []string
	mergeReportJSON bool
	mergeReportCSV  bool
	mergeReportHTML bool
	mergeReportDir  string
	mergeRecursive  bool

	mergeCmd = &cobra.Command{
		Use:   "merge <file>...",
		Short: "Merge ARXML documents into one",
		Long: TitleStyle.Render("arxmlmerge merge") + SubtitleStyle.Render(" - Merge ARXML documents into one") + `

Parses every input file, folds their package trees together in argument
order, and writes the merged document. Files that fail to parse are
skipped with a warning; the merge fails only when no input parses.

Colliding elements are resolved by the selected strategy:
  conservative  keep the first occurrence (default)
  latest-wins   keep the last occurrence
  interactive   prompt on the terminal for each conflict
  rule-based    consult built-in and loaded rules, then keep first

Exit codes: 0 on success (conflicts may have been resolved), 1 on
failure, 2 when no input file yields a valid document.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runMerge,
	}
)

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "merged.arxml", "path of the merged document")
	mergeCmd.Flags().StringVar(&mergeStrategy, "strategy", "", "conflict strategy: conservative, latest-wins, interactive, rule-based")
	mergeCmd.Flags().StringArrayVar(&mergeRuleFiles, "rules", nil, "rule file to load (repeatable, JSON with comments)")
	mergeCmd.Flags().BoolVar(&mergeReportJSON, "report-json", false, "write a JSON merge report")
	mergeCmd.Flags().BoolVar(&mergeReportCSV, "report-csv", false, "write a CSV conflict table")
	mergeCmd.Flags().BoolVar(&mergeReportHTML, "report-html", false, "write a self-contained HTML report")
	mergeCmd.Flags().StringVar(&mergeReportDir, "report-dir", "", "directory for report files (default is the config report dir or the current directory)")
	mergeCmd.Flags().BoolVar(&mergeRecursive, "recursive-content", false, "recurse into children when merging content")
}

func runMerge(cmd *cobra.Command, args []string) error {
	strategyValue := mergeStrategy
	if strategyValue == "" {
		strategyValue = loadedConfig.Strategy.String()
	}
	strategy, err := merge.ParseStrategyName(strategyValue)
	if err != nil {
		return &ExitError{Code: types.ExitFailure, Err: issue.NewErrorContext().
			WithOperation("select merge strategy").
			WithSuggestion("Valid strategies are conservative, latest-wins, interactive, and rule-based.").
			Wrap(err).
			Build()}
	}

	var chooser merge.Chooser
	if strategy == merge.StrategyInteractive {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			chooser = newTerminalChooser(os.Stdin, os.Stderr)
		} else {
			// Piped stdin cannot answer prompts; the engine degrades
			// user_choice conflicts to keep_first.
			renderIssue(issue.ChooserUnavailableId)
		}
	}

	engineCfg := merge.ConfigFor(strategy, chooser)
	engineCfg.RecursiveContentMerge = mergeRecursive

	ruleFiles := make([]string, 0, len(loadedConfig.RuleFiles)+len(mergeRuleFiles))
	for _, rf := range loadedConfig.RuleFiles {
		ruleFiles = append(ruleFiles, rf.String())
	}
	ruleFiles = append(ruleFiles, mergeRuleFiles...)
	if len(ruleFiles) > 0 && engineCfg.Rules == nil {
		// Explicit rule files apply under any strategy, but only the
		// rule-based preset carries the built-in rules.
		engineCfg.Rules = merge.EmptyRules()
	}
	for _, rf := range ruleFiles {
		if err := engineCfg.Rules.LoadFile(rf); err != nil {
			renderIssue(issue.RuleFileRejectedId)
			return &ExitError{Code: types.ExitFailure, Err: issue.NewErrorContext().
				WithOperation("load rule file").
				WithResource(rf).
				WithSuggestions(
					"Check the conflict_type and resolution_strategy values against 'arxmlmerge rules check'.",
					"A rule file with any invalid rule is rejected wholesale.",
				).
				Wrap(err).
				Build()}
		}
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "merge"})
	if GetVerbose() {
		logger.SetLevel(log.DebugLevel)
	}

	result := merge.MergeFiles(args, engineCfg)

	if !result.Success {
		for _, msg := range result.Errors {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+msg)
		}
		renderIssue(issue.NoValidInputId)
		return &ExitError{Code: types.ExitNoValidInput, Err: issue.NewErrorContext().
			WithOperation("merge documents").
			WithSuggestion("Run 'arxmlmerge validate <file>' on each input to find what is wrong.").
			Wrap(fmt.Errorf("no valid input documents among %d file(s)", len(args))).
			Build()}
	}

	// Parse failures of individual inputs do not fail the run.
	for _, msg := range result.Errors {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+"skipped input: "+msg)
	}
	for _, w := range result.Warnings {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+w)
	}
	for _, rc := range result.Conflicts {
		logger.Debug("conflict resolved",
			"path", rc.Context.Path,
			"type", rc.Context.Type.String(),
			"strategy", rc.Resolution.Applied.String(),
			"outcome", rc.Resolution.Description)
	}

	if err := arxml.WriteFile(mergeOutput, result.Document); err != nil {
		renderIssue(issue.OutputWriteFailedId)
		return &ExitError{Code: types.ExitFailure, Err: issue.NewErrorContext().
			WithOperation("write merged document").
			WithResource(mergeOutput).
			WithSuggestion("Check that the output directory exists and is writable.").
			Wrap(err).
			Build()}
	}

	if err := writeReports(result, args, strategy); err != nil {
		return &ExitError{Code: types.ExitFailure, Err: err}
	}

	fmt.Fprintln(os.Stdout, SuccessStyle.Render("Merged ")+
		fmt.Sprintf("%d file(s) into %s (%d conflict(s) resolved, %d signal(s), %d interface(s))",
			len(args)-len(result.Errors), mergeOutput, result.ConflictCount(),
			len(result.Inventory.Signals()), len(result.Inventory.Interfaces())))
	return nil
}

// writeReports writes the report formats selected by flags or config.
func writeReports(result merge.Result, inputs []string, strategy merge.StrategyName) error {
	formats := report.Formats{
		JSON: mergeReportJSON || loadedConfig.Report.JSON,
		CSV:  mergeReportCSV || loadedConfig.Report.CSV,
		HTML: mergeReportHTML || loadedConfig.Report.HTML,
	}
	if !formats.JSON && !formats.CSV && !formats.HTML {
		return nil
	}

	dir := mergeReportDir
	if dir == "" {
		dir = loadedConfig.Report.Dir
	}
	if dir == "" {
		dir = "."
	}

	rep := report.New(result, inputs, string(strategy))
	paths, err := rep.WriteFiles(dir, formats)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("write merge report").
			WithResource(dir).
			WithSuggestion("Check that the report directory is writable.").
			Wrap(err).
			Build()
	}
	if GetVerbose() {
		fmt.Fprintln(os.Stderr, VerboseStyle.Render("reports: "+strings.Join(paths, ", ")))
	}
	return nil
}
