// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"arxmlmerge/internal/issue"
	"arxmlmerge/pkg/arxml"
	"arxmlmerge/pkg/types"
	"arxmlmerge/pkg/validate"

	"github.com/spf13/cobra"
)

var (
	validateDepth string

	validateCmd = &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate ARXML document structure",
		Long: TitleStyle.Render("arxmlmerge validate") + SubtitleStyle.Render(" - Validate ARXML document structure") + `

Checks each input for the structural rules a merge relies on: an AUTOSAR
root, well-formed package trees, SHORT-NAME presence and sibling
uniqueness, and resolvable reference paths.

Depths:
  basic      root element and package tree shape
  structure  basic plus names, duplicates, and references (default)
  schema     reserved, currently behaves like structure
  semantic   reserved, currently behaves like structure

Exit codes: 0 when every file is valid, 1 when any file has errors,
2 when no input file parses at all.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runValidate,
	}
)

func init() {
	validateCmd.Flags().StringVar(&validateDepth, "depth", "", "validation depth: basic, structure, schema, semantic")
}

func runValidate(cmd *cobra.Command, args []string) error {
	depthValue := validateDepth
	if depthValue == "" {
		depthValue = loadedConfig.ValidationDepth.String()
	}
	depth, err := validate.ParseDepth(depthValue)
	if err != nil {
		return &ExitError{Code: types.ExitFailure, Err: issue.NewErrorContext().
			WithOperation("select validation depth").
			WithSuggestion("Valid depths are basic, structure, schema, and semantic.").
			Wrap(err).
			Build()}
	}

	parsed := 0
	failed := 0
	malformed := 0
	for _, path := range args {
		doc, err := arxml.ParseFile(path)
		if err != nil {
			failed++
			malformed++
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("error")+" "+CmdStyle.Render(path)+": "+err.Error())
			continue
		}
		parsed++

		result := validate.Validate(doc, depth)
		for _, iss := range result.Issues {
			printValidationIssue(path, iss)
		}
		if result.Valid {
			fmt.Fprintln(os.Stdout, SuccessStyle.Render("valid")+"   "+path)
		} else {
			failed++
			fmt.Fprintln(os.Stdout, ErrorStyle.Render("invalid")+" "+path)
		}
	}

	if malformed > 0 {
		renderIssue(issue.MalformedDocumentId)
	}
	if parsed == 0 {
		renderIssue(issue.NoValidInputId)
		return &ExitError{Code: types.ExitNoValidInput, Err: issue.NewErrorContext().
			WithOperation("validate documents").
			Wrap(fmt.Errorf("no valid input documents among %d file(s)", len(args))).
			Build()}
	}
	if failed > 0 {
		renderIssue(issue.ValidationFailedId)
		return &ExitError{Code: types.ExitFailure, Err: fmt.Errorf("%d of %d file(s) failed validation", failed, len(args))}
	}
	return nil
}

// printValidationIssue renders one finding with a severity-colored prefix.
func printValidationIssue(path string, iss validate.Issue) {
	prefix := WarningStyle.Render(string(iss.Severity))
	if iss.Severity.FailsValidation() {
		prefix = ErrorStyle.Render(string(iss.Severity))
	}
	line := fmt.Sprintf("%s %s: %s", prefix, CmdStyle.Render(path+iss.Path), iss.Message)
	if iss.Suggestion != "" && GetVerbose() {
		line += VerboseStyle.Render(" (" + iss.Suggestion + ")")
	}
	fmt.Fprintln(os.Stdout, line)
}
