// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for arxmlmerge.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"arxmlmerge/internal/config"
	"arxmlmerge/internal/issue"
	"arxmlmerge/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// loadedConfig holds the configuration resolved by initRootConfig.
	// Commands read it instead of loading the config themselves.
	loadedConfig = config.DefaultConfig()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "arxmlmerge",
		Short: "Merge AUTOSAR ARXML files with conflict resolution",
		Long: TitleStyle.Render("arxmlmerge") + SubtitleStyle.Render(" - Merge AUTOSAR ARXML files with conflict resolution") + `

arxmlmerge combines the package trees of multiple ARXML documents into
one document. Colliding elements are classified (duplicates, attribute
or content differences, incompatible types, version mismatches) and
resolved by a configurable strategy: keep the first or last occurrence,
merge attributes or content, ask interactively, or follow rules loaded
from a JSON rule file.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Validate your inputs with: arxmlmerge validate <files...>
  2. Merge them with: arxmlmerge merge <files...> -o merged.arxml
  3. Inspect conflicts in the report: arxmlmerge merge ... --report-html

` + SubtitleStyle.Render("Examples:") + `
  arxmlmerge merge a.arxml b.arxml -o out.arxml   Merge two documents
  arxmlmerge merge *.arxml --strategy latest-wins Later files win conflicts
  arxmlmerge merge a.arxml b.arxml --rules r.json Rule-driven resolution
  arxmlmerge validate a.arxml --depth structure   Check document structure
  arxmlmerge rules check r.json                   Lint a rule file`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/arxmlmerge/config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(rulesCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	opts := config.LoadOptions{}
	if cfgFile != "" {
		opts.ConfigFilePath = types.FilesystemPath(cfgFile)
	}

	cfg, err := config.NewProvider().Load(context.Background(), opts)
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		if verbose {
			renderIssue(issue.ConfigLoadFailedId)
		}
	}
	if cfg != nil {
		loadedConfig = cfg
	}

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = loadedConfig.UI.Verbose
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}

// renderIssue prints the catalog entry for id to stderr, rendered for the
// configured color scheme. Rendering failures are swallowed; the caller's
// error still reaches the user through the normal path.
func renderIssue(id issue.Id) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render(colorScheme())
	if err != nil {
		return
	}
	fmt.Fprint(os.Stderr, rendered)
}

// colorScheme maps the configured color scheme to a glamour style name.
func colorScheme() string {
	if loadedConfig.UI.ColorScheme == config.ColorSchemeLight {
		return "light"
	}
	return "dark"
}
