// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// StrategyConservative keeps the first occurrence on every conflict.
	StrategyConservative MergeStrategy = "conservative"
	// StrategyLatestWins keeps the last occurrence on every conflict.
	StrategyLatestWins MergeStrategy = "latest-wins"
	// StrategyInteractive asks the user to resolve each conflict.
	StrategyInteractive MergeStrategy = "interactive"
	// StrategyRuleBased resolves conflicts via the rule engine.
	StrategyRuleBased MergeStrategy = "rule-based"

	// DepthBasic checks only XML well-formedness and the document root.
	DepthBasic ValidationDepth = "basic"
	// DepthStructure additionally checks the package tree and SHORT-NAMEs.
	DepthStructure ValidationDepth = "structure"
	// DepthSchema additionally checks schema-level constraints.
	DepthSchema ValidationDepth = "schema"
	// DepthSemantic additionally checks cross-references.
	DepthSemantic ValidationDepth = "semantic"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidMergeStrategy is returned when a MergeStrategy value is not recognized.
	ErrInvalidMergeStrategy = errors.New("invalid merge strategy")
	// ErrInvalidValidationDepth is returned when a ValidationDepth value is not recognized.
	ErrInvalidValidationDepth = errors.New("invalid validation depth")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidRuleFilePath is the sentinel error wrapped by InvalidRuleFilePathError.
	ErrInvalidRuleFilePath = errors.New("invalid rule file path")
	// ErrInvalidReportConfig is the sentinel error wrapped by InvalidReportConfigError.
	ErrInvalidReportConfig = errors.New("invalid report config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// MergeStrategy specifies the run-level conflict resolution strategy.
	// Defined locally to avoid coupling config to pkg/merge; the CLI casts
	// to merge.StrategyName at the boundary.
	MergeStrategy string

	// InvalidMergeStrategyError is returned when a MergeStrategy value is not
	// recognized. It wraps ErrInvalidMergeStrategy for errors.Is() compatibility.
	InvalidMergeStrategyError struct {
		Value MergeStrategy
	}

	// ValidationDepth specifies how deep the structural validator checks.
	// Defined locally to avoid coupling config to pkg/validate.
	ValidationDepth string

	// InvalidValidationDepthError is returned when a ValidationDepth value is not
	// recognized. It wraps ErrInvalidValidationDepth for errors.Is() compatibility.
	InvalidValidationDepthError struct {
		Value ValidationDepth
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// RuleFilePath represents a filesystem path to a JSON rule file.
	// A valid path must be non-empty and not whitespace-only.
	RuleFilePath string

	// InvalidRuleFilePathError is returned when a RuleFilePath value is
	// empty or whitespace-only. It wraps ErrInvalidRuleFilePath for errors.Is().
	InvalidRuleFilePathError struct {
		Value RuleFilePath
	}

	// InvalidReportConfigError is returned when a ReportConfig has invalid fields.
	// It wraps ErrInvalidReportConfig for errors.Is() compatibility.
	InvalidReportConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Strategy sets the default run-level merge strategy.
		Strategy MergeStrategy `json:"strategy" mapstructure:"strategy"`
		// ValidationDepth sets the default validator depth.
		ValidationDepth ValidationDepth `json:"validation_depth" mapstructure:"validation_depth"`
		// RuleFiles lists rule files loaded into every rule-based merge.
		RuleFiles []RuleFilePath `json:"rule_files" mapstructure:"rule_files"`
		// Report configures which report formats are written after a merge.
		Report ReportConfig `json:"report" mapstructure:"report"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// ReportConfig selects the report formats written after a merge.
	ReportConfig struct {
		// JSON enables the machine-readable JSON report.
		JSON bool `json:"json" mapstructure:"json"`
		// CSV enables the spreadsheet-friendly CSV conflict table.
		CSV bool `json:"csv" mapstructure:"csv"`
		// HTML enables the self-contained HTML report page.
		HTML bool `json:"html" mapstructure:"html"`
		// Dir is where report files are written; empty means the current
		// directory.
		Dir string `json:"dir" mapstructure:"dir"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// Error implements the error interface for InvalidMergeStrategyError.
func (e *InvalidMergeStrategyError) Error() string {
	return fmt.Sprintf("invalid merge strategy %q (valid: conservative, latest-wins, interactive, rule-based)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidMergeStrategyError) Unwrap() error {
	return ErrInvalidMergeStrategy
}

// String returns the string representation of the MergeStrategy.
func (s MergeStrategy) String() string { return string(s) }

// IsValid returns whether the MergeStrategy is one of the defined strategies,
// and a list of validation errors if it is not.
func (s MergeStrategy) IsValid() (bool, []error) {
	switch s {
	case StrategyConservative, StrategyLatestWins, StrategyInteractive, StrategyRuleBased:
		return true, nil
	default:
		return false, []error{&InvalidMergeStrategyError{Value: s}}
	}
}

// Error implements the error interface for InvalidValidationDepthError.
func (e *InvalidValidationDepthError) Error() string {
	return fmt.Sprintf("invalid validation depth %q (valid: basic, structure, schema, semantic)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidValidationDepthError) Unwrap() error {
	return ErrInvalidValidationDepth
}

// String returns the string representation of the ValidationDepth.
func (d ValidationDepth) String() string { return string(d) }

// IsValid returns whether the ValidationDepth is one of the defined depths,
// and a list of validation errors if it is not.
func (d ValidationDepth) IsValid() (bool, []error) {
	switch d {
	case DepthBasic, DepthStructure, DepthSchema, DepthSemantic:
		return true, nil
	default:
		return false, []error{&InvalidValidationDepthError{Value: d}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// String returns the string representation of the RuleFilePath.
func (p RuleFilePath) String() string { return string(p) }

// IsValid returns whether the RuleFilePath is valid.
// A valid path must be non-empty and not whitespace-only.
func (p RuleFilePath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidRuleFilePathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidRuleFilePathError.
func (e *InvalidRuleFilePathError) Error() string {
	return fmt.Sprintf("invalid rule file path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidRuleFilePath for errors.Is() compatibility.
func (e *InvalidRuleFilePathError) Unwrap() error { return ErrInvalidRuleFilePath }

// IsValid returns whether the ReportConfig has valid fields.
// Bool fields need no validation; only a whitespace-only Dir is rejected.
func (c ReportConfig) IsValid() (bool, []error) {
	if c.Dir != "" && strings.TrimSpace(c.Dir) == "" {
		return false, []error{&InvalidReportConfigError{
			FieldErrors: []error{fmt.Errorf("report dir must not be whitespace-only")},
		}}
	}
	return true, nil
}

// Error implements the error interface for InvalidReportConfigError.
func (e *InvalidReportConfigError) Error() string {
	return fmt.Sprintf("invalid report config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidReportConfig for errors.Is() compatibility.
func (e *InvalidReportConfigError) Unwrap() error { return ErrInvalidReportConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Strategy.IsValid(), ValidationDepth.IsValid(), each
// RuleFiles entry's IsValid(), Report.IsValid(), and UI.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Strategy.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.ValidationDepth.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, path := range c.RuleFiles {
		if valid, fieldErrs := path.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.Report.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Strategy:        StrategyConservative,
		ValidationDepth: DepthStructure,
		RuleFiles:       []RuleFilePath{},
		Report: ReportConfig{
			JSON: false,
			CSV:  false,
			HTML: false,
			Dir:  "",
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
