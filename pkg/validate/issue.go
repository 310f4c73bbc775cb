// SPDX-License-Identifier: MPL-2.0

package validate

import "fmt"

const (
	// SeverityInfo is informational output with no effect on validity.
	SeverityInfo Severity = "info"
	// SeverityWarning indicates a questionable construct that does not make
	// the document invalid.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a violated AUTOSAR tree invariant.
	SeverityError Severity = "error"
	// SeverityCritical indicates the document is not usable at all (wrong
	// root kind, unparseable structure).
	SeverityCritical Severity = "critical"
)

const (
	// DepthBasic checks only that the root element is an AUTOSAR container.
	DepthBasic Depth = "basic"
	// DepthStructure runs the full package-tree checks.
	DepthStructure Depth = "structure"
	// DepthSchema is a reserved extension point; it currently behaves like
	// DepthStructure.
	DepthSchema Depth = "schema"
	// DepthSemantic is a reserved extension point; it currently behaves
	// like DepthStructure.
	DepthSemantic Depth = "semantic"
)

type (
	// Severity grades a validation issue.
	Severity string

	// Depth selects how much validation to run.
	Depth string

	// Issue is one validation finding, returned to callers rather than
	// printed, so the CLI layer owns all rendering.
	Issue struct {
		// Severity is the issue grade.
		Severity Severity
		// Message is the human-readable description.
		Message string
		// Path is the structural location of the finding, e.g.
		// "/AUTOSAR/AR-PACKAGES/AR-PACKAGE[Signals]".
		Path string
		// Suggestion optionally describes how to fix the issue.
		Suggestion string
	}

	// Result bundles the findings for one document.
	Result struct {
		// Valid is false iff any issue is error or critical.
		Valid bool
		// Issues holds every finding in check order.
		Issues []Issue
	}
)

// FailsValidation reports whether the severity makes a document invalid.
func (s Severity) FailsValidation() bool {
	return s == SeverityError || s == SeverityCritical
}

// ParseDepth validates a depth name from a flag or config value.
func ParseDepth(s string) (Depth, error) {
	switch Depth(s) {
	case DepthBasic, DepthStructure, DepthSchema, DepthSemantic:
		return Depth(s), nil
	default:
		return "", fmt.Errorf("unknown validation depth %q (want basic, structure, schema, or semantic)", s)
	}
}

// Count returns the number of issues at the given severity.
func (r Result) Count(severity Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			n++
		}
	}
	return n
}
