// SPDX-License-Identifier: MPL-2.0

package merge

import "arxmlmerge/pkg/arxml"

// Result is the outcome of one merge run.
type Result struct {
	// Success reports whether a merged document was produced. A run with
	// conflicts or warnings still succeeds; only the absence of any valid
	// input fails it.
	Success bool

	// Document is the merged tree, or nil when Success is false. It is
	// owned by the result and shares no nodes with the inputs.
	Document *arxml.Document

	// Conflicts is the ledger of every conflict the run resolved, in the
	// order the engine encountered them.
	Conflicts []ResolvedConflict

	// Warnings collects non-fatal findings: degraded strategies, skipped
	// elements, overwritten attributes.
	Warnings []string

	// Errors collects per-input failures, such as documents that could
	// not be parsed.
	Errors []string

	// Inventory is the union of signals and interfaces across all inputs.
	Inventory Inventory
}

// ConflictCount returns how many conflicts the run resolved.
func (r Result) ConflictCount() int { return len(r.Conflicts) }
