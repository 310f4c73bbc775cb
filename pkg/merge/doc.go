// SPDX-License-Identifier: MPL-2.0

// Package merge implements the ARXML package-tree merge engine: a
// deterministic recursive walk over two package trees keyed by short name,
// with a rule-driven conflict resolution pipeline.
//
// A merge run takes an ordered list of documents and a Config, folds them
// pairwise left to right (the first document is the base), and produces a
// Result holding the merged document, the full conflict ledger, warnings,
// errors, and the signal/interface inventory. The engine never mutates its
// inputs (the base is cloned before folding), never logs, and never blocks
// except inside a caller-supplied interactive Chooser.
package merge
