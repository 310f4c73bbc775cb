// SPDX-License-Identifier: MPL-2.0

// Package validate checks ARXML documents against AUTOSAR package-tree
// invariants and reports a severity-graded issue list.
//
// Validation is advisory: it never mutates the document, never blocks, and
// its output depends only on the document's content. A document is invalid
// iff any issue has severity error or critical; warnings (dangling
// references, short names outside the identifier grammar) do not fail a
// document, because the referent may live in a sibling document merged
// later.
package validate
