// SPDX-License-Identifier: MPL-2.0

// Package arxml provides the in-memory document model for AUTOSAR ARXML files.
//
// An ARXML document is a namespace-qualified XML tree rooted at a single
// AUTOSAR element, holding a hierarchy of named AR-PACKAGE nodes. This package
// handles parsing into an ordered tree that preserves attributes and text
// verbatim, namespace resolution, and serialization back to UTF-8 XML.
//
// The merge and validation packages operate on this model; they never touch
// raw XML themselves.
package arxml
