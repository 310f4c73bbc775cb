// SPDX-License-Identifier: MPL-2.0

package merge

import "arxmlmerge/pkg/arxml"

type (
	// ConflictContext describes one collision: the two colliding nodes,
	// their originating documents, the structural path to the collision,
	// and the classified category. Contexts are created by the engine at
	// the moment of collision and exposed read-only in the result ledger.
	ConflictContext struct {
		// Left is the base document's node.
		Left *arxml.Node
		// Right is the incoming document's node.
		Right *arxml.Node
		// LeftSource and RightSource identify the originating documents.
		LeftSource  string
		RightSource string
		// Path is the structural path to the collision, e.g.
		// "/AUTOSAR/AR-PACKAGES/AR-PACKAGE[Comm]/ELEMENTS".
		Path string
		// Type is the classified conflict category.
		Type ConflictType
	}

	// Resolution is the outcome of resolving one conflict. Applied is the
	// strategy actually used, which may differ from the requested one
	// (unknown strategies degrade to KeepFirst, a missing chooser degrades
	// UserChoice).
	Resolution struct {
		// Node is the resolved node, or nil when the collision was skipped
		// and the node dropped from the output.
		Node *arxml.Node
		// Applied is the strategy that produced Node.
		Applied Strategy
		// Description explains the outcome for reporting.
		Description string
		// Warnings lists anything lossy about the resolution, such as
		// overwritten attributes.
		Warnings []string
	}

	// ResolvedConflict pairs a conflict with its resolution in the run
	// ledger.
	ResolvedConflict struct {
		Context    ConflictContext
		Resolution Resolution
	}
)

// ElementName returns the colliding element's short name.
func (c ConflictContext) ElementName() string { return c.Left.ShortName() }

// ElementType returns the colliding element's tag, which identifies the
// AUTOSAR kind for rule matching.
func (c ConflictContext) ElementType() string { return c.Left.Tag }
