// SPDX-License-Identifier: MPL-2.0

package arxml

type (
	// Document is one parsed ARXML file: the default namespace URI declared
	// on the root, the root element tree, and the source name the document
	// was parsed from (used in conflict and inventory reporting).
	//
	// A Document is owned by whoever parsed it. The merge engine clones its
	// base document before folding, so inputs are never mutated and may be
	// reused by the caller after a merge.
	Document struct {
		// Namespace is the default namespace URI declared on the AUTOSAR
		// root, or "" for namespace-free documents.
		Namespace string
		// Root is the AUTOSAR root element.
		Root *Node
		// Source identifies where the document came from (file path or
		// upload name). Informational only.
		Source string
	}
)

// Packages returns the document's top-level AR-PACKAGES container, or nil
// if the document has none.
func (d *Document) Packages() *Node {
	if d.Root == nil {
		return nil
	}
	return d.Root.Child(TagPackages)
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	return &Document{
		Namespace: d.Namespace,
		Root:      d.Root.Clone(),
		Source:    d.Source,
	}
}
