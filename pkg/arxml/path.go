// SPDX-License-Identifier: MPL-2.0

package arxml

import "strings"

type (
	// Reference is a cross-reference found in a document: leaf text starting
	// with '/' pointing at an AUTOSAR path, plus the structural location of
	// the referring node.
	Reference struct {
		// Target is the referenced AUTOSAR path, e.g. "/Pkg/DataTypes/uint8".
		Target string
		// Location is the structural path of the node holding the reference.
		Location string
	}
)

// PathIndex walks the document and returns the set of AUTOSAR paths defined
// by SHORT-NAME-bearing nodes. A node's path is the '/'-joined chain of
// short names from the top-level packages down to the node itself.
func PathIndex(doc *Document) map[string]struct{} {
	index := make(map[string]struct{})
	if doc == nil || doc.Root == nil {
		return index
	}
	var walk func(n *Node, prefix string)
	walk = func(n *Node, prefix string) {
		path := prefix
		if name := n.ShortName(); name != "" {
			path = prefix + "/" + name
			index[path] = struct{}{}
		}
		for _, c := range n.Children {
			walk(c, path)
		}
	}
	walk(doc.Root, "")
	return index
}

// References walks the document and collects every cross-reference: any
// leaf whose text begins with '/'. Locations are structural tag paths so a
// reader can find the referring element without short names.
func References(doc *Document) []Reference {
	var refs []Reference
	if doc == nil || doc.Root == nil {
		return refs
	}
	var walk func(n *Node, location string)
	walk = func(n *Node, location string) {
		here := location + "/" + n.Tag
		if len(n.Children) == 0 {
			if text := strings.TrimSpace(n.Text); strings.HasPrefix(text, "/") {
				refs = append(refs, Reference{Target: text, Location: here})
			}
		}
		for _, c := range n.Children {
			walk(c, here)
		}
	}
	walk(doc.Root, "")
	return refs
}
