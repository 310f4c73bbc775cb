// SPDX-License-Identifier: MPL-2.0

package merge

import "arxmlmerge/pkg/arxml"

// Classify determines the conflict category for two same-named nodes at the
// same structural position. The classification is pure and symmetric:
// swapping the nodes yields the same category.
//
// Structurally identical nodes are not a conflict at all; callers check
// Identical first and dedupe silently.
func Classify(left, right *arxml.Node) ConflictType {
	// Different tags cover both the leaf-vs-leaf kind clash and the
	// package-container-vs-leaf clash.
	if left.Tag != right.Tag {
		return IncompatibleTypes
	}
	if rev := revisionLabel(left); rev != "" {
		if other := revisionLabel(right); other != "" && other != rev {
			return VersionMismatch
		}
	}
	if !sameAttrs(left, right) {
		if sameChildKeys(left, right) && left.Text == right.Text {
			return DifferentAttributes
		}
		// Attributes and content both differ; content differences dominate
		// because attribute merging alone cannot reconcile the nodes.
		return DifferentContent
	}
	if !sameChildKeys(left, right) || left.Text != right.Text {
		return DifferentContent
	}
	// Same tag, same attributes, same child name set: the payload beneath
	// still differs somewhere (otherwise the nodes were identical).
	return DuplicateElement
}

// Identical reports whether two nodes are structurally equal, in which case
// the collision is deduped silently rather than treated as a conflict.
func Identical(left, right *arxml.Node) bool {
	return left.Equal(right)
}

func sameAttrs(left, right *arxml.Node) bool {
	if len(left.Attrs) != len(right.Attrs) {
		return false
	}
	attrs := make(map[string]string, len(left.Attrs))
	for _, a := range left.Attrs {
		attrs[a.Space+"|"+a.Local] = a.Value
	}
	for _, a := range right.Attrs {
		if v, ok := attrs[a.Space+"|"+a.Local]; !ok || v != a.Value {
			return false
		}
	}
	return true
}

func sameChildKeys(left, right *arxml.Node) bool {
	if len(left.Children) != len(right.Children) {
		return false
	}
	keys := make(map[string]int, len(left.Children))
	for _, c := range left.Children {
		keys[c.Key()]++
	}
	for _, c := range right.Children {
		keys[c.Key()]--
		if keys[c.Key()] < 0 {
			return false
		}
	}
	return true
}

// revisionLabel extracts the ADMIN-DATA revision label of an element, or ""
// when the element carries none.
func revisionLabel(n *arxml.Node) string {
	admin := n.Child(arxml.TagAdminData)
	if admin == nil {
		return ""
	}
	var label string
	var walk func(*arxml.Node)
	walk = func(node *arxml.Node) {
		if label != "" {
			return
		}
		if node.Tag == "REVISION-LABEL" {
			label = node.Text
			return
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(admin)
	return label
}
