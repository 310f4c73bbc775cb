// SPDX-License-Identifier: MPL-2.0

package arxml

import "strings"

// Well-known AUTOSAR tag names (local names, namespace stripped).
const (
	TagAutosar   = "AUTOSAR"
	TagPackages  = "AR-PACKAGES"
	TagPackage   = "AR-PACKAGE"
	TagShortName = "SHORT-NAME"
	TagElements  = "ELEMENTS"
	TagAdminData = "ADMIN-DATA"
	TagLength    = "LENGTH"
)

type (
	// Attr is a single XML attribute. Space is the attribute's namespace URI
	// ("xmlns" for prefix declarations, "" for unqualified attributes).
	Attr struct {
		Space string
		Local string
		Value string
	}

	// Node is one element of the parsed ARXML tree. Children are kept in
	// document order; Attrs and Text are preserved verbatim so that nodes the
	// merge engine never inspects round-trip unchanged.
	Node struct {
		// Space is the element's namespace URI (usually the AUTOSAR schema URI).
		Space string
		// Tag is the local element name with the namespace stripped.
		Tag string
		// Attrs holds the element's attributes in document order.
		Attrs []Attr
		// Text is the element's character data. For structural nodes
		// (nodes with children) whitespace-only text is dropped during
		// parsing; leaf text is kept as written.
		Text string
		// Children are the direct child elements in document order.
		Children []*Node
	}
)

// ShortName returns the text of the node's direct SHORT-NAME child, or ""
// if the node has none. This is the AUTOSAR identity used for merging.
func (n *Node) ShortName() string {
	return strings.TrimSpace(n.FindText(TagShortName))
}

// Child returns the first direct child with the given local tag, or nil.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildrenByTag returns all direct children with the given local tag.
func (n *Node) ChildrenByTag(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// FindText returns the text of the first direct child with the given tag,
// or "" if there is no such child.
func (n *Node) FindText(tag string) string {
	if c := n.Child(tag); c != nil {
		return c.Text
	}
	return ""
}

// Attr returns the value of the named unqualified attribute and whether it
// was present.
func (n *Node) Attr(local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Space == "" && a.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// IsPackage reports whether the node is an AR-PACKAGE container.
func (n *Node) IsPackage() bool { return n.Tag == TagPackage }

// IsPackages reports whether the node is an AR-PACKAGES container.
func (n *Node) IsPackages() bool { return n.Tag == TagPackages }

// SubPackages returns the node's AR-PACKAGES child container, or nil.
// Only meaningful for AR-PACKAGE nodes.
func (n *Node) SubPackages() *Node { return n.Child(TagPackages) }

// Elements returns the node's ELEMENTS child container, or nil.
// Only meaningful for AR-PACKAGE nodes.
func (n *Node) Elements() *Node { return n.Child(TagElements) }

// Kind classifies the node into the closed set of AUTOSAR element kinds
// the merge engine treats specially. Containers and unrecognized tags
// classify as KindGeneric.
func (n *Node) Kind() ElementKind { return KindForTag(n.Tag) }

// Key returns the (kind, name) identity used for sibling uniqueness:
// "TAG:ShortName". Nodes without a SHORT-NAME key on their tag alone.
func (n *Node) Key() string {
	if name := n.ShortName(); name != "" {
		return n.Tag + ":" + name
	}
	return n.Tag
}

// Clone returns a deep copy of the node. The copy shares no state with
// the original.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Space: n.Space,
		Tag:   n.Tag,
		Text:  n.Text,
	}
	if len(n.Attrs) > 0 {
		out.Attrs = append([]Attr(nil), n.Attrs...)
	}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Equal reports deep structural equality: tag, attributes (order-sensitive),
// text, and children must all match. Namespace URIs are ignored so that
// documents declaring different schema revisions still compare by structure.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Tag != other.Tag || n.Text != other.Text || len(n.Attrs) != len(other.Attrs) || len(n.Children) != len(other.Children) {
		return false
	}
	for i, a := range n.Attrs {
		b := other.Attrs[i]
		if a.Space != b.Space || a.Local != b.Local || a.Value != b.Value {
			return false
		}
	}
	for i, c := range n.Children {
		if !c.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}
