// SPDX-License-Identifier: MPL-2.0

// Package arxmltest provides test helpers for building arxml documents and
// nodes without going through XML text. Trees built here match what
// arxml.Parse produces for the equivalent markup, so tests can mix parsed
// and constructed documents freely.
//
// Usage:
//
//	doc := arxmltest.Doc("a.arxml",
//	    arxmltest.Package("Foo",
//	        arxmltest.Elements(arxmltest.Signal("Bar", 8)),
//	    ),
//	)
package arxmltest

import (
	"strconv"
	"strings"
	"testing"

	"arxmlmerge/pkg/arxml"
)

// Namespace is the AUTOSAR schema namespace used by all built documents.
const Namespace = "http://autosar.org/schema/r4.0"

// Doc builds a complete document with the given source name and top-level
// packages under a single AR-PACKAGES container.
func Doc(source string, packages ...*arxml.Node) *arxml.Document {
	root := Node(arxml.TagAutosar, Node(arxml.TagPackages, packages...))
	setNamespace(root)
	return &arxml.Document{
		Namespace: Namespace,
		Root:      root,
		Source:    source,
	}
}

// Node builds a bare node with the given tag and children.
func Node(tag string, children ...*arxml.Node) *arxml.Node {
	return &arxml.Node{Tag: tag, Children: children}
}

// Text builds a leaf node holding text.
func Text(tag, text string) *arxml.Node {
	return &arxml.Node{Tag: tag, Text: text}
}

// Package builds an AR-PACKAGE with a SHORT-NAME plus the given children
// (typically Elements(...) or SubPackages(...)).
func Package(name string, children ...*arxml.Node) *arxml.Node {
	kids := append([]*arxml.Node{Text(arxml.TagShortName, name)}, children...)
	return Node(arxml.TagPackage, kids...)
}

// SubPackages wraps packages in an AR-PACKAGES container for nesting under
// a Package.
func SubPackages(packages ...*arxml.Node) *arxml.Node {
	return Node(arxml.TagPackages, packages...)
}

// Elements wraps leaf elements in an ELEMENTS container.
func Elements(elements ...*arxml.Node) *arxml.Node {
	return Node(arxml.TagElements, elements...)
}

// Signal builds an I-SIGNAL with the given name and bit length.
func Signal(name string, length int) *arxml.Node {
	return Node("I-SIGNAL",
		Text(arxml.TagShortName, name),
		Text(arxml.TagLength, strconv.Itoa(length)),
	)
}

// SRInterface builds a SENDER-RECEIVER-INTERFACE with the given name.
func SRInterface(name string, children ...*arxml.Node) *arxml.Node {
	kids := append([]*arxml.Node{Text(arxml.TagShortName, name)}, children...)
	return Node("SENDER-RECEIVER-INTERFACE", kids...)
}

// PrimitiveType builds a PRIMITIVE-TYPE with the given name.
func PrimitiveType(name string) *arxml.Node {
	return Node("PRIMITIVE-TYPE", Text(arxml.TagShortName, name))
}

// EcuInstance builds an ECU-INSTANCE with the given name.
func EcuInstance(name string) *arxml.Node {
	return Node("ECU-INSTANCE", Text(arxml.TagShortName, name))
}

// Ref builds a reference leaf: a node whose text is an AUTOSAR path.
func Ref(tag, target string) *arxml.Node {
	return Text(tag, target)
}

// MustParse parses ARXML markup and fails the test on error.
func MustParse(t *testing.T, source, markup string) *arxml.Document {
	t.Helper()
	doc, err := arxml.Parse(strings.NewReader(markup), source)
	if err != nil {
		t.Fatalf("parsing %s: %v", source, err)
	}
	return doc
}

// setNamespace stamps the AUTOSAR namespace on every node so constructed
// trees serialize the same way parsed ones do.
func setNamespace(n *arxml.Node) {
	n.Space = Namespace
	for _, c := range n.Children {
		setNamespace(c)
	}
}
