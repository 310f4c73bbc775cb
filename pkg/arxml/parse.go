// SPDX-License-Identifier: MPL-2.0

package arxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrMalformedDocument is the sentinel wrapped by parse and resolver
// failures: unparseable XML, a missing root, or a root that is not AUTOSAR.
// Callers use errors.Is to decide whether to skip the document or abort.
var ErrMalformedDocument = errors.New("malformed ARXML document")

// Parse reads XML from r and builds the document model. The source string
// names the origin (usually a file path) and is carried into diagnostics.
//
// The root element must be AUTOSAR (after namespace stripping); anything
// else fails with an error wrapping ErrMalformedDocument.
func Parse(r io.Reader, source string) (*Document, error) {
	root, err := decodeTree(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedDocument, source, err)
	}
	if root.Tag != TagAutosar {
		return nil, fmt.Errorf("%w: %s: root element is %s, expected %s", ErrMalformedDocument, source, root.Tag, TagAutosar)
	}
	return &Document{
		Namespace: root.Space,
		Root:      root,
		Source:    source,
	}, nil
}

// ParseFile opens and parses an ARXML file.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedDocument, path, err)
	}
	defer f.Close()
	return Parse(f, path)
}

// decodeTree builds the ordered element tree from an XML token stream,
// keeping a stack of open elements. Character data accumulates on the
// innermost open element; whitespace-only text on structural nodes is
// dropped when the element closes so indentation does not leak into the
// model.
func decodeTree(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)

	var stack []*Node
	var root *Node

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, fmt.Errorf("unexpected element %s after document end", t.Name.Local)
			}
			node := &Node{
				Space: t.Name.Space,
				Tag:   t.Name.Local,
				Attrs: convertAttrs(t.Attr),
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			} else {
				root = node
			}
			stack = append(stack, node)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected end element %s", t.Name.Local)
			}
			closing := stack[len(stack)-1]
			if len(closing.Children) > 0 && strings.TrimSpace(closing.Text) == "" {
				closing.Text = ""
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, io.ErrUnexpectedEOF
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("unclosed element %s", stack[len(stack)-1].Tag)
	}
	return root, nil
}

func convertAttrs(attrs []xml.Attr) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attr, len(attrs))
	for i, a := range attrs {
		out[i] = Attr{Space: a.Name.Space, Local: a.Name.Local, Value: a.Value}
	}
	return out
}
