// SPDX-License-Identifier: MPL-2.0

package arxml

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

// wellKnownPrefixes maps namespace URIs that appear in ARXML attributes to
// their conventional prefixes, used when a document does not declare the
// prefix itself.
var wellKnownPrefixes = map[string]string{
	"http://www.w3.org/2001/XMLSchema-instance": "xsi",
}

// Write serializes the document as UTF-8 XML with an XML declaration and
// two-space indentation. The output re-parses via Parse to a document with
// the same root kind and structure.
func Write(w io.Writer, doc *Document) error {
	if doc == nil || doc.Root == nil {
		return fmt.Errorf("cannot serialize empty document")
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(xmlDeclaration + "\n"); err != nil {
		return err
	}

	ser := &serializer{w: bw, prefixes: collectPrefixes(doc)}
	if err := ser.writeNode(doc.Root, 0, true, doc.Namespace); err != nil {
		return err
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteFile serializes the document to a file, creating or truncating it.
func WriteFile(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := Write(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// collectPrefixes builds the URI -> prefix table from the root's xmlns
// declarations plus the well-known fallbacks.
func collectPrefixes(doc *Document) map[string]string {
	prefixes := make(map[string]string, len(wellKnownPrefixes))
	for uri, prefix := range wellKnownPrefixes {
		prefixes[uri] = prefix
	}
	for _, a := range doc.Root.Attrs {
		if a.Space == "xmlns" {
			prefixes[a.Value] = a.Local
		}
	}
	return prefixes
}

type serializer struct {
	w        *bufio.Writer
	prefixes map[string]string
}

func (s *serializer) writeNode(n *Node, depth int, isRoot bool, namespace string) error {
	indent := strings.Repeat("  ", depth)
	if _, err := s.w.WriteString(indent + "<" + n.Tag); err != nil {
		return err
	}

	wroteDefaultNS := false
	for _, a := range n.Attrs {
		name, ok := s.attrName(a)
		if !ok {
			continue
		}
		if name == "xmlns" {
			wroteDefaultNS = true
		}
		if err := s.writeAttr(name, a.Value); err != nil {
			return err
		}
	}
	// Documents built in memory carry the namespace only on Document, not
	// as a root attribute; declare it so the output stays qualified.
	if isRoot && namespace != "" && !wroteDefaultNS {
		if err := s.writeAttr("xmlns", namespace); err != nil {
			return err
		}
	}

	if len(n.Children) == 0 && n.Text == "" {
		_, err := s.w.WriteString("/>")
		return err
	}
	if _, err := s.w.WriteString(">"); err != nil {
		return err
	}

	if n.Text != "" {
		if err := xml.EscapeText(s.w, []byte(n.Text)); err != nil {
			return err
		}
	}
	if len(n.Children) > 0 {
		for _, c := range n.Children {
			if _, err := s.w.WriteString("\n"); err != nil {
				return err
			}
			if err := s.writeNode(c, depth+1, false, ""); err != nil {
				return err
			}
		}
		if _, err := s.w.WriteString("\n" + indent); err != nil {
			return err
		}
	}
	_, err := s.w.WriteString("</" + n.Tag + ">")
	return err
}

// attrName reconstructs the serialized attribute name from its namespace.
// Attributes in a namespace with no known prefix are dropped rather than
// emitted un-prefixed, which would change their meaning.
func (s *serializer) attrName(a Attr) (string, bool) {
	switch {
	case a.Space == "" && a.Local == "xmlns":
		return "xmlns", true
	case a.Space == "xmlns":
		return "xmlns:" + a.Local, true
	case a.Space == "":
		return a.Local, true
	default:
		prefix, ok := s.prefixes[a.Space]
		if !ok {
			return "", false
		}
		return prefix + ":" + a.Local, true
	}
}

func (s *serializer) writeAttr(name, value string) error {
	if _, err := s.w.WriteString(" " + name + `="`); err != nil {
		return err
	}
	if err := xml.EscapeText(s.w, []byte(value)); err != nil {
		return err
	}
	_, err := s.w.WriteString(`"`)
	return err
}
