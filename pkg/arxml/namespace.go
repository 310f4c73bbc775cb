// SPDX-License-Identifier: MPL-2.0

package arxml

import (
	"fmt"
	"strings"
)

type (
	// Resolver qualifies bare or prefixed tag names against one document's
	// namespace declarations, so callers can address tags uniformly
	// regardless of the prefixes each source file declared. Constructing
	// one also asserts the document is well formed: the validator's root
	// check goes through NewResolver.
	Resolver struct {
		namespace string
		prefixes  map[string]string
	}

	// QName is a namespace-qualified tag name.
	QName struct {
		Space string
		Local string
	}
)

// NewResolver builds a Resolver from a parsed document. Documents without a
// root, or with a non-AUTOSAR root, fail with ErrMalformedDocument.
func NewResolver(doc *Document) (*Resolver, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("%w: document has no root element", ErrMalformedDocument)
	}
	if doc.Root.Tag != TagAutosar {
		return nil, fmt.Errorf("%w: root element is %s, expected %s", ErrMalformedDocument, doc.Root.Tag, TagAutosar)
	}

	r := &Resolver{
		namespace: doc.Namespace,
		prefixes:  map[string]string{},
	}
	for _, a := range doc.Root.Attrs {
		switch {
		case a.Space == "" && a.Local == "xmlns":
			r.prefixes[""] = a.Value
		case a.Space == "xmlns":
			r.prefixes[a.Local] = a.Value
		}
	}
	if r.namespace != "" {
		r.prefixes[""] = r.namespace
	}
	return r, nil
}

// Namespace returns the document's default namespace URI, or "".
func (r *Resolver) Namespace() string { return r.namespace }

// Qualify maps a bare or prefixed tag name ("AR-PACKAGE", "xsi:type") to
// its namespace-qualified form. Unknown prefixes resolve to the default
// namespace with the prefix kept in the local name, matching how a
// non-namespace-aware consumer would read the document.
func (r *Resolver) Qualify(tag string) QName {
	prefix, local := "", tag
	if i := strings.IndexByte(tag, ':'); i >= 0 {
		prefix, local = tag[:i], tag[i+1:]
	}
	if space, ok := r.prefixes[prefix]; ok {
		return QName{Space: space, Local: local}
	}
	return QName{Space: r.namespace, Local: tag}
}

// StripNamespace returns the local part of a Clark-notation qualified tag
// ("{uri}LOCAL" -> "LOCAL"). Plain tags pass through unchanged.
func StripNamespace(tag string) string {
	if i := strings.IndexByte(tag, '}'); i >= 0 {
		return tag[i+1:]
	}
	return tag
}
