// SPDX-License-Identifier: MPL-2.0

package merge

import (
	"sort"
	"strconv"
	"strings"

	"arxmlmerge/pkg/arxml"
)

// InventoryEntry describes one signal or interface found in the inputs.
type InventoryEntry struct {
	Name     string            `json:"name"`
	Kind     arxml.ElementKind `json:"kind"`
	Source   string            `json:"source"`
	Length   int               `json:"length,omitempty"`
	DataType string            `json:"data_type,omitempty"`
}

// Inventory is the union of all signals and interfaces seen across every
// input document, keyed by element name. The first document to define a
// name claims the entry; later occurrences of the same name do not replace
// it, mirroring how duplicates fold during the merge.
type Inventory map[string]InventoryEntry

// Signals returns the signal entries sorted by name.
func (inv Inventory) Signals() []InventoryEntry {
	return inv.filter(func(e InventoryEntry) bool { return e.Kind.IsSignal() })
}

// Interfaces returns the interface entries sorted by name.
func (inv Inventory) Interfaces() []InventoryEntry {
	return inv.filter(func(e InventoryEntry) bool { return e.Kind.IsInterface() })
}

func (inv Inventory) filter(keep func(InventoryEntry) bool) []InventoryEntry {
	var out []InventoryEntry
	for _, e := range inv {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// collect records every signal and interface under root into the inventory.
func (inv Inventory) collect(root *arxml.Node, source string) {
	if root == nil {
		return
	}
	kind := root.Kind()
	if kind.IsSignal() || kind.IsInterface() {
		name := root.ShortName()
		if name != "" {
			if _, seen := inv[name]; !seen {
				inv[name] = InventoryEntry{
					Name:     name,
					Kind:     kind,
					Source:   source,
					Length:   signalLength(root),
					DataType: dataTypeRef(root),
				}
			}
		}
	}
	for _, c := range root.Children {
		inv.collect(c, source)
	}
}

// signalLength reads the LENGTH child of a signal, if present.
func signalLength(n *arxml.Node) int {
	text := n.FindText(arxml.TagLength)
	if text == "" {
		return 0
	}
	length, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0
	}
	return length
}

// dataTypeRef returns the first type reference found under the element.
// ARXML encodes type links as *-TREF leaves holding an absolute path.
func dataTypeRef(n *arxml.Node) string {
	for _, c := range n.Children {
		if strings.HasSuffix(c.Tag, "-TREF") {
			return strings.TrimSpace(c.Text)
		}
		if ref := dataTypeRef(c); ref != "" {
			return ref
		}
	}
	return ""
}
