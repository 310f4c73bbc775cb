// SPDX-License-Identifier: MPL-2.0

package merge

import "fmt"

// ConflictType is the closed set of conflict categories. The string forms
// are the snake_case names used in rule files and reports.
type ConflictType int

const (
	// DuplicateElement is a same-(kind,name) collision between two
	// structurally different nodes with matching tags and attributes.
	DuplicateElement ConflictType = iota
	// DifferentAttributes is a collision where only the attribute maps
	// differ.
	DifferentAttributes
	// DifferentContent is a collision where children or text differ.
	DifferentContent
	// IncompatibleTypes is a same-name collision between different tags, or
	// between a package container and a leaf element.
	IncompatibleTypes
	// ReferenceConflict is a collision between elements whose cross
	// references disagree. The structural classifier never produces it; it
	// exists so rule files can bind strategies to it.
	ReferenceConflict
	// VersionMismatch is a collision between elements carrying different
	// ADMIN-DATA revision labels.
	VersionMismatch
)

var conflictTypeNames = map[ConflictType]string{
	DuplicateElement:    "duplicate_element",
	DifferentAttributes: "different_attributes",
	DifferentContent:    "different_content",
	IncompatibleTypes:   "incompatible_types",
	ReferenceConflict:   "reference_conflict",
	VersionMismatch:     "version_mismatch",
}

var conflictTypeValues = func() map[string]ConflictType {
	values := make(map[string]ConflictType, len(conflictTypeNames))
	for ct, name := range conflictTypeNames {
		values[name] = ct
	}
	return values
}()

// String returns the snake_case contract name.
func (c ConflictType) String() string {
	if name, ok := conflictTypeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("conflict_type(%d)", int(c))
}

// ParseConflictType maps a contract name to its ConflictType. Unknown names
// are an error; rule files containing them are rejected wholesale.
func ParseConflictType(s string) (ConflictType, error) {
	if ct, ok := conflictTypeValues[s]; ok {
		return ct, nil
	}
	return 0, fmt.Errorf("unknown conflict type %q", s)
}
