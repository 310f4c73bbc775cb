// SPDX-License-Identifier: MPL-2.0

package validate

import (
	"fmt"
	"regexp"

	"arxmlmerge/pkg/arxml"
)

// shortNameGrammar is the AUTOSAR identifier grammar: letters, digits and
// underscore, starting with a letter.
var shortNameGrammar = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Validate checks a single document at the given depth and returns every
// finding. It is read-only and deterministic: output depends only on the
// document's content, never on other documents or merge state.
func Validate(doc *arxml.Document, depth Depth) Result {
	v := &validator{}

	if !v.checkRoot(doc) || depth == DepthBasic {
		return v.result()
	}

	packages := v.checkPackagesPresent(doc)
	if packages != nil {
		v.checkTree(packages, "/AUTOSAR/AR-PACKAGES")
	}
	v.checkReferences(doc)

	return v.result()
}

type validator struct {
	issues []Issue
}

func (v *validator) add(severity Severity, path, suggestion, format string, args ...any) {
	v.issues = append(v.issues, Issue{
		Severity:   severity,
		Message:    fmt.Sprintf(format, args...),
		Path:       path,
		Suggestion: suggestion,
	})
}

func (v *validator) result() Result {
	valid := true
	for _, issue := range v.issues {
		if issue.Severity.FailsValidation() {
			valid = false
			break
		}
	}
	return Result{Valid: valid, Issues: v.issues}
}

// checkRoot verifies the top-level container kind by constructing the
// document's namespace resolver, which rejects a missing or non-AUTOSAR
// root. A wrong root makes every later check meaningless, so validation
// stops there.
func (v *validator) checkRoot(doc *arxml.Document) bool {
	if doc == nil {
		v.add(SeverityCritical, "/", "Provide a parsed ARXML document.", "document has no root element")
		return false
	}
	if _, err := arxml.NewResolver(doc); err != nil {
		v.add(SeverityCritical, "/",
			"Make sure the file has an AUTOSAR root element.",
			"%v", err)
		return false
	}
	return true
}

func (v *validator) checkPackagesPresent(doc *arxml.Document) *arxml.Node {
	packages := doc.Packages()
	if packages == nil {
		v.add(SeverityError, "/AUTOSAR",
			"ARXML files must contain at least one AR-PACKAGES container.",
			"no AR-PACKAGES container found")
	}
	return packages
}

// checkTree walks an AR-PACKAGES container, validating each package's
// SHORT-NAME and sibling uniqueness, then recursing into sub-packages and
// element containers.
func (v *validator) checkTree(packages *arxml.Node, path string) {
	v.checkSiblingUniqueness(packages.ChildrenByTag(arxml.TagPackage), path)

	for i, pkg := range packages.ChildrenByTag(arxml.TagPackage) {
		pkgPath := childPath(path, pkg, i)

		name := pkg.ShortName()
		switch {
		case name == "":
			v.add(SeverityError, pkgPath,
				"Every AR-PACKAGE must have a SHORT-NAME element.",
				"AR-PACKAGE without SHORT-NAME")
		case !shortNameGrammar.MatchString(name):
			v.add(SeverityWarning, pkgPath+"/SHORT-NAME",
				"SHORT-NAMEs should contain only letters, digits and underscores, starting with a letter.",
				"invalid SHORT-NAME: %s", name)
		}

		if elements := pkg.Elements(); elements != nil {
			v.checkSiblingUniqueness(elements.Children, pkgPath+"/ELEMENTS")
		}
		if sub := pkg.SubPackages(); sub != nil {
			v.checkTree(sub, pkgPath+"/AR-PACKAGES")
		}
	}
}

// checkSiblingUniqueness reports an error for every sibling that repeats an
// earlier sibling's (kind, name) identity within the same parent. Cross-scope
// duplicates are legal and never reported.
func (v *validator) checkSiblingUniqueness(siblings []*arxml.Node, path string) {
	seen := make(map[string]string, len(siblings))
	for i, node := range siblings {
		name := node.ShortName()
		if name == "" {
			continue
		}
		key := node.Tag + ":" + name
		here := childPath(path, node, i)
		if first, dup := seen[key]; dup {
			v.add(SeverityError, here,
				"SHORT-NAMEs must be unique among direct siblings.",
				"duplicate %s %q in the same scope (first defined at %s)", node.Tag, name, first)
			continue
		}
		seen[key] = here
	}
}

// checkReferences warns about cross-references with no target in this
// document. Warnings only: the referent may live in a sibling document
// merged later.
func (v *validator) checkReferences(doc *arxml.Document) {
	index := arxml.PathIndex(doc)
	for _, ref := range arxml.References(doc) {
		if _, ok := index[ref.Target]; !ok {
			v.add(SeverityWarning, ref.Location,
				"Make sure the referenced element exists or is provided by another merged file.",
				"unresolved reference: %s", ref.Target)
		}
	}
}

// childPath renders a structural path segment, preferring the node's short
// name over its sibling index.
func childPath(parent string, node *arxml.Node, index int) string {
	if name := node.ShortName(); name != "" {
		return fmt.Sprintf("%s/%s[%s]", parent, node.Tag, name)
	}
	return fmt.Sprintf("%s/%s[%d]", parent, node.Tag, index+1)
}
