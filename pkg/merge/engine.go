// SPDX-License-Identifier: MPL-2.0

package merge

import (
	"fmt"

	"arxmlmerge/pkg/arxml"
)

// Config drives one merge run.
type Config struct {
	// Default is the strategy applied to conflicts no rule covers.
	Default Strategy

	// Rules is consulted before the default strategy. Leave nil to merge
	// purely by the default strategy, as the conservative and latest-wins
	// presets do.
	Rules *RuleSet

	// Chooser answers user_choice resolutions. With no chooser wired such
	// conflicts degrade to keep_first with a warning.
	Chooser Chooser

	// RecursiveContentMerge makes merge_content recurse into colliding
	// children instead of letting the right-hand child win wholesale.
	RecursiveContentMerge bool
}

// ConfigFor builds the Config for one of the named strategy presets.
// The rule-based preset starts from the built-in rules; load rule files
// into the returned Config's RuleSet to extend it.
func ConfigFor(name StrategyName, chooser Chooser) Config {
	cfg := Config{Default: name.Default(), Chooser: chooser}
	if name == StrategyRuleBased {
		cfg.Rules = DefaultRules()
	}
	return cfg
}

// run is the per-invocation state of the engine: the config plus the
// accumulating ledger and warning list.
type run struct {
	cfg       Config
	conflicts []ResolvedConflict
	warnings  []string
}

func (r *run) record(ctx ConflictContext, res Resolution) {
	r.conflicts = append(r.conflicts, ResolvedConflict{Context: ctx, Resolution: res})
	r.warnings = append(r.warnings, res.Warnings...)
}

// Merge folds the documents left to right into a single tree. The first
// document seeds the result; every later document merges into the
// accumulated tree, so the order of the slice decides which occurrence of
// a name counts as "first". The inputs are never mutated.
func Merge(docs []*arxml.Document, cfg Config) Result {
	inventory := Inventory{}
	var valid []*arxml.Document
	for _, doc := range docs {
		if doc == nil || doc.Root == nil {
			continue
		}
		valid = append(valid, doc)
		inventory.collect(doc.Root, doc.Source)
	}
	if len(valid) == 0 {
		return Result{
			Errors:    []string{"no valid input documents"},
			Inventory: inventory,
		}
	}

	r := &run{cfg: cfg}
	base := valid[0].Clone()
	for _, doc := range valid[1:] {
		r.mergeDocument(base, doc)
	}

	return Result{
		Success:   true,
		Document:  base,
		Conflicts: r.conflicts,
		Warnings:  r.warnings,
		Errors:    nil,
		Inventory: inventory,
	}
}

// MergeFiles parses every path and merges the documents that parse. Parse
// failures are recorded as errors and the file is skipped; the run fails
// only when no file yields a valid document.
func MergeFiles(paths []string, cfg Config) Result {
	var docs []*arxml.Document
	var errs []string
	for _, path := range paths {
		doc, err := arxml.ParseFile(path)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		docs = append(docs, doc)
	}
	result := Merge(docs, cfg)
	result.Errors = append(errs, result.Errors...)
	return result
}

// mergeDocument folds one incoming document into the accumulated base.
func (r *run) mergeDocument(base *arxml.Document, incoming *arxml.Document) {
	incomingPkgs := incoming.Packages()
	if incomingPkgs == nil {
		return
	}
	basePkgs := base.Packages()
	if basePkgs == nil {
		base.Root.Children = append(base.Root.Children, incomingPkgs.Clone())
		return
	}
	r.mergeNode(basePkgs, incomingPkgs, incoming.Source, base.Source,
		"/"+arxml.TagAutosar+"/"+arxml.TagPackages)
}

// structural reports whether a colliding pair merges by recursion instead
// of the conflict pipeline. Packages and the two container tags that hold
// them merge structurally; everything else is a leaf from the engine's
// point of view.
func structural(tag string) bool {
	switch tag {
	case arxml.TagPackage, arxml.TagPackages, arxml.TagElements:
		return true
	}
	return false
}

// mergeNode merges the children of incoming into base, which must share a
// (kind, name) key. Base is part of the output tree and is mutated in
// place; incoming is read-only and cloned wherever it contributes nodes.
//
// The base child index is snapshotted before iterating, so nodes appended
// during the walk never collide with later incoming children.
func (r *run) mergeNode(base, incoming *arxml.Node, incomingSource, baseSource, path string) {
	index := make(map[string]int, len(base.Children))
	for i, c := range base.Children {
		if _, dup := index[c.Key()]; dup {
			continue // pre-existing duplicate, first occurrence wins
		}
		index[c.Key()] = i
	}

	removed := false
	for _, ic := range incoming.Children {
		i, collides := index[ic.Key()]
		if !collides {
			base.Children = append(base.Children, ic.Clone())
			continue
		}
		bc := base.Children[i]
		if bc == nil {
			// The base child was skipped earlier in this walk; treat the
			// incoming one as new.
			base.Children = append(base.Children, ic.Clone())
			continue
		}

		if structural(bc.Tag) && bc.Tag == ic.Tag {
			r.mergeNode(bc, ic, incomingSource, baseSource, childPath(path, bc))
			continue
		}
		if Identical(bc, ic) {
			continue // exact duplicate, fold silently
		}

		ctx := ConflictContext{
			Left:        bc,
			Right:       ic,
			LeftSource:  baseSource,
			RightSource: incomingSource,
			Path:        childPath(path, bc),
			Type:        Classify(bc, ic),
		}
		res := r.resolveConflict(ctx)
		r.record(ctx, res)
		if res.Node == nil {
			base.Children[i] = nil
			removed = true
			continue
		}
		base.Children[i] = res.Node
	}

	if removed {
		kept := base.Children[:0]
		for _, c := range base.Children {
			if c != nil {
				kept = append(kept, c)
			}
		}
		base.Children = kept
	}
}

// resolveConflict runs the rule-before-default pipeline for one conflict.
func (r *run) resolveConflict(ctx ConflictContext) Resolution {
	strategy := r.cfg.Default
	if r.cfg.Rules != nil {
		if rule := r.cfg.Rules.Find(ctx); rule != nil {
			if handler := r.cfg.Rules.handler(rule); handler != nil {
				return handler(ctx)
			}
			strategy = rule.Resolution
		}
	}
	return r.resolve(ctx, strategy)
}

// childPath extends a slash path with one node, rendering named nodes as
// TAG[Name].
func childPath(parent string, n *arxml.Node) string {
	if name := n.ShortName(); name != "" {
		return parent + "/" + n.Tag + "[" + name + "]"
	}
	return parent + "/" + n.Tag
}
