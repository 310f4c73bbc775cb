// SPDX-License-Identifier: MPL-2.0

package merge

import (
	"fmt"
	"strings"

	"arxmlmerge/pkg/arxml"
)

// resolve applies a strategy to one conflict and returns the resolution.
// It never fails: unknown strategies and chooser errors degrade to
// keep_first with a warning, so a merge always resolves every conflict to
// something.
func (r *run) resolve(ctx ConflictContext, strategy Strategy) Resolution {
	switch strategy {
	case KeepFirst:
		return Resolution{
			Node:        ctx.Left,
			Applied:     KeepFirst,
			Description: fmt.Sprintf("kept first occurrence from %s", ctx.LeftSource),
		}
	case KeepLast:
		return Resolution{
			Node:        ctx.Right.Clone(),
			Applied:     KeepLast,
			Description: fmt.Sprintf("kept last occurrence from %s", ctx.RightSource),
		}
	case MergeAttributes:
		return mergeAttributes(ctx)
	case MergeContent:
		return r.mergeContent(ctx)
	case Skip:
		return Resolution{
			Applied:     Skip,
			Description: "element skipped",
			Warnings:    []string{fmt.Sprintf("%s %q dropped from output because of a conflict", ctx.ElementType(), ctx.ElementName())},
		}
	case UserChoice:
		return r.askUser(ctx)
	default:
		degraded := r.resolve(ctx, KeepFirst)
		degraded.Description = fmt.Sprintf("unknown strategy %s, kept first occurrence", strategy)
		degraded.Warnings = append(degraded.Warnings, fmt.Sprintf("strategy %s is not implemented, degraded to keep_first", strategy))
		return degraded
	}
}

// mergeAttributes keeps the left node's children and text, overlaying the
// right node's attributes. Keys present on both sides take the right value
// and are surfaced as warnings.
func mergeAttributes(ctx ConflictContext) Resolution {
	merged := ctx.Left.Clone()

	index := make(map[string]int, len(merged.Attrs))
	for i, a := range merged.Attrs {
		index[a.Space+"|"+a.Local] = i
	}

	var overwritten []string
	for _, a := range ctx.Right.Attrs {
		if i, ok := index[a.Space+"|"+a.Local]; ok {
			merged.Attrs[i].Value = a.Value
			overwritten = append(overwritten, a.Local)
			continue
		}
		merged.Attrs = append(merged.Attrs, a)
	}

	var warnings []string
	if len(overwritten) > 0 {
		warnings = append(warnings, fmt.Sprintf("overwritten attributes: %s", strings.Join(overwritten, ", ")))
	}
	return Resolution{
		Node:        merged,
		Applied:     MergeAttributes,
		Description: "merged attributes",
		Warnings:    warnings,
	}
}

// mergeContent unions the children of both nodes by (kind, name). In
// shallow mode (the default) a colliding right-hand child silently replaces
// the left one. With Config.RecursiveContentMerge set, each colliding child
// pair is recorded in the run ledger as one conflict and merged through
// mergeSubtree, which keeps the right-wins rule for text and attribute
// values at every depth.
func (r *run) mergeContent(ctx ConflictContext) Resolution {
	merged := &arxml.Node{
		Space: ctx.Left.Space,
		Tag:   ctx.Left.Tag,
		Attrs: append([]arxml.Attr(nil), ctx.Left.Attrs...),
		Text:  ctx.Left.Text,
	}
	for _, c := range ctx.Left.Children {
		merged.Children = append(merged.Children, c.Clone())
	}

	index := make(map[string]int, len(merged.Children))
	for i, c := range merged.Children {
		index[c.Key()] = i
	}

	for _, rc := range ctx.Right.Children {
		i, collides := index[rc.Key()]
		if !collides {
			index[rc.Key()] = len(merged.Children)
			merged.Children = append(merged.Children, rc.Clone())
			continue
		}
		lc := merged.Children[i]
		if lc.Equal(rc) {
			continue
		}
		if !r.cfg.RecursiveContentMerge {
			// Shallow behavior: the right-hand child wins.
			merged.Children[i] = rc.Clone()
			continue
		}
		subCtx := ConflictContext{
			Left:        lc,
			Right:       rc,
			LeftSource:  ctx.LeftSource,
			RightSource: ctx.RightSource,
			Path:        childPath(ctx.Path, lc),
			Type:        Classify(lc, rc),
		}
		merged.Children[i] = mergeSubtree(lc, rc)
		r.record(subCtx, Resolution{
			Node:        merged.Children[i],
			Applied:     MergeContent,
			Description: "merged content",
		})
	}

	return Resolution{
		Node:        merged,
		Applied:     MergeContent,
		Description: "merged content",
	}
}

// mergeSubtree unions two colliding nodes without touching the ledger:
// children union by (kind, name) with the left order kept, differing text
// and attribute values take the right side. The result shares no nodes
// with either input.
func mergeSubtree(left, right *arxml.Node) *arxml.Node {
	merged := &arxml.Node{
		Space: left.Space,
		Tag:   left.Tag,
		Attrs: append([]arxml.Attr(nil), left.Attrs...),
		Text:  left.Text,
	}
	if right.Text != "" && right.Text != left.Text {
		merged.Text = right.Text
	}

	attrIndex := make(map[string]int, len(merged.Attrs))
	for i, a := range merged.Attrs {
		attrIndex[a.Space+"|"+a.Local] = i
	}
	for _, a := range right.Attrs {
		if i, ok := attrIndex[a.Space+"|"+a.Local]; ok {
			merged.Attrs[i].Value = a.Value
			continue
		}
		merged.Attrs = append(merged.Attrs, a)
	}

	for _, c := range left.Children {
		merged.Children = append(merged.Children, c.Clone())
	}
	index := make(map[string]int, len(merged.Children))
	for i, c := range merged.Children {
		index[c.Key()] = i
	}
	for _, rc := range right.Children {
		i, collides := index[rc.Key()]
		if !collides {
			index[rc.Key()] = len(merged.Children)
			merged.Children = append(merged.Children, rc.Clone())
			continue
		}
		if merged.Children[i].Equal(rc) {
			continue
		}
		merged.Children[i] = mergeSubtree(merged.Children[i], rc)
	}
	return merged
}

// askUser delegates to the configured chooser. With no chooser wired, or
// when the chooser fails, the conflict degrades to keep_first so headless
// runs never block.
func (r *run) askUser(ctx ConflictContext) Resolution {
	if r.cfg.Chooser == nil {
		degraded := r.resolve(ctx, KeepFirst)
		degraded.Description = "user choice requested but no chooser available, kept first occurrence"
		degraded.Warnings = append(degraded.Warnings, fmt.Sprintf("no interactive chooser for %s %q, degraded to keep_first", ctx.ElementType(), ctx.ElementName()))
		return degraded
	}

	choice, err := r.cfg.Chooser.Choose(ctx)
	if err != nil {
		degraded := r.resolve(ctx, KeepFirst)
		degraded.Description = "chooser failed, kept first occurrence"
		degraded.Warnings = append(degraded.Warnings, fmt.Sprintf("chooser failed for %s %q: %v", ctx.ElementType(), ctx.ElementName(), err))
		return degraded
	}

	switch choice {
	case ChooseLeft:
		res := r.resolve(ctx, KeepFirst)
		res.Description = "user kept first occurrence"
		return res
	case ChooseRight:
		res := r.resolve(ctx, KeepLast)
		res.Description = "user kept last occurrence"
		return res
	case ChooseMerge:
		res := r.resolve(ctx, MergeContent)
		res.Description = "user merged both occurrences"
		return res
	case ChooseSkip:
		res := r.resolve(ctx, Skip)
		res.Description = "user skipped the element"
		return res
	default:
		degraded := r.resolve(ctx, KeepFirst)
		degraded.Warnings = append(degraded.Warnings, fmt.Sprintf("chooser returned unknown choice %d, kept first occurrence", choice))
		return degraded
	}
}
