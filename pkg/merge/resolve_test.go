// SPDX-License-Identifier: MPL-2.0

package merge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arxmlmerge/internal/testutil/arxmltest"
	"arxmlmerge/pkg/arxml"
)

func conflictBetween(left, right *arxml.Node) ConflictContext {
	return ConflictContext{
		Left:        left,
		Right:       right,
		LeftSource:  "a.arxml",
		RightSource: "b.arxml",
		Path:        "/AUTOSAR/AR-PACKAGES/AR-PACKAGE[Test]/ELEMENTS/" + left.Tag + "[" + left.ShortName() + "]",
		Type:        Classify(left, right),
	}
}

func TestResolveKeepFirst(t *testing.T) {
	r := &run{}
	ctx := conflictBetween(arxmltest.Signal("S", 8), arxmltest.Signal("S", 16))
	res := r.resolve(ctx, KeepFirst)
	assert.Same(t, ctx.Left, res.Node)
	assert.Equal(t, KeepFirst, res.Applied)
	assert.Contains(t, res.Description, "a.arxml")
}

func TestResolveKeepLastClonesRight(t *testing.T) {
	r := &run{}
	ctx := conflictBetween(arxmltest.Signal("S", 8), arxmltest.Signal("S", 16))
	res := r.resolve(ctx, KeepLast)
	require.NotNil(t, res.Node)
	assert.NotSame(t, ctx.Right, res.Node, "the incoming node must be cloned, not aliased")
	assert.True(t, res.Node.Equal(ctx.Right))
	assert.Contains(t, res.Description, "b.arxml")
}

func TestResolveMergeAttributes(t *testing.T) {
	left := arxmltest.Signal("S", 8)
	left.Attrs = []arxml.Attr{attr("UUID", "a"), attr("S", "keep")}
	right := arxmltest.Signal("S", 8)
	right.Attrs = []arxml.Attr{attr("UUID", "b"), attr("T", "add")}

	res := (&run{}).resolve(conflictBetween(left, right), MergeAttributes)
	require.NotNil(t, res.Node)

	uuid, _ := res.Node.Attr("UUID")
	assert.Equal(t, "b", uuid, "right value wins on shared keys")
	kept, _ := res.Node.Attr("S")
	assert.Equal(t, "keep", kept)
	added, _ := res.Node.Attr("T")
	assert.Equal(t, "add", added)
	assert.True(t, res.Node.Child(arxml.TagLength) != nil, "children come from the left node")
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "UUID")

	assert.Equal(t, "a", left.Attrs[0].Value, "the left node itself is untouched")
}

func TestResolveMergeContentShallow(t *testing.T) {
	left := arxmltest.Package("P", arxmltest.Elements(
		arxmltest.Signal("A", 8),
		arxmltest.Signal("B", 8),
	))
	right := arxmltest.Package("P", arxmltest.Elements(
		arxmltest.Signal("B", 16),
		arxmltest.Signal("C", 8),
	))
	leftElems, rightElems := left.Child(arxml.TagElements), right.Child(arxml.TagElements)

	r := &run{}
	res := r.resolve(conflictBetween(leftElems, rightElems), MergeContent)
	require.NotNil(t, res.Node)

	names := make([]string, 0, len(res.Node.Children))
	for _, c := range res.Node.Children {
		names = append(names, c.ShortName())
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
	assert.Equal(t, "16", res.Node.Children[1].FindText(arxml.TagLength), "right child wins the collision in shallow mode")
	assert.Empty(t, r.conflicts, "shallow content merge records no sub-conflicts")
}

func TestResolveMergeContentRecursive(t *testing.T) {
	left := arxmltest.Elements(arxmltest.Signal("B", 8))
	right := arxmltest.Elements(arxmltest.Signal("B", 16))

	r := &run{cfg: Config{RecursiveContentMerge: true}}
	res := r.resolve(conflictBetween(left, right), MergeContent)
	require.NotNil(t, res.Node)
	require.Len(t, r.conflicts, 1, "one conflict per colliding child, not per nested leaf")
	assert.Equal(t, DuplicateElement, r.conflicts[0].Context.Type)
	assert.Equal(t, "B", r.conflicts[0].Context.ElementName())

	merged := res.Node.Children[0]
	assert.Equal(t, "16", merged.FindText(arxml.TagLength),
		"differing text keeps the right side, matching the shallow rule")
}

func TestResolveMergeContentRecursiveOverlaysAttributes(t *testing.T) {
	leftChild := arxmltest.Signal("B", 8)
	leftChild.Attrs = []arxml.Attr{attr("UUID", "a"), attr("S", "keep")}
	rightChild := arxmltest.Signal("B", 8)
	rightChild.Attrs = []arxml.Attr{attr("UUID", "b"), attr("T", "add")}
	left := arxmltest.Elements(leftChild)
	right := arxmltest.Elements(rightChild)

	r := &run{cfg: Config{RecursiveContentMerge: true}}
	res := r.resolve(conflictBetween(left, right), MergeContent)
	require.NotNil(t, res.Node)
	require.Len(t, r.conflicts, 1)

	merged := res.Node.Children[0]
	uuid, _ := merged.Attr("UUID")
	assert.Equal(t, "b", uuid, "attribute values take the right side")
	kept, _ := merged.Attr("S")
	assert.Equal(t, "keep", kept)
	added, _ := merged.Attr("T")
	assert.Equal(t, "add", added)
	assert.Equal(t, "a", leftChild.Attrs[0].Value, "inputs stay untouched")
}

func TestResolveSkipDropsNode(t *testing.T) {
	res := (&run{}).resolve(conflictBetween(arxmltest.Signal("S", 8), arxmltest.Signal("S", 16)), Skip)
	assert.Nil(t, res.Node)
	assert.Equal(t, Skip, res.Applied)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "S")
}

func TestResolveUnknownStrategyDegrades(t *testing.T) {
	ctx := conflictBetween(arxmltest.Signal("S", 8), arxmltest.Signal("S", 16))
	res := (&run{}).resolve(ctx, Strategy(42))
	assert.Same(t, ctx.Left, res.Node)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "keep_first")
}

func TestResolveUserChoice(t *testing.T) {
	ctx := conflictBetween(arxmltest.Signal("S", 8), arxmltest.Signal("S", 16))

	t.Run("no chooser degrades to keep first", func(t *testing.T) {
		res := (&run{}).resolve(ctx, UserChoice)
		assert.Same(t, ctx.Left, res.Node)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "degraded")
	})

	t.Run("chooser picks right", func(t *testing.T) {
		r := &run{cfg: Config{Chooser: ChooserFunc(func(ConflictContext) (Choice, error) {
			return ChooseRight, nil
		})}}
		res := r.resolve(ctx, UserChoice)
		require.NotNil(t, res.Node)
		assert.True(t, res.Node.Equal(ctx.Right))
		assert.Equal(t, KeepLast, res.Applied)
	})

	t.Run("chooser picks skip", func(t *testing.T) {
		r := &run{cfg: Config{Chooser: ChooserFunc(func(ConflictContext) (Choice, error) {
			return ChooseSkip, nil
		})}}
		res := r.resolve(ctx, UserChoice)
		assert.Nil(t, res.Node)
	})

	t.Run("chooser error degrades", func(t *testing.T) {
		r := &run{cfg: Config{Chooser: ChooserFunc(func(ConflictContext) (Choice, error) {
			return 0, errors.New("stdin closed")
		})}}
		res := r.resolve(ctx, UserChoice)
		assert.Same(t, ctx.Left, res.Node)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "stdin closed")
	})
}
