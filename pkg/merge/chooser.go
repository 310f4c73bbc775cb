// SPDX-License-Identifier: MPL-2.0

package merge

// Choice is a chooser's decision for one conflict.
type Choice int

const (
	// ChooseLeft keeps the base node.
	ChooseLeft Choice = iota
	// ChooseRight keeps the incoming node.
	ChooseRight
	// ChooseMerge merges the nodes via the merge_content strategy.
	ChooseMerge
	// ChooseSkip drops the node from the output.
	ChooseSkip
)

// Chooser is the interactive port for the user_choice strategy. The engine
// calls Choose synchronously and blocks until it returns; this is the only
// suspension point in a merge run. Implementations range from a terminal
// prompt to a session-polling server handler.
//
// A Chooser error does not abort the merge: the conflict degrades to
// keep_first with a warning, matching the unknown-strategy fallback.
type Chooser interface {
	Choose(ctx ConflictContext) (Choice, error)
}

// ChooserFunc adapts a function to the Chooser interface.
type ChooserFunc func(ctx ConflictContext) (Choice, error)

// Choose implements Chooser.
func (f ChooserFunc) Choose(ctx ConflictContext) (Choice, error) { return f(ctx) }
