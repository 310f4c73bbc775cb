// SPDX-License-Identifier: MPL-2.0

package merge

import "fmt"

// Strategy is the closed set of per-conflict resolution strategies. The
// string forms are the snake_case names used in rule files and reports.
type Strategy int

const (
	// KeepFirst keeps the base (left) node verbatim.
	KeepFirst Strategy = iota
	// KeepLast keeps the incoming (right) node verbatim.
	KeepLast
	// MergeAttributes keeps the left node's children and text with the
	// right node's attributes overlaid on the left's.
	MergeAttributes
	// MergeContent unions the children of both nodes by (kind, name); on a
	// collision the right-hand child wins.
	MergeContent
	// UserChoice presents both nodes to the interactive chooser and blocks
	// until the caller decides.
	UserChoice
	// RuleBased defers to the rule engine. Only meaningful as a rule file
	// value for custom handlers; the engine itself consults rules first for
	// every conflict.
	RuleBased
	// Skip drops the colliding node from the output entirely.
	Skip
)

var strategyNames = map[Strategy]string{
	KeepFirst:       "keep_first",
	KeepLast:        "keep_last",
	MergeAttributes: "merge_attributes",
	MergeContent:    "merge_content",
	UserChoice:      "user_choice",
	RuleBased:       "rule_based",
	Skip:            "skip",
}

var strategyValues = func() map[string]Strategy {
	values := make(map[string]Strategy, len(strategyNames))
	for s, name := range strategyNames {
		values[name] = s
	}
	return values
}()

// String returns the snake_case contract name.
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy maps a contract name to its Strategy. Unknown names are an
// error at rule-load time; at resolution time unknown strategies degrade to
// KeepFirst with a warning instead.
func ParseStrategy(s string) (Strategy, error) {
	if strategy, ok := strategyValues[s]; ok {
		return strategy, nil
	}
	return 0, fmt.Errorf("unknown resolution strategy %q", s)
}

// StrategyName is the run-level merge strategy selected by the caller:
// it picks the default per-conflict Strategy and whether loaded rules and
// the interactive chooser participate.
type StrategyName string

const (
	// StrategyConservative keeps the first occurrence on every conflict.
	StrategyConservative StrategyName = "conservative"
	// StrategyLatestWins keeps the last occurrence on every conflict.
	StrategyLatestWins StrategyName = "latest-wins"
	// StrategyInteractive asks the chooser on every conflict without an
	// applicable rule.
	StrategyInteractive StrategyName = "interactive"
	// StrategyRuleBased resolves via loaded rules, keeping the first
	// occurrence when no rule applies.
	StrategyRuleBased StrategyName = "rule-based"
)

// ParseStrategyName validates a run-level strategy from a flag or config
// value.
func ParseStrategyName(s string) (StrategyName, error) {
	switch StrategyName(s) {
	case StrategyConservative, StrategyLatestWins, StrategyInteractive, StrategyRuleBased:
		return StrategyName(s), nil
	default:
		return "", fmt.Errorf("unknown merge strategy %q (want conservative, latest-wins, interactive, or rule-based)", s)
	}
}

// Default returns the per-conflict strategy a run-level strategy falls back
// to when no rule applies.
func (n StrategyName) Default() Strategy {
	switch n {
	case StrategyLatestWins:
		return KeepLast
	case StrategyInteractive:
		return UserChoice
	default:
		return KeepFirst
	}
}
