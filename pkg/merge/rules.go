// SPDX-License-Identifier: MPL-2.0

package merge

import "sort"

type (
	// Rule binds an (element kind, conflict category) pair to a resolution
	// strategy. ElementType is an AUTOSAR tag or "*" for any kind. Higher
	// priority wins; ties break by declaration order.
	Rule struct {
		// ElementType is the AUTOSAR tag the rule applies to, or "*".
		ElementType string
		// Conflict is the conflict category the rule applies to.
		Conflict ConflictType
		// Resolution is the strategy to apply.
		Resolution Strategy
		// Priority orders rules; higher is consulted first.
		Priority int
		// Conditions optionally restricts the rule further. No condition
		// keys are interpreted yet, so conditions are carried but never
		// restrict a match.
		Conditions map[string]string
		// CustomHandler optionally names a registered handler that
		// overrides Resolution.
		CustomHandler string
	}

	// RuleSet is a priority-ordered rule list plus registered custom
	// handlers. A RuleSet is immutable during a merge run: build it, load
	// files into it, then hand it to a Config.
	RuleSet struct {
		rules    []Rule
		handlers map[string]HandlerFunc
	}

	// HandlerFunc is a registered custom conflict handler, addressed from
	// rule files by name.
	HandlerFunc func(ctx ConflictContext) Resolution
)

// DefaultRules returns the built-in rule set:
//
//   - I-SIGNAL duplicates keep the first occurrence (signal preservation).
//   - Interface attribute conflicts merge attributes.
//   - PRIMITIVE-TYPE duplicates keep the last occurrence.
//   - ECU-INSTANCE duplicates ask the user.
func DefaultRules() *RuleSet {
	rs := &RuleSet{handlers: map[string]HandlerFunc{}}
	rs.add(
		Rule{ElementType: "I-SIGNAL", Conflict: DuplicateElement, Resolution: KeepFirst, Priority: 10},
		Rule{ElementType: "SENDER-RECEIVER-INTERFACE", Conflict: DifferentAttributes, Resolution: MergeAttributes, Priority: 8},
		Rule{ElementType: "CLIENT-SERVER-INTERFACE", Conflict: DifferentAttributes, Resolution: MergeAttributes, Priority: 8},
		Rule{ElementType: "PRIMITIVE-TYPE", Conflict: DuplicateElement, Resolution: KeepLast, Priority: 5},
		Rule{ElementType: "ECU-INSTANCE", Conflict: DuplicateElement, Resolution: UserChoice, Priority: 15},
	)
	return rs
}

// EmptyRules returns a rule set with no rules, for runs that must resolve
// every conflict with the default strategy alone.
func EmptyRules() *RuleSet {
	return &RuleSet{handlers: map[string]HandlerFunc{}}
}

// add appends rules and re-sorts descending by priority. The sort is
// stable, so declaration order breaks priority ties and rules loaded later
// at equal priority stay behind built-ins.
func (rs *RuleSet) add(rules ...Rule) {
	rs.rules = append(rs.rules, rules...)
	sort.SliceStable(rs.rules, func(i, j int) bool {
		return rs.rules[i].Priority > rs.rules[j].Priority
	})
}

// Rules returns the rules in consultation order.
func (rs *RuleSet) Rules() []Rule {
	return append([]Rule(nil), rs.rules...)
}

// RegisterHandler registers a named custom handler for rule files to
// reference.
func (rs *RuleSet) RegisterHandler(name string, handler HandlerFunc) {
	rs.handlers[name] = handler
}

// Find returns the first rule matching the context's element kind and
// conflict category, or nil when no rule applies. The scan order is the
// priority order, so the returned rule is always the highest-priority
// match.
func (rs *RuleSet) Find(ctx ConflictContext) *Rule {
	elementType := ctx.ElementType()
	for i := range rs.rules {
		rule := &rs.rules[i]
		if rule.ElementType != elementType && rule.ElementType != "*" {
			continue
		}
		if rule.Conflict != ctx.Type {
			continue
		}
		// Conditions are not interpreted; a conditioned rule matches like
		// an unconditioned one.
		return rule
	}
	return nil
}

// handler resolves a rule's custom handler, or nil.
func (rs *RuleSet) handler(rule *Rule) HandlerFunc {
	if rule == nil || rule.CustomHandler == "" {
		return nil
	}
	return rs.handlers[rule.CustomHandler]
}
