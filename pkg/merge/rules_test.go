// SPDX-License-Identifier: MPL-2.0

package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arxmlmerge/internal/testutil/arxmltest"
	"arxmlmerge/pkg/arxml"
)

func attr(local, value string) arxml.Attr {
	return arxml.Attr{Local: local, Value: value}
}

func signalConflict(name string) ConflictContext {
	left := arxmltest.Signal(name, 8)
	right := arxmltest.Signal(name, 16)
	return ConflictContext{
		Left:  left,
		Right: right,
		Type:  Classify(left, right),
	}
}

func TestDefaultRulesMatchSignals(t *testing.T) {
	rs := DefaultRules()
	rule := rs.Find(signalConflict("EngineSpeed"))
	require.NotNil(t, rule)
	assert.Equal(t, KeepFirst, rule.Resolution)
	assert.Equal(t, 10, rule.Priority)
}

func TestDefaultRulesMatchInterfaces(t *testing.T) {
	left := arxmltest.SRInterface("VehicleState")
	right := arxmltest.SRInterface("VehicleState")
	right.Attrs = append(right.Attrs, attr("UUID", "b"))
	left.Attrs = append(left.Attrs, attr("UUID", "a"))

	rs := DefaultRules()
	rule := rs.Find(ConflictContext{Left: left, Right: right, Type: Classify(left, right)})
	require.NotNil(t, rule)
	assert.Equal(t, MergeAttributes, rule.Resolution)
}

func TestRulesNoMatchForUncoveredPair(t *testing.T) {
	// The built-in signal rule covers duplicates only.
	ctx := signalConflict("EngineSpeed")
	ctx.Type = ReferenceConflict
	assert.Nil(t, DefaultRules().Find(ctx))
}

func TestLoadedRuleOverridesBuiltIn(t *testing.T) {
	rs := DefaultRules()
	err := rs.Load([]byte(`{
		// project override: signals from the newest extract win
		"rules": [
			{
				"element_type": "I-SIGNAL",
				"conflict_type": "duplicate_element",
				"resolution_strategy": "keep_last",
				"priority": 20
			}
		]
	}`))
	require.NoError(t, err)

	rule := rs.Find(signalConflict("EngineSpeed"))
	require.NotNil(t, rule)
	assert.Equal(t, KeepLast, rule.Resolution)
	assert.Equal(t, 20, rule.Priority)
}

func TestRulePriorityTieBreaksByDeclarationOrder(t *testing.T) {
	rs := EmptyRules()
	require.NoError(t, rs.Load([]byte(`{"rules": [
		{"element_type": "I-SIGNAL", "conflict_type": "duplicate_element", "resolution_strategy": "keep_first", "priority": 5},
		{"element_type": "*", "conflict_type": "duplicate_element", "resolution_strategy": "skip", "priority": 5}
	]}`)))

	rule := rs.Find(signalConflict("EngineSpeed"))
	require.NotNil(t, rule)
	assert.Equal(t, KeepFirst, rule.Resolution, "earlier declaration wins a priority tie")
}

func TestWildcardRuleMatchesAnyElement(t *testing.T) {
	rs := EmptyRules()
	require.NoError(t, rs.Load([]byte(`{"rules": [
		{"element_type": "*", "conflict_type": "duplicate_element", "resolution_strategy": "skip", "priority": 1}
	]}`)))

	rule := rs.Find(signalConflict("Anything"))
	require.NotNil(t, rule)
	assert.Equal(t, Skip, rule.Resolution)
}

func TestLoadRejectsUnknownValuesWholesale(t *testing.T) {
	rs := DefaultRules()
	before := len(rs.Rules())

	for _, payload := range []string{
		`{"rules": [{"element_type": "I-SIGNAL", "conflict_type": "no_such_conflict", "resolution_strategy": "keep_first"}]}`,
		`{"rules": [{"element_type": "I-SIGNAL", "conflict_type": "duplicate_element", "resolution_strategy": "no_such_strategy"}]}`,
		`{"rules": [
			{"element_type": "I-SIGNAL", "conflict_type": "duplicate_element", "resolution_strategy": "keep_last"},
			{"element_type": "", "conflict_type": "duplicate_element", "resolution_strategy": "keep_first"}
		]}`,
	} {
		err := rs.Load([]byte(payload))
		assert.ErrorIs(t, err, ErrUnknownRule)
	}

	assert.Len(t, rs.Rules(), before, "a rejected file must not change the rule set")
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	assert.Error(t, EmptyRules().Load([]byte(`{"rules": [`)))
}

func TestConditionedRuleMatchesLikeUnconditioned(t *testing.T) {
	rs := EmptyRules()
	rs.add(Rule{
		ElementType: "I-SIGNAL",
		Conflict:    DuplicateElement,
		Resolution:  Skip,
		Priority:    99,
		Conditions:  map[string]string{"source": "a.arxml"},
	})
	rule := rs.Find(signalConflict("EngineSpeed"))
	require.NotNil(t, rule, "conditions are carried but do not restrict the match")
	assert.Equal(t, Skip, rule.Resolution)
}

func TestCustomHandlerResolution(t *testing.T) {
	rs := EmptyRules()
	rs.RegisterHandler("drop", func(ctx ConflictContext) Resolution {
		return Resolution{Applied: Skip, Description: "dropped by handler"}
	})
	rs.add(Rule{
		ElementType:   "I-SIGNAL",
		Conflict:      DuplicateElement,
		Resolution:    RuleBased,
		Priority:      1,
		CustomHandler: "drop",
	})

	rule := rs.Find(signalConflict("EngineSpeed"))
	require.NotNil(t, rule)
	handler := rs.handler(rule)
	require.NotNil(t, handler)
	assert.Equal(t, "dropped by handler", handler(signalConflict("EngineSpeed")).Description)
}
