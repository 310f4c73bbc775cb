// SPDX-License-Identifier: MPL-2.0

package merge

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// ErrUnknownRule is the sentinel wrapped when a rule file contains an
// unknown conflict type or resolution strategy. The whole file is rejected
// and the rule set keeps its prior rules.
var ErrUnknownRule = errors.New("invalid conflict rule")

// ruleFile mirrors the declarative rule file format. The file is JSON,
// optionally with // comments and trailing commas (JSONC).
type ruleFile struct {
	Rules []ruleRecord `json:"rules"`
}

type ruleRecord struct {
	ElementType        string            `json:"element_type"`
	ConflictType       string            `json:"conflict_type"`
	ResolutionStrategy string            `json:"resolution_strategy"`
	Priority           int               `json:"priority"`
	Conditions         map[string]string `json:"conditions,omitempty"`
	CustomHandler      string            `json:"custom_handler,omitempty"`
}

// LoadFile reads a declarative rule file and adds its rules to the set.
// The file is validated completely before anything is added: a single
// unknown conflict_type or resolution_strategy rejects the whole file and
// leaves the rule set unchanged.
func (rs *RuleSet) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrUnknownRule, path, err)
	}
	if err := rs.Load(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Load parses rule file bytes and adds the rules to the set. See LoadFile.
func (rs *RuleSet) Load(data []byte) error {
	var file ruleFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownRule, err)
	}

	parsed := make([]Rule, 0, len(file.Rules))
	for i, record := range file.Rules {
		rule, err := record.toRule()
		if err != nil {
			return fmt.Errorf("%w: rule %d: %v", ErrUnknownRule, i+1, err)
		}
		parsed = append(parsed, rule)
	}

	rs.add(parsed...)
	return nil
}

func (r ruleRecord) toRule() (Rule, error) {
	if r.ElementType == "" {
		return Rule{}, fmt.Errorf("missing element_type")
	}
	conflict, err := ParseConflictType(r.ConflictType)
	if err != nil {
		return Rule{}, err
	}
	resolution, err := ParseStrategy(r.ResolutionStrategy)
	if err != nil {
		return Rule{}, err
	}
	return Rule{
		ElementType:   r.ElementType,
		Conflict:      conflict,
		Resolution:    resolution,
		Priority:      r.Priority,
		Conditions:    r.Conditions,
		CustomHandler: r.CustomHandler,
	}, nil
}
