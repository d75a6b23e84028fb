package model

import (
	coreerrors "github.com/riftlabs/authcore/errors"
)

// GetPolicy returns every rule stored under section sec ("p" or "g"),
// type ptype.
func (m Model) GetPolicy(sec, ptype string) [][]string {
	a, ok := m[sec][ptype]
	if !ok {
		return nil
	}
	return a.Policy
}

// HasPolicy reports whether rule is already stored under (sec, ptype).
func (m Model) HasPolicy(sec, ptype string, rule []string) bool {
	a, ok := m[sec][ptype]
	if !ok {
		return false
	}
	for _, r := range a.Policy {
		if ruleEquals(r, rule) {
			return true
		}
	}
	return false
}

func ruleEquals(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// AddPolicy appends rule to (sec, ptype), rejecting arity mismatches and
// duplicates (spec.md §4.3).
func (m Model) AddPolicy(sec, ptype string, rule []string) error {
	a, ok := m[sec][ptype]
	if !ok {
		return coreerrors.New(coreerrors.ArityMismatch, "undefined policy type %q", ptype)
	}
	if len(rule) != len(a.Tokens) {
		return coreerrors.New(coreerrors.ArityMismatch, "rule has %d fields, %q expects %d", len(rule), ptype, len(a.Tokens))
	}
	if sec == "p" {
		if eft, ok := effectValue(a, rule); ok && eft != "allow" && eft != "deny" {
			return coreerrors.New(coreerrors.ArityMismatch, "eft field must be %q or %q, got %q", "allow", "deny", eft)
		}
	}
	if m.HasPolicy(sec, ptype, rule) {
		return coreerrors.New(coreerrors.AlreadyExists, "rule already exists in %q", ptype)
	}
	a.Policy = append(a.Policy, append([]string(nil), rule...))
	return nil
}

func effectValue(a *Assertion, rule []string) (string, bool) {
	for i, tok := range a.Tokens {
		if tok == a.Key+"_eft" && i < len(rule) {
			return rule[i], true
		}
	}
	return "", false
}

// AddPolicies adds every rule in rules, applying all of them if (and only
// if) none is already present and none is arity-mismatched (all-or-nothing,
// per spec.md §4.3 "add_many").
func (m Model) AddPolicies(sec, ptype string, rules [][]string) (int, error) {
	a, ok := m[sec][ptype]
	if !ok {
		return 0, coreerrors.New(coreerrors.ArityMismatch, "undefined policy type %q", ptype)
	}
	for _, rule := range rules {
		if len(rule) != len(a.Tokens) {
			return 0, coreerrors.New(coreerrors.ArityMismatch, "rule has %d fields, %q expects %d", len(rule), ptype, len(a.Tokens))
		}
		if m.HasPolicy(sec, ptype, rule) {
			return 0, coreerrors.New(coreerrors.AlreadyExists, "rule already exists in %q", ptype)
		}
	}
	for _, rule := range rules {
		a.Policy = append(a.Policy, append([]string(nil), rule...))
	}
	return len(rules), nil
}

// RemovePolicy deletes the first occurrence of rule from (sec, ptype).
func (m Model) RemovePolicy(sec, ptype string, rule []string) error {
	a, ok := m[sec][ptype]
	if !ok {
		return coreerrors.New(coreerrors.NotFound, "undefined policy type %q", ptype)
	}
	for i, r := range a.Policy {
		if ruleEquals(r, rule) {
			a.Policy = append(a.Policy[:i], a.Policy[i+1:]...)
			return nil
		}
	}
	return coreerrors.New(coreerrors.NotFound, "rule not found in %q", ptype)
}

// RemovePolicies deletes every rule in rules, all-or-nothing: if any rule
// is absent, none are removed.
func (m Model) RemovePolicies(sec, ptype string, rules [][]string) error {
	a, ok := m[sec][ptype]
	if !ok {
		return coreerrors.New(coreerrors.NotFound, "undefined policy type %q", ptype)
	}
	for _, rule := range rules {
		if !m.HasPolicy(sec, ptype, rule) {
			return coreerrors.New(coreerrors.NotFound, "rule not found in %q", ptype)
		}
	}
	for _, rule := range rules {
		for i, r := range a.Policy {
			if ruleEquals(r, rule) {
				a.Policy = append(a.Policy[:i], a.Policy[i+1:]...)
				break
			}
		}
	}
	return nil
}

// RemoveFilteredPolicy deletes every rule r such that, for each i,
// r[fieldIndex+i] == fieldValues[i] or fieldValues[i] == "" (wildcard),
// provided at least one fieldValues entry is non-empty: a filter made only
// of wildcards matches no rule. It returns the removed rules, for the
// role-link incremental update and for callers that want to know what was
// dropped.
func (m Model) RemoveFilteredPolicy(sec, ptype string, fieldIndex int, fieldValues ...string) ([][]string, error) {
	a, ok := m[sec][ptype]
	if !ok {
		return nil, coreerrors.New(coreerrors.NotFound, "undefined policy type %q", ptype)
	}
	var kept, removed [][]string
	for _, rule := range a.Policy {
		if ruleMatchesFilter(rule, fieldIndex, fieldValues) {
			removed = append(removed, rule)
		} else {
			kept = append(kept, rule)
		}
	}
	a.Policy = kept
	return removed, nil
}

func ruleMatchesFilter(rule []string, fieldIndex int, fieldValues []string) bool {
	matched := false
	for i, want := range fieldValues {
		if want == "" {
			continue
		}
		idx := fieldIndex + i
		if idx < 0 || idx >= len(rule) || rule[idx] != want {
			return false
		}
		matched = true
	}
	return matched
}

// GetFilteredPolicy returns every rule matching the same wildcard rule
// RemoveFilteredPolicy uses, without deleting anything.
func (m Model) GetFilteredPolicy(sec, ptype string, fieldIndex int, fieldValues ...string) [][]string {
	a, ok := m[sec][ptype]
	if !ok {
		return nil
	}
	var out [][]string
	for _, rule := range a.Policy {
		if ruleMatchesFilter(rule, fieldIndex, fieldValues) {
			out = append(out, rule)
		}
	}
	return out
}

// UpdatePolicy atomically replaces the first occurrence of oldRule with
// newRule.
func (m Model) UpdatePolicy(sec, ptype string, oldRule, newRule []string) error {
	a, ok := m[sec][ptype]
	if !ok {
		return coreerrors.New(coreerrors.NotFound, "undefined policy type %q", ptype)
	}
	if len(newRule) != len(a.Tokens) {
		return coreerrors.New(coreerrors.ArityMismatch, "rule has %d fields, %q expects %d", len(newRule), ptype, len(a.Tokens))
	}
	for i, r := range a.Policy {
		if ruleEquals(r, oldRule) {
			a.Policy[i] = append([]string(nil), newRule...)
			return nil
		}
	}
	return coreerrors.New(coreerrors.NotFound, "rule not found in %q", ptype)
}

// UpdatePolicies replaces every oldRules[i] with newRules[i], all-or-
// nothing.
func (m Model) UpdatePolicies(sec, ptype string, oldRules, newRules [][]string) error {
	if len(oldRules) != len(newRules) {
		return coreerrors.New(coreerrors.LengthMismatch, "oldRules has %d entries, newRules has %d", len(oldRules), len(newRules))
	}
	a, ok := m[sec][ptype]
	if !ok {
		return coreerrors.New(coreerrors.NotFound, "undefined policy type %q", ptype)
	}
	indices := make([]int, len(oldRules))
	for i, old := range oldRules {
		found := -1
		for j, r := range a.Policy {
			if ruleEquals(r, old) {
				found = j
				break
			}
		}
		if found == -1 {
			return coreerrors.New(coreerrors.NotFound, "rule not found in %q", ptype)
		}
		indices[i] = found
	}
	for i, idx := range indices {
		a.Policy[idx] = append([]string(nil), newRules[i]...)
	}
	return nil
}

// GetValuesForFieldInPolicy returns the distinct values found at fieldIndex
// across every rule in (sec, ptype), used by the AllSubjects/AllObjects/
// AllActions/AllRoles management-surface helpers.
func (m Model) GetValuesForFieldInPolicy(sec, ptype string, fieldIndex int) []string {
	a, ok := m[sec][ptype]
	if !ok {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, rule := range a.Policy {
		if fieldIndex >= len(rule) {
			continue
		}
		v := rule[fieldIndex]
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
