package authcore

import coreerrors "github.com/riftlabs/authcore/errors"

// Package-level management surface (spec.md §4.5): policy CRUD sugar over
// the internal mutation pipeline. "Named" variants take an explicit
// ptype ("p2", "g3", ...); the unqualified variants assume "p"/"g".

// AddPolicy adds a "p"-type rule, applying the full five-step mutation
// pipeline. Returns false (no error) if the rule already exists.
func (e *Enforcer) AddPolicy(params ...string) (bool, error) {
	return e.AddNamedPolicy("p", params...)
}

// AddNamedPolicy adds a ptype rule.
func (e *Enforcer) AddNamedPolicy(ptype string, params ...string) (bool, error) {
	ok, err := e.addPolicy("p", ptype, params)
	if err != nil {
		if isAlreadyExists(err) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// AddPolicies adds several "p"-type rules, all-or-nothing.
func (e *Enforcer) AddPolicies(rules [][]string) (bool, error) {
	return e.AddNamedPolicies("p", rules)
}

// AddNamedPolicies adds several ptype rules, all-or-nothing.
func (e *Enforcer) AddNamedPolicies(ptype string, rules [][]string) (bool, error) {
	ok, err := e.addPolicies("p", ptype, rules)
	if err != nil {
		if isAlreadyExists(err) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// RemovePolicy removes a "p"-type rule.
func (e *Enforcer) RemovePolicy(params ...string) (bool, error) {
	return e.RemoveNamedPolicy("p", params...)
}

// RemoveNamedPolicy removes a ptype rule.
func (e *Enforcer) RemoveNamedPolicy(ptype string, params ...string) (bool, error) {
	ok, err := e.removePolicy("p", ptype, params)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// RemovePolicies removes several "p"-type rules, all-or-nothing.
func (e *Enforcer) RemovePolicies(rules [][]string) (bool, error) {
	return e.RemoveNamedPolicies("p", rules)
}

// RemoveNamedPolicies removes several ptype rules, all-or-nothing.
func (e *Enforcer) RemoveNamedPolicies(ptype string, rules [][]string) (bool, error) {
	ok, err := e.removePolicies("p", ptype, rules)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// RemoveFilteredPolicy removes every "p"-type rule matching the wildcard
// filter starting at fieldIndex.
func (e *Enforcer) RemoveFilteredPolicy(fieldIndex int, fieldValues ...string) (bool, error) {
	return e.RemoveFilteredNamedPolicy("p", fieldIndex, fieldValues...)
}

// RemoveFilteredNamedPolicy removes every ptype rule matching the filter.
func (e *Enforcer) RemoveFilteredNamedPolicy(ptype string, fieldIndex int, fieldValues ...string) (bool, error) {
	return e.removeFilteredPolicy("p", ptype, fieldIndex, fieldValues...)
}

// UpdatePolicy replaces a "p"-type rule.
func (e *Enforcer) UpdatePolicy(oldRule, newRule []string) (bool, error) {
	return e.UpdateNamedPolicy("p", oldRule, newRule)
}

// UpdateNamedPolicy replaces a ptype rule.
func (e *Enforcer) UpdateNamedPolicy(ptype string, oldRule, newRule []string) (bool, error) {
	ok, err := e.updatePolicy("p", ptype, oldRule, newRule)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// UpdatePolicies replaces several "p"-type rules, all-or-nothing.
func (e *Enforcer) UpdatePolicies(oldRules, newRules [][]string) (bool, error) {
	return e.UpdateNamedPolicies("p", oldRules, newRules)
}

// UpdateNamedPolicies replaces several ptype rules, all-or-nothing.
func (e *Enforcer) UpdateNamedPolicies(ptype string, oldRules, newRules [][]string) (bool, error) {
	ok, err := e.updatePolicies("p", ptype, oldRules, newRules)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// GetPolicy returns every "p"-type rule.
func (e *Enforcer) GetPolicy() [][]string { return e.GetNamedPolicy("p") }

// GetNamedPolicy returns every ptype rule.
func (e *Enforcer) GetNamedPolicy(ptype string) [][]string { return e.model.GetPolicy("p", ptype) }

// GetFilteredPolicy returns every "p"-type rule matching the filter.
func (e *Enforcer) GetFilteredPolicy(fieldIndex int, fieldValues ...string) [][]string {
	return e.GetFilteredNamedPolicy("p", fieldIndex, fieldValues...)
}

// GetFilteredNamedPolicy returns every ptype rule matching the filter.
func (e *Enforcer) GetFilteredNamedPolicy(ptype string, fieldIndex int, fieldValues ...string) [][]string {
	return e.model.GetFilteredPolicy("p", ptype, fieldIndex, fieldValues...)
}

// HasPolicy reports whether a "p"-type rule exists.
func (e *Enforcer) HasPolicy(params ...string) bool { return e.HasNamedPolicy("p", params...) }

// HasNamedPolicy reports whether a ptype rule exists.
func (e *Enforcer) HasNamedPolicy(ptype string, params ...string) bool {
	return e.model.HasPolicy("p", ptype, params)
}

// AddGroupingPolicy adds a "g"-type (role inheritance) rule.
func (e *Enforcer) AddGroupingPolicy(params ...string) (bool, error) {
	return e.AddNamedGroupingPolicy("g", params...)
}

// AddNamedGroupingPolicy adds a gtype rule.
func (e *Enforcer) AddNamedGroupingPolicy(gtype string, params ...string) (bool, error) {
	ok, err := e.addPolicy("g", gtype, params)
	if err != nil {
		if isAlreadyExists(err) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// AddGroupingPolicies adds several "g"-type rules, all-or-nothing.
func (e *Enforcer) AddGroupingPolicies(rules [][]string) (bool, error) {
	return e.AddNamedGroupingPolicies("g", rules)
}

// AddNamedGroupingPolicies adds several gtype rules, all-or-nothing.
func (e *Enforcer) AddNamedGroupingPolicies(gtype string, rules [][]string) (bool, error) {
	ok, err := e.addPolicies("g", gtype, rules)
	if err != nil {
		if isAlreadyExists(err) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// RemoveGroupingPolicy removes a "g"-type rule.
func (e *Enforcer) RemoveGroupingPolicy(params ...string) (bool, error) {
	return e.RemoveNamedGroupingPolicy("g", params...)
}

// RemoveNamedGroupingPolicy removes a gtype rule.
func (e *Enforcer) RemoveNamedGroupingPolicy(gtype string, params ...string) (bool, error) {
	ok, err := e.removePolicy("g", gtype, params)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// RemoveGroupingPolicies removes several "g"-type rules, all-or-nothing.
func (e *Enforcer) RemoveGroupingPolicies(rules [][]string) (bool, error) {
	return e.RemoveNamedGroupingPolicies("g", rules)
}

// RemoveNamedGroupingPolicies removes several gtype rules, all-or-nothing.
func (e *Enforcer) RemoveNamedGroupingPolicies(gtype string, rules [][]string) (bool, error) {
	ok, err := e.removePolicies("g", gtype, rules)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// RemoveFilteredGroupingPolicy removes every "g"-type rule matching the
// wildcard filter starting at fieldIndex.
func (e *Enforcer) RemoveFilteredGroupingPolicy(fieldIndex int, fieldValues ...string) (bool, error) {
	return e.RemoveFilteredNamedGroupingPolicy("g", fieldIndex, fieldValues...)
}

// RemoveFilteredNamedGroupingPolicy removes every gtype rule matching the
// filter.
func (e *Enforcer) RemoveFilteredNamedGroupingPolicy(gtype string, fieldIndex int, fieldValues ...string) (bool, error) {
	return e.removeFilteredPolicy("g", gtype, fieldIndex, fieldValues...)
}

// GetGroupingPolicy returns every "g"-type rule.
func (e *Enforcer) GetGroupingPolicy() [][]string { return e.GetNamedGroupingPolicy("g") }

// GetNamedGroupingPolicy returns every gtype rule.
func (e *Enforcer) GetNamedGroupingPolicy(gtype string) [][]string {
	return e.model.GetPolicy("g", gtype)
}

// GetFilteredGroupingPolicy returns every "g"-type rule matching the
// filter.
func (e *Enforcer) GetFilteredGroupingPolicy(fieldIndex int, fieldValues ...string) [][]string {
	return e.GetFilteredNamedGroupingPolicy("g", fieldIndex, fieldValues...)
}

// GetFilteredNamedGroupingPolicy returns every gtype rule matching the
// filter.
func (e *Enforcer) GetFilteredNamedGroupingPolicy(gtype string, fieldIndex int, fieldValues ...string) [][]string {
	return e.model.GetFilteredPolicy("g", gtype, fieldIndex, fieldValues...)
}

// HasGroupingPolicy reports whether a "g"-type rule exists.
func (e *Enforcer) HasGroupingPolicy(params ...string) bool {
	return e.HasNamedGroupingPolicy("g", params...)
}

// HasNamedGroupingPolicy reports whether a gtype rule exists.
func (e *Enforcer) HasNamedGroupingPolicy(gtype string, params ...string) bool {
	return e.model.HasPolicy("g", gtype, params)
}

// GetAllSubjects returns every distinct value of the "p"-type's first
// field ("sub").
func (e *Enforcer) GetAllSubjects() []string { return e.GetAllNamedSubjects("p") }

// GetAllNamedSubjects returns every distinct "sub" value for ptype.
func (e *Enforcer) GetAllNamedSubjects(ptype string) []string {
	return e.model.GetValuesForFieldInPolicy("p", ptype, 0)
}

// GetAllObjects returns every distinct value of the "p"-type's second
// field ("obj").
func (e *Enforcer) GetAllObjects() []string { return e.GetAllNamedObjects("p") }

// GetAllNamedObjects returns every distinct "obj" value for ptype.
func (e *Enforcer) GetAllNamedObjects(ptype string) []string {
	return e.model.GetValuesForFieldInPolicy("p", ptype, 1)
}

// GetAllActions returns every distinct value of the "p"-type's third
// field ("act").
func (e *Enforcer) GetAllActions() []string { return e.GetAllNamedActions("p") }

// GetAllNamedActions returns every distinct "act" value for ptype.
func (e *Enforcer) GetAllNamedActions(ptype string) []string {
	return e.model.GetValuesForFieldInPolicy("p", ptype, 2)
}

// GetAllRoles returns every distinct value of the "g"-type's second field
// ("role").
func (e *Enforcer) GetAllRoles() []string { return e.GetAllNamedRoles("g") }

// GetAllNamedRoles returns every distinct "role" value for gtype.
func (e *Enforcer) GetAllNamedRoles(gtype string) []string {
	return e.model.GetValuesForFieldInPolicy("g", gtype, 1)
}

func isAlreadyExists(err error) bool {
	kind, ok := coreerrors.KindOf(err)
	return ok && kind == coreerrors.AlreadyExists
}

func isNotFound(err error) bool {
	kind, ok := coreerrors.KindOf(err)
	return ok && kind == coreerrors.NotFound
}
