package model

import (
	"sort"
	"strconv"

	"github.com/riftlabs/authcore/rbac"
)

// PolicyOp distinguishes an incremental add from an incremental remove for
// BuildIncrementalRoleLinks.
type PolicyOp int

const (
	PolicyAdd PolicyOp = iota
	PolicyRemove
)

// BuildRoleLinks rebuilds every "g*" assertion's role manager from
// scratch, using rmMap[gtype] (creating and storing a fresh manager into
// rmMap if absent is the caller's responsibility — BuildRoleLinks only
// reads from rmMap).
func (m Model) BuildRoleLinks(rmMap map[string]rbac.RoleManager) error {
	for gtype, a := range m["g"] {
		rm, ok := rmMap[gtype]
		if !ok {
			continue
		}
		a.RM = rm
		for _, rule := range a.Policy {
			if err := addRoleRule(rm, rule); err != nil {
				return err
			}
		}
	}
	return nil
}

func addRoleRule(rm rbac.RoleManager, rule []string) error {
	switch len(rule) {
	case 2:
		return rm.AddLink(rule[0], rule[1])
	default:
		return rm.AddLink(rule[0], rule[1], rule[2:]...)
	}
}

func removeRoleRule(rm rbac.RoleManager, rule []string) error {
	switch len(rule) {
	case 2:
		return rm.DeleteLink(rule[0], rule[1])
	default:
		return rm.DeleteLink(rule[0], rule[1], rule[2:]...)
	}
}

// BuildIncrementalRoleLinks applies a single add/remove grouping-policy
// mutation (rules, possibly several at once) to rmMap[gtype] without
// rebuilding the whole graph; it does nothing if gtype has no manager.
func (m Model) BuildIncrementalRoleLinks(rmMap map[string]rbac.RoleManager, op PolicyOp, gtype string, rules [][]string) error {
	rm, ok := rmMap[gtype]
	if !ok {
		return nil
	}
	for _, rule := range rules {
		var err error
		if op == PolicyAdd {
			err = addRoleRule(rm, rule)
		} else {
			err = removeRoleRule(rm, rule)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// SortPoliciesByPriority stable-sorts every "p*" assertion's rules that
// declare a "priority" field, ascending by that field's integer value, so
// the priority(p.eft) || deny effect can rely on list order alone.
func (m Model) SortPoliciesByPriority() error {
	for _, a := range m["p"] {
		if a.PriorityIndex < 0 {
			continue
		}
		idx := a.PriorityIndex
		sort.SliceStable(a.Policy, func(i, j int) bool {
			pi, _ := strconv.Atoi(a.Policy[i][idx])
			pj, _ := strconv.Atoi(a.Policy[j][idx])
			return pi < pj
		})
	}
	return nil
}
