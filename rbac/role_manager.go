// Package rbac defines the role manager contract (spec.md §4.2): a
// pluggable, per-grouping-type component answering transitive role
// inheritance queries over a (subject, domain) graph.
package rbac

import "github.com/riftlabs/authcore/log"

// MatchingFunc lets a host widen name/domain equality into a custom
// match (e.g. keyMatch-style domain wildcards), per spec.md §4.2's
// "custom domain-matching function" escape hatch.
type MatchingFunc func(arg1, arg2 string) bool

// RoleManager maintains the directed "name1 inherits name2" graph for one
// grouping type and answers the bounded-depth queries the matcher function
// table and the RBAC management-surface helpers need.
type RoleManager interface {
	// Clear drops every edge, resetting the manager to empty.
	Clear() error
	// AddLink inserts "name1 inherits name2" within domain (idempotent).
	AddLink(name1, name2 string, domain ...string) error
	// DeleteLink removes "name1 inherits name2" within domain (idempotent).
	DeleteLink(name1, name2 string, domain ...string) error
	// HasLink reports whether name1 inherits name2 (directly or
	// transitively, bounded by the manager's configured max depth) within
	// domain. name1 == name2 is always true (reflexivity).
	HasLink(name1, name2 string, domain ...string) (bool, error)
	// GetRoles returns name's direct out-neighbors within domain.
	GetRoles(name string, domain ...string) ([]string, error)
	// GetUsers returns name's direct in-neighbors within domain.
	GetUsers(name string, domain ...string) ([]string, error)
	// PrintRoles logs the current graph via the manager's logger.
	PrintRoles() error
	// AddMatchingFunc registers a custom equality function for role
	// names (used instead of plain string equality when traversing).
	AddMatchingFunc(name string, fn MatchingFunc)
	// AddDomainMatchingFunc registers a custom equality function for
	// domains, widening HasLink to traverse nodes whose domains match
	// under it instead of requiring an exact string match.
	AddDomainMatchingFunc(name string, fn MatchingFunc)
	// SetLogger swaps the logger the manager reports through.
	SetLogger(logger log.Logger)
}
