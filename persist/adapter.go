// Package persist specifies the external-collaborator contracts spec.md §1
// and §6 carve out of the core: adapters, watchers, and dispatchers. The
// core depends only on these interfaces; concrete persistence/transport/
// distribution implementations (beyond the bundled file adapter) are the
// host's responsibility.
package persist

import "github.com/riftlabs/authcore/model"

// Adapter is the contract every persistence backend implements (spec.md
// §6 "Adapter contract"). LoadPolicy/SavePolicy are required; the rest are
// optional incremental operations an adapter may support for efficiency —
// callers falling back to a full SavePolicy is always correct.
type Adapter interface {
	// LoadPolicy reads every stored rule into m.
	LoadPolicy(m model.Model) error
	// SavePolicy writes every rule currently in m, replacing whatever the
	// backend held before.
	SavePolicy(m model.Model) error
	// AddPolicy persists a single newly-added rule. Adapters that cannot
	// do so incrementally return an error of kind UnsupportedByAdapter;
	// the management surface then keeps the in-memory change and does not
	// persist it (no SavePolicy is issued in its place).
	AddPolicy(sec, ptype string, rule []string) error
	// RemovePolicy persists a single rule's removal.
	RemovePolicy(sec, ptype string, rule []string) error
	// RemoveFilteredPolicy persists a wildcard-filtered bulk removal, per
	// spec.md §4.3's field_index/field_values rule.
	RemoveFilteredPolicy(sec, ptype string, fieldIndex int, fieldValues ...string) error
}

// BatchAdapter is implemented by adapters that can persist a batch of
// added/removed rules more efficiently than one call per rule.
type BatchAdapter interface {
	Adapter
	AddPolicies(sec, ptype string, rules [][]string) error
	RemovePolicies(sec, ptype string, rules [][]string) error
}

// UpdatableAdapter is implemented by adapters that can persist a rule
// replacement directly instead of as a remove+add pair.
type UpdatableAdapter interface {
	Adapter
	UpdatePolicy(sec, ptype string, oldRule, newRule []string) error
	UpdatePolicies(sec, ptype string, oldRules, newRules [][]string) error
}
