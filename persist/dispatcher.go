package persist

// Dispatcher is a Watcher variant that carries the operation kind and
// payload so peers can apply the same mutation without a full reload
// (spec.md §6). It is consulted by the management surface before the
// in-memory mutation is applied locally, so a dispatcher-backed deployment
// can treat the dispatcher as the source of truth and every enforcer
// (including the one that originated the call) as a receiver.
type Dispatcher interface {
	AddPolicies(sec, ptype string, rules [][]string) error
	RemovePolicies(sec, ptype string, rules [][]string) error
	RemoveFilteredPolicy(sec, ptype string, fieldIndex int, fieldValues []string) error
	ClearPolicy() error
}
