package persist

import "github.com/riftlabs/authcore/model"

// Watcher propagates policy changes across enforcer instances (spec.md §6
// "Watcher contract"). It is out of core scope beyond this contract: the
// core calls Update/SetUpdateCallback and otherwise owns none of a
// Watcher's lifecycle.
type Watcher interface {
	// SetUpdateCallback registers the function the watcher invokes when
	// an external change arrives; the callback receives an opaque
	// identifier and typically triggers LoadPolicy on the receiver.
	SetUpdateCallback(callback func(string)) error
	// Update notifies peers that the local policy changed.
	Update() error
	// Close releases any resources the watcher holds (connections,
	// subscriptions); safe to call more than once.
	Close()
}

// WatcherEx is a richer Watcher that carries the specific mutation instead
// of only a generic "something changed" signal, letting a receiver apply
// the same operation without a full reload.
type WatcherEx interface {
	Watcher
	UpdateForAddPolicy(sec, ptype string, params ...string) error
	UpdateForRemovePolicy(sec, ptype string, params ...string) error
	UpdateForRemoveFilteredPolicy(sec, ptype string, fieldIndex int, fieldValues ...string) error
	UpdateForSavePolicy(m model.Model) error
	UpdateForAddPolicies(sec, ptype string, rules ...[]string) error
	UpdateForRemovePolicies(sec, ptype string, rules ...[]string) error
}
