package authcore

import (
	coreerrors "github.com/riftlabs/authcore/errors"
	"github.com/riftlabs/authcore/model"
	"github.com/riftlabs/authcore/persist"
)

// adapterUnsupported reports whether err signals that the adapter chose
// not to support an incremental operation, in which case the mutation
// pipeline treats the in-memory change as the source of truth and moves
// on rather than failing the whole call.
func adapterUnsupported(err error) bool {
	kind, ok := coreerrors.KindOf(err)
	return ok && kind == coreerrors.UnsupportedByAdapter
}

// addPolicy is the mutation pipeline spec.md §4.5 describes for a single
// added rule. When a dispatcher is set and auto-notify-dispatcher is on,
// the rule is handed to the dispatcher and nothing is applied locally.
// Otherwise it applies the rule to the in-memory store, updates the
// affected role manager if this is a grouping policy, persists through
// the adapter, and notifies the watcher.
func (e *Enforcer) addPolicy(sec, ptype string, rule []string) (bool, error) {
	if e.dispatcher != nil && e.autoNotifyDispatcher {
		if err := e.dispatcher.AddPolicies(sec, ptype, [][]string{rule}); err != nil {
			return false, err
		}
		return true, nil
	}

	if err := e.model.AddPolicy(sec, ptype, rule); err != nil {
		return false, err
	}

	if sec == "g" && e.autoBuildRoleLinks {
		if err := e.BuildIncrementalRoleLinks(model.PolicyAdd, ptype, [][]string{rule}); err != nil {
			return false, err
		}
	}

	if e.adapter != nil && e.autoSave {
		if err := e.adapter.AddPolicy(sec, ptype, rule); err != nil {
			if !adapterUnsupported(err) {
				return false, err
			}
		}
	}

	if e.watcher != nil && e.autoNotifyWatcher {
		if ex, ok := e.watcher.(persist.WatcherEx); ok {
			if err := ex.UpdateForAddPolicy(sec, ptype, rule...); err != nil {
				return false, err
			}
		} else if err := e.watcher.Update(); err != nil {
			return false, err
		}
	}

	return true, nil
}

// addPolicies is addPolicy's all-or-nothing batch form.
func (e *Enforcer) addPolicies(sec, ptype string, rules [][]string) (bool, error) {
	if e.dispatcher != nil && e.autoNotifyDispatcher {
		if err := e.dispatcher.AddPolicies(sec, ptype, rules); err != nil {
			return false, err
		}
		return true, nil
	}

	if _, err := e.model.AddPolicies(sec, ptype, rules); err != nil {
		return false, err
	}

	if sec == "g" && e.autoBuildRoleLinks {
		if err := e.BuildIncrementalRoleLinks(model.PolicyAdd, ptype, rules); err != nil {
			return false, err
		}
	}

	if e.adapter != nil && e.autoSave {
		if ba, ok := e.adapter.(persist.BatchAdapter); ok {
			if err := ba.AddPolicies(sec, ptype, rules); err != nil {
				if !adapterUnsupported(err) {
					return false, err
				}
			}
		}
	}

	if e.watcher != nil && e.autoNotifyWatcher {
		if ex, ok := e.watcher.(persist.WatcherEx); ok {
			if err := ex.UpdateForAddPolicies(sec, ptype, rules...); err != nil {
				return false, err
			}
		} else if err := e.watcher.Update(); err != nil {
			return false, err
		}
	}

	return true, nil
}

func (e *Enforcer) removePolicy(sec, ptype string, rule []string) (bool, error) {
	if e.dispatcher != nil && e.autoNotifyDispatcher {
		if err := e.dispatcher.RemovePolicies(sec, ptype, [][]string{rule}); err != nil {
			return false, err
		}
		return true, nil
	}

	if err := e.model.RemovePolicy(sec, ptype, rule); err != nil {
		return false, err
	}

	if sec == "g" && e.autoBuildRoleLinks {
		if err := e.BuildIncrementalRoleLinks(model.PolicyRemove, ptype, [][]string{rule}); err != nil {
			return false, err
		}
	}

	if e.adapter != nil && e.autoSave {
		if err := e.adapter.RemovePolicy(sec, ptype, rule); err != nil {
			if !adapterUnsupported(err) {
				return false, err
			}
		}
	}

	if e.watcher != nil && e.autoNotifyWatcher {
		if ex, ok := e.watcher.(persist.WatcherEx); ok {
			if err := ex.UpdateForRemovePolicy(sec, ptype, rule...); err != nil {
				return false, err
			}
		} else if err := e.watcher.Update(); err != nil {
			return false, err
		}
	}

	return true, nil
}

func (e *Enforcer) removePolicies(sec, ptype string, rules [][]string) (bool, error) {
	if e.dispatcher != nil && e.autoNotifyDispatcher {
		if err := e.dispatcher.RemovePolicies(sec, ptype, rules); err != nil {
			return false, err
		}
		return true, nil
	}

	if err := e.model.RemovePolicies(sec, ptype, rules); err != nil {
		return false, err
	}

	if sec == "g" && e.autoBuildRoleLinks {
		if err := e.BuildIncrementalRoleLinks(model.PolicyRemove, ptype, rules); err != nil {
			return false, err
		}
	}

	if e.adapter != nil && e.autoSave {
		if ba, ok := e.adapter.(persist.BatchAdapter); ok {
			if err := ba.RemovePolicies(sec, ptype, rules); err != nil {
				if !adapterUnsupported(err) {
					return false, err
				}
			}
		}
	}

	if e.watcher != nil && e.autoNotifyWatcher {
		if ex, ok := e.watcher.(persist.WatcherEx); ok {
			if err := ex.UpdateForRemovePolicies(sec, ptype, rules...); err != nil {
				return false, err
			}
		} else if err := e.watcher.Update(); err != nil {
			return false, err
		}
	}

	return true, nil
}

func (e *Enforcer) removeFilteredPolicy(sec, ptype string, fieldIndex int, fieldValues ...string) (bool, error) {
	if e.dispatcher != nil && e.autoNotifyDispatcher {
		if err := e.dispatcher.RemoveFilteredPolicy(sec, ptype, fieldIndex, fieldValues); err != nil {
			return false, err
		}
		return true, nil
	}

	removed, err := e.model.RemoveFilteredPolicy(sec, ptype, fieldIndex, fieldValues...)
	if err != nil {
		return false, err
	}
	if len(removed) == 0 {
		return false, nil
	}

	if sec == "g" && e.autoBuildRoleLinks {
		if err := e.BuildIncrementalRoleLinks(model.PolicyRemove, ptype, removed); err != nil {
			return false, err
		}
	}

	if e.adapter != nil && e.autoSave {
		if err := e.adapter.RemoveFilteredPolicy(sec, ptype, fieldIndex, fieldValues...); err != nil {
			if !adapterUnsupported(err) {
				return false, err
			}
		}
	}

	if e.watcher != nil && e.autoNotifyWatcher {
		if ex, ok := e.watcher.(persist.WatcherEx); ok {
			if err := ex.UpdateForRemoveFilteredPolicy(sec, ptype, fieldIndex, fieldValues...); err != nil {
				return false, err
			}
		} else if err := e.watcher.Update(); err != nil {
			return false, err
		}
	}

	return true, nil
}

func (e *Enforcer) updatePolicy(sec, ptype string, oldRule, newRule []string) (bool, error) {
	if err := e.model.UpdatePolicy(sec, ptype, oldRule, newRule); err != nil {
		return false, err
	}

	if sec == "g" && e.autoBuildRoleLinks {
		if err := e.BuildIncrementalRoleLinks(model.PolicyRemove, ptype, [][]string{oldRule}); err != nil {
			return false, err
		}
		if err := e.BuildIncrementalRoleLinks(model.PolicyAdd, ptype, [][]string{newRule}); err != nil {
			return false, err
		}
	}

	if e.adapter != nil && e.autoSave {
		if ua, ok := e.adapter.(persist.UpdatableAdapter); ok {
			if err := ua.UpdatePolicy(sec, ptype, oldRule, newRule); err != nil {
				if !adapterUnsupported(err) {
					return false, err
				}
			}
		}
	}

	if e.watcher != nil && e.autoNotifyWatcher {
		if err := e.watcher.Update(); err != nil {
			return false, err
		}
	}

	return true, nil
}

func (e *Enforcer) updatePolicies(sec, ptype string, oldRules, newRules [][]string) (bool, error) {
	if err := e.model.UpdatePolicies(sec, ptype, oldRules, newRules); err != nil {
		return false, err
	}

	if sec == "g" && e.autoBuildRoleLinks {
		if err := e.BuildIncrementalRoleLinks(model.PolicyRemove, ptype, oldRules); err != nil {
			return false, err
		}
		if err := e.BuildIncrementalRoleLinks(model.PolicyAdd, ptype, newRules); err != nil {
			return false, err
		}
	}

	if e.adapter != nil && e.autoSave {
		if ua, ok := e.adapter.(persist.UpdatableAdapter); ok {
			if err := ua.UpdatePolicies(sec, ptype, oldRules, newRules); err != nil {
				if !adapterUnsupported(err) {
					return false, err
				}
			}
		}
	}

	if e.watcher != nil && e.autoNotifyWatcher {
		if err := e.watcher.Update(); err != nil {
			return false, err
		}
	}

	return true, nil
}
