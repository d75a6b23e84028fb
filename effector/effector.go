// Package effector aggregates the per-rule (matched, eft) outcomes the
// enforcement pipeline produces into the single allow/deny decision
// required by spec.md §4.1's closed set of policy_effect expressions.
package effector

// Effect is the per-rule outcome fed into an Effector.
type Effect int

const (
	Allow Effect = iota
	Indeterminate
	Deny
)

// Effector merges the sequence of per-rule effects produced so far with
// the latest rule's (effect, matched) pair, returning the effect computed
// so far; any effect other than Indeterminate means the caller can stop
// early (the returned index is -1 until a rule has decided the outcome).
type Effector interface {
	// MergeEffects evaluates expr (one of the recognized policy_effect
	// strings) against effects[:policyLen] given the newest result at
	// results[policyIndex] already written in by the caller, returning the
	// current overall effect and the index of the rule that produced it
	// (-1 if none yet).
	MergeEffects(expr string, effects []Effect, results []float64, policyIndex, policyLen int) (Effect, int, error)
}
