package effector

import (
	coreerrors "github.com/riftlabs/authcore/errors"
)

// DefaultEffector recognizes the closed set of policy_effect expressions
// named in spec.md §4.1. It is called once per policy rule, in policy
// order, and is expected to return Indeterminate until the decision is
// settled so the enforcement pipeline can stop early.
type DefaultEffector struct{}

// NewDefaultEffector returns the default, stateless Effector.
func NewDefaultEffector() *DefaultEffector {
	return &DefaultEffector{}
}

func (e *DefaultEffector) MergeEffects(expr string, effects []Effect, results []float64, policyIndex, policyLen int) (Effect, int, error) {
	switch expr {
	case "some(where (p.eft == allow))":
		if results[policyIndex] != 0 && effects[policyIndex] == Allow {
			return Allow, policyIndex, nil
		}
		if policyIndex == policyLen-1 {
			return Deny, -1, nil
		}
		return Indeterminate, -1, nil

	case "!some(where (p.eft == deny))":
		if results[policyIndex] != 0 && effects[policyIndex] == Deny {
			return Deny, policyIndex, nil
		}
		if policyIndex == policyLen-1 {
			return Allow, -1, nil
		}
		return Indeterminate, -1, nil

	case "some(where (p.eft == allow)) && !some(where (p.eft == deny))":
		if results[policyIndex] != 0 && effects[policyIndex] == Deny {
			return Deny, policyIndex, nil
		}
		sawAllow := false
		allowIndex := -1
		for i := 0; i <= policyIndex; i++ {
			if results[i] != 0 && effects[i] == Allow {
				sawAllow = true
				allowIndex = i
			}
		}
		if policyIndex == policyLen-1 {
			if sawAllow {
				return Allow, allowIndex, nil
			}
			return Deny, -1, nil
		}
		return Indeterminate, -1, nil

	case "priority(p.eft) || deny":
		if results[policyIndex] == 0 {
			if policyIndex == policyLen-1 {
				return Deny, -1, nil
			}
			return Indeterminate, -1, nil
		}
		if effects[policyIndex] == Allow {
			return Allow, policyIndex, nil
		}
		return Deny, policyIndex, nil

	default:
		return Indeterminate, -1, coreerrors.New(coreerrors.UnsupportedEffect, "unsupported policy effect: %q", expr)
	}
}
