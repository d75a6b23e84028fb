package effector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riftlabs/authcore/effector"
)

func TestSomeAllowEffect(t *testing.T) {
	eft := effector.NewDefaultEffector()
	expr := "some(where (p.eft == allow))"

	effects := []effector.Effect{effector.Indeterminate, effector.Allow}
	results := []float64{0, 1}

	e, idx, err := eft.MergeEffects(expr, effects, results, 0, 2)
	assert.NoError(t, err)
	assert.Equal(t, effector.Indeterminate, e)
	assert.Equal(t, -1, idx)

	e, idx, err = eft.MergeEffects(expr, effects, results, 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, effector.Allow, e)
	assert.Equal(t, 1, idx)
}

func TestNoDenyEffectStopsOnDeny(t *testing.T) {
	eft := effector.NewDefaultEffector()
	expr := "!some(where (p.eft == deny))"

	effects := []effector.Effect{effector.Deny}
	results := []float64{1}

	e, idx, err := eft.MergeEffects(expr, effects, results, 0, 2)
	assert.NoError(t, err)
	assert.Equal(t, effector.Deny, e)
	assert.Equal(t, 0, idx)
}

func TestAllowAndNotDenyEffect(t *testing.T) {
	eft := effector.NewDefaultEffector()
	expr := "some(where (p.eft == allow)) && !some(where (p.eft == deny))"

	effects := []effector.Effect{effector.Allow, effector.Deny}
	results := []float64{1, 1}

	_, _, err := eft.MergeEffects(expr, effects, results, 0, 2)
	assert.NoError(t, err)

	e, idx, err := eft.MergeEffects(expr, effects, results, 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, effector.Deny, e)
	assert.Equal(t, 1, idx)
}

func TestPriorityEffect(t *testing.T) {
	eft := effector.NewDefaultEffector()
	expr := "priority(p.eft) || deny"

	effects := []effector.Effect{effector.Deny}
	results := []float64{1}

	e, idx, err := eft.MergeEffects(expr, effects, results, 0, 1)
	assert.NoError(t, err)
	assert.Equal(t, effector.Deny, e)
	assert.Equal(t, 0, idx)
}

func TestUnsupportedEffect(t *testing.T) {
	eft := effector.NewDefaultEffector()
	_, _, err := eft.MergeEffects("bogus", nil, nil, 0, 0)
	assert.Error(t, err)
}
