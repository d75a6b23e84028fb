package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riftlabs/authcore/model"
)

func TestAddDefAndTokens(t *testing.T) {
	m := model.NewModel()
	_, err := m.AddDef("r", "r", "sub, obj, act")
	assert.NoError(t, err)
	_, err = m.AddDef("p", "p", "sub, obj, act, eft")
	assert.NoError(t, err)

	assert.Equal(t, []string{"r_sub", "r_obj", "r_act"}, m["r"]["r"].Tokens)
	assert.Equal(t, map[string]int{"p_sub": 0, "p_obj": 1, "p_act": 2, "p_eft": 3}, m.TokensIndex("p", "p"))
}

func TestAddDefRejectsUnknownSection(t *testing.T) {
	m := model.NewModel()
	_, err := m.AddDef("x", "x", "a, b")
	assert.Error(t, err)
}

func TestNewModelFromStringRequiresCoreSections(t *testing.T) {
	_, err := model.NewModelFromString(`
	[request_definition]
	r = sub, obj, act
	`)
	assert.Error(t, err)
}

func TestCopyIsIndependent(t *testing.T) {
	m := model.NewModel()
	_, _ = m.AddDef("r", "r", "sub, obj, act")
	_, _ = m.AddDef("p", "p", "sub, obj, act")
	_, _ = m.AddDef("e", "e", "some(where (p.eft == allow))")
	_, _ = m.AddDef("m", "m", "r.sub == p.sub")
	_ = m.AddPolicy("p", "p", []string{"alice", "data1", "read"})

	clone := m.Copy()
	_ = clone.AddPolicy("p", "p", []string{"bob", "data2", "write"})

	assert.Len(t, m.GetPolicy("p", "p"), 1)
	assert.Len(t, clone.GetPolicy("p", "p"), 2)
}

func TestClearPolicyKeepsDefinitions(t *testing.T) {
	m := model.NewModel()
	_, _ = m.AddDef("p", "p", "sub, obj, act")
	_ = m.AddPolicy("p", "p", []string{"alice", "data1", "read"})

	m.ClearPolicy()

	assert.Empty(t, m.GetPolicy("p", "p"))
	assert.NotNil(t, m["p"]["p"])
}

func TestSortPoliciesByPriority(t *testing.T) {
	m := model.NewModel()
	_, _ = m.AddDef("p", "p", "sub, obj, act, priority")
	_ = m.AddPolicy("p", "p", []string{"alice", "data1", "read", "2"})
	_ = m.AddPolicy("p", "p", []string{"bob", "data1", "read", "1"})

	assert.NoError(t, m.SortPoliciesByPriority())

	rules := m.GetPolicy("p", "p")
	assert.Equal(t, "bob", rules[0][0])
	assert.Equal(t, "alice", rules[1][0])
}
