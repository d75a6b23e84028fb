package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riftlabs/authcore/model"
)

func aclModel(t *testing.T) model.Model {
	t.Helper()
	m := model.NewModel()
	_, err := m.AddDef("p", "p", "sub, obj, act")
	assert.NoError(t, err)
	return m
}

func TestAddPolicyRejectsDuplicate(t *testing.T) {
	m := aclModel(t)
	assert.NoError(t, m.AddPolicy("p", "p", []string{"alice", "data1", "read"}))
	err := m.AddPolicy("p", "p", []string{"alice", "data1", "read"})
	assert.Error(t, err)
}

func TestAddPolicyRejectsArityMismatch(t *testing.T) {
	m := aclModel(t)
	err := m.AddPolicy("p", "p", []string{"alice", "data1"})
	assert.Error(t, err)
}

func TestAddPoliciesAllOrNothing(t *testing.T) {
	m := aclModel(t)
	assert.NoError(t, m.AddPolicy("p", "p", []string{"alice", "data1", "read"}))

	_, err := m.AddPolicies("p", "p", [][]string{
		{"bob", "data2", "write"},
		{"alice", "data1", "read"}, // duplicate
	})
	assert.Error(t, err)
	assert.Len(t, m.GetPolicy("p", "p"), 1)
}

func TestRemovePolicy(t *testing.T) {
	m := aclModel(t)
	_ = m.AddPolicy("p", "p", []string{"alice", "data1", "read"})

	assert.NoError(t, m.RemovePolicy("p", "p", []string{"alice", "data1", "read"}))
	assert.Error(t, m.RemovePolicy("p", "p", []string{"alice", "data1", "read"}))
}

func TestRemoveFilteredPolicy(t *testing.T) {
	m := aclModel(t)
	_ = m.AddPolicy("p", "p", []string{"alice", "data1", "read"})
	_ = m.AddPolicy("p", "p", []string{"alice", "data2", "write"})
	_ = m.AddPolicy("p", "p", []string{"bob", "data1", "read"})

	removed, err := m.RemoveFilteredPolicy("p", "p", 0, "alice")
	assert.NoError(t, err)
	assert.Len(t, removed, 2)
	assert.Len(t, m.GetPolicy("p", "p"), 1)
}

func TestUpdatePolicy(t *testing.T) {
	m := aclModel(t)
	_ = m.AddPolicy("p", "p", []string{"alice", "data1", "read"})

	err := m.UpdatePolicy("p", "p", []string{"alice", "data1", "read"}, []string{"alice", "data1", "write"})
	assert.NoError(t, err)
	assert.True(t, m.HasPolicy("p", "p", []string{"alice", "data1", "write"}))
	assert.False(t, m.HasPolicy("p", "p", []string{"alice", "data1", "read"}))
}

func TestGetValuesForFieldInPolicy(t *testing.T) {
	m := aclModel(t)
	_ = m.AddPolicy("p", "p", []string{"alice", "data1", "read"})
	_ = m.AddPolicy("p", "p", []string{"bob", "data1", "read"})
	_ = m.AddPolicy("p", "p", []string{"alice", "data2", "write"})

	subs := m.GetValuesForFieldInPolicy("p", "p", 0)
	assert.ElementsMatch(t, []string{"alice", "bob"}, subs)
}
