package defaultrolemanager_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riftlabs/authcore/rbac/defaultrolemanager"
)

func TestHasLinkTransitive(t *testing.T) {
	rm := defaultrolemanager.NewRoleManager(10)

	assert.NoError(t, rm.AddLink("alice", "writer"))
	assert.NoError(t, rm.AddLink("writer", "admin"))

	ok, err := rm.HasLink("alice", "admin")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = rm.HasLink("bob", "admin")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestHasLinkReflexive(t *testing.T) {
	rm := defaultrolemanager.NewRoleManager(10)
	ok, err := rm.HasLink("alice", "alice")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestHasLinkBoundedDepth(t *testing.T) {
	rm := defaultrolemanager.NewRoleManager(2)
	assert.NoError(t, rm.AddLink("a", "b"))
	assert.NoError(t, rm.AddLink("b", "c"))
	assert.NoError(t, rm.AddLink("c", "d"))

	ok, err := rm.HasLink("a", "c")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = rm.HasLink("a", "d")
	assert.NoError(t, err)
	assert.False(t, ok, "d is 3 hops away, beyond the configured max depth of 2")
}

func TestDeleteLink(t *testing.T) {
	rm := defaultrolemanager.NewRoleManager(10)
	assert.NoError(t, rm.AddLink("alice", "admin"))
	assert.NoError(t, rm.DeleteLink("alice", "admin"))

	ok, err := rm.HasLink("alice", "admin")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestDomainScopedLinks(t *testing.T) {
	rm := defaultrolemanager.NewRoleManager(10)
	assert.NoError(t, rm.AddLink("alice", "admin", "domain1"))

	ok, err := rm.HasLink("alice", "admin", "domain1")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = rm.HasLink("alice", "admin", "domain2")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestGetRolesAndUsers(t *testing.T) {
	rm := defaultrolemanager.NewRoleManager(10)
	assert.NoError(t, rm.AddLink("alice", "admin"))
	assert.NoError(t, rm.AddLink("bob", "admin"))

	roles, err := rm.GetRoles("alice")
	assert.NoError(t, err)
	assert.Equal(t, []string{"admin"}, roles)

	users, err := rm.GetUsers("admin")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, users)
}

func TestClearResetsGraph(t *testing.T) {
	rm := defaultrolemanager.NewRoleManager(10)
	assert.NoError(t, rm.AddLink("alice", "admin"))
	assert.NoError(t, rm.Clear())

	ok, err := rm.HasLink("alice", "admin")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestCustomMatchingFunc(t *testing.T) {
	rm := defaultrolemanager.NewRoleManager(10)
	assert.NoError(t, rm.AddLink("alice", "admin*"))
	rm.AddMatchingFunc("keyMatch", func(target, candidate string) bool {
		return candidate == "admin*" && len(target) >= 5 && target[:5] == "admin"
	})

	ok, err := rm.HasLink("alice", "admin_west")
	assert.NoError(t, err)
	assert.True(t, ok)
}
