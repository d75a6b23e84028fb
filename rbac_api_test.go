package authcore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riftlabs/authcore"
	"github.com/riftlabs/authcore/model"
)

func rbacModel(t *testing.T) model.Model {
	t.Helper()
	m, err := model.NewModelFromString(`
	[request_definition]
	r = sub, obj, act

	[policy_definition]
	p = sub, obj, act

	[role_definition]
	g = _, _

	[policy_effect]
	e = some(where (p.eft == allow))

	[matchers]
	m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
	`)
	assert.NoError(t, err)
	return m
}

func TestAddAndDeletePermissionForUser(t *testing.T) {
	e, err := authcore.NewEnforcer(rbacModel(t))
	assert.NoError(t, err)

	ok, err := e.AddPermissionForUser("alice", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, e.HasPermissionForUser("alice", "data1", "read"))

	ok, err = e.DeletePermissionForUser("alice", "data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, e.HasPermissionForUser("alice", "data1", "read"))
}

func TestGetImplicitPermissionsForUser(t *testing.T) {
	e, err := authcore.NewEnforcer(rbacModel(t))
	assert.NoError(t, err)

	_, _ = e.AddPermissionForUser("data2_admin", "data2", "read")
	_, _ = e.AddPermissionForUser("data2_admin", "data2", "write")
	_, _ = e.AddPermissionForUser("alice", "data1", "read")
	_, _ = e.AddRoleForUser("alice", "data2_admin")

	perms, err := e.GetImplicitPermissionsForUser("alice")
	assert.NoError(t, err)
	assert.Len(t, perms, 3)
}

func TestDeleteRoleForUser(t *testing.T) {
	e, err := authcore.NewEnforcer(rbacModel(t))
	assert.NoError(t, err)

	_, _ = e.AddRoleForUser("alice", "admin")
	ok, err := e.HasRoleForUser("alice", "admin")
	assert.NoError(t, err)
	assert.True(t, ok)

	_, err = e.DeleteRoleForUser("alice", "admin")
	assert.NoError(t, err)

	ok, err = e.HasRoleForUser("alice", "admin")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteUser(t *testing.T) {
	e, err := authcore.NewEnforcer(rbacModel(t))
	assert.NoError(t, err)

	_, _ = e.AddPermissionForUser("alice", "data1", "read")
	_, _ = e.AddRoleForUser("alice", "admin")

	ok, err := e.DeleteUser("alice")
	assert.NoError(t, err)
	assert.True(t, ok)

	assert.Empty(t, e.GetPermissionsForUser("alice"))
	roles, err := e.GetRolesForUser("alice")
	assert.NoError(t, err)
	assert.Empty(t, roles)
}
