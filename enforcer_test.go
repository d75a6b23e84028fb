package authcore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riftlabs/authcore"
	"github.com/riftlabs/authcore/model"
)

func testEnforce(t *testing.T, e *authcore.Enforcer, want bool, rvals ...interface{}) {
	t.Helper()
	got, err := e.Enforce(rvals...)
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func basicACLModel(t *testing.T) model.Model {
	t.Helper()
	m, err := model.NewModelFromString(`
	[request_definition]
	r = sub, obj, act

	[policy_definition]
	p = sub, obj, act

	[policy_effect]
	e = some(where (p.eft == allow))

	[matchers]
	m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
	`)
	assert.NoError(t, err)
	return m
}

func TestBasicACL(t *testing.T) {
	e, err := authcore.NewEnforcer(basicACLModel(t))
	assert.NoError(t, err)

	_, err = e.AddPolicy("alice", "data1", "read")
	assert.NoError(t, err)
	_, err = e.AddPolicy("bob", "data2", "write")
	assert.NoError(t, err)

	testEnforce(t, e, true, "alice", "data1", "read")
	testEnforce(t, e, false, "alice", "data1", "write")
	testEnforce(t, e, false, "alice", "data2", "write")
	testEnforce(t, e, true, "bob", "data2", "write")
	testEnforce(t, e, false, "bob", "data1", "read")
}

func TestRBACWithInheritance(t *testing.T) {
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

	e, err := authcore.NewEnforcer(m)
	assert.NoError(t, err)

	_, _ = e.AddPolicy("admin", "data1", "read")
	_, _ = e.AddGroupingPolicy("alice", "writer")
	_, _ = e.AddGroupingPolicy("writer", "admin")

	testEnforce(t, e, true, "admin", "data1", "read")
	testEnforce(t, e, true, "alice", "data1", "read") // alice < writer < admin
	testEnforce(t, e, false, "bob", "data1", "read")

	roles, err := e.GetImplicitRolesForUser("alice")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"writer", "admin"}, roles)
}

func TestRBACWithDomains(t *testing.T) {
	m, err := model.NewModelFromString(`
	[request_definition]
	r = sub, dom, obj, act

	[policy_definition]
	p = sub, dom, obj, act

	[role_definition]
	g = _, _, _

	[policy_effect]
	e = some(where (p.eft == allow))

	[matchers]
	m = g(r.sub, p.sub, r.dom) && r.dom == p.dom && r.obj == p.obj && r.act == p.act
	`)
	assert.NoError(t, err)

	e, err := authcore.NewEnforcer(m)
	assert.NoError(t, err)

	_, _ = e.AddPolicy("admin", "domain1", "data1", "read")
	_, _ = e.AddPolicy("admin", "domain2", "data2", "read")
	_, _ = e.AddGroupingPolicy("alice", "admin", "domain1")

	testEnforce(t, e, true, "alice", "domain1", "data1", "read")
	testEnforce(t, e, false, "alice", "domain2", "data2", "read")

	ok, err := e.HasRoleForUser("alice", "admin", "domain1")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestDenyOverride(t *testing.T) {
	m, err := model.NewModelFromString(`
	[request_definition]
	r = sub, obj, act

	[policy_definition]
	p = sub, obj, act, eft

	[policy_effect]
	e = !some(where (p.eft == deny))

	[matchers]
	m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
	`)
	assert.NoError(t, err)

	e, err := authcore.NewEnforcer(m)
	assert.NoError(t, err)

	_, _ = e.AddPolicy("alice", "data1", "write", "deny")

	testEnforce(t, e, false, "alice", "data1", "write")
	testEnforce(t, e, true, "alice", "data2", "write")
}

func TestFilteredRemovePolicy(t *testing.T) {
	e, err := authcore.NewEnforcer(basicACLModel(t))
	assert.NoError(t, err)

	_, _ = e.AddPolicy("alice", "data1", "read")
	_, _ = e.AddPolicy("alice", "data1", "write")
	_, _ = e.AddPolicy("bob", "data2", "write")

	removed, err := e.RemoveFilteredPolicy(0, "alice")
	assert.NoError(t, err)
	assert.True(t, removed)

	assert.False(t, e.HasPolicy("alice", "data1", "read"))
	assert.True(t, e.HasPolicy("bob", "data2", "write"))
}

func TestKeyMatchOnResource(t *testing.T) {
	m, err := model.NewModelFromString(`
	[request_definition]
	r = sub, obj, act

	[policy_definition]
	p = sub, obj, act

	[policy_effect]
	e = some(where (p.eft == allow))

	[matchers]
	m = r.sub == p.sub && keyMatch(r.obj, p.obj) && r.act == p.act
	`)
	assert.NoError(t, err)

	e, err := authcore.NewEnforcer(m)
	assert.NoError(t, err)

	_, _ = e.AddPolicy("alice", "/alice_data/*", "GET")

	testEnforce(t, e, true, "alice", "/alice_data/resource1", "GET")
	testEnforce(t, e, false, "alice", "/bob_data/resource1", "GET")
}

func TestEnforceContextMultiModel(t *testing.T) {
	m, err := model.NewModelFromString(`
	[request_definition]
	r = sub, obj, act
	r2 = sub, obj, act

	[policy_definition]
	p = sub, obj, act
	p2 = sub_rule, obj, act, eft

	[policy_effect]
	e = some(where (p.eft == allow))

	[matchers]
	m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
	m2 = eval(p2.sub_rule) && r2.obj == p2.obj && r2.act == p2.act
	`)
	assert.NoError(t, err)

	e, err := authcore.NewEnforcer(m)
	assert.NoError(t, err)

	_, _ = e.AddNamedPolicy("p2", "r2.sub.Age > 18", "/data1", "read", "allow")

	ctx := authcore.NewEnforceContext("2")
	ctx.EType = "e"

	ok, err := e.Enforce(ctx, struct{ Age int }{Age: 30}, "/data1", "read")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.Enforce(ctx, struct{ Age int }{Age: 10}, "/data1", "read")
	assert.NoError(t, err)
	assert.False(t, ok)
}
