package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riftlabs/authcore/util"
)

func TestKeyMatch(t *testing.T) {
	assert.True(t, util.KeyMatch("/foo/bar", "/foo/*"))
	assert.False(t, util.KeyMatch("/baz/bar", "/foo/*"))
	assert.True(t, util.KeyMatch("/foo", "/foo"))
}

func TestKeyMatch2(t *testing.T) {
	assert.True(t, util.KeyMatch2("/alice/resource1", "/:user/resource1"))
	assert.False(t, util.KeyMatch2("/alice/resource1/extra", "/:user/resource1"))
}

func TestIPMatch(t *testing.T) {
	assert.True(t, util.IPMatch("192.168.1.5", "192.168.1.0/24"))
	assert.False(t, util.IPMatch("10.0.0.5", "192.168.1.0/24"))
	assert.True(t, util.IPMatch("127.0.0.1", "127.0.0.1"))
}

func TestGlobMatch(t *testing.T) {
	assert.True(t, util.GlobMatch("foo.txt", "*.txt"))
	assert.False(t, util.GlobMatch("a/foo.txt", "*.txt"))
}

func TestEscapeAssertion(t *testing.T) {
	assert.Equal(t, "r_sub == p_sub", util.EscapeAssertion("r.sub == p.sub"))
	assert.Equal(t, "g(r_sub, p_sub, r_dom)", util.EscapeAssertion("g(r.sub, p.sub, r.dom)"))
	assert.Equal(t, "r2_obj.Owner", util.EscapeAssertion("r2.obj.Owner"))
}

func TestHasEval(t *testing.T) {
	assert.True(t, util.HasEval("eval(p2.sub_rule) && r.obj == p.obj"))
	assert.False(t, util.HasEval("reeval(x) && true"))
}

func TestRemoveComments(t *testing.T) {
	assert.Equal(t, "r.sub == p.sub", util.RemoveComments("r.sub == p.sub # a comment"))
	assert.Equal(t, "r.sub == p.sub", util.RemoveComments("r.sub == p.sub"))
}

func TestSetSubtract(t *testing.T) {
	got := util.SetSubtract([]string{"a", "b", "c"}, []string{"b"})
	assert.Equal(t, []string{"a", "c"}, got)
}
