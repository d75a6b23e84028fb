package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riftlabs/authcore/config"
)

func TestNewConfigFromTextParsesSections(t *testing.T) {
	c, err := config.NewConfigFromText(`
# a comment
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act
`)
	assert.NoError(t, err)
	assert.Equal(t, "sub, obj, act", c.GetString("request_definition::r"))
	assert.Equal(t, "sub, obj, act", c.GetString("policy_definition::p"))
}

func TestSectionReturnsAllKeys(t *testing.T) {
	c, err := config.NewConfigFromText(`
[role_definition]
g = _, _
g2 = _, _, _
`)
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"g": "_, _", "g2": "_, _, _"}, c.Section("role_definition"))
}

func TestBlankLinesAndCommentsSkipped(t *testing.T) {
	c, err := config.NewConfigFromText(`

; semicolon comment
[m]
m = r.sub == p.sub
# trailing comment line
`)
	assert.NoError(t, err)
	assert.Equal(t, "r.sub == p.sub", c.GetString("m::m"))
}

func TestMissingKeyReturnsEmptyString(t *testing.T) {
	c, err := config.NewConfigFromText(`[p]
p = sub, obj, act
`)
	assert.NoError(t, err)
	assert.Equal(t, "", c.GetString("p::nonexistent"))
}

func TestUnterminatedSectionHeaderIsError(t *testing.T) {
	_, err := config.NewConfigFromText("[p\np = sub, obj, act\n")
	assert.Error(t, err)
}

func TestLineWithoutEqualsIsError(t *testing.T) {
	_, err := config.NewConfigFromText("[p]\nnotakeyvalue\n")
	assert.Error(t, err)
}

func TestKeyLookupIsCaseInsensitive(t *testing.T) {
	c, err := config.NewConfigFromText("[Request_Definition]\nR = sub, obj, act\n")
	assert.NoError(t, err)
	assert.Equal(t, "sub, obj, act", c.GetString("request_definition::r"))
}
