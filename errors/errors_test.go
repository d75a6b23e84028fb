package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	coreerrors "github.com/riftlabs/authcore/errors"
)

func TestNewAndKindOf(t *testing.T) {
	err := coreerrors.New(coreerrors.NotFound, "role %q missing", "admin")
	kind, ok := coreerrors.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, coreerrors.NotFound, kind)
	assert.Contains(t, err.Error(), "role \"admin\" missing")
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := coreerrors.Wrap(coreerrors.AdapterIO, cause, "writing policy file")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}

func TestIsComparesByKindOnly(t *testing.T) {
	a := coreerrors.New(coreerrors.AlreadyExists, "first")
	b := coreerrors.New(coreerrors.AlreadyExists, "second")
	assert.True(t, stderrors.Is(a, b))

	c := coreerrors.New(coreerrors.NotFound, "first")
	assert.False(t, stderrors.Is(a, c))
}

func TestKindOfPlainErrorIsFalse(t *testing.T) {
	_, ok := coreerrors.KindOf(stderrors.New("plain"))
	assert.False(t, ok)
}
