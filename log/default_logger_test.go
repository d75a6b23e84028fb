package log_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riftlabs/authcore/log"
)

func TestDefaultLoggerDisabledByDefault(t *testing.T) {
	l := log.NewDefaultLogger()
	assert.False(t, l.IsEnabled())
}

func TestEnableLogTogglesState(t *testing.T) {
	l := log.NewDefaultLogger()
	l.EnableLog(true)
	assert.True(t, l.IsEnabled())
	l.EnableLog(false)
	assert.False(t, l.IsEnabled())
}

func TestDefaultLoggerSatisfiesInterface(t *testing.T) {
	var _ log.Logger = log.NewDefaultLogger()
}
