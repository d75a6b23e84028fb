package authcore_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riftlabs/authcore"
)

func TestSyncedEnforcerConcurrentEnforce(t *testing.T) {
	e, err := authcore.NewSyncedEnforcer(basicACLModel(t))
	assert.NoError(t, err)

	_, err = e.AddPolicy("alice", "data1", "read")
	assert.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := e.Enforce("alice", "data1", "read")
			assert.NoError(t, err)
			assert.True(t, ok)
		}()
	}
	wg.Wait()
}

func TestSyncedEnforcerLoadPolicyExcludesEnforce(t *testing.T) {
	e, err := authcore.NewSyncedEnforcer(basicACLModel(t))
	assert.NoError(t, err)

	_, err = e.AddPolicy("alice", "data1", "read")
	assert.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = e.Enforce("alice", "data1", "read")
	}()
	go func() {
		defer wg.Done()
		assert.NoError(t, e.LoadPolicy())
	}()
	wg.Wait()
}
