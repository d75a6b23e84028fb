package authcore

import (
	"sync"
	"time"

	"github.com/riftlabs/authcore/log"
	"github.com/riftlabs/authcore/model"
)

// SyncedEnforcer wraps an Enforcer with a sync.RWMutex so one instance can
// be shared across goroutines the way the bundled concurrent-usage
// pattern does: background periodic LoadPolicy alongside concurrent
// Enforce calls from request-handling goroutines (spec.md §5 "Concurrency
// tier"). Only the methods defined in this file take the lock: Enforce,
// EnforceWithMatcher, BatchEnforce, GetModel and SavePolicy take the read
// lock and run in parallel with each other; LoadPolicy, LoadModel,
// ClearPolicy, AddPolicy, RemovePolicy, RemoveFilteredPolicy,
// AddGroupingPolicy, RemoveGroupingPolicy, BuildRoleLinks and SetLogger
// take the write lock and exclude both reads and other writes. Every other
// method is promoted from the embedded Enforcer and runs without the lock
// (for example EnforceEx, AddPolicies, UpdatePolicy, SetModel and the RBAC
// helpers such as AddRoleForUser).
type SyncedEnforcer struct {
	*Enforcer
	mu             sync.RWMutex
	autoLoadTicker *time.Ticker
	stopAutoLoad   chan struct{}
}

// NewSyncedEnforcer builds a SyncedEnforcer the same way NewEnforcer does.
func NewSyncedEnforcer(params ...interface{}) (*SyncedEnforcer, error) {
	e, err := NewEnforcer(params...)
	if err != nil {
		return nil, err
	}
	return &SyncedEnforcer{Enforcer: e}, nil
}

// Enforce decides a request under the read lock, so concurrent Enforce
// calls never block each other.
func (s *SyncedEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Enforcer.Enforce(rvals...)
}

// EnforceWithMatcher is Enforce with a custom matcher, under the read
// lock.
func (s *SyncedEnforcer) EnforceWithMatcher(matcher string, rvals ...interface{}) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Enforcer.EnforceWithMatcher(matcher, rvals...)
}

// BatchEnforce decides every request under a single read-lock hold, so
// the batch observes one consistent policy snapshot.
func (s *SyncedEnforcer) BatchEnforce(requests [][]interface{}) ([]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Enforcer.BatchEnforce(requests)
}

// LoadPolicy reloads policy under the write lock.
func (s *SyncedEnforcer) LoadPolicy() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Enforcer.LoadPolicy()
}

// LoadModel reloads the model under the write lock.
func (s *SyncedEnforcer) LoadModel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Enforcer.LoadModel()
}

// SavePolicy persists policy under the read lock: concurrent Enforce
// calls may proceed, but another mutation must wait, since SavePolicy
// only reads the in-memory model.
func (s *SyncedEnforcer) SavePolicy() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Enforcer.SavePolicy()
}

// ClearPolicy clears policy under the write lock.
func (s *SyncedEnforcer) ClearPolicy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Enforcer.ClearPolicy()
}

// AddPolicy adds a rule under the write lock.
func (s *SyncedEnforcer) AddPolicy(params ...string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Enforcer.AddPolicy(params...)
}

// RemovePolicy removes a rule under the write lock.
func (s *SyncedEnforcer) RemovePolicy(params ...string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Enforcer.RemovePolicy(params...)
}

// RemoveFilteredPolicy removes rules matching the filter under the write
// lock.
func (s *SyncedEnforcer) RemoveFilteredPolicy(fieldIndex int, fieldValues ...string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Enforcer.RemoveFilteredPolicy(fieldIndex, fieldValues...)
}

// AddGroupingPolicy adds a role-inheritance rule under the write lock.
func (s *SyncedEnforcer) AddGroupingPolicy(params ...string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Enforcer.AddGroupingPolicy(params...)
}

// RemoveGroupingPolicy removes a role-inheritance rule under the write
// lock.
func (s *SyncedEnforcer) RemoveGroupingPolicy(params ...string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Enforcer.RemoveGroupingPolicy(params...)
}

// BuildRoleLinks rebuilds every role manager's graph under the write
// lock.
func (s *SyncedEnforcer) BuildRoleLinks() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Enforcer.BuildRoleLinks()
}

// GetModel returns the current model under the read lock.
func (s *SyncedEnforcer) GetModel() model.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Enforcer.GetModel()
}

// SetLogger swaps the logger under the write lock.
func (s *SyncedEnforcer) SetLogger(logger log.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Enforcer.SetLogger(logger)
}

// StartAutoLoadPolicy begins a background goroutine that calls LoadPolicy
// every interval, mirroring the bundled periodic-reload pattern. Call
// StopAutoLoadPolicy to stop it.
func (s *SyncedEnforcer) StartAutoLoadPolicy(interval time.Duration) {
	s.StopAutoLoadPolicy()
	s.autoLoadTicker = time.NewTicker(interval)
	s.stopAutoLoad = make(chan struct{})
	ticker := s.autoLoadTicker
	stop := s.stopAutoLoad
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := s.LoadPolicy(); err != nil {
					s.Enforcer.logger.LogError(err, "auto-load policy failed")
				}
			case <-stop:
				return
			}
		}
	}()
}

// StopAutoLoadPolicy stops a StartAutoLoadPolicy goroutine, if running.
func (s *SyncedEnforcer) StopAutoLoadPolicy() {
	if s.autoLoadTicker == nil {
		return
	}
	s.autoLoadTicker.Stop()
	close(s.stopAutoLoad)
	s.autoLoadTicker = nil
	s.stopAutoLoad = nil
}
