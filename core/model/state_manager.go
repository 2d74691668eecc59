// Package model provides shared estimator infrastructure: fitted-state
// management, estimator interfaces, and persistence helpers.
package model

import (
	"fmt"
	"sync"
)

// StateManager manages the fitted state of an estimator in a thread-safe
// manner. Estimators hold it by composition rather than embedding a base
// struct.
type StateManager struct {
	Fitted bool // public for gob encoding
	mu     sync.RWMutex

	// Optional metadata, public for gob encoding.
	NSamples int
}

// NewStateManager creates a new StateManager instance.
func NewStateManager() *StateManager {
	return &StateManager{
		Fitted: false,
	}
}

// IsFitted returns whether the estimator has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Fitted
}

// SetFitted marks the estimator as fitted.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fitted = true
}

// Reset resets the fitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fitted = false
	s.NSamples = 0
}

// SetNSamples records the number of observations seen during fitting.
func (s *StateManager) SetNSamples(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NSamples = n
}

// GetNSamples returns the number of observations seen during fitting.
func (s *StateManager) GetNSamples() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.NSamples
}

// RequireFitted returns an error if the estimator has not been fitted.
func (s *StateManager) RequireFitted() error {
	if !s.IsFitted() {
		return fmt.Errorf("estimator has not been fitted yet. Call Fit() first")
	}
	return nil
}
