package utils

import (
	"sync"

	"antaria-go/models"
)

// SessionRegistry tracks the one pending action each account may have in
// flight with the collaborator (a selected game awaiting its stake, or a
// challenge awaiting a response). Setting a new action replaces the old one.
type SessionRegistry struct {
	mu      sync.Mutex
	pending map[int64]models.PendingAction
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{pending: make(map[int64]models.PendingAction)}
}

// Set records the account's pending action, replacing any previous one.
func (sr *SessionRegistry) Set(accountID int64, action models.PendingAction) {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	sr.pending[accountID] = action
}

// Peek returns the pending action without consuming it.
func (sr *SessionRegistry) Peek(accountID int64) (models.PendingAction, bool) {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	a, ok := sr.pending[accountID]
	return a, ok
}

// Pop removes and returns the account's pending action.
func (sr *SessionRegistry) Pop(accountID int64) (models.PendingAction, bool) {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	a, ok := sr.pending[accountID]
	if ok {
		delete(sr.pending, accountID)
	}
	return a, ok
}

// Clear drops the pending action, if any.
func (sr *SessionRegistry) Clear(accountID int64) {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	delete(sr.pending, accountID)
}
