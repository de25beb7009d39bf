package impl

import (
	"sync"

	"habit/internal/domain/entity"
)

// Session holds the identity authenticated in this process, if any.
// All reads return copies so callers can never alter the slot.
type Session struct {
	mu   sync.RWMutex
	user *entity.User
}

// NewSession returns an anonymous session.
func NewSession() *Session {
	return &Session{}
}

// Current returns a copy of the active identity.
func (s *Session) Current() (entity.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return entity.User{}, false
	}

	return s.user.Clone(), true
}

// Set replaces the active identity.
func (s *Session) Set(user entity.User) {
	u := user.Clone()

	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
}

// Clear ends the session. Clearing an anonymous session is a no-op.
func (s *Session) Clear() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// ReplaceIf swaps in a new version of the identity when the account with id is active.
func (s *Session) ReplaceIf(id int64, user entity.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil || s.user.ID != id {
		return false
	}
	u := user.Clone()
	s.user = &u

	return true
}

// ClearIf ends the session when the account with id is active.
func (s *Session) ClearIf(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil || s.user.ID != id {
		return false
	}
	s.user = nil

	return true
}
