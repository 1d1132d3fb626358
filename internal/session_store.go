package internal

import (
	"sync"
	"time"
)

// Session is the bearer token returned by the identity service
type Session struct {
	BearerToken string    `json:"bearer_token" yaml:"bearer_token"`
	ExpiresAt   time.Time `json:"expires_at" yaml:"expires_at"`
	OwnerUserID string    `json:"owner_user_id" yaml:"owner_user_id"`
}

// ExpiredAt reports whether the session is unusable at now, counting the
// TokenTimeBuffer safety margin before the real expiry
func (s Session) ExpiredAt(now time.Time) bool {
	return now.After(s.ExpiresAt.Add(-TokenTimeBuffer))
}

// SessionStore holds the current session. It is only written by
// authentication (or RestoreSession) and replaced wholesale.
type SessionStore struct {
	mu      sync.RWMutex
	session *Session
	now     func() time.Time
}

// NewSessionStore creates an empty, unauthenticated store
func NewSessionStore(now func() time.Time) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{now: now}
}

// Set replaces the current session
func (s *SessionStore) Set(session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &session
}

// Clear drops the current session
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}

// Current returns the stored session, if any, regardless of expiry
func (s *SessionStore) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return Session{}, false
	}
	return *s.session, true
}

// Authorize returns the bearer token for a request about to be sent, or
// ErrNotAuthenticated / ErrTokenExpired
func (s *SessionStore) Authorize() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return "", ErrNotAuthenticated
	}
	if s.session.ExpiredAt(s.now()) {
		return "", ErrTokenExpired
	}
	return s.session.BearerToken, nil
}
