package app

import (
	"sync"

	"eduwatch_service/internal/watch/domain"
)

// SessionRegistry 活著的觀看 session，單節點記憶體內
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*domain.WatchSession
}

// NewSessionRegistry create SessionRegistry
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*domain.WatchSession),
	}
}

// Add register session
func (r *SessionRegistry) Add(s *domain.WatchSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

// Get find session by id
func (r *SessionRegistry) Get(id string) (*domain.WatchSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Remove 拔掉 session 並釋放，重複呼叫無害
func (r *SessionRegistry) Remove(id string) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if !ok {
		return false
	}
	return s.Release()
}

// Len active session count
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
