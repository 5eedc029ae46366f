package state

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/maisonaurum/aurum/pkg/common"
)

// Manager owns the live sessions, keyed by opaque session id.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create starts a fresh session.
func (m *Manager) Create() *Session {
	s := newSession(common.NewID())
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session for id, if it is still alive.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// GetOrCreate resolves id to a session, creating one when the id is empty
// or expired.
func (m *Manager) GetOrCreate(id string) *Session {
	if id != "" {
		if s, ok := m.Get(id); ok {
			s.Touch()
			return s
		}
	}
	return m.Create()
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Prune drops sessions idle longer than the given window.
func (m *Manager) Prune(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.IdleSince().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		zap.L().Debug("pruned idle sessions", zap.Int("removed", removed))
	}
	return removed
}
