package builder

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-pipeline-builder/internal/logging"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many open sessions")
)

// Manager keeps the open builder sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	max      int
	idleTTL  time.Duration
	newID    func() string
	log      *slog.Logger
}

// NewManager returns a manager allowing at most maxSessions sessions (0 means no
// limit). Sessions idle for longer than idleTTL are dropped by Sweep; 0
// disables expiry.
func NewManager(maxSessions int, idleTTL time.Duration) *Manager {
	return &Manager{
		sessions: map[string]*Session{},
		max:      maxSessions,
		idleTTL:  idleTTL,
		newID:    NewStepID,
		log:      logging.New("builder"),
	}
}

// Create opens a new empty session.
func (m *Manager) Create() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.max > 0 && len(m.sessions) >= m.max {
		return nil, ErrTooManySessions
	}
	s := NewSession(uuid.New().String(), m.newID)
	m.sessions[s.ID()] = s
	m.log.Debug("session opened", "session", s.ID(), "open", len(m.sessions))
	return s, nil
}

// Get returns the session with id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete closes the session with id.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	m.log.Debug("session closed", "session", id)
	return nil
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle since before now minus the idle TTL and returns
// how many were dropped.
func (m *Manager) Sweep(now time.Time) int {
	if m.idleTTL <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.idleSince(now) > m.idleTTL {
			delete(m.sessions, id)
			n++
		}
	}
	if n > 0 {
		m.log.Info("expired idle sessions", "count", n, "open", len(m.sessions))
	}
	return n
}

// Run sweeps idle sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			m.Sweep(now)
		}
	}
}
