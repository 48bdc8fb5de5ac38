// Package session keeps per-visitor cart state on the server. Each
// storefront session owns one cart and at most one in-flight order
// submission at a time.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	domainErrors "github.com/tulamia/orderdesk/internal/domain/errors"
	"github.com/tulamia/orderdesk/internal/domain/model"
)

// Session is one visitor's cart plus their submission latch.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	cart       *model.Cart
	submitting bool
}

// Cart returns a snapshot copy of the session cart. Mutations go through
// Mutate so readers never observe a half-applied change.
func (s *Session) Cart() *model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// BeginSubmission reserves the session's single submission slot. It fails
// while another submission for the same cart is outstanding.
func (s *Session) BeginSubmission() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return domainErrors.ErrSubmissionInFlight
	}
	s.submitting = true
	return nil
}

// EndSubmission releases the submission slot. Called regardless of the
// submission outcome.
func (s *Session) EndSubmission() {
	s.mu.Lock()
	s.submitting = false
	s.mu.Unlock()
}

// ClearCart empties the cart after a successful checkout.
func (s *Session) ClearCart() {
	s.mu.Lock()
	s.cart.Clear()
	s.mu.Unlock()
}

// Mutate applies a cart operation under the session lock.
func (s *Session) Mutate(fn func(*model.Cart)) {
	s.mu.Lock()
	fn(s.cart)
	s.mu.Unlock()
}

// Manager tracks active sessions by id.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewManager constructs an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create opens a new session with an empty cart.
func (m *Manager) Create() *Session {
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: m.now().UTC(),
		cart:      model.NewCart(),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session for id, if it exists.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	return s, ok
}

// GetOrCreate resolves id to a session, opening a fresh one when the id
// is unknown or empty.
func (m *Manager) GetOrCreate(id string) *Session {
	if id != "" {
		if s, ok := m.Get(id); ok {
			return s
		}
	}
	return m.Create()
}

// Drop removes a session.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
