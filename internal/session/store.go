// Package session persists the authenticated identity across restarts.
//
// The store is the only mutable shared state in the client core. It is
// written by the login service on success and cleared by logout or by the
// HTTP layer when the backend rejects a session; nothing else mutates it.
package session

import (
	"context"
	"sync"

	"github.com/seaquill/ferrylink/internal/errs"
	"github.com/seaquill/ferrylink/internal/model"
)

// Store holds at most one session.
type Store interface {
	// Get returns a snapshot of the current session, or errs.ErrNoSession.
	Get(ctx context.Context) (*model.Session, error)
	// Set replaces the current session.
	Set(ctx context.Context, s *model.Session) error
	// Clear removes the session and all its token slots.
	Clear(ctx context.Context) error
}

// Memory is an in-process Store for tests and short-lived embedders.
type Memory struct {
	mu   sync.Mutex
	sess *model.Session
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Get(context.Context) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return nil, errs.ErrNoSession
	}
	cpy := *m.sess
	return &cpy, nil
}

func (m *Memory) Set(_ context.Context, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cpy := *s
	m.sess = &cpy
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = nil
	return nil
}
