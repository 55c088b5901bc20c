package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/khoahotran/devfinder/internal/domain/session"
	"github.com/khoahotran/devfinder/internal/view"
)

type memoryEntry struct {
	state     view.State
	expiresAt time.Time
}

type memorySessionStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemorySessionStore keeps snapshots in process. Used when Redis is not
// configured.
func NewMemorySessionStore() session.Store {
	return &memorySessionStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *memorySessionStore) Load(_ context.Context, id string) (*view.State, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return nil, session.ErrNotFound
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return nil, session.ErrNotFound
	}
	st := e.state
	return &st, nil
}

func (s *memorySessionStore) Save(_ context.Context, id string, state view.State, ttl time.Duration) error {
	e := memoryEntry{state: state}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[id] = e
	s.mu.Unlock()
	return nil
}

func (s *memorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}
