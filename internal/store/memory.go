// internal/store/memory.go
//
// In-memory session store for games played over the JSON API.
// Games live only as long as the process; nothing is written to disk.
//
// Characteristics:
//   - Sessions keyed by a random UUID.
//   - Concurrency-safe via RWMutex. Update runs its callback with the write
//     lock held, which is what serializes transitions on a single game.
//   - Idle sessions are dropped by Sweep.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/byoww/internal/game"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("store: session not found")

// Session is one live game plus the bookkeeping the server needs.
type Session struct {
	ID      string
	Code    string // encoded challenge the game was started from
	Game    *game.Game
	Started time.Time
	Touched time.Time
}

// Store defines the session persistence interface used by the HTTP layer.
type Store interface {
	// Create registers a new session for g and returns it.
	Create(ctx context.Context, code string, g *game.Game) (*Session, error)

	// View runs fn with read access to the session.
	View(ctx context.Context, id string, fn func(s *Session) error) error

	// Update runs fn with exclusive access to the session.
	Update(ctx context.Context, id string, fn func(s *Session) error) error

	// Sweep removes sessions untouched for longer than idle and reports how many.
	Sweep(ctx context.Context, idle time.Duration) int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions
	sessions map[string]*Session // keyed by Session.ID
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session), now: time.Now}
}

func (m *memory) Create(ctx context.Context, code string, g *game.Game) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := m.now()
	s := &Session{ID: uuid.NewString(), Code: code, Game: g, Started: now, Touched: now}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s, nil
}

func (m *memory) View(ctx context.Context, id string, fn func(s *Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	return fn(s)
}

func (m *memory) Update(ctx context.Context, id string, fn func(s *Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.Touched = m.now()
	return fn(s)
}

func (m *memory) Sweep(ctx context.Context, idle time.Duration) int {
	cutoff := m.now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.Touched.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}
