package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/byoww/internal/game"
)

func newGame(t *testing.T, word string) *game.Game {
	t.Helper()
	g, err := game.New(word)
	require.NoError(t, err)
	return g
}

func TestCreateAndView(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	s, err := st.Create(ctx, "PBQR", newGame(t, "CODE"))
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)

	err = st.View(ctx, s.ID, func(got *Session) error {
		assert.Equal(t, "PBQR", got.Code)
		assert.Equal(t, "CODE", got.Game.Solution())
		return nil
	})
	require.NoError(t, err)

	err = st.View(ctx, "missing", func(*Session) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSerializesTransitions(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s, err := st.Create(ctx, "", newGame(t, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 26; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.Update(ctx, s.ID, func(s *Session) error {
				s.Game.AddLetter('A')
				return nil
			})
		}()
	}
	wg.Wait()

	_ = st.View(ctx, s.ID, func(s *Session) error {
		assert.Len(t, s.Game.Buffer(), 26)
		return nil
	})
}

func TestUpdateMissing(t *testing.T) {
	err := NewMemoryStore().Update(context.Background(), "nope", func(*Session) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemoryStore().Create(ctx, "", newGame(t, "A"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	m := &memory{sessions: make(map[string]*Session), now: func() time.Time { return clock }}

	old, err := m.Create(ctx, "", newGame(t, "OLD"))
	require.NoError(t, err)
	clock = clock.Add(time.Hour)
	fresh, err := m.Create(ctx, "", newGame(t, "NEW"))
	require.NoError(t, err)

	assert.Equal(t, 1, m.Sweep(ctx, 30*time.Minute))
	assert.ErrorIs(t, m.View(ctx, old.ID, func(*Session) error { return nil }), ErrNotFound)
	assert.NoError(t, m.View(ctx, fresh.ID, func(*Session) error { return nil }))
}
