package store

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mastermind/internal/controller"
	"github.com/robalobadob/mastermind/internal/game"
)

func TestSaveGetDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := NewSession(controller.New())

	_, err := uuid.Parse(s.ID)
	require.NoError(t, err)

	require.NoError(t, st.Save(ctx, s))
	got, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, st.Delete(ctx, s.ID))
	_, err = st.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDoSerializesCommands(t *testing.T) {
	s := NewSession(controller.New())

	// Concurrent toggles of the same color on the same slot: with
	// serialization an even count leaves the slot empty.
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(func(c *controller.Controller) error {
				_, err := c.PlaceColor(0, 0, 2)
				return err
			})
		}()
	}
	wg.Wait()

	var peg game.Color
	require.NoError(t, s.Do(func(c *controller.Controller) error {
		peg = c.Snapshot().Rows[0].Pegs[0]
		return nil
	}))
	assert.Equal(t, game.NoColor, peg)
}
