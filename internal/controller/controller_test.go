package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mastermind/internal/game"
)

type fixedSource struct {
	vals []int
	i    int
}

func (s *fixedSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)] % n
	s.i++
	return v
}

// newFixed returns a controller whose every code is secret.
func newFixed(secret game.Pegs, opts ...Option) *Controller {
	vals := make([]int, len(secret))
	for i, c := range secret {
		vals[i] = int(c)
	}
	return New(append([]Option{WithSource(&fixedSource{vals: vals})}, opts...)...)
}

func fillActive(t *testing.T, c *Controller, p game.Pegs) {
	t.Helper()
	row := c.ActiveRow()
	for slot, color := range p {
		_, err := c.ClearSlot(row, slot)
		require.NoError(t, err)
		ok, err := c.PlaceColor(row, slot, color)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestNewController(t *testing.T) {
	c := New()
	s := c.Snapshot()
	assert.Equal(t, game.StatePlaying, s.State)
	assert.Equal(t, 0, s.ActiveRow)
	assert.Equal(t, game.NoColor, s.Selection)
	assert.Len(t, s.Rows, game.MaxGuesses)
	assert.Nil(t, s.Secret, "secret hidden while playing")
}

func TestSelectColor(t *testing.T) {
	c := New()
	require.NoError(t, c.SelectColor(2))
	require.NoError(t, c.SelectColor(4))
	assert.Equal(t, game.Color(4), c.Selection())

	err := c.SelectColor(game.ColorCount)
	assert.True(t, game.IsPrecondition(err))
	assert.Equal(t, game.Color(4), c.Selection(), "bad input leaves selection alone")

	c.Deselect()
	assert.Equal(t, game.NoColor, c.Selection())
}

func TestPlaceColorToggle(t *testing.T) {
	c := New()
	ok, err := c.PlaceColor(0, 1, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, game.Color(3), c.Snapshot().Rows[0].Pegs[1])

	ok, err = c.PlaceColor(0, 1, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, game.NoColor, c.Snapshot().Rows[0].Pegs[1], "same color twice clears")

	_, _ = c.PlaceColor(0, 1, 3)
	_, _ = c.PlaceColor(0, 1, 5)
	assert.Equal(t, game.Color(5), c.Snapshot().Rows[0].Pegs[1], "different color replaces")
}

func TestPlaceOnInactiveRowRejected(t *testing.T) {
	c := New()
	ok, err := c.PlaceColor(3, 0, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, game.EmptyPegs(), c.Snapshot().Rows[3].Pegs)

	ok, err = c.ClearSlot(3, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPreconditionErrors(t *testing.T) {
	c := New()
	before := c.Snapshot()

	_, err := c.PlaceColor(game.MaxGuesses, 0, 1)
	assert.True(t, game.IsPrecondition(err))
	_, err = c.PlaceColor(0, -1, 1)
	assert.True(t, game.IsPrecondition(err))
	_, err = c.PlaceColor(0, 0, game.NoColor)
	assert.True(t, game.IsPrecondition(err))
	_, err = c.ClearSlot(-1, 0)
	assert.True(t, game.IsPrecondition(err))
	_, err = c.MovePeg(0, 0, game.CodeLength)
	assert.True(t, game.IsPrecondition(err))
	_, err = c.RowComplete(game.MaxGuesses)
	assert.True(t, game.IsPrecondition(err))

	assert.Equal(t, before, c.Snapshot())
}

func TestPlaceSelected(t *testing.T) {
	c := New()
	ok, err := c.PlaceSelected(0, 0)
	require.NoError(t, err)
	assert.False(t, ok, "nothing armed")

	require.NoError(t, c.SelectColor(1))
	ok, err = c.PlaceSelected(0, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, game.Color(1), c.Snapshot().Rows[0].Pegs[0])
}

func TestMovePeg(t *testing.T) {
	c := New()
	_, _ = c.PlaceColor(0, 0, 2)

	ok, err := c.MovePeg(0, 0, 3)
	require.NoError(t, err)
	assert.True(t, ok)
	pegs := c.Snapshot().Rows[0].Pegs
	assert.Equal(t, game.NoColor, pegs[0])
	assert.Equal(t, game.Color(2), pegs[3])

	ok, err = c.MovePeg(0, 1, 2)
	require.NoError(t, err)
	assert.False(t, ok, "empty source")
}

func TestSubmitIncompleteRow(t *testing.T) {
	c := New()
	_, _ = c.PlaceColor(0, 0, 1)
	_, _ = c.PlaceColor(0, 1, 1)

	sub := c.SubmitRow()
	assert.False(t, sub.Accepted)
	s := c.Snapshot()
	assert.Equal(t, 0, s.ActiveRow)
	assert.Equal(t, game.StatePlaying, s.State)
	assert.False(t, s.Rows[0].Scored)
	assert.Zero(t, s.Rows[0].Red)
	assert.Zero(t, s.Rows[0].White)
}

func TestWinClearsSelection(t *testing.T) {
	c := newFixed(game.Pegs{0, 1, 2, 3})
	fillActive(t, c, game.Pegs{3, 2, 1, 0})
	sub := c.SubmitRow()
	require.True(t, sub.Accepted)
	assert.Equal(t, 0, sub.Red)
	assert.Equal(t, 4, sub.White)

	require.NoError(t, c.SelectColor(5))
	fillActive(t, c, game.Pegs{0, 1, 2, 3})
	sub = c.SubmitRow()
	require.True(t, sub.Accepted)
	assert.Equal(t, game.StateWon, sub.State)

	s := c.Snapshot()
	assert.Equal(t, game.StateWon, s.State)
	assert.Equal(t, 1, s.ActiveRow)
	assert.Equal(t, game.NoColor, s.Selection)
	assert.Equal(t, []game.Color{0, 1, 2, 3}, s.Secret)

	ok, err := c.PlaceColor(1, 0, 4)
	require.NoError(t, err)
	assert.False(t, ok, "no edits after a win")
	assert.False(t, c.SubmitRow().Accepted)

	require.NoError(t, c.SelectColor(2), "selection still allowed when over")
}

func TestLoseAfterMaxGuesses(t *testing.T) {
	c := newFixed(game.Pegs{5, 5, 5, 5})
	for i := 0; i < game.MaxGuesses; i++ {
		fillActive(t, c, game.Pegs{0, 1, 2, 3})
		require.True(t, c.SubmitRow().Accepted)
	}
	s := c.Snapshot()
	assert.Equal(t, game.StateLost, s.State)
	assert.Equal(t, []game.Color{5, 5, 5, 5}, s.Secret)
}

func TestReset(t *testing.T) {
	c := newFixed(game.Pegs{1, 1, 1, 1}, WithTestMode(true))
	require.NoError(t, c.SelectColor(2))
	fillActive(t, c, game.Pegs{2, 2, 2, 2})
	c.SubmitRow()

	c.Reset()
	s := c.Snapshot()
	assert.Equal(t, game.StatePlaying, s.State)
	assert.Equal(t, 0, s.ActiveRow)
	assert.Equal(t, game.NoColor, s.Selection)
	assert.True(t, s.TestMode, "modes survive reset")
	for _, r := range s.Rows {
		assert.Equal(t, game.EmptyPegs(), r.Pegs)
		assert.False(t, r.Scored)
	}
	assert.Equal(t, game.SecretCode{1, 1, 1, 1}, c.game.Secret)
	for _, v := range c.game.Secret {
		assert.True(t, v.Valid())
	}
}

func TestTestModeReseedOnRowZero(t *testing.T) {
	c := newFixed(game.Pegs{5, 4, 3, 5}, WithTestMode(true))
	fillActive(t, c, game.Pegs{2, 2, 0, 1})

	sub := c.SubmitRow()
	require.True(t, sub.Accepted)
	assert.True(t, sub.Reseeded)
	assert.Equal(t, game.SecretCode{2, 2, 0, 1}, c.game.Secret)
	assert.Equal(t, game.CodeLength, sub.Red)
	assert.Equal(t, game.StatePlaying, c.State(), "row 0 never wins in test mode")
	assert.Equal(t, 1, c.ActiveRow())

	// One-shot: row 1 scores against the reseeded code.
	fillActive(t, c, game.Pegs{2, 2, 1, 0})
	sub = c.SubmitRow()
	assert.False(t, sub.Reseeded)
	assert.Equal(t, 2, sub.Red)
	assert.Equal(t, 2, sub.White)
	assert.Equal(t, game.SecretCode{2, 2, 0, 1}, c.game.Secret)

	fillActive(t, c, game.Pegs{2, 2, 0, 1})
	assert.Equal(t, game.StateWon, c.SubmitRow().State)
}

func TestTestModeIncompleteRowDoesNotReseed(t *testing.T) {
	c := newFixed(game.Pegs{5, 5, 5, 5}, WithTestMode(true))
	_, _ = c.PlaceColor(0, 0, 1)
	assert.False(t, c.SubmitRow().Accepted)
	assert.Equal(t, game.SecretCode{5, 5, 5, 5}, c.game.Secret)
}

func TestTutorialModeReseedOnRowOne(t *testing.T) {
	c := newFixed(game.Pegs{5, 5, 5, 5}, WithTutorialMode(true))
	fillActive(t, c, game.Pegs{0, 1, 2, 3})
	sub := c.SubmitRow()
	assert.False(t, sub.Reseeded)
	assert.Equal(t, 1, c.ActiveRow())

	fillActive(t, c, game.Pegs{4, 3, 4, 0})
	sub = c.SubmitRow()
	assert.True(t, sub.Reseeded)
	assert.Equal(t, game.CodeLength, sub.Red)
	assert.Equal(t, game.StateWon, sub.State)
	assert.Equal(t, []game.Color{4, 3, 4, 0}, c.Snapshot().Secret)
}

func TestModeSetters(t *testing.T) {
	c := New()
	c.SetTestMode(true)
	c.SetTutorialMode(true)
	assert.True(t, c.TestMode())
	assert.True(t, c.TutorialMode())
	c.SetTestMode(false)
	assert.False(t, c.Snapshot().TestMode)
}
