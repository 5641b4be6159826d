// internal/controller/controller.go
//
// Turn controller for a single Mastermind game.
// Responsibilities:
//   - Own the game (board, secret code, state) and the armed selection.
//   - Gate every command on the current state and the active row.
//   - Apply the two one-shot reseed modes on submission:
//       test mode     → row 0 becomes the secret, row 0 cannot win.
//       tutorial mode → row 1 becomes the secret, row 1 always wins.
//   - Rebuild everything on Reset.
//
// Command results:
//   - (false, nil): well-formed but not allowed right now (rejected no-op).
//   - (_, err):     malformed input; err wraps game.ErrPrecondition.
//
// The controller is single-writer and does no locking. Callers sharing one
// across goroutines must serialize (see store.Session.Do).

package controller

import (
	"github.com/rs/zerolog"

	"github.com/robalobadob/mastermind/internal/game"
)

// Controller drives one game at a time.
type Controller struct {
	game      *game.Game
	selection game.Color

	testMode     bool
	tutorialMode bool

	src game.Source
	log zerolog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithSource sets the random source used for every new secret code.
// Default: game.CryptoSource.
func WithSource(src game.Source) Option {
	return func(c *Controller) { c.src = src }
}

// WithTestMode enables the row-0 reseed.
func WithTestMode(on bool) Option {
	return func(c *Controller) { c.testMode = on }
}

// WithTutorialMode enables the row-1 reseed.
func WithTutorialMode(on bool) Option {
	return func(c *Controller) { c.tutorialMode = on }
}

// WithLogger sets the logger for game events. Default: zerolog.Nop().
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// New creates a controller with a freshly generated game.
func New(opts ...Option) *Controller {
	c := &Controller{
		selection: game.NoColor,
		src:       game.CryptoSource{},
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.game = game.New(c.src)
	if c.testMode {
		c.log.Info().Msg("test mode enabled")
	}
	return c
}

// SetTestMode toggles the row-0 reseed for subsequent submissions.
func (c *Controller) SetTestMode(on bool) { c.testMode = on }

// SetTutorialMode toggles the row-1 reseed for subsequent submissions.
func (c *Controller) SetTutorialMode(on bool) { c.tutorialMode = on }

// TestMode reports whether test mode is on.
func (c *Controller) TestMode() bool { return c.testMode }

// TutorialMode reports whether tutorial mode is on.
func (c *Controller) TutorialMode() bool { return c.tutorialMode }

// State returns the current game state.
func (c *Controller) State() game.State { return c.game.State }

// ActiveRow returns the index of the row open for edits.
func (c *Controller) ActiveRow() int { return c.game.Board.Active }

// Selection returns the armed color, or game.NoColor.
func (c *Controller) Selection() game.Color { return c.selection }

// RowComplete reports whether row has every slot filled.
func (c *Controller) RowComplete(row int) (bool, error) {
	return c.game.IsRowComplete(row)
}

// SelectColor arms color, replacing any previous selection. Allowed in any
// state; it only matters for a later PlaceSelected while playing.
func (c *Controller) SelectColor(color game.Color) error {
	if err := game.CheckColor(color); err != nil {
		return err
	}
	c.selection = color
	return nil
}

// Deselect clears the armed selection.
func (c *Controller) Deselect() { c.selection = game.NoColor }

// PlaceColor puts color into slot of row. Placing the color a slot already
// holds clears the slot instead.
func (c *Controller) PlaceColor(row, slot int, color game.Color) (bool, error) {
	if err := c.checkCell(row, slot); err != nil {
		return false, err
	}
	if err := game.CheckColor(color); err != nil {
		return false, err
	}
	if !c.editable(row) {
		return false, nil
	}
	if _, err := c.game.Toggle(slot, color); err != nil {
		return false, err
	}
	return true, nil
}

// PlaceSelected places the armed selection into slot of row (tap-to-place).
// Rejected when nothing is armed.
func (c *Controller) PlaceSelected(row, slot int) (bool, error) {
	if err := c.checkCell(row, slot); err != nil {
		return false, err
	}
	if c.selection == game.NoColor {
		return false, nil
	}
	return c.PlaceColor(row, slot, c.selection)
}

// ClearSlot empties slot of row.
func (c *Controller) ClearSlot(row, slot int) (bool, error) {
	if err := c.checkCell(row, slot); err != nil {
		return false, err
	}
	if !c.editable(row) {
		return false, nil
	}
	if err := c.game.Clear(slot); err != nil {
		return false, err
	}
	return true, nil
}

// MovePeg drags the peg in slot from to slot to on the same row. The source
// slot is emptied first, then the color is placed with toggle semantics.
// Rejected when from is empty.
func (c *Controller) MovePeg(row, from, to int) (bool, error) {
	if err := c.checkCell(row, from); err != nil {
		return false, err
	}
	if err := game.CheckSlot(to); err != nil {
		return false, err
	}
	if !c.editable(row) {
		return false, nil
	}
	color := c.game.ActiveRow().Pegs[from]
	if color == game.NoColor {
		return false, nil
	}
	if err := c.game.Clear(from); err != nil {
		return false, err
	}
	if _, err := c.game.Toggle(to, color); err != nil {
		return false, err
	}
	return true, nil
}

// Submission reports what a SubmitRow call did.
type Submission struct {
	Accepted bool       `json:"accepted"`
	Row      int        `json:"row"`
	Red      int        `json:"red"`
	White    int        `json:"white"`
	Reseeded bool       `json:"reseeded"`
	State    game.State `json:"state"`
}

// SubmitRow scores the active row. Incomplete rows and finished games are
// rejected without any change.
func (c *Controller) SubmitRow() Submission {
	row := c.game.Board.Active
	out := Submission{Row: row, State: c.game.State}
	if c.game.State.Over() || !c.game.ActiveRow().Complete() {
		return out
	}

	pegs := c.game.ActiveRow().Pegs
	reseed := (c.testMode && row == 0) || (c.tutorialMode && row == 1)
	if reseed {
		// The row is complete, so every peg is a palette color and
		// Reseed cannot fail halfway.
		if err := c.game.Reseed(pegs); err != nil {
			c.log.Error().Err(err).Int("row", row).Msg("reseed rejected")
			return out
		}
		out.Reseeded = true
		c.log.Debug().Int("row", row).Ints("code", colorsToInts(pegs)).Msg("secret code reseeded")
	}

	red, white, ok := c.game.Submit(c.testMode && row == 0)
	if !ok {
		return out
	}
	out.Accepted = true
	out.Red, out.White = red, white
	out.State = c.game.State

	switch c.game.State {
	case game.StateWon:
		c.selection = game.NoColor
		c.log.Debug().Int("row", row).Msg("game won")
	case game.StateLost:
		c.log.Debug().Msg("game lost")
	}
	return out
}

// Reset discards the board, code, state and selection and starts a new game.
// Mode flags are configuration and are kept.
func (c *Controller) Reset() {
	c.game = game.New(c.src)
	c.selection = game.NoColor
}

// checkCell validates row and slot indices.
func (c *Controller) checkCell(row, slot int) error {
	if err := game.CheckRow(row); err != nil {
		return err
	}
	return game.CheckSlot(slot)
}

// editable reports whether pegs on row may change right now.
func (c *Controller) editable(row int) bool {
	return c.game.State == game.StatePlaying && row == c.game.Board.Active
}

func colorsToInts(p game.Pegs) []int {
	out := make([]int, len(p))
	for i, v := range p {
		out[i] = int(v)
	}
	return out
}
