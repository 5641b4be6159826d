// internal/game/engine.go
//
// Core game engine for a single Mastermind session.
// Responsibilities:
//   - Create new games with a fresh secret code and an empty board.
//   - Edit pegs on the active row (toggle placement, explicit clear).
//   - Score complete rows with the red/white consume-once algorithm.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - The engine does no I/O and no locking; the controller owns the
//     command rules (which row, which state) and the reseed modes.
//   - Out-of-range indices are rejected with ErrPrecondition before any
//     mutation, so a failed call never leaves the game half-updated.
package game

// Game holds the state of a single game.
type Game struct {
	Secret SecretCode
	Board  Board
	State  State
}

// New constructs a new game with a code drawn from src.
func New(src Source) *Game {
	return &Game{
		Secret: GenerateSecretCode(src),
		Board:  NewBoard(),
		State:  StatePlaying,
	}
}

// Row returns a copy of the row at index i.
func (g *Game) Row(i int) (GuessRow, error) {
	if err := CheckRow(i); err != nil {
		return GuessRow{}, err
	}
	return g.Board.Rows[i], nil
}

// ActiveRow returns a copy of the row currently being filled.
func (g *Game) ActiveRow() GuessRow { return g.Board.Rows[g.Board.Active] }

// IsRowComplete reports whether row i has no empty slot.
func (g *Game) IsRowComplete(i int) (bool, error) {
	r, err := g.Row(i)
	if err != nil {
		return false, err
	}
	return r.Complete(), nil
}

// Toggle sets slot on the active row to c, or clears it when it already
// holds c. It reports whether the slot ended up empty.
func (g *Game) Toggle(slot int, c Color) (bool, error) {
	if err := CheckSlot(slot); err != nil {
		return false, err
	}
	if err := CheckColor(c); err != nil {
		return false, err
	}
	row := &g.Board.Rows[g.Board.Active]
	if row.Pegs[slot] == c {
		row.Pegs[slot] = NoColor
		return true, nil
	}
	row.Pegs[slot] = c
	return false, nil
}

// Clear empties slot on the active row.
func (g *Game) Clear(slot int) error {
	if err := CheckSlot(slot); err != nil {
		return err
	}
	g.Board.Rows[g.Board.Active].Pegs[slot] = NoColor
	return nil
}

// Reseed replaces the secret code with the given pegs. Every peg must be a
// palette color; otherwise the code is left as it was.
func (g *Game) Reseed(p Pegs) error {
	for _, c := range p {
		if err := CheckColor(c); err != nil {
			return err
		}
	}
	g.Secret = SecretCode(p)
	return nil
}

// Submit scores the active row and applies the win/lose decision.
//
// Returns ok=false without touching anything when the game is over or the
// active row is incomplete. When suppressWin is set a perfect score does not
// end the game; the row is frozen and play moves on.
//
// State transitions:
//   - red == CodeLength (and not suppressed) → won; the row stays active.
//   - else on the last row → lost; the row stays active.
//   - else the next row becomes active.
func (g *Game) Submit(suppressWin bool) (red, white int, ok bool) {
	if g.State.Over() {
		return 0, 0, false
	}
	row := &g.Board.Rows[g.Board.Active]
	if !row.Complete() {
		return 0, 0, false
	}

	red, white = ScoreRow(row.Pegs, g.Secret)
	row.Red, row.White, row.Scored = red, white, true

	switch {
	case red == CodeLength && !suppressWin:
		g.State = StateWon
	case g.Board.Active == MaxGuesses-1:
		g.State = StateLost
	default:
		g.Board.Active++
	}
	return red, white, true
}

// ScoreRow computes Mastermind feedback for guess against secret.
//
// Pass 1:
//   - Every position where guess and secret agree is red and takes no
//     further part in matching.
//
// Pass 2:
//   - Each remaining guess position, in ascending order, claims the first
//     remaining secret position (ascending) holding the same color; that is
//     a white. A secret position can be claimed once.
//
// So a color scores at most as many times as it occurs in the secret, and
// red+white never exceeds CodeLength.
func ScoreRow(guess Pegs, secret SecretCode) (red, white int) {
	var redAt, used [CodeLength]bool

	for i := 0; i < CodeLength; i++ {
		if guess[i] == secret[i] {
			redAt[i] = true
			red++
		}
	}

	for i := 0; i < CodeLength; i++ {
		if redAt[i] {
			continue
		}
		for j := 0; j < CodeLength; j++ {
			if redAt[j] || used[j] {
				continue
			}
			if secret[j] == guess[i] {
				used[j] = true
				white++
				break
			}
		}
	}
	return red, white
}
