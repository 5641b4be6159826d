// internal/game/types.go
//
// Core type definitions for the Mastermind game engine.
// Defines:
//   - Color: a palette index, or NoColor for an empty slot.
//   - SecretCode: the hidden sequence the player must reproduce.
//   - GuessRow: one turn on the board, with frozen feedback once scored.
//   - Board: the fixed grid of rows plus the active row index.
//   - State: playing → won/lost.

package game

// Board dimensions. Fixed at build time.
const (
	CodeLength = 4  // pegs per row and per secret code
	ColorCount = 6  // distinct palette colors
	MaxGuesses = 10 // rows on the board
)

// Color is an index into the palette (0..ColorCount-1).
// NoColor marks an empty slot or an unarmed selection.
type Color int

const NoColor Color = -1

// Valid reports whether c is a palette index.
func (c Color) Valid() bool { return c >= 0 && int(c) < ColorCount }

// Pegs is the content of one row or of the secret code.
type Pegs [CodeLength]Color

// EmptyPegs returns a row with every slot empty.
func EmptyPegs() Pegs {
	var p Pegs
	for i := range p {
		p[i] = NoColor
	}
	return p
}

// SecretCode is the hidden target. It is a value type: reseeding
// replaces it wholesale, nothing ever writes a single position.
type SecretCode Pegs

// State represents the coarse game state.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Over reports whether s is terminal.
func (s State) Over() bool { return s == StateWon || s == StateLost }

// GuessRow holds a single turn.
type GuessRow struct {
	Index  int  // 0-based, submission order
	Pegs   Pegs // NoColor for empty slots
	Red    int  // right color, right position
	White  int  // right color, wrong position
	Scored bool // feedback is frozen once set
}

// Complete reports whether every slot holds a color.
func (r GuessRow) Complete() bool {
	for _, c := range r.Pegs {
		if c == NoColor {
			return false
		}
	}
	return true
}

// Board is the pre-allocated grid of guess rows.
type Board struct {
	Rows   [MaxGuesses]GuessRow
	Active int // row currently being filled
}

// NewBoard returns a board with MaxGuesses empty rows and row 0 active.
func NewBoard() Board {
	var b Board
	for i := range b.Rows {
		b.Rows[i] = GuessRow{Index: i, Pegs: EmptyPegs()}
	}
	return b
}
