package game

import (
	"errors"
	"fmt"
)

// ErrPrecondition marks malformed input: a row, slot or color index outside
// the board or palette. It is distinct from a rejected command, which is
// well-formed but not allowed in the current state and is never an error.
var ErrPrecondition = errors.New("precondition violated")

// IsPrecondition reports whether err wraps ErrPrecondition.
func IsPrecondition(err error) bool { return errors.Is(err, ErrPrecondition) }

// CheckRow validates a row index.
func CheckRow(row int) error {
	if row < 0 || row >= MaxGuesses {
		return fmt.Errorf("%w: row %d outside [0,%d)", ErrPrecondition, row, MaxGuesses)
	}
	return nil
}

// CheckSlot validates a slot index within a row.
func CheckSlot(slot int) error {
	if slot < 0 || slot >= CodeLength {
		return fmt.Errorf("%w: slot %d outside [0,%d)", ErrPrecondition, slot, CodeLength)
	}
	return nil
}

// CheckColor validates a palette index. NoColor is not a valid argument.
func CheckColor(c Color) error {
	if !c.Valid() {
		return fmt.Errorf("%w: color %d outside [0,%d)", ErrPrecondition, c, ColorCount)
	}
	return nil
}
