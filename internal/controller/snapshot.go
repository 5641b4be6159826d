package controller

import "github.com/robalobadob/mastermind/internal/game"

// RowView is the read-only view of one guess row. Empty slots are -1.
type RowView struct {
	Index  int       `json:"index"`
	Pegs   game.Pegs `json:"pegs"`
	Red    int       `json:"red"`
	White  int       `json:"white"`
	Scored bool      `json:"scored"`
}

// Snapshot is an immutable copy of everything a presentation layer may read.
// Secret is only filled once the game is over, for the reveal screen.
type Snapshot struct {
	Rows         []RowView    `json:"rows"`
	ActiveRow    int          `json:"activeRow"`
	State        game.State   `json:"state"`
	Selection    game.Color   `json:"selection"`
	Secret       []game.Color `json:"secret,omitempty"`
	TestMode     bool         `json:"testMode"`
	TutorialMode bool         `json:"tutorialMode"`
}

// Snapshot copies the current game into a Snapshot. It has no side effects.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Rows:         make([]RowView, 0, game.MaxGuesses),
		ActiveRow:    c.game.Board.Active,
		State:        c.game.State,
		Selection:    c.selection,
		TestMode:     c.testMode,
		TutorialMode: c.tutorialMode,
	}
	for _, r := range c.game.Board.Rows {
		s.Rows = append(s.Rows, RowView{
			Index:  r.Index,
			Pegs:   r.Pegs,
			Red:    r.Red,
			White:  r.White,
			Scored: r.Scored,
		})
	}
	if c.game.State.Over() {
		s.Secret = append([]game.Color(nil), c.game.Secret[:]...)
	}
	return s
}
