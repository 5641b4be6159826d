// Package tutorial scripts the first-run walkthrough on top of a controller.
//
// The sequencer only gates affordances and advances a step counter; the
// guaranteed win comes from the controller's tutorial-mode reseed of row 1.
package tutorial

import (
	"github.com/robalobadob/mastermind/internal/controller"
	"github.com/robalobadob/mastermind/internal/game"
)

// Step is a position in the walkthrough.
type Step int

const (
	StepWelcome Step = iota
	StepSettings
	StepPalette
	StepFillRow  // advances when the active row is full
	StepSubmit   // advances on the first submission
	StepFeedback // advances on the row-1 submission (scripted win)
	StepReveal
	StepDone
)

var stepKeys = [...]string{
	"step_zero", "step_one", "step_two", "step_three",
	"step_four", "step_five", "step_six", "step_seven",
}

// Key returns the message key for the step, for the presentation layer's
// string tables.
func (s Step) Key() string {
	if s < StepWelcome || s > StepDone {
		return stepKeys[StepDone]
	}
	return stepKeys[s]
}

// Sequencer walks a player through one scripted game.
type Sequencer struct {
	ctrl   *controller.Controller
	step   Step
	active bool
}

// New resets ctrl, turns tutorial mode on and starts at StepWelcome.
func New(ctrl *controller.Controller) *Sequencer {
	ctrl.Reset()
	ctrl.SetTutorialMode(true)
	return &Sequencer{ctrl: ctrl, active: true}
}

// Step returns the current step.
func (s *Sequencer) Step() Step { return s.step }

// Active reports whether the tutorial is still running.
func (s *Sequencer) Active() bool { return s.active }

// Next advances a step the player dismisses manually. Steps waiting on a
// game event do not move. Next on StepDone ends the tutorial, turns
// tutorial mode off and resets the game.
func (s *Sequencer) Next() bool {
	if !s.active {
		return false
	}
	switch s.step {
	case StepFillRow, StepSubmit, StepFeedback:
		return false
	case StepDone:
		s.step = StepWelcome
		s.active = false
		s.ctrl.SetTutorialMode(false)
		s.ctrl.Reset()
		return true
	}
	s.step++
	return true
}

// Observe checks the board after an edit and moves from StepFillRow to
// StepSubmit once the active row is full.
func (s *Sequencer) Observe() {
	if !s.active || s.step != StepFillRow {
		return
	}
	if done, err := s.ctrl.RowComplete(s.ctrl.ActiveRow()); err == nil && done {
		s.step = StepSubmit
	}
}

// Submit submits the active row through the controller and advances the
// walkthrough on acceptance. A game that ends early skips to StepReveal.
func (s *Sequencer) Submit() controller.Submission {
	sub := s.ctrl.SubmitRow()
	if !s.active || !sub.Accepted {
		return sub
	}
	switch {
	case sub.State.Over():
		s.step = StepReveal
	case s.step == StepFillRow || s.step == StepSubmit:
		s.step = StepFeedback
	}
	return sub
}

// AllowsPalette reports whether palette colors may be armed.
func (s *Sequencer) AllowsPalette() bool {
	if !s.active {
		return true
	}
	return s.step != StepWelcome && s.step != StepSettings && s.step != StepDone
}

// AllowsPlacement reports whether pegs may be placed on the board.
func (s *Sequencer) AllowsPlacement() bool {
	if !s.active {
		return true
	}
	return s.AllowsPalette() && s.step != StepPalette
}

// Place places color at slot of the active row when the current step allows
// it, then observes the board.
func (s *Sequencer) Place(slot int, color game.Color) (bool, error) {
	if !s.AllowsPlacement() {
		return false, nil
	}
	ok, err := s.ctrl.PlaceColor(s.ctrl.ActiveRow(), slot, color)
	if err != nil {
		return false, err
	}
	s.Observe()
	return ok, nil
}
