// Package script replays YAML command scripts against a controller.
//
// A script fixes the mode flags and the code source, then lists commands in
// order. Each step may carry a `want` clause checked against that step's
// outcome; the optional top-level `expect` clause is checked against the
// final snapshot.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/mastermind/internal/controller"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/render"
	"github.com/robalobadob/mastermind/internal/seed"
)

// Op names accepted in a step.
const (
	OpSelect        = "select"
	OpDeselect      = "deselect"
	OpPlace         = "place"
	OpPlaceSelected = "place_selected"
	OpClear         = "clear"
	OpMove          = "move"
	OpFill          = "fill"
	OpSubmit        = "submit"
	OpReset         = "reset"
)

// Script is one replayable session.
type Script struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description,omitempty"`
	TestMode     bool   `yaml:"test_mode,omitempty"`
	TutorialMode bool   `yaml:"tutorial_mode,omitempty"`

	// Seed makes the generated codes reproducible. Ignored when Secret is set.
	Seed string `yaml:"seed,omitempty"`

	// Secret pins every generated code, colors given by palette name.
	Secret []string `yaml:"secret,omitempty"`

	Steps  []Step  `yaml:"steps"`
	Expect *Expect `yaml:"expect,omitempty"`
}

// Step is a single controller command. Row defaults to the active row.
type Step struct {
	Op    string   `yaml:"op"`
	Row   *int     `yaml:"row,omitempty"`
	Slot  int      `yaml:"slot,omitempty"`
	From  int      `yaml:"from,omitempty"`
	To    int      `yaml:"to,omitempty"`
	Color string   `yaml:"color,omitempty"`
	Pegs  []string `yaml:"pegs,omitempty"`
	Want  *Want    `yaml:"want,omitempty"`
}

// Want is a subset match on a step's outcome.
type Want struct {
	Accepted *bool  `yaml:"accepted,omitempty"`
	Red      *int   `yaml:"red,omitempty"`
	White    *int   `yaml:"white,omitempty"`
	State    string `yaml:"state,omitempty"`
}

// Expect is a subset match on the final snapshot.
type Expect struct {
	State     string   `yaml:"state,omitempty"`
	ActiveRow *int     `yaml:"active_row,omitempty"`
	Secret    []string `yaml:"secret,omitempty"`
}

// Outcome records what one step did.
type Outcome struct {
	Index    int
	Op       string
	Accepted bool

	// Submission is set for submit steps only.
	Submission *controller.Submission
	State      game.State
}

// Result is the full replay: per-step outcomes plus the final snapshot.
type Result struct {
	Outcomes []Outcome
	Final    controller.Snapshot
}

// Load reads and parses a script file, rejecting unknown fields.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) validate() error {
	if s.Name == "" {
		return errors.New("script: name is required")
	}
	if len(s.Secret) != 0 {
		if len(s.Secret) != game.CodeLength {
			return fmt.Errorf("script %s: secret needs %d colors, got %d", s.Name, game.CodeLength, len(s.Secret))
		}
		if _, err := parsePegs(s.Secret); err != nil {
			return fmt.Errorf("script %s: secret: %w", s.Name, err)
		}
	}
	for i, st := range s.Steps {
		switch st.Op {
		case OpSelect, OpPlace:
			if _, err := render.ParseColor(st.Color); err != nil {
				return fmt.Errorf("script %s: step %d: %w", s.Name, i, err)
			}
		case OpFill:
			if len(st.Pegs) != game.CodeLength {
				return fmt.Errorf("script %s: step %d: fill needs %d pegs", s.Name, i, game.CodeLength)
			}
			if _, err := parsePegs(st.Pegs); err != nil {
				return fmt.Errorf("script %s: step %d: %w", s.Name, i, err)
			}
		case OpDeselect, OpPlaceSelected, OpClear, OpMove, OpSubmit, OpReset:
		default:
			return fmt.Errorf("script %s: step %d: unknown op %q", s.Name, i, st.Op)
		}
	}
	return nil
}

// Source returns the code source the script asks for.
func (s *Script) Source() game.Source {
	if len(s.Secret) != 0 {
		p, _ := parsePegs(s.Secret)
		return &pinned{code: p}
	}
	if s.Seed != "" {
		return seed.New(s.Seed)
	}
	return game.CryptoSource{}
}

// Run replays the script on a fresh controller. Extra options are applied
// after the script's own, so callers can inject a logger. An out-of-range
// index in a step aborts the run with an error naming the step.
func Run(s *Script, opts ...controller.Option) (*Result, error) {
	base := []controller.Option{
		controller.WithSource(s.Source()),
		controller.WithTestMode(s.TestMode),
		controller.WithTutorialMode(s.TutorialMode),
	}
	c := controller.New(append(base, opts...)...)

	res := &Result{Outcomes: make([]Outcome, 0, len(s.Steps))}
	for i, st := range s.Steps {
		out, err := apply(c, st)
		if err != nil {
			return res, fmt.Errorf("step %d (%s): %w", i, st.Op, err)
		}
		out.Index = i
		out.Op = st.Op
		out.State = c.State()
		res.Outcomes = append(res.Outcomes, out)
	}
	res.Final = c.Snapshot()
	return res, nil
}

func apply(c *controller.Controller, st Step) (Outcome, error) {
	row := c.ActiveRow()
	if st.Row != nil {
		row = *st.Row
	}

	var (
		out Outcome
		err error
	)
	switch st.Op {
	case OpSelect:
		color, _ := render.ParseColor(st.Color)
		err = c.SelectColor(color)
		out.Accepted = err == nil
	case OpDeselect:
		c.Deselect()
		out.Accepted = true
	case OpPlace:
		color, _ := render.ParseColor(st.Color)
		out.Accepted, err = c.PlaceColor(row, st.Slot, color)
	case OpPlaceSelected:
		out.Accepted, err = c.PlaceSelected(row, st.Slot)
	case OpClear:
		out.Accepted, err = c.ClearSlot(row, st.Slot)
	case OpMove:
		out.Accepted, err = c.MovePeg(row, st.From, st.To)
	case OpFill:
		pegs, _ := parsePegs(st.Pegs)
		out.Accepted = true
		for slot, color := range pegs {
			if _, err = c.ClearSlot(row, slot); err != nil {
				break
			}
			var ok bool
			if ok, err = c.PlaceColor(row, slot, color); err != nil {
				break
			}
			out.Accepted = out.Accepted && ok
		}
	case OpSubmit:
		sub := c.SubmitRow()
		out.Submission = &sub
		out.Accepted = sub.Accepted
	case OpReset:
		c.Reset()
		out.Accepted = true
	}
	return out, err
}

// Check compares the result against every want and the final expect clause.
// All mismatches are reported together.
func Check(s *Script, r *Result) error {
	var errs []error
	for i, st := range s.Steps {
		if st.Want == nil || i >= len(r.Outcomes) {
			continue
		}
		errs = append(errs, checkStep(i, st.Want, r.Outcomes[i])...)
	}
	if s.Expect != nil {
		errs = append(errs, checkFinal(s.Expect, r.Final)...)
	}
	return errors.Join(errs...)
}

func checkStep(i int, w *Want, o Outcome) []error {
	var errs []error
	if w.Accepted != nil && *w.Accepted != o.Accepted {
		errs = append(errs, fmt.Errorf("step %d: accepted = %v, want %v", i, o.Accepted, *w.Accepted))
	}
	if w.State != "" && game.State(w.State) != o.State {
		errs = append(errs, fmt.Errorf("step %d: state = %s, want %s", i, o.State, w.State))
	}
	if w.Red != nil || w.White != nil {
		if o.Submission == nil {
			return append(errs, fmt.Errorf("step %d: red/white only apply to submit", i))
		}
		if w.Red != nil && *w.Red != o.Submission.Red {
			errs = append(errs, fmt.Errorf("step %d: red = %d, want %d", i, o.Submission.Red, *w.Red))
		}
		if w.White != nil && *w.White != o.Submission.White {
			errs = append(errs, fmt.Errorf("step %d: white = %d, want %d", i, o.Submission.White, *w.White))
		}
	}
	return errs
}

func checkFinal(e *Expect, s controller.Snapshot) []error {
	var errs []error
	if e.State != "" && game.State(e.State) != s.State {
		errs = append(errs, fmt.Errorf("final state = %s, want %s", s.State, e.State))
	}
	if e.ActiveRow != nil && *e.ActiveRow != s.ActiveRow {
		errs = append(errs, fmt.Errorf("final active row = %d, want %d", s.ActiveRow, *e.ActiveRow))
	}
	if len(e.Secret) != 0 {
		want, err := parsePegs(e.Secret)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("expect secret: %w", err))
		case s.Secret == nil:
			errs = append(errs, errors.New("secret not revealed: game still in progress"))
		case render.Pegs(want[:]) != render.Pegs(s.Secret):
			errs = append(errs, fmt.Errorf("secret = %s, want %s", render.Pegs(s.Secret), render.Pegs(want[:])))
		}
	}
	return errs
}

func parsePegs(names []string) (game.Pegs, error) {
	p := game.EmptyPegs()
	if len(names) != game.CodeLength {
		return p, fmt.Errorf("need %d colors, got %d", game.CodeLength, len(names))
	}
	for i, n := range names {
		c, err := render.ParseColor(n)
		if err != nil {
			return p, err
		}
		p[i] = c
	}
	return p, nil
}

// pinned hands out the same code on every draw cycle.
type pinned struct {
	code game.Pegs
	i    int
}

func (p *pinned) Intn(n int) int {
	v := int(p.code[p.i%game.CodeLength]) % n
	p.i++
	return v
}
