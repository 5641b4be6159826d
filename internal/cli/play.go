package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/mastermind/internal/controller"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/render"
	"github.com/robalobadob/mastermind/internal/seed"
	"github.com/robalobadob/mastermind/internal/tutorial"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	TestMode bool
	Tutorial bool
	Seed     string
}

// NewPlayCommand creates the interactive play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game on the terminal",
		Long: `Play interactively. Commands are read one per line:

  select <color>        arm a palette color
  deselect              clear the armed color
  place <slot> <color>  toggle color in a slot of the active row
  tap <slot>            place the armed color
  clear <slot>          empty a slot
  move <from> <to>      drag a peg within the active row
  submit                score the active row
  reset                 start over
  next                  dismiss the current tutorial step
  board                 redraw the board
  quit                  leave

Slots are 0-3. Colors are red, orange, yellow, green, blue, purple, their
first letter, or 0-5.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.TestMode, "test-mode", rootOpts.Config.TestMode, "first complete row becomes the code")
	cmd.Flags().BoolVar(&opts.Tutorial, "tutorial", false, "guided walkthrough")
	cmd.Flags().StringVar(&opts.Seed, "seed", rootOpts.Config.Seed, "reproducible codes from this seed")

	return cmd
}

func runPlay(opts *PlayOptions, cmd *cobra.Command) error {
	var src game.Source = game.CryptoSource{}
	if opts.Seed != "" {
		src = seed.New(opts.Seed)
	}
	p := &player{
		ctrl: controller.New(
			controller.WithSource(src),
			controller.WithTestMode(opts.TestMode),
			controller.WithLogger(log.Logger),
		),
		out: cmd.OutOrStdout(),
	}
	if opts.Tutorial {
		p.seq = tutorial.New(p.ctrl)
	}

	p.show()
	sc := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(p.out, "> ")
		if !sc.Scan() {
			break
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		quit, err := p.exec(fields)
		if err != nil {
			fmt.Fprintf(p.out, "error: %v\n", err)
			continue
		}
		if quit {
			return nil
		}
	}
	fmt.Fprintln(p.out)
	return sc.Err()
}

var errNeedArgs = errors.New("missing arguments, try: help")

// player runs one terminal session.
type player struct {
	ctrl *controller.Controller
	seq  *tutorial.Sequencer
	out  io.Writer
}

func (p *player) tutorialOn() bool { return p.seq != nil && p.seq.Active() }

func (p *player) exec(f []string) (quit bool, err error) {
	var accepted bool
	switch f[0] {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(p.out, "commands: select deselect place tap clear move submit reset next board quit")
		return false, nil
	case "board":
		p.show()
		return false, nil

	case "select":
		if len(f) < 2 {
			return false, errNeedArgs
		}
		c, err := render.ParseColor(f[1])
		if err != nil {
			return false, err
		}
		if p.tutorialOn() && !p.seq.AllowsPalette() {
			break
		}
		if err := p.ctrl.SelectColor(c); err != nil {
			return false, err
		}
		accepted = true
	case "deselect":
		p.ctrl.Deselect()
		accepted = true

	case "place":
		if len(f) < 3 {
			return false, errNeedArgs
		}
		slot, err := strconv.Atoi(f[1])
		if err != nil {
			return false, fmt.Errorf("slot: %w", err)
		}
		c, err := render.ParseColor(f[2])
		if err != nil {
			return false, err
		}
		if p.tutorialOn() {
			accepted, err = p.seq.Place(slot, c)
		} else {
			accepted, err = p.ctrl.PlaceColor(p.ctrl.ActiveRow(), slot, c)
		}
		if err != nil {
			return false, err
		}
	case "tap", "clear":
		if len(f) < 2 {
			return false, errNeedArgs
		}
		slot, err := strconv.Atoi(f[1])
		if err != nil {
			return false, fmt.Errorf("slot: %w", err)
		}
		if p.tutorialOn() && !p.seq.AllowsPlacement() {
			break
		}
		if f[0] == "tap" {
			accepted, err = p.ctrl.PlaceSelected(p.ctrl.ActiveRow(), slot)
		} else {
			accepted, err = p.ctrl.ClearSlot(p.ctrl.ActiveRow(), slot)
		}
		if err != nil {
			return false, err
		}
	case "move":
		if len(f) < 3 {
			return false, errNeedArgs
		}
		from, err1 := strconv.Atoi(f[1])
		to, err2 := strconv.Atoi(f[2])
		if err := errors.Join(err1, err2); err != nil {
			return false, fmt.Errorf("slot: %w", err)
		}
		if p.tutorialOn() && !p.seq.AllowsPlacement() {
			break
		}
		if accepted, err = p.ctrl.MovePeg(p.ctrl.ActiveRow(), from, to); err != nil {
			return false, err
		}

	case "submit":
		var sub controller.Submission
		if p.tutorialOn() {
			sub = p.seq.Submit()
		} else {
			sub = p.ctrl.SubmitRow()
		}
		if !sub.Accepted {
			fmt.Fprintln(p.out, "fill every slot of the active row first")
			return false, nil
		}
		fmt.Fprintf(p.out, "row %d: red %d white %d\n", sub.Row+1, sub.Red, sub.White)
		switch sub.State {
		case game.StateWon:
			fmt.Fprintln(p.out, "you cracked the code")
		case game.StateLost:
			fmt.Fprintln(p.out, "out of guesses")
		}
		accepted = true
	case "reset":
		if p.tutorialOn() {
			break
		}
		p.ctrl.Reset()
		accepted = true
	case "next":
		if !p.tutorialOn() {
			return false, errors.New("no tutorial running")
		}
		accepted = p.seq.Next()

	default:
		return false, fmt.Errorf("unknown command %q", f[0])
	}

	if p.tutorialOn() {
		p.seq.Observe()
	}
	if !accepted {
		fmt.Fprintln(p.out, "ignored")
		return false, nil
	}
	p.show()
	return false, nil
}

func (p *player) show() {
	fmt.Fprint(p.out, render.Board(p.ctrl.Snapshot()))
	if p.tutorialOn() {
		step := p.seq.Step()
		fmt.Fprintf(p.out, "tutorial %s: %s\n", step.Key(), tutorialHints[step])
	}
}

var tutorialHints = map[tutorial.Step]string{
	tutorial.StepWelcome:  "crack the hidden code of four colored pegs (type next)",
	tutorial.StepSettings: "entry mode and language live under `mastermind prefs` (type next)",
	tutorial.StepPalette:  "these are the six colors; arm one with select (type next)",
	tutorial.StepFillRow:  "fill all four slots of the highlighted row",
	tutorial.StepSubmit:   "now submit the row",
	tutorial.StepFeedback: "red = right color, right slot; white = right color, wrong slot. Fill and submit again",
	tutorial.StepReveal:   "solved! the code is shown below the board (type next)",
	tutorial.StepDone:     "that's all; next starts a real game",
}
