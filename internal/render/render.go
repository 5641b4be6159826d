// Package render turns controller snapshots into plain text for the CLI.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robalobadob/mastermind/internal/controller"
	"github.com/robalobadob/mastermind/internal/game"
)

var colorNames = [game.ColorCount]string{"red", "orange", "yellow", "green", "blue", "purple"}

// ColorName returns the palette name of c, or "none".
func ColorName(c game.Color) string {
	if !c.Valid() {
		return "none"
	}
	return colorNames[c]
}

// ColorLetter is the single-character board glyph for c. Empty slots are '.'.
func ColorLetter(c game.Color) byte {
	if !c.Valid() {
		return '.'
	}
	return strings.ToUpper(colorNames[c])[0]
}

// ParseColor accepts a palette name, its first letter, or an index 0-5.
func ParseColor(s string) (game.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		c := game.Color(n)
		if !c.Valid() {
			return game.NoColor, fmt.Errorf("color index %d outside [0,%d)", n, game.ColorCount)
		}
		return c, nil
	}
	for i, name := range colorNames {
		if s == name || (len(s) == 1 && s[0] == name[0]) {
			return game.Color(i), nil
		}
	}
	return game.NoColor, fmt.Errorf("unknown color %q", s)
}

// Pegs renders a row as space-separated letters, e.g. "R . Y G".
func Pegs(p []game.Color) string {
	var b strings.Builder
	for i, c := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(ColorLetter(c))
	}
	return b.String()
}

// Board renders the whole snapshot: a status header, one line per row with
// the active row marked by '>', and the secret once the game is over.
func Board(s controller.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "state: %s  selected: %s", s.State, ColorName(s.Selection))
	if s.TestMode {
		b.WriteString("  [test]")
	}
	if s.TutorialMode {
		b.WriteString("  [tutorial]")
	}
	b.WriteByte('\n')

	for _, r := range s.Rows {
		marker := ' '
		if r.Index == s.ActiveRow && !s.State.Over() {
			marker = '>'
		}
		fmt.Fprintf(&b, "%c %2d  %s", marker, r.Index+1, Pegs(r.Pegs[:]))
		if r.Scored {
			fmt.Fprintf(&b, "  red %d white %d", r.Red, r.White)
		}
		b.WriteByte('\n')
	}

	if s.Secret != nil {
		fmt.Fprintf(&b, "secret: %s\n", Pegs(s.Secret))
	}
	return b.String()
}
