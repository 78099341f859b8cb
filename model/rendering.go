package model

import (
	"io"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

const (
	gridPosAlive = " 0 "
	gridPosDead  = " . "

	clearCmd      = "clear"
	ansiClearHome = "\033[H\033[2J"
)

// Render draws the grid row-major from (0,0), one 3-character marker per
// cell and a newline after every row
func Render(g *Grid) string {
	var b strings.Builder
	b.Grow(g.height * (g.width*len(gridPosAlive) + 1))
	for row := range g.height {
		for col := range g.width {
			if g.cells[g.index(row, col)] {
				b.WriteString(gridPosAlive)
			} else {
				b.WriteString(gridPosDead)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ClearFunc resets the terminal viewport written to by w
type ClearFunc func(w io.Writer) error

// TerminalRenderer draws frames to a terminal. A nil ClearScreen clears
// with ANSI escapes.
type TerminalRenderer struct {
	Out         io.Writer
	ClearScreen ClearFunc
}

// NewTerminalRenderer returns a renderer that clears out with the clear command
func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	return &TerminalRenderer{Out: out, ClearScreen: ClearCommand}
}

// Display writes the rendered grid
func (r *TerminalRenderer) Display(g *Grid) error {
	if _, err := io.WriteString(r.Out, Render(g)); err != nil {
		return errors.Wrap(err, "[Display] failed to write frame")
	}
	return nil
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	if r.ClearScreen == nil {
		return ClearANSI(r.Out)
	}
	return r.ClearScreen(r.Out)
}

// ClearANSI homes the cursor and erases the screen with escape sequences
func ClearANSI(w io.Writer) error {
	if _, err := io.WriteString(w, ansiClearHome); err != nil {
		return errors.Wrap(err, "[ClearANSI] failed to clear terminal")
	}
	return nil
}

// ClearCommand runs the clear command against w. It falls back to ANSI
// escapes when the command cannot run or exits without writing anything.
func ClearCommand(w io.Writer) error {
	return runClear(exec.Command(clearCmd), w)
}

func runClear(cmd *exec.Cmd, w io.Writer) error {
	out := &countingWriter{w: w}
	cmd.Stdout = out
	err := cmd.Run()
	if err == nil || out.n > 0 {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) && !errors.Is(err, exec.ErrNotFound) {
		return errors.Wrapf(err, "[ClearCommand] failed to run %s", cmd.Path)
	}
	return ClearANSI(w)
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
