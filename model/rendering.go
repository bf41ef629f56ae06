package model

import (
	"bufio"
	"fmt"
	"io"
)

const (
	gridPosBlock = "██"
	gridPosDead  = "░░"
	gridPosEmpty = "  "

	// clear screen and move the cursor home
	ansiClear = "\033[H\033[2J"
)

// TerminalRenderer draws a window of the unbounded grid as text
type TerminalRenderer struct {
	Out        io.Writer
	LiveGlyph  string
	DeadGlyph  string
	EmptyGlyph string
}

// NewTerminalRenderer returns a renderer writing to out with the default glyphs
func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	return &TerminalRenderer{
		Out:        out,
		LiveGlyph:  gridPosBlock,
		DeadGlyph:  gridPosDead,
		EmptyGlyph: gridPosEmpty,
	}
}

// Display renders the cells inside view, one text row per grid row. Cells that died in the
// last turn are drawn with DeadGlyph.
func (r *TerminalRenderer) Display(header string, view Box, live, dead CoordSet) error {
	w := bufio.NewWriter(r.Out)
	if header != "" {
		fmt.Fprintln(w, header)
	}
	if view.MinX > view.MaxX || view.MinY > view.MaxY {
		return w.Flush()
	}
	// compare before incrementing so a view ending at math.MaxInt terminates
	for y := view.MinY; ; y++ {
		for x := view.MinX; ; x++ {
			c := Coord{X: x, Y: y}
			switch {
			case live.Contains(c):
				w.WriteString(r.LiveGlyph)
			case dead.Contains(c):
				w.WriteString(r.DeadGlyph)
			default:
				w.WriteString(r.EmptyGlyph)
			}
			if x == view.MaxX {
				break
			}
		}
		w.WriteByte('\n')
		if y == view.MaxY {
			break
		}
	}
	return w.Flush()
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	_, err := io.WriteString(r.Out, ansiClear)
	return err
}
