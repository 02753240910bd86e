// Package render turns a laid-out document into a grid of screen cells.
package render

import (
	"strings"

	"github.com/JackWReid/textedit/internal/layout"
)

// Frame is a Height x Width grid of cells plus the screen cursor. Each cell
// holds the text drawn in it: usually one rune, a base rune followed by the
// zero-width runes attached to it, or "" for the second cell of a wide rune.
type Frame struct {
	Width     int
	Height    int
	CursorRow int
	CursorCol int
	cells     [][]string
}

func newFrame(vp layout.Viewport) *Frame {
	f := &Frame{Width: vp.Width, Height: vp.Height, cells: make([][]string, vp.Height)}
	for r := range f.cells {
		row := make([]string, vp.Width)
		for c := range row {
			row[c] = " "
		}
		f.cells[r] = row
	}
	return f
}

// Build draws the visible lines of doc as placed by l and maps the document
// cursor (line, col) onto the screen.
func Build(doc layout.Document, line, col int, l layout.Layout) *Frame {
	f := newFrame(l.Viewport)
	for _, p := range l.Lines {
		runes := []rune(doc.Line(p.Line))
		f.drawLine(p.Row, p.Start, runes, l.TabWidth)
		if p.Line == line {
			x := p.Start + layout.ColumnOffset(runes, col, l.TabWidth)
			f.CursorRow = p.Row
			f.CursorCol = min(max(x, 0), f.Width-1)
		}
	}
	return f
}

func (f *Frame) drawLine(row, start int, runes []rune, tabWidth int) {
	if row < 0 || row >= f.Height {
		return
	}
	cells := f.cells[row]
	x := 0
	for _, r := range runes {
		w := layout.RuneWidth(r, x, tabWidth)
		col := start + x
		x += w
		if w == 0 {
			prev := col - 1
			for prev > start && prev < f.Width && cells[prev] == "" {
				prev--
			}
			if prev >= start && prev < f.Width {
				cells[prev] += string(r)
			}
			continue
		}
		if col >= f.Width {
			break
		}
		switch {
		case r == '\t':
			// Already blank.
		case col+w > f.Width:
			cells[col] = " "
		default:
			cells[col] = string(visible(r))
			for k := 1; k < w; k++ {
				cells[col+k] = ""
			}
		}
	}
}

func visible(r rune) rune {
	if r < 0x20 || r == 0x7f {
		return '?'
	}
	return r
}

// Cell returns the content of one cell, or "" outside the grid.
func (f *Frame) Cell(row, col int) string {
	if row < 0 || row >= f.Height || col < 0 || col >= f.Width {
		return ""
	}
	return f.cells[row][col]
}

// Row returns one screen row as text.
func (f *Frame) Row(row int) string {
	if row < 0 || row >= f.Height {
		return ""
	}
	return strings.Join(f.cells[row], "")
}

// Rows returns every screen row as text.
func (f *Frame) Rows() []string {
	rows := make([]string, f.Height)
	for i := range rows {
		rows[i] = f.Row(i)
	}
	return rows
}

func (f *Frame) String() string {
	return strings.Join(f.Rows(), "\n")
}
