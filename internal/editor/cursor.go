package editor

import "github.com/JackWReid/textedit/internal/buffer"

// Cursor is the insertion point. Want is the column vertical moves try to
// return to; horizontal moves and edits reset it to Col.
type Cursor struct {
	Line int
	Col  int
	Want int
}

// Valid reports whether the cursor addresses a position in doc.
func (c Cursor) Valid(doc *buffer.Buffer) bool {
	return c.Line >= 0 && c.Line < doc.LineCount() &&
		c.Col >= 0 && c.Col <= doc.LineLen(c.Line)
}

// ClampTo moves the cursor to the nearest position inside doc.
func (c *Cursor) ClampTo(doc *buffer.Buffer) {
	c.Line = min(max(c.Line, 0), doc.LineCount()-1)
	c.Col = min(max(c.Col, 0), doc.LineLen(c.Line))
}

// MoveTo places the cursor at (line, col), clamped to doc.
func (c *Cursor) MoveTo(doc *buffer.Buffer, line, col int) {
	c.Line, c.Col = line, col
	c.ClampTo(doc)
	c.Want = c.Col
}

// MoveLeft moves one column left, wrapping to the end of the previous line.
func (c *Cursor) MoveLeft(doc *buffer.Buffer) {
	if c.Col > 0 {
		c.Col--
	} else if c.Line > 0 {
		c.Line--
		c.Col = doc.LineLen(c.Line)
	}
	c.Want = c.Col
}

// MoveRight moves one column right, wrapping to the start of the next line.
func (c *Cursor) MoveRight(doc *buffer.Buffer) {
	if c.Col < doc.LineLen(c.Line) {
		c.Col++
	} else if c.Line < doc.LineCount()-1 {
		c.Line++
		c.Col = 0
	}
	c.Want = c.Col
}

// MoveUp moves one line up keeping the wanted column. On the first line it
// does nothing unless toStart is set, in which case it moves to column 0.
func (c *Cursor) MoveUp(doc *buffer.Buffer, toStart bool) {
	if c.Line == 0 {
		if toStart {
			c.Col, c.Want = 0, 0
		}
		return
	}
	c.Line--
	c.Col = min(c.Want, doc.LineLen(c.Line))
}

// MoveDown moves one line down keeping the wanted column. On the last line it
// does nothing unless toEnd is set, in which case it moves to the line end.
func (c *Cursor) MoveDown(doc *buffer.Buffer, toEnd bool) {
	if c.Line >= doc.LineCount()-1 {
		if toEnd {
			c.Col = doc.LineLen(c.Line)
			c.Want = c.Col
		}
		return
	}
	c.Line++
	c.Col = min(c.Want, doc.LineLen(c.Line))
}

func (c *Cursor) Home() {
	c.Col, c.Want = 0, 0
}

func (c *Cursor) End(doc *buffer.Buffer) {
	c.Col = doc.LineLen(c.Line)
	c.Want = c.Col
}

func (c *Cursor) FileStart() {
	c.Line, c.Col, c.Want = 0, 0, 0
}

func (c *Cursor) FileEnd(doc *buffer.Buffer) {
	c.Line = doc.LineCount() - 1
	c.End(doc)
}

// WordLeft moves to the start of the previous word, or to the end of the
// previous line from column 0.
func (c *Cursor) WordLeft(doc *buffer.Buffer) {
	if c.Col == 0 {
		c.MoveLeft(doc)
		return
	}
	c.Col = doc.PrevWordStart(c.Line, c.Col)
	c.Want = c.Col
}

// WordRight moves to the end of the next word, or to the start of the next
// line from the line end.
func (c *Cursor) WordRight(doc *buffer.Buffer) {
	if c.Col >= doc.LineLen(c.Line) {
		c.MoveRight(doc)
		return
	}
	c.Col = doc.NextWordEnd(c.Line, c.Col)
	c.Want = c.Col
}
