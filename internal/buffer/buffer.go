// Package buffer implements the line store: the document as an ordered
// sequence of lines, edited at code-point columns.
package buffer

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Pos is a (line, column) position in a document. Columns count code points.
type Pos struct {
	Line int
	Col  int
}

// Buffer holds the text content as a slice of lines (hard lines, split on \n).
// It always holds at least one line.
type Buffer struct {
	lines []string
	crlf  bool

	// Dirty is set by every successful mutation and cleared by the owner
	// after a successful save.
	Dirty bool
}

// New returns a document holding a single empty line.
func New() *Buffer {
	return &Buffer{lines: []string{""}}
}

// FromLines returns a document holding a copy of lines.
func FromLines(lines []string) *Buffer {
	if len(lines) == 0 {
		return New()
	}
	return &Buffer{lines: slices.Clone(lines)}
}

// Parse splits text into lines at "\r\n", "\n" or a lone "\r", so no line
// holds a line break. It is the inverse of Text: a document whose lines were
// separated by "\r\n" serialises back with "\r\n".
func Parse(text string) *Buffer {
	b := &Buffer{crlf: strings.Contains(text, "\r\n")}
	b.lines = strings.Split(normalizeBreaks(text), "\n")
	return b
}

func normalizeBreaks(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Text serialises the document.
func (b *Buffer) Text() string {
	sep := "\n"
	if b.crlf {
		sep = "\r\n"
	}
	return strings.Join(b.lines, sep)
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of a line, or "" if the index is out of range.
func (b *Buffer) Line(line int) string {
	if line < 0 || line >= len(b.lines) {
		return ""
	}
	return b.lines[line]
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	return slices.Clone(b.lines)
}

// LineLen returns the rune-length of a given line.
func (b *Buffer) LineLen(line int) int {
	if line < 0 || line >= len(b.lines) {
		return 0
	}
	return utf8.RuneCountInString(b.lines[line])
}

// CharAt returns the code point at (line, col).
func (b *Buffer) CharAt(line, col int) (rune, error) {
	runes, err := b.check("char at", line, col)
	if err != nil {
		return 0, err
	}
	if col == len(runes) {
		return 0, &PosError{Op: "char at", Line: line, Col: col}
	}
	return runes[col], nil
}

// check validates a position where col may equal the line length.
func (b *Buffer) check(op string, line, col int) ([]rune, error) {
	if line < 0 || line >= len(b.lines) {
		return nil, &PosError{Op: op, Line: line, Col: col}
	}
	runes := []rune(b.lines[line])
	if col < 0 || col > len(runes) {
		return nil, &PosError{Op: op, Line: line, Col: col}
	}
	return runes, nil
}

// InsertChar inserts a character before the given column.
func (b *Buffer) InsertChar(line, col int, ch rune) error {
	_, err := b.InsertText(line, col, string(ch))
	return err
}

// InsertText inserts s before the given column and returns the position just
// after the inserted text. Newlines in s split the line.
func (b *Buffer) InsertText(line, col int, s string) (Pos, error) {
	runes, err := b.check("insert", line, col)
	if err != nil {
		return Pos{}, err
	}
	if s == "" {
		return Pos{Line: line, Col: col}, nil
	}
	s = normalizeBreaks(s)
	parts := strings.Split(s, "\n")
	head, tail := string(runes[:col]), string(runes[col:])
	if len(parts) == 1 {
		b.lines[line] = head + s + tail
		b.Dirty = true
		return Pos{Line: line, Col: col + utf8.RuneCountInString(s)}, nil
	}

	last := parts[len(parts)-1]
	newLines := make([]string, 0, len(parts))
	newLines = append(newLines, head+parts[0])
	newLines = append(newLines, parts[1:len(parts)-1]...)
	newLines = append(newLines, last+tail)
	b.lines = slices.Replace(b.lines, line, line+1, newLines...)
	b.Dirty = true
	return Pos{Line: line + len(parts) - 1, Col: utf8.RuneCountInString(last)}, nil
}

// DeleteCharBefore removes the character before (line, col). At the start of
// a line it joins the line onto the previous one. It returns the position the
// cursor should move to and whether anything changed; (0, 0) is a no-op.
func (b *Buffer) DeleteCharBefore(line, col int) (Pos, bool, error) {
	runes, err := b.check("delete before", line, col)
	if err != nil {
		return Pos{}, false, err
	}
	if col > 0 {
		b.lines[line] = string(runes[:col-1]) + string(runes[col:])
		b.Dirty = true
		return Pos{Line: line, Col: col - 1}, true, nil
	}
	if line == 0 {
		return Pos{}, false, nil
	}
	join := Pos{Line: line - 1, Col: b.LineLen(line - 1)}
	b.joinLines(line - 1)
	return join, true, nil
}

// DeleteCharAfter removes the character at (line, col). At the end of a line
// it joins the next line onto it; at the end of the last line it is a no-op.
func (b *Buffer) DeleteCharAfter(line, col int) (bool, error) {
	runes, err := b.check("delete after", line, col)
	if err != nil {
		return false, err
	}
	if col < len(runes) {
		b.lines[line] = string(runes[:col]) + string(runes[col+1:])
		b.Dirty = true
		return true, nil
	}
	if line+1 >= len(b.lines) {
		return false, nil
	}
	b.joinLines(line)
	return true, nil
}

// DeleteRange removes the columns [from, to) of a line and reports whether
// anything was removed.
func (b *Buffer) DeleteRange(line, from, to int) (bool, error) {
	runes, err := b.check("delete range", line, from)
	if err != nil {
		return false, err
	}
	if to < from || to > len(runes) {
		return false, &PosError{Op: "delete range", Line: line, Col: to}
	}
	if from == to {
		return false, nil
	}
	b.lines[line] = string(runes[:from]) + string(runes[to:])
	b.Dirty = true
	return true, nil
}

// SplitLine breaks the line at the given column; the text after the column
// becomes a new line below.
func (b *Buffer) SplitLine(line, col int) error {
	runes, err := b.check("split", line, col)
	if err != nil {
		return err
	}
	b.lines[line] = string(runes[:col])
	b.lines = slices.Insert(b.lines, line+1, string(runes[col:]))
	b.Dirty = true
	return nil
}

// joinLines joins line[idx] with line[idx+1].
func (b *Buffer) joinLines(idx int) {
	b.lines[idx] += b.lines[idx+1]
	b.lines = slices.Delete(b.lines, idx+1, idx+2)
	b.Dirty = true
}
