// Package layout places document lines inside a fixed-size viewport
// according to the configured horizontal and vertical alignment.
package layout

import (
	"fmt"
	"strings"
)

// Horizontal is the horizontal alignment mode of every line.
type Horizontal int

const (
	Left Horizontal = iota
	CenterLeft
	Center
	CenterRight
	Right
)

var horizontalNames = [...]string{"left", "center-left", "center", "center-right", "right"}

func (h Horizontal) String() string {
	if h < 0 || int(h) >= len(horizontalNames) {
		return fmt.Sprintf("Horizontal(%d)", int(h))
	}
	return horizontalNames[h]
}

// ParseHorizontal parses a horizontal mode name.
func ParseHorizontal(s string) (Horizontal, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range horizontalNames {
		if n == name {
			return Horizontal(i), nil
		}
	}
	return Left, fmt.Errorf("unknown horizontal alignment %q (want one of %s)",
		s, strings.Join(horizontalNames[:], ", "))
}

func (h Horizontal) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

func (h *Horizontal) UnmarshalText(text []byte) error {
	v, err := ParseHorizontal(string(text))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// Start returns the first screen column of a line of display width w in a
// viewport of width width. Lines at least as wide as the viewport start at
// column 0 and are clipped.
func (h Horizontal) Start(width, w int) int {
	if w >= width {
		return 0
	}
	gap := width - w
	switch h {
	case CenterLeft, Center:
		return gap / 2
	case CenterRight:
		return (gap + 1) / 2
	case Right:
		return gap
	}
	return 0
}

// Vertical is the vertical alignment mode of the whole document.
type Vertical int

const (
	Top Vertical = iota
	Middle
	Bottom
)

var verticalNames = [...]string{"top", "center", "bottom"}

func (v Vertical) String() string {
	if v < 0 || int(v) >= len(verticalNames) {
		return fmt.Sprintf("Vertical(%d)", int(v))
	}
	return verticalNames[v]
}

// ParseVertical parses a vertical mode name. "middle" is accepted for center.
func ParseVertical(s string) (Vertical, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "middle" {
		return Middle, nil
	}
	for i, n := range verticalNames {
		if n == name {
			return Vertical(i), nil
		}
	}
	return Top, fmt.Errorf("unknown vertical alignment %q (want one of %s)",
		s, strings.Join(verticalNames[:], ", "))
}

func (v Vertical) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *Vertical) UnmarshalText(text []byte) error {
	p, err := ParseVertical(string(text))
	if err != nil {
		return err
	}
	*v = p
	return nil
}

// First returns the row of the first document line when n lines fit in a
// viewport of height rows.
func (v Vertical) First(height, n int) int {
	if n >= height {
		return 0
	}
	gap := height - n
	switch v {
	case Middle:
		return gap / 2
	case Bottom:
		return gap
	}
	return 0
}

// Alignment is the pair of modes applied to every render.
type Alignment struct {
	Horizontal Horizontal
	Vertical   Vertical
}
