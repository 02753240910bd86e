package layout

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DefaultTabWidth is used when no tab width is configured.
const DefaultTabWidth = 4

// RuneWidth returns the number of cells r occupies when it starts at cell x
// of its line. Tabs advance to the next multiple of tabWidth; control
// characters take one cell.
func RuneWidth(r rune, x, tabWidth int) int {
	switch {
	case r == '\t':
		if tabWidth <= 0 {
			tabWidth = DefaultTabWidth
		}
		return tabWidth - x%tabWidth
	case r < 0x20 || r == 0x7f:
		return 1
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return uniseg.StringWidth(string(r))
}

// ColumnOffset returns the display width of runes[:col].
func ColumnOffset(runes []rune, col, tabWidth int) int {
	if col > len(runes) {
		col = len(runes)
	}
	x := 0
	for _, r := range runes[:col] {
		x += RuneWidth(r, x, tabWidth)
	}
	return x
}

// StringWidth returns the display width of a whole line.
func StringWidth(runes []rune, tabWidth int) int {
	return ColumnOffset(runes, len(runes), tabWidth)
}
