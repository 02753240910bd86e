package buffer

import "unicode"

// PrevWordStart returns the column a word-wise move left from col lands on:
// whitespace before col is skipped, then the word before it.
func PrevWordStart(runes []rune, col int) int {
	if col > len(runes) {
		col = len(runes)
	}
	for col > 0 && unicode.IsSpace(runes[col-1]) {
		col--
	}
	for col > 0 && !unicode.IsSpace(runes[col-1]) {
		col--
	}
	return col
}

// NextWordEnd returns the column a word-wise move right from col lands on:
// whitespace at col is skipped, then the word after it.
func NextWordEnd(runes []rune, col int) int {
	if col < 0 {
		col = 0
	}
	for col < len(runes) && unicode.IsSpace(runes[col]) {
		col++
	}
	for col < len(runes) && !unicode.IsSpace(runes[col]) {
		col++
	}
	return col
}

// PrevWordStart returns PrevWordStart for a line of the document.
func (b *Buffer) PrevWordStart(line, col int) int {
	return PrevWordStart([]rune(b.Line(line)), col)
}

// NextWordEnd returns NextWordEnd for a line of the document.
func (b *Buffer) NextWordEnd(line, col int) int {
	return NextWordEnd([]rune(b.Line(line)), col)
}
