package terminal

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Key types.
const (
	KeyRune          = iota // Normal printable character
	KeyEscape               // Escape key (standalone)
	KeyEnter                // Enter/Return
	KeyTab                  // Tab
	KeyBackspace            // Backspace/Delete-backward
	KeyCtrlBackspace        // Ctrl+Backspace (^H)
	KeyAltBackspace         // Alt+Backspace
	KeyDelete               // Delete/Forward-delete
	KeyCtrlDelete           // Ctrl+Delete
	KeyAltDelete            // Alt+Delete
	KeyUp                   // Arrow up
	KeyDown                 // Arrow down
	KeyLeft                 // Arrow left
	KeyRight                // Arrow right
	KeyCtrlLeft             // Ctrl+Arrow left
	KeyCtrlRight            // Ctrl+Arrow right
	KeyHome                 // Home
	KeyEnd                  // End
	KeyCtrlHome             // Ctrl+Home
	KeyCtrlEnd              // Ctrl+End
	KeyPgUp                 // Page Up
	KeyPgDn                 // Page Down
	KeyCtrlS                // Ctrl+S
	KeyCtrlQ                // Ctrl+Q
	KeyUnknown              // Unrecognised sequence
)

type Key struct {
	Type int
	Rune rune
}

// Modifier values of xterm-style CSI parameters.
const (
	modAlt  = 3
	modCtrl = 5
)

// parseKeys decodes every key in buf. A single read may carry several keys
// when input arrives faster than it is consumed.
func parseKeys(buf []byte) []Key {
	var keys []Key
	for len(buf) > 0 {
		k, n := parseKey(buf)
		keys = append(keys, k)
		buf = buf[n:]
	}
	return keys
}

// parseKey decodes the key at the start of buf and returns it with the
// number of bytes it used.
func parseKey(buf []byte) (Key, int) {
	if len(buf) == 0 {
		return Key{Type: KeyUnknown}, 0
	}

	b := buf[0]
	switch {
	case b == 27:
		return parseEscape(buf)
	case b == 13 || b == 10:
		return Key{Type: KeyEnter}, 1
	case b == 9:
		return Key{Type: KeyTab}, 1
	case b == 127:
		return Key{Type: KeyBackspace}, 1
	case b == 8:
		return Key{Type: KeyCtrlBackspace}, 1
	case b == 19:
		return Key{Type: KeyCtrlS}, 1
	case b == 17:
		return Key{Type: KeyCtrlQ}, 1
	case b < 32:
		return Key{Type: KeyUnknown}, 1
	case b < utf8.RuneSelf:
		return Key{Type: KeyRune, Rune: rune(b)}, 1
	}

	// Multi-byte UTF-8 character.
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size <= 1 {
		return Key{Type: KeyUnknown}, 1
	}
	return Key{Type: KeyRune, Rune: r}, size
}

func parseEscape(buf []byte) (Key, int) {
	if len(buf) == 1 {
		return Key{Type: KeyEscape}, 1
	}
	switch buf[1] {
	case '[':
		return parseCSI(buf)
	case 'O':
		// SS3 sequences sent by some terminals in application mode.
		if len(buf) < 3 {
			return Key{Type: KeyUnknown}, len(buf)
		}
		return Key{Type: cursorKey(buf[2], 0)}, 3
	case 127, 8:
		return Key{Type: KeyAltBackspace}, 2
	case 27:
		return Key{Type: KeyEscape}, 1
	}
	// Alt+<key>: drop the key along with the escape.
	_, size := utf8.DecodeRune(buf[1:])
	return Key{Type: KeyUnknown}, 1 + size
}

// parseCSI decodes ESC [ params final.
func parseCSI(buf []byte) (Key, int) {
	i := 2
	for i < len(buf) && (buf[i] < 0x40 || buf[i] > 0x7e) {
		i++
	}
	if i >= len(buf) {
		return Key{Type: KeyUnknown}, len(buf)
	}
	final := buf[i]
	params := strings.Split(string(buf[2:i]), ";")
	num := func(j int) int {
		if j >= len(params) {
			return 0
		}
		n, _ := strconv.Atoi(params[j])
		return n
	}
	mod := num(1)
	n := i + 1

	if final != '~' {
		return Key{Type: cursorKey(final, mod)}, n
	}
	switch num(0) {
	case 1, 7:
		return Key{Type: pick(mod, KeyHome, KeyCtrlHome, KeyHome)}, n
	case 4, 8:
		return Key{Type: pick(mod, KeyEnd, KeyCtrlEnd, KeyEnd)}, n
	case 3:
		return Key{Type: pick(mod, KeyDelete, KeyCtrlDelete, KeyAltDelete)}, n
	case 5:
		return Key{Type: KeyPgUp}, n
	case 6:
		return Key{Type: KeyPgDn}, n
	}
	return Key{Type: KeyUnknown}, n
}

// cursorKey maps the final byte of an arrow/Home/End sequence.
func cursorKey(final byte, mod int) int {
	switch final {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return pick(mod, KeyRight, KeyCtrlRight, KeyRight)
	case 'D':
		return pick(mod, KeyLeft, KeyCtrlLeft, KeyLeft)
	case 'H':
		return pick(mod, KeyHome, KeyCtrlHome, KeyHome)
	case 'F':
		return pick(mod, KeyEnd, KeyCtrlEnd, KeyEnd)
	}
	return KeyUnknown
}

func pick(mod, plain, ctrl, alt int) int {
	switch mod {
	case modCtrl:
		return ctrl
	case modAlt:
		return alt
	}
	return plain
}
