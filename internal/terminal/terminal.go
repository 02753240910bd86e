// Package terminal drives a raw-mode terminal: it decodes key input into
// editor events and draws frames under a header bar.
package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/JackWReid/textedit/internal/editor"
	"github.com/JackWReid/textedit/internal/logutil"
	"github.com/JackWReid/textedit/internal/render"
)

var logger = logutil.GetLogger("[terminal] ")

const (
	// pollInterval bounds how long a pending resize can go unnoticed.
	pollInterval = 100 * time.Millisecond
	// keySeqTimeout is how long to wait for the rest of an escape sequence
	// before treating ESC as a key of its own.
	keySeqTimeout = 10 * time.Millisecond
)

// Terminal manages raw mode, alternate screen buffer, and terminal dimensions.
type Terminal struct {
	in       *os.File
	out      *os.File
	oldState *term.State
	width    int
	height   int
	sigwinch chan os.Signal
	pending  []Key
	buf      []byte
}

// Open puts in into raw mode and switches out to the alternate screen.
func Open(in, out *os.File) (*Terminal, error) {
	t := &Terminal{in: in, out: out, buf: make([]byte, 256)}

	// Switch to raw mode.
	oldState, err := term.MakeRaw(int(in.Fd()))
	if err != nil {
		return nil, fmt.Errorf("raw mode: %w", err)
	}
	t.oldState = oldState

	// Enter alternate screen buffer and hide cursor during setup.
	io.WriteString(out, "\x1b[?1049h\x1b[?25l")

	t.width, t.height, err = term.GetSize(int(out.Fd()))
	if err != nil {
		t.Restore()
		return nil, fmt.Errorf("terminal size: %w", err)
	}

	t.sigwinch = notifyResize()
	logger.Printf("opened %dx%d", t.width, t.height)
	return t, nil
}

// Restore returns the terminal to its original state.
func (t *Terminal) Restore() {
	// Show cursor and leave alternate screen buffer.
	io.WriteString(t.out, "\x1b[?25h\x1b[?1049l")
	if t.oldState != nil {
		term.Restore(int(t.in.Fd()), t.oldState)
		t.oldState = nil
	}
	if t.sigwinch != nil {
		signal.Stop(t.sigwinch)
	}
}

// Resize re-queries terminal dimensions. Returns true if the size changed.
func (t *Terminal) Resize() bool {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		logger.Printf("resize: %v", err)
		return false
	}
	changed := w != t.width || h != t.height
	t.width = w
	t.height = h
	return changed
}

// Viewport returns the size of the text area below the header bar.
func (t *Terminal) Viewport() (width, height int) {
	return max(t.width, 1), max(t.height-HeaderRows, 1)
}

// ReadEvent blocks until a key or a size change arrives. Keys without a
// binding are skipped.
func (t *Terminal) ReadEvent(ctx context.Context) (editor.Event, error) {
	for {
		for len(t.pending) > 0 {
			k := t.pending[0]
			t.pending = t.pending[1:]
			if ev := eventFor(k); ev.Action != editor.ActionNone {
				return ev, nil
			}
		}
		if err := ctx.Err(); err != nil {
			return editor.Event{}, err
		}

		select {
		case <-t.sigwinch:
			if t.Resize() {
				w, h := t.Viewport()
				return editor.Resize(w, h), nil
			}
			continue
		default:
		}

		ready, err := waitForRead(t.in, pollInterval)
		if err != nil {
			return editor.Event{}, err
		}
		if !ready {
			continue
		}
		if err := t.readKeys(); err != nil {
			return editor.Event{}, err
		}
	}
}

func (t *Terminal) readKeys() error {
	n, err := t.in.Read(t.buf)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return err
	}
	// A lone ESC may be the first part of a sequence still in flight.
	if n == 1 && t.buf[0] == 27 {
		if ready, _ := waitForRead(t.in, keySeqTimeout); ready {
			m, _ := t.in.Read(t.buf[1:])
			n += m
		}
	}
	t.pending = append(t.pending, parseKeys(t.buf[:n])...)
	return nil
}

// Draw writes a frame and the header bar in one go.
func (t *Terminal) Draw(f *render.Frame, st editor.Status) error {
	_, err := io.WriteString(t.out, encodeFrame(f, header(st, f.Width)))
	return err
}

// encodeFrame builds the escape sequence stream that paints a frame below a
// header line.
func encodeFrame(f *render.Frame, header string) string {
	var b strings.Builder

	// Hide cursor during drawing.
	b.WriteString("\x1b[?25l")

	b.WriteString("\x1b[H")
	b.WriteString(header)
	b.WriteString("\x1b[K")
	for r := 0; r < f.Height; r++ {
		fmt.Fprintf(&b, "\x1b[%d;1H", r+HeaderRows+1)
		b.WriteString(f.Row(r))
		b.WriteString("\x1b[K")
	}

	// Position and show the cursor.
	fmt.Fprintf(&b, "\x1b[%d;%dH", f.CursorRow+HeaderRows+1, f.CursorCol+1)
	b.WriteString("\x1b[?25h")
	return b.String()
}
