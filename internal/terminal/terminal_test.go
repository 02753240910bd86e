//go:build unix

package terminal

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/creack/pty"

	"github.com/JackWReid/textedit/internal/buffer"
	"github.com/JackWReid/textedit/internal/editor"
	"github.com/JackWReid/textedit/internal/layout"
	"github.com/JackWReid/textedit/internal/render"
)

// syncBuffer collects pty output while the test reads it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func openTestTerminal(t *testing.T, rows, cols uint16) (*Terminal, *os.File, *syncBuffer) {
	t.Helper()
	master, tty, err := pty.Open()
	if err != nil {
		t.Skipf("cannot open pty: %v", err)
	}
	if err := pty.Setsize(master, &pty.Winsize{Rows: rows, Cols: cols}); err != nil {
		t.Fatalf("Setsize: %v", err)
	}
	out := &syncBuffer{}
	// Continually consume tty outputs so that the terminal is not blocked on
	// writing.
	go io.Copy(out, master)

	term, err := Open(tty, tty)
	if err != nil {
		master.Close()
		tty.Close()
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		term.Restore()
		tty.Close()
		master.Close()
	})
	return term, master, out
}

func waitFor(t *testing.T, out *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(out.String(), want) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("output never contained %q; got %q", want, out.String())
}

func TestOpenEntersAltScreen(t *testing.T) {
	term, _, out := openTestTerminal(t, 6, 30)
	if w, h := term.Viewport(); w != 30 || h != 5 {
		t.Errorf("Viewport() = %d x %d, want 30 x 5", w, h)
	}
	waitFor(t, out, "\x1b[?1049h")
}

func TestReadEvent(t *testing.T) {
	term, master, _ := openTestTerminal(t, 6, 30)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	master.Write([]byte("a\x1b[1;5C\x13"))
	want := []editor.Event{
		editor.Insert('a'),
		editor.Key(editor.ActionWordRight),
		editor.Key(editor.ActionSave),
	}
	for i, w := range want {
		ev, err := term.ReadEvent(ctx)
		if err != nil {
			t.Fatalf("event %d: %v", i, err)
		}
		if ev != w {
			t.Errorf("event %d = %+v, want %+v", i, ev, w)
		}
	}
}

func TestReadEventLoneEscape(t *testing.T) {
	term, master, _ := openTestTerminal(t, 6, 30)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	master.Write([]byte{27})
	ev, err := term.ReadEvent(ctx)
	if err != nil {
		t.Fatalf("ReadEvent: %v", err)
	}
	if ev != editor.Key(editor.ActionQuit) {
		t.Errorf("event = %+v, want quit", ev)
	}
}

func TestReadEventCancelled(t *testing.T) {
	term, _, _ := openTestTerminal(t, 6, 30)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := term.ReadEvent(ctx); err != context.DeadlineExceeded {
		t.Errorf("ReadEvent = %v, want deadline exceeded", err)
	}
}

func TestReadEventResize(t *testing.T) {
	term, master, _ := openTestTerminal(t, 6, 30)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := pty.Setsize(master, &pty.Winsize{Rows: 11, Cols: 40}); err != nil {
		t.Fatalf("Setsize: %v", err)
	}
	syscall.Kill(os.Getpid(), syscall.SIGWINCH)

	ev, err := term.ReadEvent(ctx)
	if err != nil {
		t.Fatalf("ReadEvent: %v", err)
	}
	if ev != editor.Resize(40, 10) {
		t.Errorf("event = %+v, want resize to 40 x 10", ev)
	}
}

func TestDraw(t *testing.T) {
	term, _, out := openTestTerminal(t, 4, 20)
	doc := buffer.FromLines([]string{"drawn text"})
	w, h := term.Viewport()
	l := layout.NewEngine(layout.Alignment{Horizontal: layout.Center}, 4).Layout(doc, 0, layout.Viewport{Width: w, Height: h})

	if err := term.Draw(render.Build(doc, 0, 0, l), editor.Status{Name: "draw.txt"}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	waitFor(t, out, "     drawn text     ")
	waitFor(t, out, "draw.txt")
}
