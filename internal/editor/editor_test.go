package editor

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JackWReid/textedit/internal/buffer"
)

type memPersister struct {
	saved []string
	err   error
}

func (p *memPersister) Persist(text string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.saved = append(p.saved, text)
	return "mem.txt", nil
}

func newTestEditor(lines []string, prefs Preferences) (*Editor, *memPersister) {
	p := &memPersister{}
	return New(buffer.FromLines(lines), Options{Persister: p, Prefs: prefs}), p
}

func apply(e *Editor, events ...Event) {
	for _, ev := range events {
		e.Apply(ev)
	}
}

func TestInsertAdvancesCursor(t *testing.T) {
	e, _ := newTestEditor(nil, DefaultPreferences())
	for _, r := range "héllo" {
		e.Apply(Insert(r))
	}
	if diff := cmp.Diff([]string{"héllo"}, e.Document().Lines()); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
	if c := e.Cursor(); c.Line != 0 || c.Col != 5 {
		t.Errorf("cursor = %+v, want (0,5)", c)
	}
	if !e.Status().Dirty {
		t.Error("status should report a dirty document")
	}
}

func TestBackspaceAtStartIsNoop(t *testing.T) {
	e, _ := newTestEditor([]string{"ab"}, DefaultPreferences())
	res := e.Apply(Key(ActionBackspace))
	if res.Changed {
		t.Error("backspace at (0,0) should not change the document")
	}
	if diff := cmp.Diff([]string{"ab"}, e.Document().Lines()); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
	if c := e.Cursor(); c.Line != 0 || c.Col != 0 {
		t.Errorf("cursor = %+v", c)
	}
	if e.Document().Dirty {
		t.Error("no-op backspace marked document dirty")
	}
}

func TestBackspaceJoinsLines(t *testing.T) {
	e, _ := newTestEditor([]string{"ab", "cd"}, DefaultPreferences())
	e.SetCursor(1, 0)
	res := e.Apply(Key(ActionBackspace))
	if !res.Changed || !res.Render {
		t.Errorf("result = %+v", res)
	}
	if diff := cmp.Diff([]string{"abcd"}, e.Document().Lines()); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
	if c := e.Cursor(); c.Line != 0 || c.Col != 2 {
		t.Errorf("cursor = (%d,%d), want (0,2)", c.Line, c.Col)
	}
}

func TestDeleteAndEnter(t *testing.T) {
	e, _ := newTestEditor([]string{"abc", "def"}, DefaultPreferences())
	e.SetCursor(0, 1)
	apply(e, Key(ActionDelete), Key(ActionEnter))
	if diff := cmp.Diff([]string{"a", "c", "def"}, e.Document().Lines()); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
	if c := e.Cursor(); c.Line != 1 || c.Col != 0 {
		t.Errorf("cursor after enter = (%d,%d), want (1,0)", c.Line, c.Col)
	}
	apply(e, Key(ActionEnd), Key(ActionDelete))
	if diff := cmp.Diff([]string{"a", "cdef"}, e.Document().Lines()); diff != "" {
		t.Errorf("lines after join (-want +got):\n%s", diff)
	}
	apply(e, Key(ActionFileEnd))
	if res := e.Apply(Key(ActionDelete)); res.Changed {
		t.Error("delete at document end should not change the document")
	}
}

func TestInsertNewlineRune(t *testing.T) {
	e, _ := newTestEditor([]string{"ab"}, DefaultPreferences())
	e.SetCursor(0, 1)
	e.Apply(Insert('\r'))
	if diff := cmp.Diff([]string{"a", "b"}, e.Document().Lines()); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
}

func TestTabInsertsSpaces(t *testing.T) {
	e, _ := newTestEditor([]string{"x"}, Preferences{TabWidth: 2})
	e.Apply(Key(ActionTab))
	if got := e.Document().Line(0); got != "  x" {
		t.Errorf("line = %q", got)
	}
	if c := e.Cursor(); c.Col != 2 {
		t.Errorf("cursor col = %d, want 2", c.Col)
	}
}

func TestEraseCommands(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		line   int
		col    int
		action Action
		want   []string
		cursor Cursor
	}{
		{"word left", []string{"one two three"}, 0, 7, ActionEraseWordLeft, []string{"one  three"}, Cursor{0, 4, 4}},
		{"word left at start joins", []string{"ab", "cd"}, 1, 0, ActionEraseWordLeft, []string{"abcd"}, Cursor{0, 2, 2}},
		{"word right", []string{"one two three"}, 0, 3, ActionEraseWordRight, []string{"one three"}, Cursor{0, 3, 3}},
		{"word right at end joins", []string{"ab", "cd"}, 0, 2, ActionEraseWordRight, []string{"abcd"}, Cursor{0, 2, 2}},
		{"to line start", []string{"hello world"}, 0, 6, ActionEraseToLineStart, []string{"world"}, Cursor{0, 0, 0}},
		{"to line end", []string{"hello world"}, 0, 5, ActionEraseToLineEnd, []string{"hello"}, Cursor{0, 5, 5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, _ := newTestEditor(tc.lines, DefaultPreferences())
			e.SetCursor(tc.line, tc.col)
			e.Apply(Key(tc.action))
			if diff := cmp.Diff(tc.want, e.Document().Lines()); diff != "" {
				t.Errorf("lines (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.cursor, e.Cursor()); diff != "" {
				t.Errorf("cursor (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSave(t *testing.T) {
	e, p := newTestEditor([]string{"a", "b"}, DefaultPreferences())
	e.Apply(Insert('x'))
	res := e.Apply(Key(ActionSave))
	if res.Changed {
		t.Error("save should not report a document change")
	}
	if diff := cmp.Diff([]string{"xa\nb"}, p.saved); diff != "" {
		t.Errorf("saved (-want +got):\n%s", diff)
	}
	if e.Document().Dirty {
		t.Error("document should be clean after save")
	}
	if !strings.Contains(e.Message(), "Saved") {
		t.Errorf("message = %q", e.Message())
	}
	if e.Path() != "mem.txt" || e.Status().Name != "mem.txt" {
		t.Errorf("path = %q, name = %q", e.Path(), e.Status().Name)
	}
	e.Apply(Key(ActionRight))
	if e.Message() != "" {
		t.Errorf("message should clear on the next input, got %q", e.Message())
	}
}

func TestSaveFailureKeepsEditing(t *testing.T) {
	e, p := newTestEditor([]string{"a"}, DefaultPreferences())
	p.err = &buffer.PersistError{Path: "x", Err: os.ErrPermission}
	e.Apply(Insert('b'))
	e.Apply(Key(ActionSave))
	if e.State() != Editing {
		t.Errorf("state = %v, want editing", e.State())
	}
	if !e.Document().Dirty {
		t.Error("document should stay dirty after a failed save")
	}
	if !strings.Contains(e.Message(), "Save failed") {
		t.Errorf("message = %q", e.Message())
	}
}

func TestSaveWithoutPersister(t *testing.T) {
	e := New(buffer.New(), Options{})
	if err := e.Save(); !errors.Is(err, buffer.ErrPersist) {
		t.Errorf("expected ErrPersist, got %v", err)
	}
	if e.Status().Name != "[unnamed]" {
		t.Errorf("name = %q", e.Status().Name)
	}
}

func TestSaveToFileTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	e := New(buffer.FromLines([]string{"one", "two"}), Options{
		Path:      path,
		Persister: &buffer.FilePersister{Path: path},
	})
	apply(e, Key(ActionSave))
	first, _ := os.ReadFile(path)
	apply(e, Key(ActionSave))
	second, _ := os.ReadFile(path)
	if string(first) != "one\ntwo" || string(first) != string(second) {
		t.Errorf("saves = %q, %q", first, second)
	}
}

func TestQuit(t *testing.T) {
	e, p := newTestEditor([]string{"a"}, DefaultPreferences())
	e.Apply(Insert('b'))
	e.Apply(Key(ActionQuit))
	if e.State() != Exiting {
		t.Fatalf("state = %v, want exiting", e.State())
	}
	if len(p.saved) != 0 {
		t.Error("quit should not save without the save-on-exit preference")
	}
	res := e.Apply(Insert('c'))
	if res != (Result{}) || e.Document().Line(0) != "ba" {
		t.Errorf("events after exit should be ignored, got %+v %q", res, e.Document().Line(0))
	}
}

func TestQuitSaveOnExit(t *testing.T) {
	e, p := newTestEditor([]string{"a"}, Preferences{SaveOnExit: true})
	e.Apply(Insert('b'))
	e.Apply(Key(ActionQuit))
	if e.State() != Exiting || len(p.saved) != 1 {
		t.Errorf("state = %v, saves = %d", e.State(), len(p.saved))
	}

	e, p = newTestEditor([]string{"a"}, Preferences{SaveOnExit: true})
	p.err = errors.New("disk full")
	e.Apply(Insert('b'))
	e.Apply(Key(ActionQuit))
	if e.State() != Editing {
		t.Error("failed save on exit should keep the editor open")
	}
}

func TestUnknownAndResizeEvents(t *testing.T) {
	e, _ := newTestEditor([]string{"a"}, DefaultPreferences())
	if res := e.Apply(Key(ActionNone)); res.Render || res.Changed {
		t.Errorf("unknown event result = %+v", res)
	}
	if res := e.Apply(Resize(10, 5)); !res.Render || res.Changed {
		t.Errorf("resize result = %+v", res)
	}
}

func TestVerticalPreferences(t *testing.T) {
	e, _ := newTestEditor([]string{"abc", "def"}, Preferences{
		UpAtFirstLineGoesToStart: true,
		DownAtLastLineGoesToEnd:  true,
	})
	e.SetCursor(0, 2)
	e.Apply(Key(ActionUp))
	if c := e.Cursor(); c.Col != 0 {
		t.Errorf("up on first line: col = %d, want 0", c.Col)
	}
	apply(e, Key(ActionDown), Key(ActionDown))
	if c := e.Cursor(); c.Line != 1 || c.Col != 3 {
		t.Errorf("down past last line = (%d,%d), want (1,3)", c.Line, c.Col)
	}
}

func TestCursorInvariantUnderRandomEvents(t *testing.T) {
	actions := []Action{
		ActionInsert, ActionInsert, ActionInsert, ActionBackspace, ActionDelete,
		ActionEnter, ActionTab, ActionUp, ActionDown, ActionLeft, ActionRight,
		ActionHome, ActionEnd, ActionFileStart, ActionFileEnd, ActionWordLeft,
		ActionWordRight, ActionEraseWordLeft, ActionEraseWordRight,
		ActionEraseToLineStart, ActionEraseToLineEnd,
	}
	runes := []rune("ab 日\tZ\r")
	rng := rand.New(rand.NewSource(1))
	for run := 0; run < 50; run++ {
		e, _ := newTestEditor([]string{"seed text", "", "more"}, DefaultPreferences())
		for i := 0; i < 200; i++ {
			ev := Key(actions[rng.Intn(len(actions))])
			if ev.Action == ActionInsert {
				ev.Rune = runes[rng.Intn(len(runes))]
			}
			e.Apply(ev)
			if !e.Cursor().Valid(e.Document()) {
				t.Fatalf("run %d step %d: %v left cursor %+v outside %q",
					run, i, ev.Action, e.Cursor(), e.Document().Lines())
			}
			if e.Document().LineCount() < 1 {
				t.Fatalf("run %d step %d: document has no lines", run, i)
			}
		}
		doc := e.Document()
		if diff := cmp.Diff(doc.Lines(), buffer.Parse(doc.Text()).Lines()); diff != "" {
			t.Fatalf("run %d: round trip (-want +got):\n%s", run, diff)
		}
	}
}

func TestCarriageReturnInputSurvivesSave(t *testing.T) {
	p := &memPersister{}
	e := New(buffer.Parse("a\rb"), Options{Persister: p})
	e.SetCursor(0, 2)
	apply(e, Key(ActionEnter), Insert('\r'), Key(ActionSave))

	want := []string{"a", "", "", "b"}
	if diff := cmp.Diff(want, e.Document().Lines()); diff != "" {
		t.Fatalf("lines (-want +got):\n%s", diff)
	}
	if len(p.saved) != 1 {
		t.Fatalf("saved %d times", len(p.saved))
	}
	if diff := cmp.Diff(want, buffer.Parse(p.saved[0]).Lines()); diff != "" {
		t.Errorf("reloaded (-want +got):\n%s", diff)
	}
}
