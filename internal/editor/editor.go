// Package editor implements the cursor and the edit state machine that
// applies input events to a document, and the loop that drives them.
package editor

import (
	"fmt"
	"log"
	"strings"

	"github.com/JackWReid/textedit/internal/buffer"
	"github.com/JackWReid/textedit/internal/logutil"
)

var logger = logutil.GetLogger("[editor] ")

// State is the state of the edit state machine.
type State int

const (
	Editing State = iota
	Exiting
)

func (s State) String() string {
	if s == Exiting {
		return "exiting"
	}
	return "editing"
}

// Persister stores a serialised document and returns where it went.
type Persister interface {
	Persist(text string) (string, error)
}

// Preferences tune editing behaviour.
type Preferences struct {
	TabWidth                 int  // Spaces inserted by Tab
	SaveOnExit               bool // Save a dirty document on quit
	UpAtFirstLineGoesToStart bool // Up on the first line moves to column 0
	DownAtLastLineGoesToEnd  bool // Down on the last line moves to the line end
}

// DefaultPreferences returns the preferences used when nothing is configured.
func DefaultPreferences() Preferences {
	return Preferences{TabWidth: 4}
}

// Options configure a new Editor.
type Options struct {
	Path      string // File the document belongs to, if any
	Name      string // Header name while Path is empty
	Persister Persister
	Prefs     Preferences
}

// Result reports what applying one event did.
type Result struct {
	Changed bool // The document was mutated
	Render  bool // The screen needs redrawing
}

// Editor owns a document and its cursor and applies events to them.
type Editor struct {
	doc       *buffer.Buffer
	cur       Cursor
	state     State
	path      string
	name      string
	persister Persister
	prefs     Preferences
	message   string
	logger    *log.Logger
}

func New(doc *buffer.Buffer, opts Options) *Editor {
	if opts.Prefs.TabWidth <= 0 {
		opts.Prefs.TabWidth = DefaultPreferences().TabWidth
	}
	if opts.Name == "" {
		opts.Name = "[unnamed]"
	}
	return &Editor{
		doc:       doc,
		path:      opts.Path,
		name:      opts.Name,
		persister: opts.Persister,
		prefs:     opts.Prefs,
		logger:    logger,
	}
}

func (e *Editor) Document() *buffer.Buffer { return e.doc }
func (e *Editor) Cursor() Cursor           { return e.cur }
func (e *Editor) State() State             { return e.state }
func (e *Editor) Message() string          { return e.message }

// Path returns the file the document was last loaded from or saved to.
func (e *Editor) Path() string { return e.path }

// SetCursor moves the cursor, clamped to the document.
func (e *Editor) SetCursor(line, col int) {
	e.cur.MoveTo(e.doc, line, col)
}

// SetMessage sets a temporary header message, cleared by the next input.
func (e *Editor) SetMessage(msg string) { e.message = msg }

// Status returns the header bar content.
func (e *Editor) Status() Status {
	return Status{
		Name:    DisplayName(e.path, e.name),
		Dirty:   e.doc.Dirty,
		Message: e.message,
	}
}

// Apply applies one event. Events are ignored once the editor is exiting.
func (e *Editor) Apply(ev Event) Result {
	if e.state == Exiting || ev.Action == ActionNone {
		return Result{}
	}
	if ev.Action == ActionResize {
		return Result{Render: true}
	}
	e.message = ""

	changed, err := e.apply(ev)
	if err != nil {
		e.logger.Printf("%v at %d:%d: %v", ev.Action, e.cur.Line, e.cur.Col, err)
		e.message = err.Error()
	}
	e.cur.ClampTo(e.doc)
	return Result{Changed: changed, Render: true}
}

func (e *Editor) apply(ev Event) (bool, error) {
	doc, c := e.doc, &e.cur
	switch ev.Action {
	case ActionInsert:
		if ev.Rune == '\n' || ev.Rune == '\r' {
			return e.enter()
		}
		return e.insert(ev.Rune)
	case ActionTab:
		return e.insertText(strings.Repeat(" ", e.prefs.TabWidth))
	case ActionBackspace:
		return e.backspace()
	case ActionDelete:
		return e.deleteForward()
	case ActionEnter:
		return e.enter()
	case ActionEraseWordLeft:
		if c.Col == 0 {
			return e.backspace()
		}
		return e.eraseRange(doc.PrevWordStart(c.Line, c.Col), c.Col)
	case ActionEraseWordRight:
		if c.Col >= doc.LineLen(c.Line) {
			return e.deleteForward()
		}
		return e.eraseRange(c.Col, doc.NextWordEnd(c.Line, c.Col))
	case ActionEraseToLineStart:
		return e.eraseRange(0, c.Col)
	case ActionEraseToLineEnd:
		return e.eraseRange(c.Col, doc.LineLen(c.Line))
	case ActionUp:
		c.MoveUp(doc, e.prefs.UpAtFirstLineGoesToStart)
	case ActionDown:
		c.MoveDown(doc, e.prefs.DownAtLastLineGoesToEnd)
	case ActionLeft:
		c.MoveLeft(doc)
	case ActionRight:
		c.MoveRight(doc)
	case ActionHome:
		c.Home()
	case ActionEnd:
		c.End(doc)
	case ActionFileStart:
		c.FileStart()
	case ActionFileEnd:
		c.FileEnd(doc)
	case ActionWordLeft:
		c.WordLeft(doc)
	case ActionWordRight:
		c.WordRight(doc)
	case ActionSave:
		if err := e.Save(); err != nil {
			e.logger.Printf("save: %v", err)
			e.message = "Save failed: " + err.Error()
		}
	case ActionQuit:
		e.quit()
	}
	return false, nil
}

func (e *Editor) insert(ch rune) (bool, error) {
	if err := e.doc.InsertChar(e.cur.Line, e.cur.Col, ch); err != nil {
		return false, err
	}
	e.cur.MoveRight(e.doc)
	return true, nil
}

func (e *Editor) insertText(s string) (bool, error) {
	pos, err := e.doc.InsertText(e.cur.Line, e.cur.Col, s)
	if err != nil {
		return false, err
	}
	e.cur.MoveTo(e.doc, pos.Line, pos.Col)
	return true, nil
}

func (e *Editor) backspace() (bool, error) {
	pos, changed, err := e.doc.DeleteCharBefore(e.cur.Line, e.cur.Col)
	if err != nil || !changed {
		return false, err
	}
	e.cur.MoveTo(e.doc, pos.Line, pos.Col)
	return true, nil
}

func (e *Editor) deleteForward() (bool, error) {
	changed, err := e.doc.DeleteCharAfter(e.cur.Line, e.cur.Col)
	e.cur.Want = e.cur.Col
	return changed, err
}

func (e *Editor) enter() (bool, error) {
	if err := e.doc.SplitLine(e.cur.Line, e.cur.Col); err != nil {
		return false, err
	}
	e.cur.MoveTo(e.doc, e.cur.Line+1, 0)
	return true, nil
}

// eraseRange removes [from, to) of the cursor line and leaves the cursor at from.
func (e *Editor) eraseRange(from, to int) (bool, error) {
	changed, err := e.doc.DeleteRange(e.cur.Line, from, to)
	if err != nil {
		return false, err
	}
	e.cur.MoveTo(e.doc, e.cur.Line, from)
	return changed, nil
}

// Save serialises the document and hands it to the persister. The document
// stays dirty if the persister fails.
func (e *Editor) Save() error {
	if e.persister == nil {
		return fmt.Errorf("%w: no save target", buffer.ErrPersist)
	}
	path, err := e.persister.Persist(e.doc.Text())
	if err != nil {
		return err
	}
	e.path = path
	e.doc.Dirty = false
	e.message = "Saved " + DisplayName(path, e.name)
	e.logger.Printf("saved %s", path)
	return nil
}

func (e *Editor) quit() {
	if e.prefs.SaveOnExit && e.doc.Dirty {
		if err := e.Save(); err != nil {
			e.logger.Printf("save on exit: %v", err)
			e.message = "Save failed: " + err.Error()
			return
		}
	}
	e.state = Exiting
}

