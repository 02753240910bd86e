package editor

import (
	"context"
	"errors"
	"io"

	"github.com/JackWReid/textedit/internal/layout"
	"github.com/JackWReid/textedit/internal/render"
)

// EventSource supplies input events. ReadEvent blocks until an event is
// available, the context is done, or input ends with io.EOF.
type EventSource interface {
	ReadEvent(ctx context.Context) (Event, error)
}

// Screen shows frames. Viewport returns the size of the text area.
type Screen interface {
	Viewport() (width, height int)
	Draw(f *render.Frame, st Status) error
}

// App is the top-level loop tying an editor to its input and output.
type App struct {
	editor   *Editor
	engine   *layout.Engine
	events   EventSource
	screen   Screen
	viewport layout.Viewport
}

func NewApp(ed *Editor, engine *layout.Engine, events EventSource, screen Screen) *App {
	return &App{editor: ed, engine: engine, events: events, screen: screen}
}

// Editor returns the editor driven by the app.
func (a *App) Editor() *Editor { return a.editor }

// Run reads and applies events until the editor exits, the context is
// cancelled, or input ends.
func (a *App) Run(ctx context.Context) error {
	w, h := a.screen.Viewport()
	a.viewport = layout.Viewport{Width: w, Height: h}

	// Initial render.
	if err := a.render(); err != nil {
		return err
	}

	for a.editor.State() != Exiting {
		ev, err := a.events.ReadEvent(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		if ev.Action == ActionResize {
			a.viewport = layout.Viewport{Width: ev.Width, Height: ev.Height}
		}
		res := a.editor.Apply(ev)
		if a.editor.State() == Exiting {
			break
		}
		if res.Render {
			if err := a.render(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Frame lays out and renders the current document.
func (a *App) Frame() *render.Frame {
	doc, cur := a.editor.Document(), a.editor.Cursor()
	l := a.engine.Layout(doc, cur.Line, a.viewport)
	return render.Build(doc, cur.Line, cur.Col, l)
}

func (a *App) render() error {
	return a.screen.Draw(a.Frame(), a.editor.Status())
}
