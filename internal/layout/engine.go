package layout

// Viewport is the size of the text area in cells.
type Viewport struct {
	Width  int
	Height int
}

func (v Viewport) normalized() Viewport {
	return Viewport{Width: max(v.Width, 1), Height: max(v.Height, 1)}
}

// Document is the read side of the line store the engine lays out.
type Document interface {
	LineCount() int
	Line(i int) string
}

// Placement locates one visible document line on screen.
type Placement struct {
	Line  int // Index into the document
	Row   int // Screen row inside the viewport
	Start int // Screen column of the first cell
	Width int // Display width of the whole line
}

// Layout is the result of placing a document in a viewport.
type Layout struct {
	Viewport Viewport
	TabWidth int
	Top      int // First document line shown
	Lines    []Placement
}

// Placement returns the placement of a document line, if it is visible.
func (l Layout) Placement(line int) (Placement, bool) {
	i := line - l.Top
	if i < 0 || i >= len(l.Lines) {
		return Placement{}, false
	}
	return l.Lines[i], true
}

// Engine computes layouts. It remembers the scroll offset between calls so
// that documents taller than the viewport only scroll when the cursor would
// otherwise leave it.
type Engine struct {
	align    Alignment
	tabWidth int
	top      int
}

func NewEngine(align Alignment, tabWidth int) *Engine {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	return &Engine{align: align, tabWidth: tabWidth}
}

// Top returns the current scroll offset.
func (e *Engine) Top() int { return e.top }

// Layout places doc in vp keeping cursorLine visible.
func (e *Engine) Layout(doc Document, cursorLine int, vp Viewport) Layout {
	vp = vp.normalized()
	n := doc.LineCount()
	first := 0
	if n > vp.Height {
		e.ensureVisible(cursorLine, n, vp.Height)
	} else {
		e.top = 0
		first = e.align.Vertical.First(vp.Height, n)
	}

	visible := min(n-e.top, vp.Height-first)
	l := Layout{
		Viewport: vp,
		TabWidth: e.tabWidth,
		Top:      e.top,
		Lines:    make([]Placement, 0, visible),
	}
	for i := 0; i < visible; i++ {
		idx := e.top + i
		w := StringWidth([]rune(doc.Line(idx)), e.tabWidth)
		l.Lines = append(l.Lines, Placement{
			Line:  idx,
			Row:   first + i,
			Start: e.align.Horizontal.Start(vp.Width, w),
			Width: w,
		})
	}
	return l
}

// ensureVisible adjusts the scroll offset so line is inside a window of
// height rows over n lines.
func (e *Engine) ensureVisible(line, n, height int) {
	if line < e.top {
		e.top = line
	}
	if line >= e.top+height {
		e.top = line - height + 1
	}
	e.top = min(e.top, n-height)
	e.top = max(e.top, 0)
}
