package editor

// Action is the kind of an input event.
type Action int

const (
	ActionNone Action = iota // Unrecognised input, ignored
	ActionInsert
	ActionBackspace
	ActionDelete
	ActionEnter
	ActionTab
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionHome
	ActionEnd
	ActionFileStart
	ActionFileEnd
	ActionWordLeft
	ActionWordRight
	ActionEraseWordLeft
	ActionEraseWordRight
	ActionEraseToLineStart
	ActionEraseToLineEnd
	ActionSave
	ActionQuit
	ActionResize
)

var actionNames = map[Action]string{
	ActionNone:             "none",
	ActionInsert:           "insert",
	ActionBackspace:        "backspace",
	ActionDelete:           "delete",
	ActionEnter:            "enter",
	ActionTab:              "tab",
	ActionUp:               "up",
	ActionDown:             "down",
	ActionLeft:             "left",
	ActionRight:            "right",
	ActionHome:             "home",
	ActionEnd:              "end",
	ActionFileStart:        "file-start",
	ActionFileEnd:          "file-end",
	ActionWordLeft:         "word-left",
	ActionWordRight:        "word-right",
	ActionEraseWordLeft:    "erase-word-left",
	ActionEraseWordRight:   "erase-word-right",
	ActionEraseToLineStart: "erase-to-line-start",
	ActionEraseToLineEnd:   "erase-to-line-end",
	ActionSave:             "save",
	ActionQuit:             "quit",
	ActionResize:           "resize",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Event is one input event. Rune is set for ActionInsert; Width and Height
// for ActionResize.
type Event struct {
	Action Action
	Rune   rune
	Width  int
	Height int
}

// Key returns an event carrying only an action.
func Key(a Action) Event { return Event{Action: a} }

// Insert returns the event for typing r.
func Insert(r rune) Event { return Event{Action: ActionInsert, Rune: r} }

// Resize returns the event for a new text area size.
func Resize(width, height int) Event {
	return Event{Action: ActionResize, Width: width, Height: height}
}
