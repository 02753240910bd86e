package terminal

import "github.com/JackWReid/textedit/internal/editor"

var keymap = map[int]editor.Action{
	KeyEscape:        editor.ActionQuit,
	KeyCtrlQ:         editor.ActionQuit,
	KeyCtrlS:         editor.ActionSave,
	KeyEnter:         editor.ActionEnter,
	KeyTab:           editor.ActionTab,
	KeyBackspace:     editor.ActionBackspace,
	KeyCtrlBackspace: editor.ActionEraseWordLeft,
	KeyAltBackspace:  editor.ActionEraseToLineStart,
	KeyDelete:        editor.ActionDelete,
	KeyCtrlDelete:    editor.ActionEraseWordRight,
	KeyAltDelete:     editor.ActionEraseToLineEnd,
	KeyUp:            editor.ActionUp,
	KeyDown:          editor.ActionDown,
	KeyLeft:          editor.ActionLeft,
	KeyRight:         editor.ActionRight,
	KeyCtrlLeft:      editor.ActionWordLeft,
	KeyCtrlRight:     editor.ActionWordRight,
	KeyHome:          editor.ActionHome,
	KeyEnd:           editor.ActionEnd,
	KeyCtrlHome:      editor.ActionFileStart,
	KeyCtrlEnd:       editor.ActionFileEnd,
}

// eventFor translates a decoded key. Keys without a binding become
// ActionNone.
func eventFor(k Key) editor.Event {
	if k.Type == KeyRune {
		return editor.Insert(k.Rune)
	}
	return editor.Key(keymap[k.Type])
}
