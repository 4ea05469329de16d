package term

import "github.com/zem-editor/zem/pkg/ui"

// Event represents an event that can be read from the terminal.
type Event interface {
	isEvent()
}

// KeyEvent represents a key press.
type KeyEvent ui.Key

// K constructs a new KeyEvent.
func K(r rune, mods ...ui.Mod) KeyEvent {
	return KeyEvent(ui.K(r, mods...))
}

func (KeyEvent) isEvent() {}

func (e KeyEvent) String() string { return ui.Key(e).String() }
