// Package ui defines the representation of keyboard input shared by the
// terminal layer and the editor.
package ui

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zem-editor/zem/pkg/eval/vals"
	"github.com/zem-editor/zem/pkg/persistent/hash"
)

// Key represents a single keyboard input, typically assembled from an escape
// sequence.
type Key struct {
	Rune rune
	Mod  Mod
}

// K constructs a new Key.
func K(r rune, mods ...Mod) Key {
	var mod Mod
	for _, m := range mods {
		mod |= m
	}
	return Key{r, mod}
}

// Mod represents a modifier key.
type Mod byte

// Values for Mod.
const (
	// Shift is the shift modifier. It is only applied to special keys (e.g.
	// Shift-F1). For instance 'A' and '@', which are typically entered with
	// the shift key pressed, are not considered to be shift-modified.
	Shift Mod = 1 << iota
	// Alt is the alt modifier, traditionally known as the meta modifier.
	Alt
	Ctrl
)

// Negative runes in the Rune field represent function keys.
const (
	F1 rune = -iota - 1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	Up
	Down
	Right
	Left

	Home
	End
	Insert
	Delete
	PageUp
	PageDown
)

// Function key names that are aliases for simple runes.
const (
	Tab       = '\t'
	Enter     = '\n'
	Escape    = 0x1b
	Backspace = 0x7f
)

// keyNames maps function key runes to symbolic names.
var keyNames = map[rune]string{
	F1: "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6",
	F7: "F7", F8: "F8", F9: "F9", F10: "F10", F11: "F11", F12: "F12",
	Up: "Up", Down: "Down", Right: "Right", Left: "Left",
	Home: "Home", End: "End", Insert: "Insert", Delete: "Delete",
	PageUp: "PageUp", PageDown: "PageDown",
	Tab: "Tab", Enter: "Enter", Escape: "Escape", Backspace: "Backspace",
}

func (k Key) String() string {
	var sb strings.Builder
	if k.Mod&Ctrl != 0 {
		sb.WriteString("Ctrl-")
	}
	if k.Mod&Alt != 0 {
		sb.WriteString("Alt-")
	}
	if k.Mod&Shift != 0 {
		sb.WriteString("Shift-")
	}
	if name, ok := keyNames[k.Rune]; ok {
		sb.WriteString(name)
	} else if k.Rune >= 0x20 {
		sb.WriteRune(k.Rune)
	} else {
		fmt.Fprintf(&sb, "(bad function key %d)", k.Rune)
	}
	return sb.String()
}

// Kind returns "key".
func (k Key) Kind() string { return "key" }

// Equal compares the other value to the key.
func (k Key) Equal(other any) bool { return k == other }

// Hash hashes the key, so that keys can be used in maps.
func (k Key) Hash() uint32 { return hash.DJB(uint32(k.Rune), uint32(k.Mod)) }

// Repr writes the key as a call to the key builtin, which reads back as an
// equal key.
func (k Key) Repr() string { return "(key " + vals.Repr(k.String()) + ")" }

// modifierByName maps modifier names, where case does not matter, to Mod
// values. Meta is an alias for Alt.
var modifierByName = map[string]Mod{
	"s": Shift, "shift": Shift,
	"a": Alt, "alt": Alt,
	"m": Alt, "meta": Alt,
	"c": Ctrl, "ctrl": Ctrl,
}

// ParseKey parses a symbolic key. The syntax is:
//
//	Key = { Mod ('-' | '+') } BareKey
//
//	BareKey = FunctionKeyName | SingleRune
func ParseKey(s string) (Key, error) {
	var k Key
	// Parse modifiers.
	for {
		i := strings.IndexAny(s, "-+")
		if i <= 0 {
			break
		}
		modname := strings.ToLower(s[:i])
		mod, ok := modifierByName[modname]
		if !ok {
			return Key{}, fmt.Errorf("bad modifier: %s", modname)
		}
		k.Mod |= mod
		s = s[i+1:]
	}

	if utf8.RuneCountInString(s) == 1 {
		k.Rune, _ = utf8.DecodeRuneInString(s)
		if k.Mod&Ctrl != 0 {
			// Ctrl modifiers do not distinguish between cases.
			k.Rune = unicode.ToUpper(k.Rune)
			// Normalize Ctrl-I and Ctrl-J to Tab and Enter, which is how
			// the terminal sends them.
			if k.Mod == Ctrl {
				switch k.Rune {
				case 'I':
					return K(Tab), nil
				case 'J':
					return K(Enter), nil
				}
			}
		}
		return k, nil
	}

	for r, name := range keyNames {
		if s == name {
			k.Rune = r
			return k, nil
		}
	}

	return Key{}, fmt.Errorf("bad key: %s", s)
}

// ParseKeys parses a whitespace-separated sequence of symbolic keys, the
// form key bindings are written in ("C-x C-s").
func ParseKeys(s string) ([]Key, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty key sequence")
	}
	keys := make([]Key, len(fields))
	for i, field := range fields {
		k, err := ParseKey(field)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	return keys, nil
}
