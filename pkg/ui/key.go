package ui

import (
	"fmt"
	"strings"
	"unicode"
)

// Key represents a single keyboard input, typically assembled from an escape
// sequence or decoded by the terminal library.
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

// NoKey is the zero Key. It is used where a key binding is optional.
var NoKey = Key{}

// Mod represents a modifier key.
type Mod byte

// Values for Mod.
const (
	// Shift is the shift modifier. It is only applied to special keys (e.g.
	// Shift-F1). For instance 'A' and '@' which are typically entered with the
	// shift key pressed, are not considered to be shift-modified.
	Shift Mod = 1 << iota
	// Alt is the alt modifier, traditionally known as the meta modifier.
	Alt
	Ctrl
)

// Special negative runes to represent function keys, used in the Rune field
// of the Key struct.
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
	Insert
	Delete
	End
	PageUp
	PageDown

	// Some function key names are just aliases for their ASCII representation

	Tab       = '\t'
	Enter     = '\n'
	Escape    = '\x1b'
	Backspace = 0x7f
)

// functionKeyNames stores the names of function keys, where
// functionKeyNames[i] is the name of the function key -i.
var functionKeyNames = [...]string{
	"(Invalid)",
	"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12",
	"Up", "Down", "Right", "Left",
	"Home", "Insert", "Delete", "End", "PageUp", "PageDown",
}

// keyNames stores the names of the ASCII keys that have names.
var keyNames = map[rune]string{
	Tab: "Tab", Enter: "Enter", Escape: "Escape", Backspace: "Backspace",
	' ': "Space",
}

func (k Key) String() string {
	var b strings.Builder
	if k.Mod&Ctrl != 0 {
		b.WriteString("Ctrl-")
	}
	if k.Mod&Alt != 0 {
		b.WriteString("Alt-")
	}
	if k.Mod&Shift != 0 {
		b.WriteString("Shift-")
	}
	if k.Rune > 0 {
		if name, ok := keyNames[k.Rune]; ok {
			b.WriteString(name)
		} else {
			if k.Rune >= 0x20 {
				b.WriteRune(k.Rune)
			} else {
				fmt.Fprintf(&b, "(bad key %d)", k.Rune)
			}
		}
	} else {
		i := int(-k.Rune)
		if i >= len(functionKeyNames) {
			fmt.Fprintf(&b, "(bad function key %d)", i)
		} else {
			b.WriteString(functionKeyNames[i])
		}
	}
	return b.String()
}

// Fold returns a Key suitable for comparing key bindings: letters modified by
// Alt or Ctrl are folded to lower case, so that Alt-x and Alt-X are the same
// binding.
func (k Key) Fold() Key {
	if k.Mod&(Alt|Ctrl) != 0 && k.Rune > 0 {
		k.Rune = unicode.ToLower(k.Rune)
	}
	return k
}

// modifierByName maps a name to an modifier. It is used for parsing keys where
// the modifier string is first turned to lower case, so that all of C, c,
// CTRL, Ctrl and ctrl can represent the Ctrl modifier.
var modifierByName = map[string]Mod{
	"s": Shift, "shift": Shift,
	"a": Alt, "alt": Alt,
	"m": Alt, "meta": Alt,
	"c": Ctrl, "ctrl": Ctrl,
}

// ParseKey parses a symbolic key. The syntax is:
//
//	Key = { Mod ('+' | '-') } BareKey
//
//	BareKey = FunctionKeyName | SingleRune
func ParseKey(s string) (Key, error) {
	var k Key

	// Parse modifiers.
	for {
		i := strings.IndexAny(s, "+-")
		if i == -1 || i == len(s)-1 {
			break
		}
		modname := s[:i]
		if mod, ok := modifierByName[strings.ToLower(modname)]; ok {
			k.Mod |= mod
			s = s[i+1:]
		} else {
			return Key{}, fmt.Errorf("bad modifier: %s", strings.ToLower(modname))
		}
	}

	if len(s) == 1 {
		k.Rune = rune(s[0])
		if k.Rune < 0x20 {
			if k.Mod&Ctrl != 0 {
				return Key{}, fmt.Errorf("Ctrl modifier with literal control char: %q", k.Rune)
			}
			// Convert literal control char to the equivalent canonical form.
			k.Rune += 0x40
			k.Mod |= Ctrl
		}
		// Normalize Ctrl-I to Tab, Ctrl-J to Enter and Ctrl-[ to Escape.
		if k.Mod&Ctrl != 0 {
			k.Rune = unicode.ToUpper(k.Rune)
			switch k.Rune {
			case 'I':
				k = Key{Tab, k.Mod &^ Ctrl}
			case 'J':
				k = Key{Enter, k.Mod &^ Ctrl}
			case '[':
				k = Key{Escape, k.Mod &^ Ctrl}
			}
		}
		return k, nil
	}

	// Is this is a symbolic key name, such as `Enter`, we recognize?
	for r, name := range keyNames {
		if s == name {
			k.Rune = r
			return k, nil
		}
	}

	for i, name := range functionKeyNames[1:] {
		if s == name {
			k.Rune = rune(-i - 1)
			return k, nil
		}
	}

	return Key{}, fmt.Errorf("bad key: %s", s)
}
