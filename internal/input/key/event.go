package key

import (
	"strings"
	"unicode"
)

// Event is one keystroke: a special key or a character, with the modifiers
// held. Events from the terminal and from key scripts compare equal with
// Equals when they name the same chord.
type Event struct {
	Key       Key
	Rune      rune // for KeyRune
	Modifiers Modifier
}

// NewRuneEvent returns the event for character r.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent returns the event for special key k.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune reports whether the event carries a character.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar reports whether the key self-inserts: a printable character with
// no modifier other than Shift.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.IsModified() && unicode.IsPrint(e.Rune)
}

// IsModified reports whether a modifier is held. Shift does not count for
// characters since it is already folded into the rune.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// Digit returns the value of an Alt+digit or plain digit key.
func (e Event) Digit() (int, bool) {
	if !e.IsRune() || e.Rune < '0' || e.Rune > '9' {
		return 0, false
	}
	return int(e.Rune - '0'), true
}

// Equals reports whether two events name the same key chord.
// Shift is ignored for characters.
func (e Event) Equals(other Event) bool {
	if e.Key != other.Key {
		return false
	}
	if e.Key == KeyRune {
		mask := ModCtrl | ModAlt | ModMeta
		return e.Rune == other.Rune && e.Modifiers&mask == other.Modifiers&mask
	}
	return e.Modifiers == other.Modifiers
}

// String returns the short form used in status messages, e.g. "C-g",
// "A-e" or "Space".
func (e Event) String() string {
	var parts []string
	if short := e.displayModifiers().ShortString(); short != "" {
		parts = append(parts, short)
	}
	parts = append(parts, e.keyName())
	return strings.Join(parts, "-")
}

// VimString returns the angle-bracket notation Parse and ParseKeys accept,
// e.g. "<Esc>", "<C-g>", "<lt>" or plain "a".
func (e Event) VimString() string {
	mods := e.displayModifiers()
	if e.Key == KeyRune && mods == ModNone {
		switch e.Rune {
		case ' ':
			return "<Space>"
		case '<':
			return "<lt>"
		default:
			return string(e.Rune)
		}
	}
	name := e.keyName()
	switch e.Key {
	case KeyEnter:
		name = "CR"
	case KeyRune:
		if e.Rune == '<' {
			name = "lt"
		}
	}
	if short := mods.ShortString(); short != "" {
		return "<" + short + "-" + name + ">"
	}
	return "<" + name + ">"
}

func (e Event) displayModifiers() Modifier {
	if e.IsRune() {
		return e.Modifiers.Without(ModShift)
	}
	return e.Modifiers
}

func (e Event) keyName() string {
	switch e.Key {
	case KeyRune:
		if e.Rune == ' ' {
			return "Space"
		}
		return string(e.Rune)
	case KeyEscape:
		return "Esc"
	case KeyBackspace:
		return "BS"
	case KeyDelete:
		return "Del"
	default:
		return e.Key.String()
	}
}
