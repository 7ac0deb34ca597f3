package session

import (
	"github.com/dshills/texpand/internal/input/key"
)

// Keymap binds the session commands to keys.
type Keymap struct {
	Trigger      key.Event
	SymbolPrefix key.Event
	ModifyPrefix key.Event
	Environment  key.Event
	Item         key.Event
	LRPair       key.Event
	File         key.Event
	Mark         key.Event

	// Label is unbound by default; the lbl keyword inserts labels.
	Label key.Event

	// Direct holds, per symbol level, the modifiers that insert a symbol
	// without the prefix key. ModNone leaves a level unbound.
	Direct []key.Modifier
}

// DefaultKeymap returns the classic bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		Trigger:      key.NewSpecialEvent(key.KeyTab, key.ModNone),
		SymbolPrefix: key.NewRuneEvent('`', key.ModNone),
		ModifyPrefix: key.NewRuneEvent('\'', key.ModNone),
		Environment:  key.NewRuneEvent('e', key.ModAlt),
		Item:         key.NewSpecialEvent(key.KeyEnter, key.ModAlt),
		LRPair:       key.NewRuneEvent('l', key.ModAlt),
		File:         key.NewRuneEvent('f', key.ModAlt),
		Mark:         key.NewRuneEvent(' ', key.ModCtrl),
	}
}

// directLevel returns the symbol level ev is bound to directly, or 0.
func (k Keymap) directLevel(ev key.Event) int {
	if !ev.IsRune() || ev.Modifiers == key.ModNone {
		return 0
	}
	for i, m := range k.Direct {
		if m != key.ModNone && ev.Modifiers == m {
			return i + 1
		}
	}
	return 0
}
