package key

import "strings"

// Modifier is a set of held modifier keys. Direct symbol bindings compare
// modifier sets exactly, so Ctrl+Alt differs from Ctrl.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt
	ModMeta
)

// modifierOrder fixes the order names are printed in, with the long and
// short (C-x notation) spellings.
var modifierOrder = []struct {
	mod   Modifier
	long  string
	short string
}{
	{ModCtrl, "Ctrl", "C"},
	{ModAlt, "Alt", "A"},
	{ModShift, "Shift", "S"},
	{ModMeta, "Meta", "M"},
}

// Has reports whether mod is in the set.
func (m Modifier) Has(mod Modifier) bool { return m&mod != 0 }

// With adds mod to the set.
func (m Modifier) With(mod Modifier) Modifier { return m | mod }

// Without removes mod from the set.
func (m Modifier) Without(mod Modifier) Modifier { return m &^ mod }

// String returns e.g. "Ctrl+Alt".
func (m Modifier) String() string {
	var parts []string
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			parts = append(parts, o.long)
		}
	}
	return strings.Join(parts, "+")
}

// ShortString returns e.g. "C-A", the prefix used in key notation.
func (m Modifier) ShortString() string {
	var parts []string
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			parts = append(parts, o.short)
		}
	}
	return strings.Join(parts, "-")
}

var modifierNames = map[string]Modifier{
	"ctrl": ModCtrl, "control": ModCtrl, "c": ModCtrl,
	"alt": ModAlt, "option": ModAlt, "a": ModAlt,
	"shift": ModShift, "s": ModShift,
	"meta": ModMeta, "super": ModMeta, "cmd": ModMeta, "m": ModMeta,
}

// ParseModifiers parses a modifier set such as "Ctrl+Alt", "C-A" or "alt".
// The empty string is ModNone.
func ParseModifiers(s string) (Modifier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ModNone, nil
	}
	sep := "+"
	if !strings.Contains(s, "+") && strings.Contains(s, "-") {
		sep = "-"
	}
	var result Modifier
	for _, part := range strings.Split(s, sep) {
		mod, ok := modifierNames[strings.ToLower(strings.TrimSpace(part))]
		if !ok {
			return ModNone, &SpecError{Spec: s, Reason: "unknown modifier " + part}
		}
		result = result.With(mod)
	}
	return result, nil
}
