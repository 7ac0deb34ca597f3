package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec        = errors.New("empty key specification")
	ErrInvalidSpec      = errors.New("invalid key specification")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key specification")
)

// SpecError describes a key specification that could not be parsed.
type SpecError struct {
	Spec   string
	Reason string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("key %q: %s", e.Spec, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidSpec).
func (e *SpecError) Unwrap() error { return ErrInvalidSpec }

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "`", "'", "?"
//   - Special keys: "Enter", "Escape", "Tab", "Backspace", "Space"
//   - With modifiers: "Ctrl+G", "Alt+E", "Alt+Enter"
//   - Vim-style: "<C-g>", "<A-e>", "<A-CR>", "<Esc>", "<lt>"
func Parse(spec string) (Event, error) {
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	// A lone "+" or " " is a character, not a separator.
	if len([]rune(spec)) == 1 {
		return parseKey(spec, ModNone)
	}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2 {
		return parseVimStyle(spec[1 : len(spec)-1])
	}

	if i := strings.LastIndex(spec, "+"); i > 0 && i < len(spec)-1 {
		mods, err := ParseModifiers(spec[:i])
		if err != nil {
			return Event{}, err
		}
		return parseKey(spec[i+1:], mods)
	}
	if strings.HasSuffix(spec, "++") {
		mods, err := ParseModifiers(spec[:len(spec)-2])
		if err != nil {
			return Event{}, err
		}
		return NewRuneEvent('+', mods), nil
	}

	return parseKey(spec, ModNone)
}

// parseVimStyle parses Vim-style notation like "C-g", "A-CR", "Esc"
func parseVimStyle(inner string) (Event, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Event{}, ErrInvalidSpec
	}
	// "<C-->" names Ctrl and the minus key.
	if strings.HasSuffix(inner, "--") {
		mods, err := ParseModifiers(strings.ReplaceAll(inner[:len(inner)-2], "-", "+"))
		if err != nil {
			return Event{}, err
		}
		return NewRuneEvent('-', mods), nil
	}
	i := strings.LastIndex(inner, "-")
	if i <= 0 {
		return parseKey(inner, ModNone)
	}
	mods, err := ParseModifiers(strings.ReplaceAll(inner[:i], "-", "+"))
	if err != nil {
		return Event{}, err
	}
	return parseKey(inner[i+1:], mods)
}

// parseKey parses a key part with already-known modifiers.
func parseKey(keyPart string, mods Modifier) (Event, error) {
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		r := runes[0]
		if mods.Has(ModCtrl) || mods.Has(ModAlt) {
			r = unicode.ToLower(r)
		}
		return NewRuneEvent(r, mods), nil
	}

	lower := strings.ToLower(strings.TrimSpace(keyPart))
	if k := KeyFromName(lower); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	if r, ok := runeNameMap[lower]; ok {
		return NewRuneEvent(r, mods), nil
	}

	return Event{}, &SpecError{Spec: keyPart, Reason: "unknown key"}
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}

// NormalizeSpec parses and re-formats a key specification to its canonical form.
func NormalizeSpec(spec string) (string, error) {
	event, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return event.VimString(), nil
}
