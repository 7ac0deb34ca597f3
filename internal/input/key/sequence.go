package key

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Sequence represents a series of key events, e.g. a scripted session.
type Sequence struct {
	// Events contains the key events in order.
	Events []Event
}

// NewSequenceFrom creates a sequence from the given events.
func NewSequenceFrom(events ...Event) *Sequence {
	return &Sequence{Events: events}
}

// Len returns the number of events in the sequence.
func (s *Sequence) Len() int {
	return len(s.Events)
}

// IsEmpty returns true if the sequence has no events.
func (s *Sequence) IsEmpty() bool {
	return len(s.Events) == 0
}

// Add appends an event to the sequence.
func (s *Sequence) Add(event Event) {
	s.Events = append(s.Events, event)
}

// String returns a human-readable representation.
// Examples: "` a", "C-g", "A-e"
func (s *Sequence) String() string {
	parts := make([]string, len(s.Events))
	for i, e := range s.Events {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

// VimString returns a representation that ParseKeys reads back.
func (s *Sequence) VimString() string {
	var sb strings.Builder
	for _, e := range s.Events {
		sb.WriteString(e.VimString())
	}
	return sb.String()
}

// ParseKeys parses a continuous key script such as "fr<Tab>`a<A-e>".
// Every character outside angle brackets is one key, including spaces.
// A "<" that does not start a recognized <...> group is a literal key.
func ParseKeys(script string) (*Sequence, error) {
	seq := &Sequence{}
	err := ScanKeys(script, func(tok string, ev Event) error {
		seq.Add(ev)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seq, nil
}

// ScanKeys walks a key script and calls fn for each key token.
// tok is the raw token text; callers use it to recognize pseudo keys
// that Parse does not know.
func ScanKeys(script string, fn func(tok string, ev Event) error) error {
	for i := 0; i < len(script); {
		if script[i] == '<' {
			end := strings.IndexByte(script[i+1:], '>')
			if end > 0 {
				tok := script[i : i+end+2]
				ev, err := Parse(tok)
				if err == nil {
					if err := fn(tok, ev); err != nil {
						return err
					}
					i += end + 2
					continue
				}
				if !isPseudoKey(tok) {
					return fmt.Errorf("%w at offset %d: %v", ErrInvalidSpec, i, err)
				}
				if err := fn(tok, Event{}); err != nil {
					return err
				}
				i += end + 2
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(script[i:])
		if r == utf8.RuneError && size == 1 {
			return fmt.Errorf("%w: invalid UTF-8 at offset %d", ErrInvalidSpec, i)
		}
		ev := NewRuneEvent(r, ModNone)
		switch r {
		case '\n':
			ev = NewSpecialEvent(KeyEnter, ModNone)
		case '\t':
			ev = NewSpecialEvent(KeyTab, ModNone)
		}
		if err := fn(script[i:i+size], ev); err != nil {
			return err
		}
		i += size
	}
	return nil
}

// PseudoKeys lists <...> tokens that scripts may use but that are not
// keyboard keys. Readers give them meaning.
var PseudoKeys = []string{"<Idle>"}

func isPseudoKey(tok string) bool {
	for _, p := range PseudoKeys {
		if strings.EqualFold(p, tok) {
			return true
		}
	}
	return false
}
