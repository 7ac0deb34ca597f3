package modify

import (
	"strings"
	"unicode"

	"github.com/dshills/texpand/internal/engine"
)

// Extent is the text a modifier applies to.
type Extent struct {
	engine.Range
	// Unit is the text wrapped, after stripping the braces of a group.
	Unit string
	// Empty means nothing is consumed and an empty form is inserted.
	Empty bool
}

// Kind names how an extent was chosen.
type Kind int

const (
	KindRegion Kind = iota
	KindWords
	KindEmpty
	KindGroup
	KindMacro
	KindWord
	KindChar
)

var kindNames = [...]string{"region", "words", "empty", "group", "macro", "word", "char"}

func (k Kind) String() string { return kindNames[k] }

// ResolveExtent selects the extent for a modifier at the point.
// count > 0 selects that many words.
func ResolveExtent(doc *engine.Document, count int) (Extent, Kind) {
	if r, ok := doc.Region(); ok {
		return Extent{Range: r, Unit: doc.TextRange(r.Start, r.End)}, KindRegion
	}

	p := doc.Point()
	if count > 0 {
		start := wordsBefore(doc, p, count)
		return Extent{Range: engine.Range{Start: start, End: p}, Unit: doc.TextRange(start, p)}, KindWords
	}

	before, ok := doc.CharBefore()
	if !ok || unicode.IsSpace(before) || before == '$' || strings.ContainsRune("([{", before) {
		return Extent{Range: engine.Range{Start: p, End: p}, Empty: true}, KindEmpty
	}

	if strings.ContainsRune(")]}", before) {
		if open, ok := matchingOpen(doc, p); ok {
			unit := doc.TextRange(open, p)
			if before == '}' {
				unit = unit[1 : len(unit)-1]
			}
			return Extent{Range: engine.Range{Start: open, End: p}, Unit: unit}, KindGroup
		}
	}

	if isAlnum(before) {
		start := p
		for {
			r, ok := doc.CharBeforeAt(start)
			if !ok || !isAlnum(r) {
				break
			}
			start -= engine.RuneLen(r)
		}
		if doc.EscapesBefore(start)%2 == 1 {
			// \name: only the macro, which ends at its letters
			end := start
			for {
				r, ok := doc.CharAt(end)
				if !ok || !unicode.IsLetter(r) || end >= p {
					break
				}
				end += engine.RuneLen(r)
			}
			start--
			return Extent{Range: engine.Range{Start: start, End: end}, Unit: doc.TextRange(start, end)}, KindMacro
		}
		return Extent{Range: engine.Range{Start: start, End: p}, Unit: doc.TextRange(start, p)}, KindWord
	}

	start := p - engine.RuneLen(before)
	return Extent{Range: engine.Range{Start: start, End: p}, Unit: string(before)}, KindChar
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordsBefore returns the start of the count words before p.
func wordsBefore(doc *engine.Document, p engine.ByteOffset, count int) engine.ByteOffset {
	pos := p
	for i := 0; i < count; i++ {
		for {
			r, ok := doc.CharBeforeAt(pos)
			if !ok || isAlnum(r) {
				break
			}
			pos -= engine.RuneLen(r)
		}
		for {
			r, ok := doc.CharBeforeAt(pos)
			if !ok || !isAlnum(r) {
				break
			}
			pos -= engine.RuneLen(r)
		}
	}
	return pos
}

var closerOf = map[byte]byte{'(': ')', '[': ']', '{': '}'}

// matchingOpen finds the bracket opening the group that closes at end.
// Escaped brackets are ignored.
func matchingOpen(doc *engine.Document, end engine.ByteOffset) (engine.ByteOffset, bool) {
	text := doc.TextRange(0, end)
	var stack []byte
	for i := len(text) - 1; i >= 0; i-- {
		c := text[i]
		if !strings.ContainsRune("()[]{}", rune(c)) || doc.EscapesBefore(engine.ByteOffset(i))%2 == 1 {
			continue
		}
		switch c {
		case ')', ']', '}':
			stack = append(stack, c)
		default:
			if len(stack) == 0 || stack[len(stack)-1] != closerOf[c] {
				return 0, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return engine.ByteOffset(i), true
			}
		}
	}
	return 0, false
}
