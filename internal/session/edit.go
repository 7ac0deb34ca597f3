package session

import (
	"unicode/utf8"

	"github.com/dshills/texpand/internal/engine"
	"github.com/dshills/texpand/internal/input/key"
)

// edit returns the basic editing command for a special key, or nil.
func (s *Session) edit(k key.Key) command {
	doc := s.doc
	switch k {
	case key.KeyEnter:
		return s.simple(func() { doc.Insert("\n") })
	case key.KeyBackspace:
		return s.simple(func() {
			if r, ok := doc.CharBefore(); ok {
				p := doc.Point()
				doc.Delete(p-engine.RuneLen(r), p)
			}
		})
	case key.KeyDelete:
		return s.simple(func() {
			if r, ok := doc.CharAfter(); ok {
				p := doc.Point()
				doc.Delete(p, p+engine.RuneLen(r))
			}
		})
	case key.KeyLeft:
		return s.simple(func() {
			if r, ok := doc.CharBefore(); ok {
				doc.SetPoint(doc.Point() - engine.RuneLen(r))
			}
		})
	case key.KeyRight:
		return s.simple(func() {
			if r, ok := doc.CharAfter(); ok {
				doc.SetPoint(doc.Point() + engine.RuneLen(r))
			}
		})
	case key.KeyUp:
		return s.simple(func() { moveLine(doc, -1) })
	case key.KeyDown:
		return s.simple(func() { moveLine(doc, 1) })
	case key.KeyHome:
		return s.simple(func() { doc.SetPoint(doc.LineStart(doc.Point())) })
	case key.KeyEnd:
		return s.simple(func() { doc.SetPoint(doc.LineEnd(doc.Point())) })
	case key.KeyEscape:
		return s.simple(doc.Deactivate)
	}
	return nil
}

// moveLine moves the point dir lines keeping the rune column.
func moveLine(doc *engine.Document, dir int) {
	p := doc.Point()
	ls := doc.LineStart(p)
	col := utf8.RuneCountInString(doc.TextRange(ls, p))

	var target engine.ByteOffset
	if dir < 0 {
		if ls == 0 {
			return
		}
		target = doc.LineStart(ls - 1)
	} else {
		le := doc.LineEnd(p)
		if le >= doc.Len() {
			return
		}
		target = le + 1
	}

	end := doc.LineEnd(target)
	line := doc.TextRange(target, end)
	off := 0
	for i := 0; i < col && off < len(line); i++ {
		_, size := utf8.DecodeRuneInString(line[off:])
		off += size
	}
	doc.SetPoint(target + engine.ByteOffset(off))
}
