// Package pair inserts paired delimiters: brackets, math dollars,
// \left \right pairs and braced sub and superscripts.
package pair

import (
	"strings"

	"github.com/dshills/texpand/internal/engine"
)

// closers maps every delimiter that can open a pair to its closer.
var closers = map[rune]rune{
	'(': ')',
	'[': ']',
	'{': '}',
	'<': '>',
	'|': '|',
}

// DefaultPairs are the delimiters paired automatically.
const DefaultPairs = "([{"

// Closer returns the closer of an opening delimiter.
func Closer(open rune) (rune, bool) {
	c, ok := closers[open]
	return c, ok
}

// Inserter inserts delimiter pairs.
type Inserter struct {
	math  engine.MathDetector
	pairs map[rune]bool
	paren bool
}

// Option configures an Inserter.
type Option func(*Inserter)

// WithPairs sets the delimiters that are paired automatically.
// Characters without a closer are ignored.
func WithPairs(set string) Option {
	return func(in *Inserter) {
		in.pairs = make(map[rune]bool)
		for _, r := range set {
			if _, ok := closers[r]; ok {
				in.pairs[r] = true
			}
		}
	}
}

// WithParenMath makes Dollar insert \( \) instead of $ $.
func WithParenMath(on bool) Option {
	return func(in *Inserter) { in.paren = on }
}

// New creates an Inserter.
func New(math engine.MathDetector, opts ...Option) *Inserter {
	in := &Inserter{math: math}
	WithPairs(DefaultPairs)(in)
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Pairable reports whether r is paired automatically.
func (in *Inserter) Pairable(r rune) bool {
	return in.pairs[r]
}

func escaped(doc *engine.Document) bool {
	return doc.EscapesBefore(doc.Point())%2 == 1
}

// Open inserts r, followed by its closer when r is pairable and not
// escaped. The point ends between the two.
func (in *Inserter) Open(doc *engine.Document, r rune) {
	if !in.pairs[r] || escaped(doc) {
		doc.Insert(string(r))
		return
	}
	doc.Insert(string(r))
	p := doc.Point()
	doc.Insert(string(closers[r]))
	doc.SetPoint(p)
}

// Dollar handles the $ key.
//
// After an odd number of backslashes a literal $ is inserted. Inside math
// opened by $ or $$ the point steps over the closing dollars, or they are
// inserted when missing. Inside other math constructs dollars are
// refused. In text an empty math pair is inserted with the point inside.
func (in *Inserter) Dollar(doc *engine.Document) error {
	if escaped(doc) {
		doc.Insert("$")
		return nil
	}

	del, inMath := in.math.OpenDelimiter(doc)
	switch {
	case inMath && del.IsDollar():
		if strings.HasPrefix(doc.TextAfter(len(del.Marker)), del.Marker) {
			doc.SetPoint(doc.Point() + engine.ByteOffset(len(del.Marker)))
			return nil
		}
		doc.Insert(del.Marker)
		return nil
	case inMath:
		return engine.Errorf("dollar", "no dollars inside %s", del.Marker)
	}

	open, close := "$", "$"
	if in.paren {
		open, close = "\\(", "\\)"
	}
	doc.Insert(open)
	p := doc.Point()
	doc.Insert(close)
	doc.SetPoint(p)
	return nil
}

// EnsureMath enters math mode at the point unless it is already in math
// and not escaped.
func (in *Inserter) EnsureMath(doc *engine.Document) error {
	if in.math.InMath(doc) && !escaped(doc) {
		return nil
	}
	return in.Dollar(doc)
}

// leftRight holds the \left and \right forms of delimiters.
var leftRight = map[rune][2]string{
	'(': {"(", ")"},
	'[': {"[", "]"},
	'{': {"\\{", "\\}"},
	'<': {"\\langle", "\\rangle"},
	'|': {"|", "|"},
}

// LeftRight turns the delimiter before the point into a \left \right
// pair with the point inside. A closer directly after the point that was
// inserted with the delimiter is removed.
func (in *Inserter) LeftRight(doc *engine.Document) error {
	r, ok := doc.CharBefore()
	forms, known := leftRight[r]
	if !ok || !known {
		return engine.Errorf("lr-pair", "no opening delimiter before point")
	}
	p := doc.Point()
	start := p - engine.RuneLen(r)
	end := p
	if c, after := doc.CharAfter(); after && in.pairs[r] && c == closers[r] {
		end += engine.RuneLen(c)
	}
	doc.Delete(start, end)
	doc.SetPoint(start)

	nr := doc.Insert("\\left" + forms[0] + " " + engine.CursorMarker + " \\right" + forms[1])
	doc.ResolveCursor(nr)
	return nil
}

// Script inserts a sub or superscript. In math it inserts r{} with the
// point inside the braces; otherwise r alone.
func (in *Inserter) Script(doc *engine.Document, r rune) {
	if escaped(doc) || !in.math.InMath(doc) {
		doc.Insert(string(r))
		return
	}
	doc.Insert(string(r) + "{")
	p := doc.Point()
	doc.Insert("}")
	doc.SetPoint(p)
}
