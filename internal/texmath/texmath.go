// Package texmath decides whether a position in a LaTeX document is in
// math mode. It implements engine.MathDetector.
//
// The detector scans from the start of the buffer to the point. It knows
// the inline and display delimiters, the math environments and the macros
// that switch back to text inside math. Comments and escaped dollars are
// skipped.
package texmath

import (
	"strings"

	"github.com/dshills/texpand/internal/engine"
)

// DefaultMathEnvironments are environments whose body is math.
var DefaultMathEnvironments = []string{
	"equation", "equation*", "align", "align*", "alignat", "alignat*",
	"xalignat", "xxalignat", "flalign", "flalign*", "gather", "gather*",
	"multline", "multline*", "eqnarray", "eqnarray*", "displaymath", "math",
}

// DefaultTextMacros are macros whose braced argument is text, even in math.
var DefaultTextMacros = []string{
	"text", "mbox", "hbox", "textrm", "textit", "textbf", "textsf",
	"texttt", "textsl", "textup", "textnormal", "intertext", "label",
}

// Detector is a scanning math-mode detector.
type Detector struct {
	mathEnvs   map[string]bool
	textMacros map[string]bool
}

// New creates a detector. Extra environments are added to the defaults.
func New(extraEnvs ...string) *Detector {
	d := &Detector{
		mathEnvs:   make(map[string]bool),
		textMacros: make(map[string]bool),
	}
	for _, e := range append(append([]string(nil), DefaultMathEnvironments...), extraEnvs...) {
		d.mathEnvs[e] = true
	}
	for _, m := range DefaultTextMacros {
		d.textMacros[m] = true
	}
	return d
}

// InMath reports whether the point is in math mode.
func (d *Detector) InMath(doc *engine.Document) bool {
	_, ok := d.OpenDelimiter(doc)
	return ok
}

// OpenDelimiter returns the innermost open math construct before the
// point. It reports false in text mode, including inside \text{...}.
func (d *Detector) OpenDelimiter(doc *engine.Document) (engine.Delimiter, bool) {
	st := d.Scan(doc.TextRange(0, doc.Point()))
	top, ok := st.top()
	if !ok || top.text {
		return engine.Delimiter{}, false
	}
	return engine.Delimiter{Marker: top.marker, Pos: engine.ByteOffset(top.pos)}, true
}

type frame struct {
	marker string
	pos    int
	// text frames are \text{...} groups inside math
	text  bool
	depth int
}

// State is the result of scanning a prefix of a document.
type State struct {
	stack []frame
	depth int
}

func (s *State) top() (frame, bool) {
	if len(s.stack) == 0 {
		return frame{}, false
	}
	return s.stack[len(s.stack)-1], true
}

// InMath reports whether the end of the scanned text is in math mode.
func (s *State) InMath() bool {
	f, ok := s.top()
	return ok && !f.text
}

func (s *State) push(f frame) { s.stack = append(s.stack, f) }

func (s *State) pop() { s.stack = s.stack[:len(s.stack)-1] }

// popTo removes frames down to and including the innermost frame with
// marker. It reports false, changing nothing, when there is none.
func (s *State) popTo(marker string) bool {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if s.stack[i].marker == marker && !s.stack[i].text {
			s.stack = s.stack[:i]
			return true
		}
	}
	return false
}

// Scan runs the detector over text.
func (d *Detector) Scan(text string) *State {
	st := &State{}
	for i := 0; i < len(text); {
		c := text[i]
		switch c {
		case '%':
			nl := strings.IndexByte(text[i:], '\n')
			if nl < 0 {
				return st
			}
			i += nl + 1
		case '\\':
			i = d.scanEscape(st, text, i)
		case '$':
			marker := "$"
			if i+1 < len(text) && text[i+1] == '$' {
				marker = "$$"
			}
			// $a$$b$ is two inline maths: inside $ the first $ closes.
			if top, ok := st.top(); ok && !top.text && top.marker == "$" {
				marker = "$"
			}
			if top, ok := st.top(); ok && !top.text && top.marker == marker {
				st.pop()
			} else if !st.InMath() {
				st.push(frame{marker: marker, pos: i})
			}
			i += len(marker)
		case '{':
			st.depth++
			i++
		case '}':
			if top, ok := st.top(); ok && top.text && top.depth == st.depth {
				st.pop()
			}
			if st.depth > 0 {
				st.depth--
			}
			i++
		default:
			i++
		}
	}
	return st
}

// scanEscape handles a backslash at text[i] and returns the next index.
func (d *Detector) scanEscape(st *State, text string, i int) int {
	if i+1 >= len(text) {
		return i + 1
	}
	switch text[i+1] {
	case '(', '[':
		if !st.InMath() {
			st.push(frame{marker: text[i : i+2], pos: i})
		}
		return i + 2
	case ')':
		st.popTo("\\(")
		return i + 2
	case ']':
		st.popTo("\\[")
		return i + 2
	}

	j := i + 1
	for j < len(text) && isLetter(text[j]) {
		j++
	}
	if j == i+1 {
		// control symbol such as \$ or \\
		return i + 2
	}
	name := text[i+1 : j]

	switch {
	case name == "begin" || name == "end":
		env, next, ok := braced(text, j)
		if !ok {
			return j
		}
		if d.mathEnvs[env] {
			if name == "begin" {
				st.push(frame{marker: env, pos: i})
			} else {
				st.popTo(env)
			}
		}
		return next
	case d.textMacros[name] && st.InMath():
		k := j
		for k < len(text) && (text[k] == ' ' || text[k] == '\t') {
			k++
		}
		if k < len(text) && text[k] == '{' {
			st.depth++
			st.push(frame{marker: name, pos: i, text: true, depth: st.depth})
			return k + 1
		}
		return j
	}
	return j
}

// braced reads "{name}" at text[i] and returns name and the index after it.
func braced(text string, i int) (string, int, bool) {
	if i >= len(text) || text[i] != '{' {
		return "", i, false
	}
	end := strings.IndexByte(text[i:], '}')
	if end < 0 {
		return "", i, false
	}
	return text[i+1 : i+end], i + end + 1, true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '@'
}
