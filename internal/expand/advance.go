package expand

import (
	"strings"
	"unicode/utf8"
)

// Class is the category of a character for the cursor advance scanner.
type Class int

const (
	ClassOther Class = iota
	ClassOpen
	ClassClose
	ClassSpace
	ClassNewline
	ClassDollar
	ClassEOF
)

var classNames = [...]string{"other", "open", "close", "space", "newline", "dollar", "eof"}

// String returns the class name.
func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// Classify returns the class of the byte at pos.
func Classify(text string, pos int) Class {
	if pos < 0 || pos >= len(text) {
		return ClassEOF
	}
	switch text[pos] {
	case '(', '[', '{':
		return ClassOpen
	case ')', ']', '}':
		return ClassClose
	case ' ':
		return ClassSpace
	case '\n':
		return ClassNewline
	case '$':
		return ClassDollar
	}
	return ClassOther
}

// Outcome is the result of applying a rule.
type Outcome int

const (
	// Pass means the rule does not apply; the next rule is tried.
	Pass Outcome = iota
	// Stop ends the scan at the returned position.
	Stop
	// Continue resumes the scan from the returned position.
	Continue
)

// Rule is one cursor advance rule. It applies at a position whose
// character has the rule's class.
type Rule struct {
	Name  string
	Class Class
	Apply func(text string, pos int) (Outcome, int)
}

// PreludeRules run once at the starting position. The first rule whose
// class matches and which does not pass decides.
var PreludeRules = []Rule{
	{Name: "dollar run", Class: ClassDollar, Apply: skipDollars},
	{Name: "spaces", Class: ClassSpace, Apply: skipSpaces},
	{Name: "after close", Class: ClassClose, Apply: afterClose},
	{Name: "step", Class: ClassOther, Apply: step},
	{Name: "step open", Class: ClassOpen, Apply: step},
	{Name: "step newline", Class: ClassNewline, Apply: step},
}

// LoopRules run at each candidate stopping position after the prelude.
var LoopRules = []Rule{
	{Name: "before close after bracket or hyphen", Class: ClassClose, Apply: stopBeforeClose},
	{Name: "after close", Class: ClassClose, Apply: afterClose},
	{Name: "dollar run", Class: ClassDollar, Apply: skipDollars},
	{Name: "blank line", Class: ClassNewline, Apply: blankLine},
	{Name: "continued line", Class: ClassNewline, Apply: continuedLine},
	{Name: "line end", Class: ClassNewline, Apply: stopHere},
	{Name: "space at line start", Class: ClassSpace, Apply: spaceAtLineStart},
	{Name: "first space", Class: ClassSpace, Apply: firstSpace},
}

// candidates are the classes the loop stops to examine.
var candidates = map[Class]bool{
	ClassClose:   true,
	ClassDollar:  true,
	ClassNewline: true,
	ClassSpace:   true,
}

// Advance returns the position the trigger key moves the point to when
// nothing else applies.
func Advance(text string, pos int) int {
	out, next := apply(PreludeRules, text, pos)
	if out == Stop {
		return next
	}
	return AdvanceLoop(text, next)
}

// AdvanceLoop scans from pos using LoopRules only.
func AdvanceLoop(text string, pos int) int {
	for pos < len(text) {
		at := nextCandidate(text, pos)
		if at < 0 {
			return pos
		}
		out, next := apply(LoopRules, text, at)
		switch out {
		case Stop:
			return next
		case Continue:
			pos = next
		default:
			pos = at + 1
		}
	}
	return pos
}

func apply(rules []Rule, text string, pos int) (Outcome, int) {
	c := Classify(text, pos)
	for _, r := range rules {
		if r.Class != c {
			continue
		}
		if out, next := r.Apply(text, pos); out != Pass {
			return out, next
		}
	}
	return Stop, pos
}

func nextCandidate(text string, pos int) int {
	for i := pos; i < len(text); i++ {
		if candidates[Classify(text, i)] {
			return i
		}
	}
	return -1
}

// isScriptStart reports whether c may follow a closing bracket without
// ending the group, as in x_{a}^{b} or \frac{a}{b}.
func isScriptStart(text string, pos int) bool {
	return pos < len(text) && strings.IndexByte("_^({[", text[pos]) >= 0
}

func atLineStart(text string, pos int) bool {
	return pos == 0 || text[pos-1] == '\n'
}

func step(text string, pos int) (Outcome, int) {
	_, size := utf8.DecodeRuneInString(text[pos:])
	return Continue, pos + size
}

func stopHere(text string, pos int) (Outcome, int) {
	return Stop, pos
}

func skipDollars(text string, pos int) (Outcome, int) {
	for pos < len(text) && text[pos] == '$' {
		pos++
	}
	return Stop, pos
}

// skipSpaces steps over a run of spaces to the next character, or past
// the newline that ends the run.
func skipSpaces(text string, pos int) (Outcome, int) {
	pos++
	for pos < len(text) && text[pos] == ' ' {
		pos++
	}
	if pos < len(text) && text[pos] == '\n' {
		return Continue, pos + 1
	}
	return Continue, pos
}

func stopBeforeClose(text string, pos int) (Outcome, int) {
	if pos == 0 {
		return Pass, pos
	}
	switch Classify(text, pos-1) {
	case ClassOpen, ClassClose:
		return Stop, pos
	}
	if text[pos-1] == '-' {
		return Stop, pos
	}
	return Pass, pos
}

func afterClose(text string, pos int) (Outcome, int) {
	pos++
	if isScriptStart(text, pos) {
		return Continue, pos
	}
	return Stop, pos
}

func blankLine(text string, pos int) (Outcome, int) {
	if atLineStart(text, pos) {
		return Stop, pos
	}
	return Pass, pos
}

func continuedLine(text string, pos int) (Outcome, int) {
	if pos >= 2 && text[pos-2:pos] == `\\` {
		return Continue, pos + 1
	}
	return Pass, pos
}

func spaceAtLineStart(text string, pos int) (Outcome, int) {
	if atLineStart(text, pos) {
		return Stop, pos
	}
	return Pass, pos
}

func firstSpace(text string, pos int) (Outcome, int) {
	return Stop, pos + 1
}
