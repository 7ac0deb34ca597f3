package expand

import (
	"strings"
	"testing"
)

// split turns "ab|cd" into the text and the position of "|".
func split(t *testing.T, s string) (string, int) {
	t.Helper()
	i := strings.IndexByte(s, '|')
	if i < 0 {
		t.Fatalf("no point marker in %q", s)
	}
	return s[:i] + s[i+1:], i
}

func rule(t *testing.T, rules []Rule, name string) Rule {
	t.Helper()
	for _, r := range rules {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("no rule %q", name)
	return Rule{}
}

func TestLoopRules(t *testing.T) {
	tests := []struct {
		rule    string
		in      string
		outcome Outcome
		want    string
	}{
		{"before close after bracket or hyphen", "{|}", Stop, "{|}"},
		{"before close after bracket or hyphen", "a-|)", Stop, "a-|)"},
		{"before close after bracket or hyphen", "a|}", Pass, "a|}"},
		{"after close", "a|}b", Stop, "a}|b"},
		{"after close", "a|}^2", Continue, "a}|^2"},
		{"after close", "a|}{b}", Continue, "a}|{b}"},
		{"dollar run", "x|$$y", Stop, "x$$|y"},
		{"blank line", "a\n|\nb", Stop, "a\n|\nb"},
		{"blank line", "a|\nb", Pass, "a|\nb"},
		{"continued line", "a\\\\|\nb", Continue, "a\\\\\n|b"},
		{"continued line", "a|\nb", Pass, "a|\nb"},
		{"line end", "a|\nb", Stop, "a|\nb"},
		{"space at line start", "a\n| b", Stop, "a\n| b"},
		{"space at line start", "a| b", Pass, "a| b"},
		{"first space", "a|  b", Stop, "a | b"},
	}

	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			r := rule(t, LoopRules, tt.rule)
			text, pos := split(t, tt.in)
			if c := Classify(text, pos); c != r.Class {
				t.Fatalf("input class %s, rule class %s", c, r.Class)
			}
			out, next := r.Apply(text, pos)
			if out != tt.outcome {
				t.Errorf("outcome = %d, want %d", out, tt.outcome)
			}
			if out == Pass {
				return
			}
			_, want := split(t, tt.want)
			if next != want {
				t.Errorf("position = %d, want %d", next, want)
			}
		})
	}
}

func TestPreludeRules(t *testing.T) {
	tests := []struct {
		rule string
		in   string
		want string
	}{
		{"dollar run", "|$$x", "$$|x"},
		{"spaces", "a|   b", "a   |b"},
		{"spaces", "a|  \nb", "a  \n|b"},
		{"step", "|ab", "a|b"},
		{"step", "|éb", "é|b"},
		{"step open", "|{a}", "{|a}"},
		{"after close", "|}_2", "}|_2"},
	}
	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			r := rule(t, PreludeRules, tt.rule)
			text, pos := split(t, tt.in)
			_, next := r.Apply(text, pos)
			_, want := split(t, tt.want)
			if next != want {
				t.Errorf("%q: position = %d, want %d", tt.in, next, want)
			}
		})
	}
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a|bc def", "abc |def"},
		{"|$$x", "$$|x"},
		{"ab|\ncd", "ab\n|cd"},
		{"ab| cd", "ab |cd"},
		{"a|b\\\\\ncd\nef", "ab\\\\\ncd|\nef"},
		{"a|b\n\ncd", "ab|\n\ncd"},
		{"|\n\ncd", "\n|\ncd"},
		{"a|(b-)c", "a(b-|)c"},
		{"x|\n  y", "x\n|  y"},
		{"\\frac{a}|{b}", "\\frac{a}{b}|"},
		{"\\frac{}|{}", "\\frac{}{|}"},
		{"a|+b$ c", "a+b$| c"},
		{"abc|", "abc|"},
	}
	for _, tt := range tests {
		text, pos := split(t, tt.in)
		got := Advance(text, pos)
		if got := text[:got] + "|" + text[got:]; got != tt.want {
			t.Errorf("Advance(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	text := "a({)} \n$"
	want := []Class{ClassOther, ClassOpen, ClassOpen, ClassClose, ClassClose, ClassSpace, ClassNewline, ClassDollar, ClassEOF}
	for i, w := range want {
		if got := Classify(text, i); got != w {
			t.Errorf("Classify(%d) = %s, want %s", i, got, w)
		}
	}
}
