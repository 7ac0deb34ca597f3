package modify

import (
	"context"
	"errors"
	"testing"

	"github.com/dshills/texpand/internal/engine"
	"github.com/dshills/texpand/internal/input"
	"github.com/dshills/texpand/internal/input/key"
	"github.com/dshills/texpand/internal/prefix"
	"github.com/dshills/texpand/internal/table"
	"github.com/dshills/texpand/internal/texmath"
)

func pointed(doc *engine.Document) string {
	text := doc.Text()
	p := int(doc.Point())
	return text[:p] + "|" + text[p:]
}

var quote = key.NewRuneEvent('\'', key.ModNone)

func newEngine(t *testing.T, script string) *Engine {
	t.Helper()
	keys, err := input.NewScriptReader(script)
	if err != nil {
		t.Fatal(err)
	}
	tables := table.Compile(table.Overrides{})
	return New(tables, prefix.NewReader(keys), texmath.New(), quote)
}

func TestRun(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		script string
		count  int
		want   string
	}{
		{"tilde after a", "$a|$", "~", 0, "$\\tilde{a}|$"},
		{"bold after space in text", "Some |", "b", 0, "Some \\textbf{|}"},
		{"bold word in text", "a word|", "b", 0, "a \\textbf{word}|"},
		{"bold in math", "$x|$", "b", 0, "$\\mathbf{x}|$"},
		{"empty after dollar", "$|$", "~", 0, "$\\tilde{|}$"},
		{"empty after brace", "$\\frac{|}$", "-", 0, "$\\frac{\\bar{|}}$"},
		{"empty at start", "|", "b", 0, "\\textbf{|}"},
		{"dotless i", "$i|$", ".", 0, "$\\dot{\\imath}|$"},
		{"dotless j", "$j|$", "^", 0, "$\\hat{\\jmath}|$"},
		{"no dotless for overline", "$i|$", "T", 0, "$\\overline{i}|$"},
		{"macro token", "$x\\alpha|$", "~", 0, "$x\\tilde{\\alpha}|$"},
		{"braced group reused", "$x{ab}|$", ">", 0, "$x\\vec{ab}|$"},
		{"paren group kept", "$(a+b)|$", "-", 0, "$\\bar{(a+b)}|$"},
		{"single char", "$a+|$", "~", 0, "$a\\tilde{+}|$"},
		{"word run", "$xy|$", "~", 0, "$\\tilde{xy}|$"},
		{"count words", "one two three|", "b", 2, "one \\textbf{two three}|"},
		{"style in math", "$x|$", "1", 0, "${\\displaystyle x}|$"},
		{"style empty in math", "$|$", "0", 0, "${\\textstyle |}$"},
		{"italic correction", "very |", "I", 0, "very {\\itshape |\\/}"},
		{"prefix again self-inserts", "don|", "'", 0, "don'|"},
		{"unknown key literal", "$x|$", "#", 0, "$x'#|$"},
		{"idle then key", "$a|$", "<Idle>~", 0, "$\\tilde{a}|$"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := engine.NewDocumentAt(tt.in, -1)
			if err := newEngine(t, tt.script).Run(context.Background(), doc, tt.count); err != nil {
				t.Fatalf("Run error: %v", err)
			}
			if got := pointed(doc); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunRegion(t *testing.T) {
	doc := engine.NewDocument("say hello world")
	doc.Select(4, 9)
	if err := newEngine(t, "e").Run(context.Background(), doc, 0); err != nil {
		t.Fatal(err)
	}
	if got := pointed(doc); got != "say \\emph{hello}| world" {
		t.Errorf("got %q", got)
	}
	if _, ok := doc.Region(); ok {
		t.Error("region still active")
	}
}

func TestRunModeError(t *testing.T) {
	doc := engine.NewDocumentAt("text|", -1)
	err := newEngine(t, "~").Run(context.Background(), doc, 0)
	var me *ModeError
	if !errors.As(err, &me) {
		t.Fatalf("err = %v, want ModeError", err)
	}
	if me.Key != '~' || me.Mode != "text" {
		t.Errorf("ModeError = %+v", me)
	}
	if !engine.IsUserError(err) {
		t.Error("ModeError should be a user error")
	}
	if pointed(doc) != "text|" {
		t.Errorf("document changed: %q", pointed(doc))
	}
}

func TestRunCancel(t *testing.T) {
	doc := engine.NewDocumentAt("$a|$", -1)
	err := newEngine(t, "<C-g>").Run(context.Background(), doc, 0)
	if !errors.Is(err, engine.ErrCanceled) {
		t.Fatalf("err = %v", err)
	}
	if pointed(doc) != "$a|$" {
		t.Errorf("document changed: %q", pointed(doc))
	}
}

func TestResolveExtentKinds(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
		unit string
	}{
		{"a |", KindEmpty, ""},
		{"a{b}|", KindGroup, "b"},
		{"a[b]|", KindGroup, "[b]"},
		{"\\beta|", KindMacro, "\\beta"},
		{"\\\\beta|", KindWord, "beta"},
		{"x12|", KindWord, "x12"},
		{"a+|", KindChar, "+"},
		{"a\\}|", KindChar, "}"},
	}
	for _, tt := range tests {
		ext, kind := ResolveExtent(engine.NewDocumentAt(tt.in, -1), 0)
		if kind != tt.kind || ext.Unit != tt.unit {
			t.Errorf("%q: got %s %q, want %s %q", tt.in, kind, ext.Unit, tt.kind, tt.unit)
		}
	}
}

func TestWrap(t *testing.T) {
	cmd := table.Modifier{Command: true}
	style := table.Modifier{ItalicCorrection: true}
	if got := Wrap(cmd, "\\hat", "x", true); got != "\\hat{x}" {
		t.Errorf("command wrap = %q", got)
	}
	if got := Wrap(style, "\\itshape", "x", false); got != "{\\itshape x\\/}" {
		t.Errorf("style wrap = %q", got)
	}
	if got := Wrap(style, "\\itshape", "x", true); got != "{\\itshape x}" {
		t.Errorf("style wrap in math = %q", got)
	}
	if got := Wrap(table.Modifier{}, "\\,", "x", true); got != "{\\,x}" {
		t.Errorf("non-letter style = %q", got)
	}
}
