package expand

import (
	"context"
	"errors"
	"testing"

	"github.com/dshills/texpand/internal/engine"
	"github.com/dshills/texpand/internal/table"
	"github.com/dshills/texpand/internal/texmath"
)

type call struct {
	name string
	arg  string
}

type fakeBuiltins struct {
	calls []call
}

func (b *fakeBuiltins) Environment(ctx context.Context, doc *engine.Document, name string) error {
	b.calls = append(b.calls, call{"environment", name})
	return nil
}

func (b *fakeBuiltins) Item(ctx context.Context, doc *engine.Document) error {
	b.calls = append(b.calls, call{"item", ""})
	return nil
}

func (b *fakeBuiltins) Label(ctx context.Context, doc *engine.Document) error {
	b.calls = append(b.calls, call{"label", ""})
	return nil
}

func (b *fakeBuiltins) LRPair(ctx context.Context, doc *engine.Document) error {
	b.calls = append(b.calls, call{"lr-pair", doc.TextBefore(1)})
	return nil
}

func (b *fakeBuiltins) File(ctx context.Context, doc *engine.Document) error {
	b.calls = append(b.calls, call{"file", ""})
	doc.Insert("pic.png")
	return nil
}

func (b *fakeBuiltins) Lua(ctx context.Context, doc *engine.Document, fn string, args []string) error {
	b.calls = append(b.calls, call{"lua", fn})
	return nil
}

func pointed(doc *engine.Document) string {
	text := doc.Text()
	p := int(doc.Point())
	return text[:p] + "|" + text[p:]
}

func newDispatcher(b Builtins, opts ...Option) *Dispatcher {
	return New(table.Compile(table.Overrides{}), texmath.New(), b, opts...)
}

func TestTrigger(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		want     string
		step     Step
		simplify bool
	}{
		{"fraction in math", "$fr|", "$\\frac{|}{}", StepKeyword, true},
		{"fraction before closing dollar", "$fr$|", "$\\frac{|}{}$", StepKeyword, true},
		{"fraction not in text", "fr|", "fr|", StepAdvance, true},
		{"section in text", "sn|", "\\section{|}", StepKeyword, true},
		{"macro name is not a keyword", "$\\sum| x", "$\\sum |x", StepAdvance, true},
		{"simplify superscript", "$x^{2|}$", "$x^2|$", StepBracket, true},
		{"keep two character superscript", "$x^{23|}$", "$x^{23}|$", StepBracket, true},
		{"simplify off", "$x^{2|}$", "$x^{2}|$", StepBracket, false},
		{"continue to superscript", "$x_{i|}^{2}$", "$x_i^{2}|$", StepAdvance, true},
		{"next argument", "$\\frac{a|}{b}$", "$\\frac{a}{b}|$", StepAdvance, true},
		{"empty argument", "$\\frac{|}{}$", "$\\frac{}{|}$", StepAdvance, true},
		{"quad anywhere", "a qq|", "a \\quad|", StepKeyword, true},
		{"include graphics", "inc|", "\\includegraphics[]{pic.png|}", StepKeyword, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDispatcher(&fakeBuiltins{}, WithSimplify(tt.simplify))
			doc := engine.NewDocumentAt(tt.in, -1)
			step, err := d.Trigger(context.Background(), doc)
			if err != nil {
				t.Fatalf("Trigger error: %v", err)
			}
			if step != tt.step {
				t.Errorf("step = %s, want %s", step, tt.step)
			}
			if got := pointed(doc); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTriggerActions(t *testing.T) {
	tests := []struct {
		in   string
		text string
		want call
	}{
		{"Some text ite|", "Some text ", call{"environment", "itemize"}},
		{"beg|", "", call{"environment", ""}},
		{"\\begin{itemize}\nit|", "\\begin{itemize}\n", call{"item", ""}},
		{"lbl|", "", call{"label", ""}},
		{"$a lr(|", "$a (", call{"lr-pair", "("}},
	}
	for _, tt := range tests {
		b := &fakeBuiltins{}
		doc := engine.NewDocumentAt(tt.in, -1)
		if _, err := newDispatcher(b).Trigger(context.Background(), doc); err != nil {
			t.Fatalf("%q: %v", tt.in, err)
		}
		if len(b.calls) != 1 || b.calls[0] != tt.want {
			t.Errorf("%q: calls = %v, want %v", tt.in, b.calls, tt.want)
		}
		if doc.Text() != tt.text {
			t.Errorf("%q: text = %q, want %q", tt.in, doc.Text(), tt.text)
		}
	}
}

func TestTriggerLuaAction(t *testing.T) {
	tables := table.Compile(table.Overrides{
		Commands: []table.Command{{
			Keyword: "hi", Action: table.Param(table.OpLua, "greet", "x"), Text: true,
		}},
	})
	b := &fakeBuiltins{}
	d := New(tables, texmath.New(), b)
	if _, err := d.Trigger(context.Background(), engine.NewDocument("hi")); err != nil {
		t.Fatal(err)
	}
	if len(b.calls) != 1 || b.calls[0] != (call{"lua", "greet"}) {
		t.Errorf("calls = %v", b.calls)
	}
}

func TestTriggerHooks(t *testing.T) {
	var order []string
	mk := func(name string, handled bool) Hook {
		return HookFunc(func(ctx context.Context, doc *engine.Document) (bool, error) {
			order = append(order, name)
			return handled, nil
		})
	}
	d := newDispatcher(&fakeBuiltins{}, WithHooks(mk("a", false), mk("b", true), mk("c", true)))
	doc := engine.NewDocumentAt("$fr|", -1)
	step, err := d.Trigger(context.Background(), doc)
	if err != nil || step != StepHook {
		t.Fatalf("step = %s, err = %v", step, err)
	}
	if len(order) != 2 || order[1] != "b" {
		t.Errorf("hooks ran %v", order)
	}
	if doc.Text() != "$fr" {
		t.Errorf("document changed: %q", doc.Text())
	}

	boom := errors.New("boom")
	d = newDispatcher(&fakeBuiltins{})
	d.AddHook(HookFunc(func(ctx context.Context, doc *engine.Document) (bool, error) { return false, boom }))
	if _, err := d.Trigger(context.Background(), doc); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestKeyword(t *testing.T) {
	tests := []struct {
		in   string
		word string
		ok   bool
	}{
		{"a fr|", "fr", true},
		{"ali*|", "ali*", true},
		{"lr(|", "lr(", true},
		{"fr$$|", "fr", true},
		{"\\alpha|", "", false},
		{"a (|", "", false},
		{"|", "", false},
	}
	for _, tt := range tests {
		_, word, ok := Keyword(engine.NewDocumentAt(tt.in, -1))
		if word != tt.word || ok != tt.ok {
			t.Errorf("Keyword(%q) = %q, %v", tt.in, word, ok)
		}
	}
}
