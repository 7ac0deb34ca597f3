package expand

import (
	"context"
	"fmt"
	"regexp"

	"github.com/dshills/texpand/internal/engine"
	"github.com/dshills/texpand/internal/table"
)

// Builtins are the operations a command action can run.
type Builtins interface {
	Environment(ctx context.Context, doc *engine.Document, name string) error
	Item(ctx context.Context, doc *engine.Document) error
	Label(ctx context.Context, doc *engine.Document) error
	LRPair(ctx context.Context, doc *engine.Document) error
	File(ctx context.Context, doc *engine.Document) error
	Lua(ctx context.Context, doc *engine.Document, fn string, args []string) error
}

// Hook runs before keyword expansion. Returning true ends the pipeline.
type Hook interface {
	RunTriggerHook(ctx context.Context, doc *engine.Document) (bool, error)
}

// HookFunc adapts a function to Hook.
type HookFunc func(ctx context.Context, doc *engine.Document) (bool, error)

// RunTriggerHook implements Hook.
func (f HookFunc) RunTriggerHook(ctx context.Context, doc *engine.Document) (bool, error) {
	return f(ctx, doc)
}

// Step reports which pipeline step handled a trigger press.
type Step int

const (
	StepHook Step = iota
	StepKeyword
	StepBracket
	StepAdvance
)

var stepNames = [...]string{"hook", "keyword", "bracket", "advance"}

// String returns the step name.
func (s Step) String() string {
	if int(s) < len(stepNames) {
		return stepNames[s]
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Dispatcher runs the trigger key pipeline.
type Dispatcher struct {
	tables   *table.Merged
	math     engine.MathDetector
	builtins Builtins
	hooks    []Hook
	simplify bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHooks appends trigger hooks.
func WithHooks(hooks ...Hook) Option {
	return func(d *Dispatcher) { d.hooks = append(d.hooks, hooks...) }
}

// WithSimplify enables rewriting x^{2} as x^2.
func WithSimplify(on bool) Option {
	return func(d *Dispatcher) { d.simplify = on }
}

// New creates a Dispatcher. Simplification is on by default.
func New(tables *table.Merged, math engine.MathDetector, builtins Builtins, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		tables:   tables,
		math:     math,
		builtins: builtins,
		simplify: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AddHook appends a trigger hook.
func (d *Dispatcher) AddHook(h Hook) {
	d.hooks = append(d.hooks, h)
}

// Trigger handles one press of the trigger key.
func (d *Dispatcher) Trigger(ctx context.Context, doc *engine.Document) (Step, error) {
	for _, h := range d.hooks {
		handled, err := h.RunTriggerHook(ctx, doc)
		if err != nil {
			return StepHook, err
		}
		if handled {
			return StepHook, nil
		}
	}

	if ok, err := d.expandKeyword(ctx, doc); ok || err != nil {
		return StepKeyword, err
	}

	if Classify(doc.Text(), int(doc.Point())) == ClassClose {
		if d.closeBracket(doc) {
			return StepBracket, nil
		}
		doc.SetPoint(engine.ByteOffset(AdvanceLoop(doc.Text(), int(doc.Point()))))
		return StepAdvance, nil
	}

	doc.SetPoint(engine.ByteOffset(Advance(doc.Text(), int(doc.Point()))))
	return StepAdvance, nil
}

func (d *Dispatcher) expandKeyword(ctx context.Context, doc *engine.Document) (bool, error) {
	r, word, ok := Keyword(doc)
	if !ok {
		return false, nil
	}
	c, ok := d.tables.Command(word)
	if !ok {
		return false, nil
	}

	point := doc.Point()
	doc.SetPoint(r.End)
	if !c.ActiveIn(d.math.InMath(doc)) {
		doc.SetPoint(point)
		return false, nil
	}

	nr := doc.Replace(r.Start, r.End, c.Replacement)
	doc.SetPoint(nr.End)
	return true, d.dispatch(ctx, doc, c, nr)
}

// dispatch runs the command's action. r is the inserted replacement.
func (d *Dispatcher) dispatch(ctx context.Context, doc *engine.Document, c table.Command, r engine.Range) error {
	a := c.Action
	switch a.Op {
	case table.OpNone:
		return nil
	case table.OpPositionCursor:
		doc.ResolveCursor(r)
		return nil
	case table.OpEnvironment:
		return d.builtins.Environment(ctx, doc, a.Arg(0))
	case table.OpItem:
		return d.builtins.Item(ctx, doc)
	case table.OpLabel:
		return d.builtins.Label(ctx, doc)
	case table.OpLRPair:
		return d.builtins.LRPair(ctx, doc)
	case table.OpFile:
		doc.ResolveCursor(r)
		return d.builtins.File(ctx, doc)
	case table.OpLua:
		if len(a.Args) == 0 {
			return engine.Errorf(c.Keyword, "lua action without a function name")
		}
		return d.builtins.Lua(ctx, doc, a.Args[0], a.Args[1:])
	}
	return engine.Errorf(c.Keyword, "unsupported action %s", a)
}

var simpleScript = regexp.MustCompile(`^[_^]\{[-+0-9a-zA-Z]\}$`)

// closeBracket steps over the closing bracket at the point, first
// simplifying a braced single character script. It reports whether the
// pipeline stops here.
func (d *Dispatcher) closeBracket(doc *engine.Document) bool {
	p := doc.Point()
	if d.simplify && p >= 3 && simpleScript.MatchString(doc.TextRange(p-3, p+1)) {
		doc.Delete(p, p+1)
		doc.Delete(p-2, p-1)
		doc.SetPoint(p - 1)
	} else {
		doc.SetPoint(p + 1)
	}
	return !isScriptStart(doc.Text(), int(doc.Point()))
}
