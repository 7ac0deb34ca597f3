package lua

import (
	"context"
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/texpand/internal/engine"
)

// LabelFunction is the global a script defines to generate labels.
const LabelFunction = "generate_label"

// Logger receives script output.
type Logger interface {
	Info(msg string, args ...any)
}

// Extension runs user scripts against the document being edited.
// Scripts register trigger hooks, may define generate_label, and provide
// the functions named by lua actions.
type Extension struct {
	state  *State
	math   engine.MathDetector
	logger Logger

	hooks []*lua.LFunction
	doc   *engine.Document
}

// Option configures an Extension.
type Option func(*Extension)

// WithLogger routes print and texpand.log to logger.
func WithLogger(logger Logger) Option {
	return func(e *Extension) { e.logger = logger }
}

// WithStateOptions passes options to the underlying State.
func WithStateOptions(opts ...StateOption) Option {
	return func(e *Extension) { e.state = NewState(opts...) }
}

// New creates an extension with an empty sandboxed state.
func New(math engine.MathDetector, opts ...Option) *Extension {
	e := &Extension{math: math}
	for _, opt := range opts {
		opt(e)
	}
	if e.state == nil {
		e.state = NewState()
	}
	if e.logger != nil {
		e.state.Sandbox().SetPrinter(func(line string) {
			e.logger.Info("lua: %s", line)
		})
	}
	e.state.RegisterModule(ModuleName, e.api())
	return e
}

// Load runs the given script files in order.
func (e *Extension) Load(ctx context.Context, paths ...string) error {
	for _, path := range paths {
		if err := e.state.DoFile(ctx, path); err != nil {
			return err
		}
	}
	return nil
}

// LoadString runs a chunk of Lua code.
func (e *Extension) LoadString(ctx context.Context, code string) error {
	return e.state.DoString(ctx, code)
}

// Attach binds the document the texpand module operates on.
func (e *Extension) Attach(doc *engine.Document) {
	e.doc = doc
}

// HookCount returns the number of registered trigger hooks.
func (e *Extension) HookCount() int {
	return len(e.hooks)
}

// RunTriggerHook runs the registered hooks in order until one returns a
// true value.
func (e *Extension) RunTriggerHook(ctx context.Context, doc *engine.Document) (bool, error) {
	if len(e.hooks) == 0 {
		return false, nil
	}
	e.Attach(doc)
	for i, fn := range e.hooks {
		results, err := e.state.Call(ctx, fn)
		if err != nil {
			return false, fmt.Errorf("trigger hook %d: %w", i+1, err)
		}
		if len(results) > 0 && lua.LVAsBool(results[0]) {
			return true, nil
		}
	}
	return false, nil
}

// LabelGenerator returns a generator backed by the script's
// generate_label function, if one is defined.
func (e *Extension) LabelGenerator() (engine.LabelGenerator, bool) {
	if e.state.GetGlobal(LabelFunction).Type() != lua.LTFunction {
		return nil, false
	}
	return engine.LabelFunc(e.generateLabel), true
}

func (e *Extension) generateLabel(env string) (string, error) {
	results, err := e.state.CallGlobal(context.Background(), LabelFunction, lua.LString(env))
	if err != nil {
		return "", err
	}
	if len(results) == 0 || results[0] == lua.LNil {
		return "", nil
	}
	s, ok := results[0].(lua.LString)
	if !ok {
		return "", &ScriptError{Name: LabelFunction, Err: fmt.Errorf("returned %s, want string", results[0].Type())}
	}
	return string(s), nil
}

// CallAction calls the global function fn with args. A string result is
// inserted at the point and its cursor marker resolved.
func (e *Extension) CallAction(ctx context.Context, doc *engine.Document, fn string, args []string) error {
	if fn == "" {
		return errors.New("lua action: missing function name")
	}
	e.Attach(doc)

	largs := make([]lua.LValue, len(args))
	for i, a := range args {
		largs[i] = lua.LString(a)
	}
	results, err := e.state.CallGlobal(ctx, fn, largs...)
	if err != nil {
		return err
	}
	if len(results) > 0 {
		if s, ok := results[0].(lua.LString); ok && s != "" {
			doc.ResolveCursor(doc.Insert(string(s)))
		}
	}
	return nil
}

// Close releases the Lua state.
func (e *Extension) Close() error {
	e.hooks = nil
	return e.state.Close()
}
