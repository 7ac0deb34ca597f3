package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/dshills/texpand/internal/engine"
	"github.com/dshills/texpand/internal/expand"
	"github.com/dshills/texpand/internal/input"
	"github.com/dshills/texpand/internal/input/key"
	"github.com/dshills/texpand/internal/modify"
	"github.com/dshills/texpand/internal/pair"
	"github.com/dshills/texpand/internal/plugin/lua"
	"github.com/dshills/texpand/internal/prefix"
	"github.com/dshills/texpand/internal/symbol"
	"github.com/dshills/texpand/internal/table"
	"github.com/dshills/texpand/internal/template"
	"github.com/dshills/texpand/internal/texmath"
)

// Logger receives diagnostics from the session.
type Logger interface {
	Debug(msg string, args ...any)
	Error(msg string, args ...any)
}

// Session is the editing state of one document.
type Session struct {
	doc  *engine.Document
	keys input.KeyReader

	keymap    Keymap
	overrides table.Overrides
	mathEnvs  []string
	help      engine.HelpDisplay
	status    prefix.Status
	view      input.LineEditor
	labels    engine.LabelGenerator
	labelsOn  bool
	pairSet   string
	parenMath bool
	simplify  bool
	helpDelay time.Duration
	workDir   string
	hooks     []expand.Hook
	ext       *lua.Extension
	logger    Logger

	tables     *table.Merged
	math       engine.MathDetector
	prompter   *linePrompter
	dispatcher *expand.Dispatcher
	templates  *template.Inserter
	symbols    *symbol.Inserter
	modifier   *modify.Engine
	pairs      *pair.Inserter

	count int
}

// Option configures a Session.
type Option func(*Session)

// WithKeymap sets the key bindings.
func WithKeymap(k Keymap) Option {
	return func(s *Session) { s.keymap = k }
}

// WithOverrides sets the user tables merged over the defaults.
func WithOverrides(o table.Overrides) Option {
	return func(s *Session) { s.overrides = o }
}

// WithMathEnvironments adds environments the math detector treats as math.
func WithMathEnvironments(names ...string) Option {
	return func(s *Session) { s.mathEnvs = append(s.mathEnvs, names...) }
}

// WithHelp sets the display used for deferred help.
func WithHelp(h engine.HelpDisplay) Option {
	return func(s *Session) { s.help = h }
}

// WithStatus sets the status line.
func WithStatus(st prefix.Status) Option {
	return func(s *Session) { s.status = st }
}

// WithLineEditor sets the view of line prompts.
func WithLineEditor(v input.LineEditor) Option {
	return func(s *Session) { s.view = v }
}

// WithLabels replaces the default label generator.
func WithLabels(gen engine.LabelGenerator) Option {
	return func(s *Session) { s.labels = gen }
}

// WithAutoLabels enables or disables label generation.
func WithAutoLabels(on bool) Option {
	return func(s *Session) { s.labelsOn = on }
}

// WithPairs sets the opening delimiters that insert their closer.
func WithPairs(set string) Option {
	return func(s *Session) { s.pairSet = set }
}

// WithParenMath makes $ insert \( \) instead of a dollar pair.
func WithParenMath(on bool) Option {
	return func(s *Session) { s.parenMath = on }
}

// WithSimplify enables rewriting x^{2} as x^2 on the trigger key.
func WithSimplify(on bool) Option {
	return func(s *Session) { s.simplify = on }
}

// WithHelpDelay sets the idle time before prefix help appears.
func WithHelpDelay(d time.Duration) Option {
	return func(s *Session) { s.helpDelay = d }
}

// WithWorkDir sets the directory inserted file names are relative to.
func WithWorkDir(dir string) Option {
	return func(s *Session) { s.workDir = dir }
}

// WithHooks adds Go trigger hooks. They run before Lua hooks.
func WithHooks(hooks ...expand.Hook) Option {
	return func(s *Session) { s.hooks = append(s.hooks, hooks...) }
}

// WithExtension attaches a Lua extension.
func WithExtension(ext *lua.Extension) Option {
	return func(s *Session) { s.ext = ext }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New creates a session editing doc. keys feeds the prefix loops and
// prompts.
func New(doc *engine.Document, keys input.KeyReader, opts ...Option) *Session {
	s := &Session{
		doc:       doc,
		keys:      keys,
		keymap:    DefaultKeymap(),
		help:      engine.NopHelp{},
		labels:    UUIDLabels(),
		labelsOn:  true,
		pairSet:   pair.DefaultPairs,
		simplify:  true,
		helpDelay: prefix.DefaultDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.build()
	return s
}

// Reset recompiles the tables from o and rebuilds the commands.
func (s *Session) Reset(o table.Overrides) {
	s.overrides = o
	s.build()
}

// Reconfigure applies opts to a running session and rebuilds it. Options
// not given keep their current values.
func (s *Session) Reconfigure(opts ...Option) {
	for _, opt := range opts {
		opt(s)
	}
	s.Reset(s.overrides)
}

// SetExtension replaces the Lua extension. It takes effect at the next
// Reset.
func (s *Session) SetExtension(ext *lua.Extension) {
	s.ext = ext
}

func (s *Session) build() {
	tables := table.Compile(s.overrides)
	s.math = texmath.New(s.mathEnvs...)
	s.prompter = &linePrompter{keys: s.keys, view: s.view, workDir: s.workDir}

	labels := s.labels
	hooks := append([]expand.Hook(nil), s.hooks...)
	if s.ext != nil {
		s.ext.Attach(s.doc)
		if gen, ok := s.ext.LabelGenerator(); ok {
			labels = gen
		}
		hooks = append(hooks, s.ext)
	}
	if !s.labelsOn {
		labels = nil
	}

	readerOpts := []prefix.Option{prefix.WithHelp(s.help), prefix.WithDelay(s.helpDelay)}
	if s.status != nil {
		readerOpts = append(readerOpts, prefix.WithStatus(s.status))
	}
	reader := prefix.NewReader(s.keys, readerOpts...)

	s.pairs = pair.New(s.math, pair.WithPairs(s.pairSet), pair.WithParenMath(s.parenMath))
	s.templates = template.New(tables,
		template.WithLabels(labels),
		template.WithPathPrompter(s.prompter),
		template.WithPrompter(s.prompter),
		template.WithWorkDir(s.workDir),
	)
	s.symbols = symbol.New(tables, reader, s.pairs, s.keymap.SymbolPrefix, symbol.Hints(s.keymap.Direct))
	s.modifier = modify.New(tables, reader, s.math, s.keymap.ModifyPrefix)
	s.dispatcher = expand.New(tables, s.math, s,
		expand.WithHooks(hooks...),
		expand.WithSimplify(s.simplify),
	)
	s.tables = tables
}

// Document returns the document being edited.
func (s *Session) Document() *engine.Document { return s.doc }

// Tables returns the compiled tables.
func (s *Session) Tables() *table.Merged { return s.tables }

// InMath reports whether the point is in math mode.
func (s *Session) InMath() bool { return s.math.InMath(s.doc) }

// Count returns the pending repeat count.
func (s *Session) Count() int { return s.count }

// HandleKey routes one keystroke. Command failures are reported and rolled
// back; the returned error is non-nil only when input has ended or ctx is
// done.
func (s *Session) HandleKey(ctx context.Context, ev key.Event) error {
	if d, ok := s.countDigit(ev); ok {
		s.count = s.count*10 + d
		s.setStatus("Count: " + strconv.Itoa(s.count))
		return nil
	}
	count := s.count
	s.count = 0

	name, cmd := s.route(ev, count)
	if cmd == nil {
		return nil
	}

	snap := s.doc.Snapshot()
	err := cmd(ctx)
	if err == nil {
		return nil
	}
	s.doc.Restore(snap)

	switch {
	case errors.Is(err, input.ErrClosed), ctx.Err() != nil:
		return err
	case errors.Is(err, engine.ErrCanceled):
		s.setStatus("")
	case engine.IsUserError(err):
		s.setStatus(err.Error())
	default:
		s.setStatus(name + ": " + err.Error())
		if s.logger != nil {
			s.logger.Error("%s: %v", name, err)
		}
	}
	return nil
}

// Run reads keys until input ends or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	for {
		ev, err := s.keys.ReadKey(ctx, input.NoTimeout)
		if err != nil {
			if errors.Is(err, input.ErrClosed) {
				return nil
			}
			return err
		}
		if err := s.HandleKey(ctx, ev); err != nil {
			if errors.Is(err, input.ErrClosed) {
				return nil
			}
			return err
		}
	}
}

type command func(ctx context.Context) error

// route picks the handler for ev. Direct symbol bindings match their
// modifiers exactly and are tried before the command keys.
func (s *Session) route(ev key.Event, count int) (string, command) {
	km := s.keymap
	if level := km.directLevel(ev); level > 0 {
		return "symbol", func(context.Context) error {
			_, err := s.symbols.InsertDirect(s.doc, ev.Rune, level)
			return err
		}
	}

	bindings := []struct {
		key  key.Event
		name string
		cmd  command
	}{
		{km.Mark, "mark", s.simple(s.doc.SetMark)},
		{km.Trigger, "expand", s.trigger},
		{km.SymbolPrefix, "symbol", func(ctx context.Context) error { return s.symbols.Run(ctx, s.doc) }},
		{km.ModifyPrefix, "modify", func(ctx context.Context) error { return s.modifier.Run(ctx, s.doc, count) }},
		{km.Environment, "environment", func(ctx context.Context) error { return s.Environment(ctx, s.doc, "") }},
		{km.Item, "item", func(ctx context.Context) error { return s.Item(ctx, s.doc) }},
		{km.LRPair, "lr-pair", func(ctx context.Context) error { return s.LRPair(ctx, s.doc) }},
		{km.File, "file", func(ctx context.Context) error { return s.File(ctx, s.doc) }},
		{km.Label, "label", func(ctx context.Context) error { return s.Label(ctx, s.doc) }},
	}
	for _, b := range bindings {
		if b.key.Key != key.KeyNone && ev.Equals(b.key) {
			return b.name, b.cmd
		}
	}

	if ev.IsChar() {
		return "insert", s.insertChar(ev.Rune)
	}
	if ev.IsModified() {
		return "", nil
	}
	return "edit", s.edit(ev.Key)
}

func (s *Session) trigger(ctx context.Context) error {
	step, err := s.dispatcher.Trigger(ctx, s.doc)
	if err == nil && s.logger != nil {
		s.logger.Debug("trigger handled by %s", step)
	}
	return err
}

func (s *Session) insertChar(r rune) command {
	switch {
	case r == '$':
		return func(context.Context) error { return s.pairs.Dollar(s.doc) }
	case r == '_' || r == '^':
		return s.simple(func() { s.pairs.Script(s.doc, r) })
	case s.pairs.Pairable(r):
		return s.simple(func() { s.pairs.Open(s.doc, r) })
	}
	return s.simple(func() { s.doc.Insert(string(r)) })
}

func (s *Session) simple(fn func()) command {
	return func(context.Context) error {
		fn()
		return nil
	}
}

// countDigit reports whether ev is an Alt+digit repeat count key.
func (s *Session) countDigit(ev key.Event) (int, bool) {
	if !ev.IsRune() || ev.Modifiers != key.ModAlt {
		return 0, false
	}
	return ev.Digit()
}

func (s *Session) setStatus(msg string) {
	if s.status != nil {
		s.status.SetStatus(msg)
	}
}

// Environment implements expand.Builtins.
func (s *Session) Environment(ctx context.Context, doc *engine.Document, name string) error {
	return s.templates.Insert(ctx, doc, name, template.Body)
}

// Item implements expand.Builtins.
func (s *Session) Item(ctx context.Context, doc *engine.Document) error {
	return s.templates.InsertItem(ctx, doc)
}

// Label implements expand.Builtins.
func (s *Session) Label(_ context.Context, doc *engine.Document) error {
	return s.templates.InsertLabel(doc)
}

// LRPair implements expand.Builtins.
func (s *Session) LRPair(_ context.Context, doc *engine.Document) error {
	return s.pairs.LeftRight(doc)
}

// File implements expand.Builtins.
func (s *Session) File(ctx context.Context, doc *engine.Document) error {
	return s.templates.InsertFile(ctx, doc, false)
}

// Lua implements expand.Builtins.
func (s *Session) Lua(ctx context.Context, doc *engine.Document, fn string, args []string) error {
	if s.ext == nil {
		return engine.Errorf("lua", "no extension loaded for %q", fn)
	}
	return s.ext.CallAction(ctx, doc, fn, args)
}

var _ expand.Builtins = (*Session)(nil)
