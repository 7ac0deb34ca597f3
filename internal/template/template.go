package template

import (
	"context"
	"strings"

	"github.com/dshills/texpand/internal/engine"
	"github.com/dshills/texpand/internal/table"
)

// Variant selects which template of an environment is inserted.
type Variant int

const (
	// Body inserts the whole environment.
	Body Variant = iota
	// Item inserts one item of the environment.
	Item
)

// String returns the variant name.
func (v Variant) String() string {
	if v == Item {
		return "item"
	}
	return "body"
}

// continuation starts item templates that need a preceding \\.
const continuation = `\\`

// Inserter inserts templates from the environment table.
type Inserter struct {
	tables  *table.Merged
	labels  engine.LabelGenerator
	paths   engine.PathPrompter
	prompt  engine.Prompter
	labelOn bool
	workDir string
}

// Option configures an Inserter.
type Option func(*Inserter)

// WithLabels enables AUTOLABEL resolution through gen.
func WithLabels(gen engine.LabelGenerator) Option {
	return func(in *Inserter) {
		in.labels = gen
		in.labelOn = gen != nil
	}
}

// WithPathPrompter sets the prompter used for AUTOFILE and InsertFile.
func WithPathPrompter(p engine.PathPrompter) Option {
	return func(in *Inserter) { in.paths = p }
}

// WithPrompter sets the prompter used to ask for an environment name.
func WithPrompter(p engine.Prompter) Option {
	return func(in *Inserter) { in.prompt = p }
}

// WithWorkDir sets the directory file paths are made relative to.
func WithWorkDir(dir string) Option {
	return func(in *Inserter) { in.workDir = dir }
}

// New creates an Inserter over tables.
func New(tables *table.Merged, opts ...Option) *Inserter {
	in := &Inserter{tables: tables}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Insert inserts the named environment. An empty name is read from the
// prompter with completion over the known names.
func (in *Inserter) Insert(ctx context.Context, doc *engine.Document, name string, v Variant) error {
	if name == "" {
		var err error
		name, err = in.askEnvironment(ctx)
		if err != nil {
			return err
		}
	}

	env, ok := in.tables.Environment(name)
	if !ok {
		if v == Item {
			return engine.Errorf("item", "unknown environment %q", name)
		}
		env = Generic(name)
	}

	tmpl := env.Body
	if v == Item {
		if !env.HasItem() {
			return engine.Errorf("item", "environment %q has no item template", env.Name)
		}
		tmpl = env.Item
	}
	return in.insertTemplate(ctx, doc, env.Name, tmpl)
}

// Generic returns the template used for environments not in the table.
func Generic(name string) table.Environment {
	return table.Environment{
		Name: name,
		Body: "\\begin{" + name + "}\n" + engine.CursorMarker + "\n\\end{" + name + "}",
	}
}

func (in *Inserter) askEnvironment(ctx context.Context) (string, error) {
	if in.prompt == nil {
		return "", engine.Errorf("environment", "no environment name given")
	}
	name, err := in.prompt.ReadString(ctx, "Environment type: ", in.tables.EnvironmentNames())
	if err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", engine.ErrCanceled
	}
	return name, nil
}

func (in *Inserter) insertTemplate(ctx context.Context, doc *engine.Document, env, tmpl string) (err error) {
	snap := doc.Snapshot()
	defer func() {
		if err != nil {
			doc.Restore(snap)
		}
	}()

	if strings.HasPrefix(tmpl, continuation) {
		tmpl = strings.TrimLeft(tmpl[len(continuation):], " \t\n")
		ensureSeparator(doc)
	}
	if lineHasText(doc) {
		doc.Insert("\n")
	}

	r := doc.Insert(tmpl)
	r, err = in.resolvePlaceholders(ctx, doc, r, env)
	if err != nil {
		return err
	}
	doc.ResolveCursor(r)
	return nil
}

// lineHasText reports whether non-blank text precedes the point on its line.
func lineHasText(doc *engine.Document) bool {
	p := doc.Point()
	return strings.TrimSpace(doc.TextRange(doc.LineStart(p), p)) != ""
}

// ensureSeparator makes sure \\ ends the text before the point, ignoring
// trailing whitespace. Nothing is added directly after \begin{...} or at
// the start of the buffer.
func ensureSeparator(doc *engine.Document) {
	before := doc.TextRange(0, doc.Point())
	trimmed := strings.TrimRight(before, " \t\n")
	if trimmed == "" || strings.HasSuffix(trimmed, continuation) {
		return
	}
	lastLine := trimmed[strings.LastIndexByte(trimmed, '\n')+1:]
	if strings.HasPrefix(strings.TrimSpace(lastLine), "\\begin{") {
		return
	}
	doc.InsertAt(engine.ByteOffset(len(trimmed)), continuation)
}
