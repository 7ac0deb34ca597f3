// Package symbol inserts math symbols read after the symbol prefix key.
package symbol

import (
	"context"
	"strings"

	"github.com/dshills/texpand/internal/engine"
	"github.com/dshills/texpand/internal/input/key"
	"github.com/dshills/texpand/internal/prefix"
	"github.com/dshills/texpand/internal/table"
)

// MathEnsurer enters math mode at the point when needed.
type MathEnsurer interface {
	EnsureMath(doc *engine.Document) error
}

// Inserter implements the symbol prefix command.
type Inserter struct {
	tables    *table.Merged
	reader    *prefix.Reader
	math      MathEnsurer
	prefixKey key.Event
	hints     []string
}

// New creates an Inserter. hints describe direct bindings in the help.
func New(tables *table.Merged, reader *prefix.Reader, math MathEnsurer, prefixKey key.Event, hints []string) *Inserter {
	return &Inserter{
		tables:    tables,
		reader:    reader,
		math:      math,
		prefixKey: prefixKey,
		hints:     hints,
	}
}

// Run reads a symbol key and inserts the symbol. It is called after the
// prefix key has been pressed once.
func (in *Inserter) Run(ctx context.Context, doc *engine.Document) error {
	res, err := in.reader.Run(ctx, prefix.Spec{
		Prompt:     "Symbol",
		PrefixKey:  in.prefixKey,
		StartLevel: 1,
		MaxLevel:   in.tables.Levels(),
		OnPrefix:   prefix.Cycle,
		Help: func(level int) []string {
			return prefix.SymbolHelp(in.tables, level, in.hints)
		},
	})
	if err != nil {
		return err
	}
	return in.Insert(doc, res.Key, res.Level)
}

// Insert inserts the symbol bound to ev at level.
//
// An undefined binding inserts the prefix key level times followed by
// the typed character, so typing through the prefix is harmless. Enter
// inserts only the prefixes.
func (in *Inserter) Insert(doc *engine.Document, ev key.Event, level int) error {
	var macro string
	ok := false
	if ev.IsChar() {
		macro, ok = in.tables.SymbolAt(ev.Rune, level)
	}
	if !ok {
		lit := strings.Repeat(in.prefixText(), level)
		if ev.IsChar() {
			lit += string(ev.Rune)
		}
		doc.Insert(lit)
		return nil
	}

	if err := in.math.EnsureMath(doc); err != nil {
		return err
	}
	r := doc.Insert(macro)
	doc.ResolveCursor(r)
	return nil
}

// InsertDirect inserts the symbol for a direct binding such as Alt+a.
// An undefined binding inserts nothing.
func (in *Inserter) InsertDirect(doc *engine.Document, r rune, level int) (bool, error) {
	if _, ok := in.tables.SymbolAt(r, level); !ok {
		return false, nil
	}
	return true, in.Insert(doc, key.NewRuneEvent(r, key.ModNone), level)
}

func (in *Inserter) prefixText() string {
	if in.prefixKey.IsRune() {
		return string(in.prefixKey.Rune)
	}
	return ""
}

// Hints describes direct bindings, one modifier set per level.
func Hints(mods []key.Modifier) []string {
	var hints []string
	for i, m := range mods {
		if m == key.ModNone {
			continue
		}
		hints = append(hints, m.String()+"+<key> inserts level "+string(rune('1'+i)))
	}
	return hints
}
