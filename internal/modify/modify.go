package modify

import (
	"context"
	"unicode"

	"github.com/dshills/texpand/internal/engine"
	"github.com/dshills/texpand/internal/input/key"
	"github.com/dshills/texpand/internal/prefix"
	"github.com/dshills/texpand/internal/table"
)

// Levels of the modify read loop.
const (
	levelMath = 1
	levelText = 2
)

// Engine implements the modify prefix command.
type Engine struct {
	tables    *table.Merged
	reader    *prefix.Reader
	math      engine.MathDetector
	prefixKey key.Event
}

// New creates an Engine.
func New(tables *table.Merged, reader *prefix.Reader, math engine.MathDetector, prefixKey key.Event) *Engine {
	return &Engine{tables: tables, reader: reader, math: math, prefixKey: prefixKey}
}

// Run reads a modifier key and applies it. count is the repeat count, or
// zero. It is called after the prefix key has been pressed once.
func (e *Engine) Run(ctx context.Context, doc *engine.Document, count int) error {
	math := e.math.InMath(doc)
	level := levelText
	if math {
		level = levelMath
	}

	res, err := e.reader.Run(ctx, prefix.Spec{
		Prompt:     "Modify",
		PrefixKey:  e.prefixKey,
		StartLevel: level,
		MaxLevel:   2,
		OnPrefix:   prefix.Exit,
		Help: func(level int) []string {
			return prefix.ModifierHelp(e.tables, level == levelMath)
		},
	})
	if err != nil {
		return err
	}
	if res.SelfInsert {
		doc.Insert(e.prefixText())
		return nil
	}
	return e.Apply(doc, res.Key, math, count)
}

// Apply applies the modifier bound to ev. Unknown keys insert the prefix
// and the key literally.
func (e *Engine) Apply(doc *engine.Document, ev key.Event, math bool, count int) error {
	var mod table.Modifier
	ok := false
	if ev.IsChar() {
		mod, ok = e.tables.Modifier(ev.Rune)
	}
	if !ok {
		lit := e.prefixText()
		if ev.IsChar() {
			lit += string(ev.Rune)
		}
		doc.Insert(lit)
		return nil
	}

	macro, ok := mod.For(math)
	if !ok {
		return &ModeError{Key: mod.Key, Mode: modeName(math)}
	}

	ext, _ := ResolveExtent(doc, count)
	unit := ext.Unit
	if ext.Empty {
		unit = engine.CursorMarker
	} else if mod.RemoveDot && math {
		switch unit {
		case "i":
			unit = "\\imath"
		case "j":
			unit = "\\jmath"
		}
	}

	r := doc.Replace(ext.Start, ext.End, Wrap(mod, macro, unit, math))
	doc.Deactivate()
	if ext.Empty {
		doc.ResolveCursor(r)
	} else {
		doc.SetPoint(r.End)
	}
	return nil
}

// Wrap builds the text of unit wrapped by macro.
func Wrap(mod table.Modifier, macro, unit string, math bool) string {
	if mod.Command {
		return macro + "{" + unit + "}"
	}
	sep := ""
	if endsInLetter(macro) {
		sep = " "
	}
	tail := ""
	if mod.ItalicCorrection && !math {
		tail = "\\/"
	}
	return "{" + macro + sep + unit + tail + "}"
}

func endsInLetter(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)
	return unicode.IsLetter(r[len(r)-1])
}

func (e *Engine) prefixText() string {
	if e.prefixKey.IsRune() {
		return string(e.prefixKey.Rune)
	}
	return ""
}
