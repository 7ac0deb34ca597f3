package template

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/dshills/texpand/internal/engine"
)

// Placeholder markers.
const (
	MarkLabel  = "AUTOLABEL"
	MarkFile   = "AUTOFILE"
	MarkIndent = "AUTOINDENT"
)

// Indent replaces MarkIndent.
const Indent = "  "

var marks = []string{MarkLabel, MarkFile, MarkIndent}

// nextMark finds the leftmost marker in s.
func nextMark(s string) (string, int) {
	best, at := "", -1
	for _, m := range marks {
		if i := strings.Index(s, m); i >= 0 && (at < 0 || i < at) {
			best, at = m, i
		}
	}
	return best, at
}

// resolvePlaceholders replaces the markers in r from left to right and
// returns the range r covers afterwards.
func (in *Inserter) resolvePlaceholders(ctx context.Context, doc *engine.Document, r engine.Range, env string) (engine.Range, error) {
	from := r.Start
	for from < r.End {
		mark, i := nextMark(doc.TextRange(from, r.End))
		if i < 0 {
			break
		}
		start := from + engine.ByteOffset(i)
		end := start + engine.ByteOffset(len(mark))

		var repl string
		switch mark {
		case MarkIndent:
			repl = Indent
		case MarkFile:
			path, err := in.readPath(ctx, false)
			if err != nil {
				return r, err
			}
			repl = path
		case MarkLabel:
			label, ok, err := in.label(env)
			if err != nil {
				return r, err
			}
			if !ok {
				ls, le := removeLabelMarker(doc, start, end)
				r.End -= le - ls
				if ls < r.Start {
					r.Start = ls
				}
				from = ls
				continue
			}
			repl = "\\label{" + label + "}"
		}

		nr := doc.Replace(start, end, repl)
		r.End += nr.Len() - (end - start)
		from = nr.End
	}
	return r, nil
}

// removeLabelMarker deletes the marker and, when that leaves its line
// blank, the whole line. It returns the deleted range.
func removeLabelMarker(doc *engine.Document, start, end engine.ByteOffset) (engine.ByteOffset, engine.ByteOffset) {
	ls, le := doc.LineStart(start), doc.LineEnd(start)
	rest := doc.TextRange(ls, start) + doc.TextRange(end, le)
	if strings.TrimSpace(rest) != "" {
		doc.Delete(start, end)
		return start, end
	}
	// include the newline that ends the line
	if le < doc.Len() {
		le++
	} else if ls > 0 {
		ls--
	}
	doc.Delete(ls, le)
	return ls, le
}

func (in *Inserter) label(env string) (string, bool, error) {
	if !in.labelOn || in.labels == nil {
		return "", false, nil
	}
	label, err := in.labels.GenerateLabel(env)
	if err != nil {
		return "", false, err
	}
	if label == "" {
		return "", false, nil
	}
	return label, true, nil
}

func (in *Inserter) readPath(ctx context.Context, absolute bool) (string, error) {
	if in.paths == nil {
		return "", engine.Errorf("file", "no file prompter available")
	}
	path, err := in.paths.PromptPath(ctx, absolute)
	if err != nil {
		return "", err
	}
	if absolute {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		return filepath.ToSlash(path), nil
	}
	return filepath.ToSlash(in.relative(path)), nil
}

// relative makes path relative to the work directory when possible.
func (in *Inserter) relative(path string) string {
	if in.workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(in.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// InsertFile reads a path and inserts it at the point.
func (in *Inserter) InsertFile(ctx context.Context, doc *engine.Document, absolute bool) error {
	path, err := in.readPath(ctx, absolute)
	if err != nil {
		return err
	}
	doc.Insert(path)
	return nil
}

// InsertLabel inserts \label{...} for the environment enclosing the point.
func (in *Inserter) InsertLabel(doc *engine.Document) error {
	env, _ := EnclosingEnvironment(doc)
	label, ok, err := in.label(env)
	if err != nil {
		return err
	}
	if !ok {
		return engine.Errorf("label", "labels are disabled")
	}
	doc.Insert("\\label{" + label + "}")
	return nil
}
