package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dshills/texpand/internal/engine"
	"github.com/dshills/texpand/internal/input"
)

// linePrompter reads answers from the session's key reader.
type linePrompter struct {
	keys    input.KeyReader
	view    input.LineEditor
	workDir string
}

// ReadString implements engine.Prompter.
func (p *linePrompter) ReadString(ctx context.Context, prompt string, completions []string) (string, error) {
	s, err := input.ReadLine(ctx, p.keys, prompt, completions, p.view)
	if errors.Is(err, input.ErrAborted) {
		return "", engine.ErrCanceled
	}
	return s, err
}

// PromptPath implements engine.PathPrompter. Completion offers the
// entries of the work directory.
func (p *linePrompter) PromptPath(ctx context.Context, absolute bool) (string, error) {
	prompt := "File: "
	if absolute {
		prompt = "File (absolute): "
	}
	path, err := p.ReadString(ctx, prompt, p.entries())
	if err != nil {
		return "", err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return "", engine.ErrCanceled
	}
	if !filepath.IsAbs(path) && p.workDir != "" {
		path = filepath.Join(p.workDir, path)
	}
	return path, nil
}

func (p *linePrompter) entries() []string {
	dir := p.workDir
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
