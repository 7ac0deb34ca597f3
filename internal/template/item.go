package template

import (
	"context"
	"regexp"

	"github.com/dshills/texpand/internal/engine"
)

var envToken = regexp.MustCompile(`\\(begin|end)\{([^{}]*)\}`)

// EnclosingEnvironment returns the name of the innermost environment open
// at the point.
func EnclosingEnvironment(doc *engine.Document) (string, bool) {
	text := doc.TextRange(0, doc.Point())
	var stack []string
	for _, m := range envToken.FindAllStringSubmatch(text, -1) {
		if m[1] == "begin" {
			stack = append(stack, m[2])
			continue
		}
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i] == m[2] {
				stack = stack[:i]
				break
			}
		}
	}
	if len(stack) == 0 {
		return "", false
	}
	return stack[len(stack)-1], true
}

// InsertItem inserts a new item of the environment enclosing the point.
// The document is unchanged when there is no enclosing environment or it
// has no item template.
func (in *Inserter) InsertItem(ctx context.Context, doc *engine.Document) error {
	name, ok := EnclosingEnvironment(doc)
	if !ok {
		return engine.Errorf("item", "not inside an environment")
	}
	env, ok := in.tables.EnvironmentExact(name)
	if !ok || !env.HasItem() {
		return engine.Errorf("item", "environment %q has no item template", name)
	}
	return in.insertTemplate(ctx, doc, env.Name, env.Item)
}
