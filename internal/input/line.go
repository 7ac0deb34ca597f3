package input

import (
	"context"
	"sort"
	"strings"

	"github.com/dshills/texpand/internal/input/key"
)

// LineEditor receives the state of a line being read so it can be drawn.
type LineEditor interface {
	ShowLine(prompt, text string)
}

// ReadLine reads a line of text terminated by Enter.
//
// Tab completes the text against completions: a unique match is taken
// whole, several matches extend the text to their common prefix.
// Backspace deletes one rune. view may be nil.
func ReadLine(ctx context.Context, r KeyReader, prompt string, completions []string, view LineEditor) (string, error) {
	var buf []rune
	for {
		if view != nil {
			view.ShowLine(prompt, string(buf))
		}
		ev, err := r.ReadKey(ctx, NoTimeout)
		if err != nil {
			return "", err
		}
		switch {
		case ev.Key == key.KeyEnter:
			return string(buf), nil
		case ev.Key == key.KeyEscape, ev.Key == key.KeyRune && ev.Rune == 'g' && ev.Modifiers.Has(key.ModCtrl):
			return "", ErrAborted
		case ev.Key == key.KeyBackspace:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
		case ev.Key == key.KeyTab:
			buf = []rune(Complete(string(buf), completions))
		case ev.IsChar():
			buf = append(buf, ev.Rune)
		}
	}
}

// Complete extends text using the candidates that start with it.
func Complete(text string, candidates []string) string {
	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(c, text) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return text
	case 1:
		return matches[0]
	}
	sort.Strings(matches)
	first, last := matches[0], matches[len(matches)-1]
	n := 0
	for n < len(first) && n < len(last) && first[n] == last[n] {
		n++
	}
	if n < len(text) {
		return text
	}
	return first[:n]
}
