package prefix

import (
	"context"
	"errors"
	"time"

	"github.com/dshills/texpand/internal/engine"
	"github.com/dshills/texpand/internal/input"
	"github.com/dshills/texpand/internal/input/key"
)

// OnPrefix selects what a repeated prefix key does.
type OnPrefix int

const (
	// Cycle advances the level, wrapping from the last level to 1.
	Cycle OnPrefix = iota
	// Exit ends the loop with Result.SelfInsert set.
	Exit
)

// Spec describes one run of the read loop.
type Spec struct {
	// Prompt is shown while waiting, with the level appended.
	Prompt string
	// PrefixKey is the key that started the loop.
	PrefixKey key.Event
	// StartLevel and MaxLevel bound the level, starting at 1.
	StartLevel int
	MaxLevel   int
	OnPrefix   OnPrefix
	// Help renders the help table for a level.
	Help func(level int) []string
}

// Result is the key that ended the loop and the level it was read at.
type Result struct {
	Key   key.Event
	Level int
	// SelfInsert is set when the prefix key was pressed again with Exit.
	SelfInsert bool
}

// Status shows the prompt of a running loop.
type Status interface {
	SetStatus(msg string)
}

// Reader runs prefix read loops.
type Reader struct {
	keys   input.KeyReader
	help   engine.HelpDisplay
	status Status
	delay  time.Duration

	helpKey   key.Event
	cancelKey key.Event
}

// Option configures a Reader.
type Option func(*Reader)

// WithHelp sets the help display.
func WithHelp(h engine.HelpDisplay) Option {
	return func(r *Reader) { r.help = h }
}

// WithStatus sets where prompts are shown.
func WithStatus(s Status) Option {
	return func(r *Reader) { r.status = s }
}

// WithDelay sets the idle delay before help appears. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(r *Reader) { r.delay = d }
}

// WithHelpKey sets the key that shows and scrolls help.
func WithHelpKey(ev key.Event) Option {
	return func(r *Reader) { r.helpKey = ev }
}

// WithCancelKey sets the key that aborts the loop.
func WithCancelKey(ev key.Event) Option {
	return func(r *Reader) { r.cancelKey = ev }
}

// DefaultDelay is the idle delay used when none is configured.
const DefaultDelay = 1500 * time.Millisecond

// NewReader creates a Reader reading from keys.
func NewReader(keys input.KeyReader, opts ...Option) *Reader {
	r := &Reader{
		keys:      keys,
		help:      engine.NopHelp{},
		delay:     DefaultDelay,
		helpKey:   key.NewRuneEvent('?', key.ModNone),
		cancelKey: key.NewRuneEvent('g', key.ModCtrl),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// helpState tracks the deferred help of one loop.
type helpState struct {
	shown  bool
	scroll int
}

// Run reads keys until one ends the loop.
func (r *Reader) Run(ctx context.Context, spec Spec) (Result, error) {
	level := spec.StartLevel
	if level < 1 {
		level = 1
	}
	maxLevel := spec.MaxLevel
	if maxLevel < 1 {
		maxLevel = 1
	}
	if level > maxLevel {
		level = maxLevel
	}

	var hs helpState
	defer func() {
		if hs.shown {
			r.help.Hide()
		}
		r.setStatus("")
	}()

	for {
		if hs.shown && spec.Help != nil {
			r.help.Show(spec.Help(level), hs.scroll)
		}
		r.setStatus(Prompt(spec.Prompt, level, maxLevel))

		timeout := input.NoTimeout
		if !hs.shown {
			timeout = r.delay
		}
		ev, err := r.keys.ReadKey(ctx, timeout)
		if errors.Is(err, input.ErrTimeout) {
			hs.shown = true
			hs.scroll = 0
			continue
		}
		if err != nil {
			return Result{}, err
		}

		switch {
		case ev.Equals(r.cancelKey):
			return Result{}, engine.ErrCanceled
		case ev.Equals(r.helpKey):
			r.toggleHelp(&hs, spec, level)
		case ev.Equals(spec.PrefixKey):
			if spec.OnPrefix == Exit {
				return Result{Key: ev, Level: level, SelfInsert: true}, nil
			}
			level = level%maxLevel + 1
		default:
			return Result{Key: ev, Level: level}, nil
		}
	}
}

// toggleHelp shows the help, scrolls it by a page, and hides it after the
// last page.
func (r *Reader) toggleHelp(hs *helpState, spec Spec, level int) {
	if !hs.shown {
		hs.shown = true
		hs.scroll = 0
		return
	}
	var lines int
	if spec.Help != nil {
		lines = len(spec.Help(level))
	}
	page := r.help.Height()
	if page < 1 {
		page = 1
	}
	if hs.scroll+page < lines {
		hs.scroll += page
		return
	}
	hs.shown = false
	hs.scroll = 0
	r.help.Hide()
}

func (r *Reader) setStatus(msg string) {
	if r.status != nil {
		r.status.SetStatus(msg)
	}
}

// Prompt formats the prompt for a level.
func Prompt(prompt string, level, maxLevel int) string {
	if prompt == "" || maxLevel <= 1 {
		return prompt
	}
	return prompt + " " + levelTag(level, maxLevel)
}
