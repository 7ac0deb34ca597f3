package input

import (
	"context"
	"strings"
	"time"

	"github.com/dshills/texpand/internal/input/key"
)

// ScriptReader replays a parsed key script.
//
// An "<Idle>" step makes the next timed read return ErrTimeout. Reads
// without a deadline skip idle steps, since waiting forever and then
// receiving the following key is indistinguishable from not idling.
type ScriptReader struct {
	steps []step
	pos   int
}

type step struct {
	ev   key.Event
	idle bool
}

// NewScriptReader parses script with key.ScanKeys.
func NewScriptReader(script string) (*ScriptReader, error) {
	r := &ScriptReader{}
	err := key.ScanKeys(script, func(tok string, ev key.Event) error {
		if strings.EqualFold(tok, "<Idle>") {
			r.steps = append(r.steps, step{idle: true})
			return nil
		}
		r.steps = append(r.steps, step{ev: ev})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// NewSequenceReader replays an already parsed sequence.
func NewSequenceReader(seq *key.Sequence) *ScriptReader {
	r := &ScriptReader{}
	for _, ev := range seq.Events {
		r.steps = append(r.steps, step{ev: ev})
	}
	return r
}

// ReadKey implements KeyReader.
func (r *ScriptReader) ReadKey(ctx context.Context, timeout time.Duration) (key.Event, error) {
	if err := ctx.Err(); err != nil {
		return key.Event{}, err
	}
	for r.pos < len(r.steps) {
		s := r.steps[r.pos]
		r.pos++
		if s.idle {
			if timeout > 0 {
				return key.Event{}, ErrTimeout
			}
			continue
		}
		return s.ev, nil
	}
	return key.Event{}, ErrClosed
}

// Remaining reports how many steps have not been consumed.
func (r *ScriptReader) Remaining() int {
	return len(r.steps) - r.pos
}
