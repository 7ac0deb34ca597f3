package input

import (
	"context"
	"errors"
	"time"

	"github.com/dshills/texpand/internal/input/key"
)

// Reader errors.
var (
	// ErrTimeout is returned when a timed read expires with no key.
	ErrTimeout = errors.New("input: timed out waiting for key")

	// ErrClosed is returned once the key source is exhausted or closed.
	ErrClosed = errors.New("input: key source closed")

	// ErrAborted is returned by ReadLine when the user cancels with Ctrl+G or Escape.
	ErrAborted = errors.New("input: aborted")
)

// KeyReader reads one key event.
//
// A timeout of zero or less waits until a key arrives, the context is
// done, or the source closes.
type KeyReader interface {
	ReadKey(ctx context.Context, timeout time.Duration) (key.Event, error)
}

// NoTimeout makes ReadKey wait indefinitely.
const NoTimeout time.Duration = 0

// ChanReader reads key events from a channel.
type ChanReader struct {
	events <-chan key.Event
	done   <-chan struct{}
}

// NewChanReader creates a reader over events. done may be nil.
func NewChanReader(events <-chan key.Event, done <-chan struct{}) *ChanReader {
	return &ChanReader{events: events, done: done}
}

// ReadKey implements KeyReader.
func (r *ChanReader) ReadKey(ctx context.Context, timeout time.Duration) (key.Event, error) {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case ev, ok := <-r.events:
		if !ok {
			return key.Event{}, ErrClosed
		}
		return ev, nil
	case <-r.done:
		return key.Event{}, ErrClosed
	case <-ctx.Done():
		return key.Event{}, ctx.Err()
	case <-expired:
		return key.Event{}, ErrTimeout
	}
}
