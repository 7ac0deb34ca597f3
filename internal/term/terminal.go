package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/texpand/internal/input/key"
)

// Terminal owns a tcell screen and its event pump.
type Terminal struct {
	screen tcell.Screen

	keys   chan key.Event
	resize chan struct{}

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// New creates a terminal on the process's tty.
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen creates a terminal on an existing screen, such as a
// tcell simulation screen.
func NewWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen: screen,
		keys:   make(chan key.Event, 64),
		resize: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Init initializes the screen and starts the event pump.
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnablePaste()
	t.wg.Add(1)
	go t.pump()
	return nil
}

// Screen returns the underlying screen.
func (t *Terminal) Screen() tcell.Screen { return t.screen }

// Keys returns the converted key events. The channel is closed when the
// terminal closes.
func (t *Terminal) Keys() <-chan key.Event { return t.keys }

// Resized signals terminal size changes. Signals are coalesced.
func (t *Terminal) Resized() <-chan struct{} { return t.resize }

// Done is closed when the terminal closes.
func (t *Terminal) Done() <-chan struct{} { return t.done }

// Close restores the tty and stops the pump.
func (t *Terminal) Close() {
	t.closeOnce.Do(func() {
		close(t.done)
		t.screen.Fini()
		t.wg.Wait()
	})
}

func (t *Terminal) pump() {
	defer t.wg.Done()
	defer close(t.keys)

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch e := ev.(type) {
		case *tcell.EventKey:
			kev, ok := ConvertKey(e)
			if !ok {
				continue
			}
			select {
			case t.keys <- kev:
			case <-t.done:
				return
			}
		case *tcell.EventResize:
			t.screen.Sync()
			select {
			case t.resize <- struct{}{}:
			default:
			}
		}
	}
}
