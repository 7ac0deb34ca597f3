package term

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/texpand/internal/input/key"
)

func TestTerminalPumpsKeys(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer term.Close()

	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'e', tcell.ModAlt)

	want := []key.Event{
		key.NewRuneEvent('x', key.ModNone),
		key.NewRuneEvent('e', key.ModAlt),
	}
	for i, w := range want {
		select {
		case got := <-term.Keys():
			if !got.Equals(w) {
				t.Errorf("key %d = %v, want %v", i, got, w)
			}
		case <-time.After(time.Second):
			t.Fatalf("key %d not delivered", i)
		}
	}
}

func TestTerminalCloseEndsKeys(t *testing.T) {
	term := NewWithScreen(tcell.NewSimulationScreen("UTF-8"))
	if err := term.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	term.Close()
	term.Close()

	select {
	case _, ok := <-term.Keys():
		if ok {
			t.Error("Keys() delivered after Close")
		}
	case <-time.After(time.Second):
		t.Fatal("Keys() not closed")
	}
	select {
	case <-term.Done():
	default:
		t.Error("Done() not closed")
	}
}
