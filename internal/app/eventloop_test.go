package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/texpand/internal/term"
)

func runTerminal(t *testing.T, app *Application, inject func(s tcell.SimulationScreen)) error {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	tm := term.NewWithScreen(screen)
	if err := tm.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer tm.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- app.RunTerminal(ctx, tm) }()
	inject(screen)

	select {
	case err := <-errCh:
		return err
	case <-time.After(10 * time.Second):
		t.Fatal("RunTerminal did not return")
		return nil
	}
}

func TestRunTerminalSaveAndQuit(t *testing.T) {
	f := newFixture(t, "", map[string]string{"main.tex": ""})
	app := f.open(t, "main.tex", -1)

	err := runTerminal(t, app, func(s tcell.SimulationScreen) {
		s.InjectKey(tcell.KeyRune, '$', tcell.ModNone)
		s.InjectKey(tcell.KeyRune, 'f', tcell.ModNone)
		s.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)
		s.InjectKey(tcell.KeyTab, 0, tcell.ModNone)
		s.InjectKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)
		s.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	})
	if err != nil {
		t.Fatalf("RunTerminal() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(f.dir, "main.tex"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "$\\frac{}{}$" {
		t.Errorf("file = %q", data)
	}
}

func TestRunTerminalQuitNeedsConfirmation(t *testing.T) {
	f := newFixture(t, "", nil)
	app := f.open(t, "main.tex", -1)

	err := runTerminal(t, app, func(s tcell.SimulationScreen) {
		s.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
		s.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
		s.InjectKey(tcell.KeyRune, 'b', tcell.ModNone)
		s.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
		s.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	})
	if err != nil {
		t.Fatalf("RunTerminal() error = %v", err)
	}
	if got := app.Document().Text(); got != "ab" {
		t.Errorf("text = %q, want %q", got, "ab")
	}
	if _, err := os.Stat(filepath.Join(f.dir, "main.tex")); !os.IsNotExist(err) {
		t.Errorf("unsaved file was written: %v", err)
	}
}

func TestModeline(t *testing.T) {
	f := newFixture(t, "", map[string]string{"main.tex": "$x"})
	app := f.open(t, "main.tex", -1)
	if got := app.modeline(); got != "main.tex" {
		t.Errorf("modeline before a session = %q", got)
	}

	err := runTerminal(t, app, func(s tcell.SimulationScreen) {
		s.InjectKey(tcell.KeyRune, '3', tcell.ModAlt)
		s.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	})
	if err != nil {
		t.Fatalf("RunTerminal() error = %v", err)
	}
	if got := app.modeline(); got != "main.tex  Math  Count: 3" {
		t.Errorf("modeline = %q", got)
	}
}
