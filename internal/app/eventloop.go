package app

import (
	"context"
	"errors"
	"io"
	"slices"
	"strconv"

	"github.com/dshills/texpand/internal/config"
	"github.com/dshills/texpand/internal/input"
	"github.com/dshills/texpand/internal/input/key"
	"github.com/dshills/texpand/internal/session"
	"github.com/dshills/texpand/internal/term"
)

// Application keys handled before the session sees them.
var (
	SaveKey = key.MustParse("Ctrl+s")
	QuitKey = key.MustParse("Ctrl+q")
)

// loop is the state of one terminal run.
type loop struct {
	app  *Application
	term *term.Terminal
	view *term.View

	watcher *config.Watcher
	watched []string

	quitArmed bool
}

// RunTerminal edits the document on t until the user quits, t closes or
// ctx is done. Log output goes to the log file only while the screen is
// in use.
func (app *Application) RunTerminal(ctx context.Context, t *term.Terminal) error {
	if app.logFile == nil {
		app.logger.SetOutput(io.Discard)
		defer app.logger.SetOutput(app.opts.Stderr)
	}

	l := &loop{app: app, term: t}
	l.view = term.NewView(t.Screen(), app.doc, term.WithModeline(app.modeline))
	keys := input.NewChanReader(t.Keys(), t.Done())
	if err := app.startSession(keys,
		session.WithHelp(l.view),
		session.WithStatus(l.view),
		session.WithLineEditor(l.view),
	); err != nil {
		return err
	}

	l.watch()
	defer l.stopWatching()

	l.view.Draw()
	err := l.run(ctx)
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}

func (l *loop) run(ctx context.Context) error {
	for {
		var changes <-chan []string
		var werrs <-chan error
		if l.watcher != nil {
			changes, werrs = l.watcher.Changes(), l.watcher.Errors()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-l.term.Keys():
			if !ok {
				return nil
			}
			if err := l.handleKey(ctx, ev); err != nil {
				return err
			}

		case <-l.term.Resized():
			l.view.Draw()

		case paths := <-changes:
			l.app.logger.Debug("changed: %v", paths)
			if err := l.app.Reload(ctx); err != nil {
				l.app.logger.Error("reload: %v", err)
				l.view.SetStatus("Reload failed: " + err.Error())
				continue
			}
			l.watch()
			l.view.SetStatus("Configuration reloaded")

		case err := <-werrs:
			l.app.logger.Warn("watcher: %v", err)
		}
	}
}

func (l *loop) handleKey(ctx context.Context, ev key.Event) error {
	app := l.app
	quitArmed := l.quitArmed
	l.quitArmed = false

	switch {
	case ev.Equals(QuitKey):
		if app.Modified() && !quitArmed {
			l.quitArmed = true
			l.view.SetStatus("Unsaved changes; press " + QuitKey.String() + " again to quit")
			return nil
		}
		return ErrQuit
	case ev.Equals(SaveKey):
		if err := app.Save(); err != nil {
			l.view.SetStatus(err.Error())
			return nil
		}
		l.view.SetStatus("Wrote " + app.opts.File)
		return nil
	}

	l.view.SetStatus("")
	err := app.sess.HandleKey(ctx, ev)
	l.view.EndLine()
	if errors.Is(err, input.ErrClosed) {
		return ErrQuit
	}
	if err != nil {
		return err
	}
	l.view.Draw()
	return nil
}

// watch starts or restarts the watcher when the watched files changed.
func (l *loop) watch() {
	paths := l.app.watchPaths()
	if l.watcher != nil && slices.Equal(paths, l.watched) {
		return
	}
	l.stopWatching()
	if len(paths) == 0 {
		return
	}
	w, err := config.NewWatcher(paths)
	if err != nil {
		l.app.logger.Warn("not watching configuration: %v", err)
		return
	}
	l.watcher, l.watched = w, paths
}

func (l *loop) stopWatching() {
	if l.watcher != nil {
		_ = l.watcher.Close()
		l.watcher, l.watched = nil, nil
	}
}

// modeline is shown in the status line when there is no message.
func (app *Application) modeline() string {
	line := app.Name()
	if app.Modified() {
		line += " [+]"
	}
	if app.sess != nil {
		if app.sess.InMath() {
			line += "  Math"
		} else {
			line += "  Text"
		}
		if n := app.sess.Count(); n > 0 {
			line += "  Count: " + strconv.Itoa(n)
		}
	}
	return line
}
