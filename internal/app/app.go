package app

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/texpand/internal/config"
	"github.com/dshills/texpand/internal/engine"
	"github.com/dshills/texpand/internal/plugin/lua"
	"github.com/dshills/texpand/internal/session"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. When empty the per-user file
	// is used if it exists.
	ConfigPath string

	// File is the document to edit. A missing file starts empty.
	File string

	// Point is the initial byte offset of the point. Negative values put
	// it at the end of the document.
	Point int

	// LogLevel overrides the configured level when set.
	LogLevel string

	// LogFile receives log lines instead of Stderr.
	LogFile string

	// Stdout receives batch output. Defaults to os.Stdout.
	Stdout io.Writer

	// Stderr receives log lines when LogFile is empty. Defaults to os.Stderr.
	Stderr io.Writer
}

// Application edits one document.
type Application struct {
	opts Options

	cfgPath     string
	cfgRequired bool
	cfg         *config.Config

	logger  *Logger
	logFile io.Closer

	doc   *engine.Document
	saved string

	ext  *lua.Extension
	sess *session.Session
}

// New loads the configuration and the document.
func New(ctx context.Context, opts Options) (*Application, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	app := &Application{opts: opts}
	if err := app.bootstrap(ctx); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

// Config returns the running configuration.
func (app *Application) Config() *config.Config { return app.cfg }

// Logger returns the application logger.
func (app *Application) Logger() *Logger { return app.logger }

// Document returns the document being edited.
func (app *Application) Document() *engine.Document { return app.doc }

// Session returns the running session, or nil before a run starts.
func (app *Application) Session() *session.Session { return app.sess }

// Modified reports whether the document differs from the file.
func (app *Application) Modified() bool { return app.doc.Text() != app.saved }

// Save writes the document to its file.
func (app *Application) Save() error {
	path := app.opts.File
	if path == "" {
		return ErrNoFilePath
	}
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	text := app.doc.Text()
	if err := os.WriteFile(path, []byte(text), mode); err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	app.saved = text
	app.logger.Info("wrote %s", path)
	return nil
}

// Name returns the document's display name.
func (app *Application) Name() string {
	if app.opts.File == "" {
		return "*scratch*"
	}
	return filepath.Base(app.opts.File)
}

// Shutdown releases the extension and the log file.
func (app *Application) Shutdown() {
	if app.ext != nil {
		if err := app.ext.Close(); err != nil && !errors.Is(err, lua.ErrStateClosed) {
			app.logger.Warn("closing lua: %v", err)
		}
		app.ext = nil
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
}
