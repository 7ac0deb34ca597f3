package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/texpand/internal/config"
	"github.com/dshills/texpand/internal/engine"
	"github.com/dshills/texpand/internal/input"
	"github.com/dshills/texpand/internal/plugin/lua"
	"github.com/dshills/texpand/internal/session"
	"github.com/dshills/texpand/internal/texmath"
)

// bootstrap loads the configuration, opens the log, reads the document
// and loads the Lua scripts.
func (app *Application) bootstrap(ctx context.Context) error {
	app.logger = NewLogger(LoggerConfig{Output: app.opts.Stderr, Prefix: "texpand"})

	app.cfgPath, app.cfgRequired = app.opts.ConfigPath, app.opts.ConfigPath != ""
	if app.cfgPath == "" {
		app.cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(app.cfgPath, app.cfgRequired)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.cfg = cfg

	if err := app.initLogger(); err != nil {
		return &InitError{Component: "logger", Err: err}
	}
	if p := cfg.Path(); p != "" {
		app.logger.Debug("loaded configuration from %s", p)
	}

	if err := app.initDocument(); err != nil {
		return &InitError{Component: "document", Err: err}
	}

	ext, err := app.newExtension(ctx, cfg)
	if err != nil {
		return &InitError{Component: "lua", Err: err}
	}
	app.ext = ext
	return nil
}

func (app *Application) initLogger() error {
	if app.opts.LogFile != "" {
		f, err := OpenLogFile(app.opts.LogFile)
		if err != nil {
			return err
		}
		app.logFile = f
		app.logger.SetOutput(f)
	}
	app.logger.SetLevel(app.logLevel(app.cfg))
	return nil
}

// logLevel gives the flag precedence over the configuration.
func (app *Application) logLevel(cfg *config.Config) LogLevel {
	if app.opts.LogLevel != "" {
		return ParseLogLevel(app.opts.LogLevel)
	}
	return ParseLogLevel(cfg.Behavior.LogLevel)
}

func (app *Application) initDocument() error {
	var text string
	if app.opts.File != "" {
		data, err := os.ReadFile(app.opts.File)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			app.logger.Info("new file %s", app.opts.File)
		case err != nil:
			return &FileError{Op: "open", Path: app.opts.File, Err: err}
		default:
			text = string(data)
		}
	}
	app.doc = engine.NewDocument(text)
	if app.opts.Point >= 0 {
		app.doc.SetPoint(engine.ByteOffset(app.opts.Point))
	}
	app.saved = text
	return nil
}

// newExtension loads the configured Lua scripts. It returns nil when
// there are none.
func (app *Application) newExtension(ctx context.Context, cfg *config.Config) (*lua.Extension, error) {
	paths := cfg.LuaPaths()
	if len(paths) == 0 {
		return nil, nil
	}
	ext := lua.New(texmath.New(cfg.Behavior.MathEnvironments...),
		lua.WithLogger(app.logger.WithComponent("lua")))
	if err := ext.Load(ctx, paths...); err != nil {
		_ = ext.Close()
		return nil, err
	}
	app.logger.Debug("loaded %d lua scripts, %d trigger hooks", len(paths), ext.HookCount())
	return ext, nil
}

// workDir is the directory file names are completed against.
func (app *Application) workDir() string {
	if app.opts.File != "" {
		if abs, err := filepath.Abs(app.opts.File); err == nil {
			return filepath.Dir(abs)
		}
	}
	wd, _ := os.Getwd()
	return wd
}

// sessionOptions converts cfg. The configuration is validated by the
// loader, so conversion errors are not expected here.
func (app *Application) sessionOptions(cfg *config.Config) ([]session.Option, error) {
	km, err := cfg.Keymap()
	if err != nil {
		return nil, err
	}
	overrides, err := cfg.Overrides()
	if err != nil {
		return nil, err
	}
	delay, err := cfg.HelpDelay()
	if err != nil {
		return nil, err
	}
	b := cfg.Behavior
	return []session.Option{
		session.WithKeymap(km),
		session.WithOverrides(overrides),
		session.WithMathEnvironments(b.MathEnvironments...),
		session.WithPairs(b.Pairs),
		session.WithParenMath(b.ParenMath),
		session.WithSimplify(b.Simplify),
		session.WithAutoLabels(b.AutoLabel),
		session.WithHelpDelay(delay),
		session.WithWorkDir(app.workDir()),
	}, nil
}

// startSession creates the session reading keys from keys. ui adds the
// display options of the caller.
func (app *Application) startSession(keys input.KeyReader, ui ...session.Option) error {
	opts, err := app.sessionOptions(app.cfg)
	if err != nil {
		return fmt.Errorf("configuring session: %w", err)
	}
	opts = append(opts, ui...)
	opts = append(opts, session.WithLogger(app.logger.WithComponent("session")))
	if app.ext != nil {
		opts = append(opts, session.WithExtension(app.ext))
	}
	app.sess = session.New(app.doc, keys, opts...)
	return nil
}
