package app

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/dshills/texpand/internal/config"
)

// Reload re-reads the configuration and the Lua scripts and applies them
// to the running session. On error the running configuration is kept.
func (app *Application) Reload(ctx context.Context) error {
	if app.sess == nil {
		return ErrNoSession
	}
	cfg, err := config.Load(app.cfgPath, app.cfgRequired)
	if err != nil {
		return err
	}
	opts, err := app.sessionOptions(cfg)
	if err != nil {
		return err
	}
	ext, err := app.newExtension(ctx, cfg)
	if err != nil {
		return err
	}

	old := app.ext
	app.cfg, app.ext = cfg, ext
	app.logger.SetLevel(app.logLevel(cfg))
	app.sess.SetExtension(ext)
	app.sess.Reconfigure(opts...)
	if old != nil {
		_ = old.Close()
	}
	app.logger.Info("configuration reloaded")
	return nil
}

// watchPaths lists the files whose change triggers a reload. The main
// file is watched even before it exists, provided its directory does.
func (app *Application) watchPaths() []string {
	var paths []string
	candidates := append([]string{app.cfgPath}, app.cfg.WatchPaths()...)
	for _, p := range candidates {
		if p == "" || slices.Contains(paths, p) {
			continue
		}
		if _, err := os.Stat(filepath.Dir(p)); err != nil {
			continue
		}
		paths = append(paths, p)
	}
	return paths
}
