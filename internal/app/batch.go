package app

import (
	"context"
	"fmt"
	"io"

	"github.com/dshills/texpand/internal/input"
	"github.com/dshills/texpand/internal/session"
)

// BatchOptions configures RunBatch.
type BatchOptions struct {
	// Script is the key script, in key notation with "<Idle>" steps.
	Script string
	// Write saves the result to the file instead of printing it.
	Write bool
	// ShowPoint marks the point with "|" in the printed result.
	ShowPoint bool
}

// logStatus sends status messages to the log.
type logStatus struct {
	logger *Logger
	last   string
}

func (s *logStatus) SetStatus(msg string) {
	s.last = msg
	if msg != "" {
		s.logger.Debug("status: %s", msg)
	}
}

// RunBatch replays a key script against the document.
func (app *Application) RunBatch(ctx context.Context, opts BatchOptions) error {
	keys, err := input.NewScriptReader(opts.Script)
	if err != nil {
		return fmt.Errorf("parsing key script: %w", err)
	}
	status := &logStatus{logger: app.logger.WithComponent("status")}
	if err := app.startSession(keys, session.WithStatus(status)); err != nil {
		return err
	}
	if err := app.sess.Run(ctx); err != nil {
		return err
	}
	if status.last != "" {
		app.logger.Info("last message: %s", status.last)
	}

	if opts.Write {
		return app.Save()
	}
	text := app.doc.Text()
	if opts.ShowPoint {
		p := app.doc.Point()
		text = text[:p] + "|" + text[p:]
	}
	_, err = io.WriteString(app.opts.Stdout, text)
	return err
}
