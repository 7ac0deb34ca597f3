package engine

import (
	"errors"
	"fmt"
)

// ErrCanceled is returned when the user aborts an interactive read.
// Callers roll the document back and report nothing.
var ErrCanceled = errors.New("canceled")

// CommandError is a user-facing failure of a command. The document is left
// exactly as it was before the command ran.
type CommandError struct {
	// Command names the command that failed.
	Command string
	// Msg describes the failure.
	Msg string
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Msg)
}

// Errorf creates a CommandError for the named command.
func Errorf(command, format string, args ...any) error {
	return &CommandError{Command: command, Msg: fmt.Sprintf(format, args...)}
}

// UserError reports that the error is meant for the user.
func (e *CommandError) UserError() bool { return true }

// IsUserError reports whether err should be shown to the user.
// Errors opt in by implementing UserError() bool.
func IsUserError(err error) bool {
	var ue interface{ UserError() bool }
	return errors.As(err, &ue) && ue.UserError()
}
