package modify

import "fmt"

// ModeError reports a modifier that is not available in the current mode.
// The document is left unchanged.
type ModeError struct {
	Key  rune
	Mode string
}

// Error implements the error interface.
func (e *ModeError) Error() string {
	return fmt.Sprintf("modify: %q is not available in %s mode", e.Key, e.Mode)
}

// UserError marks ModeError as user-facing.
func (e *ModeError) UserError() bool { return true }

func modeName(math bool) string {
	if math {
		return "math"
	}
	return "text"
}
