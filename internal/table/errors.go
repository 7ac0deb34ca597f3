package table

import "errors"

// Errors returned when building table entries from configuration.
var (
	// ErrInvalidAction indicates an unknown or malformed action.
	ErrInvalidAction = errors.New("invalid action")

	// ErrInvalidKey indicates a symbol or modifier key that is not one character.
	ErrInvalidKey = errors.New("invalid key")
)
