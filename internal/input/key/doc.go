// Package key provides key event types and parsing for keystroke input.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a keyboard key (special keys, function keys, or runes)
//   - Modifier: Represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: A single key press with modifiers and timestamp
//   - Sequence: A series of key events, used for scripted input
//
// # Key Specifications
//
// Key specifications can be written in multiple formats:
//
//   - Simple keys: "a", "`", "'", "Enter", "Escape"
//   - With modifiers: "Ctrl+G", "Alt+E", "Alt+Enter"
//   - Vim-style: "<C-g>", "<A-e>", "<CR>", "<Esc>", "<Tab>"
//
// Configuration files use these forms for the trigger key, the two prefix
// keys and the command bindings.
package key
