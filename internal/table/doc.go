// Package table holds the configuration tables that drive expansion.
//
// There are four tables:
//
//   - Commands: keywords expanded by the trigger key.
//   - Environments: templates inserted by the environment and item commands.
//   - Symbols: multi-level math symbols read after the symbol prefix key.
//   - Modifiers: accents and fonts applied by the modify prefix key.
//
// Compile merges user overrides with the built-in defaults. User entries
// come first and deduplication keeps the first entry per key, so an
// override replaces the default with the same key. The result, Merged,
// is never modified; a session that needs different tables compiles a
// new value.
//
// # Templates
//
// Replacement and environment templates may contain these markers:
//
//	?           where the cursor lands
//	AUTOLABEL   replaced by \label{...} when labels are enabled
//	AUTOFILE    replaced by a path read from the user
//	AUTOINDENT  replaced by two spaces
//
// An item template beginning with \\ asks for a line separator before
// the insertion point; it is added only when missing.
package table
