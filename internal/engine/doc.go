// Package engine provides the editing surface the expansion components work
// on: a Document (buffer plus point and mark) and the contracts of the
// collaborators the engine consults but does not own.
//
// # Architecture
//
// The engine is built on two sub-packages:
//
//   - buffer: string-backed text storage with byte offsets and edits
//   - cursor: point/mark selection values and edit transforms
//
// Collaborators:
//
//   - MathDetector: reports whether the point is in math mode
//   - LabelGenerator: produces label text for AUTOLABEL placeholders
//   - PathPrompter: asks for a file path for AUTOFILE placeholders
//   - Prompter: reads a line of input (environment names)
//   - HelpDisplay: shows the deferred help of the prefix readers
//
// # Cursor Marker
//
// Templates mark the cursor destination with CursorMarker. ResolveCursor
// removes the first marker inside a freshly inserted span and leaves the
// point there.
//
// # Concurrency
//
// A Document is owned by the goroutine processing keystrokes. Nothing in
// this package locks.
package engine
