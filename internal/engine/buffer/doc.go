// Package buffer provides the text buffer the expansion engine edits.
//
// A Buffer holds a document as a single UTF-8 string and exposes byte-offset
// based reads and edits. Documents handled by the engine are source files
// typed by a person, so a flat string is enough; every edit reallocates.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("x^{2}")
//	buf.Delete(2, 3)          // "x^2}"
//	buf.Delete(3, 4)          // "x^2"
//	buf.Insert(3, " + y")     // "x^2 + y"
//
// Position Types:
//
//   - ByteOffset: raw byte position in the buffer
//   - Point: line and column position (0-indexed, column in bytes)
//   - Range: half-open byte range [Start, End)
//   - Edit: a Range replaced by new text
//
// A Buffer is owned by a single goroutine. The engine processes one keystroke
// at a time, so no locking is done here.
package buffer
