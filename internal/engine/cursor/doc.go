// Package cursor tracks point and mark.
//
// A Selection is an immutable value; a collapsed one is a plain cursor.
// Edits move it with Selection.Apply.
package cursor
