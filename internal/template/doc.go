// Package template inserts environment and item templates.
//
// An environment is looked up by exact name, then by unique prefix. An
// unknown name produces a bare \begin{name} \end{name} pair. After the
// template text is inserted its placeholders are resolved left to right,
// and the point moves to the first cursor marker.
//
// Only the inserted span is examined, so markers already present in the
// document are never touched.
package template
