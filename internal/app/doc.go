// Package app wires configuration, logging, the Lua extension and a
// session into the texpand program.
//
// An Application edits one document. RunBatch replays a key script
// against it and prints or saves the result; RunTerminal edits it on a
// terminal. In the terminal the event loop is the only goroutine that
// touches the session: key events and configuration change batches from
// the file watcher arrive on channels and are handled one at a time, so
// a reload never interrupts a command.
package app
