// Package term is the terminal editing surface.
//
// Terminal owns a tcell screen and pumps its key events, converted to
// key.Event, into a channel read by the application's event loop. View
// draws the document together with a status line, the line being read by
// a prompt, and the deferred help of the prefix commands. View implements
// engine.HelpDisplay, prefix.Status and input.LineEditor so the editing
// commands can report to the user without knowing about the terminal.
//
// Screen access is single threaded: only the event loop draws. The pump
// goroutine only polls.
package term
