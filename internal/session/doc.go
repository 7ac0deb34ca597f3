// Package session holds the editing state of one document and routes
// keystrokes to the expansion commands.
//
// A Session owns the compiled tables and the command components built
// over them: the keyword dispatcher, template inserter, symbol and modify
// prefix commands and the delimiter pair inserter. HandleKey routes one
// keystroke to exactly one handler. Every command runs against a
// snapshot of the document and is rolled back when it fails or is
// canceled; failures are reported on the status line and never end the
// session.
//
// Reset recompiles the tables from new overrides and rebuilds the
// components, which is how configuration reloads take effect.
package session
