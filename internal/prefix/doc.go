// Package prefix implements the read loop behind the prefix keys.
//
// After a prefix key the reader waits for one more key. Pressing the
// prefix key again either selects the next level or, for readers that do
// not cycle, ends the loop so the caller can insert the prefix itself.
// The help key shows a table of bindings and scrolls it; the cancel key
// aborts with engine.ErrCanceled.
//
// When the user waits longer than the idle delay the help appears by
// itself, and the reader then waits without a deadline.
package prefix
