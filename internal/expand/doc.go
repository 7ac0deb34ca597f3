// Package expand implements the trigger key.
//
// One press of the trigger key runs this pipeline, stopping at the first
// step that applies:
//
//  1. Trigger hooks, in registration order. A hook that reports it
//     handled the key ends the pipeline.
//  2. Keyword expansion. The word before the point is looked up in the
//     command table; if the command is active in the current mode the
//     word is replaced and the command's action runs.
//  3. Closing brackets. With the point before ), ] or }, a braced single
//     character script such as x^{2} is simplified to x^2, and the point
//     steps over the bracket. It stops there unless a script or another
//     group follows.
//  4. Cursor advance. The point moves forward to the next place where more
//     input belongs, decided by the rules in PreludeRules and LoopRules.
//
// Actions are dispatched through Builtins, which the session implements.
package expand
