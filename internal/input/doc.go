// Package input delivers key events to the interactive commands.
//
// Commands that read further keys (the prefix symbol reader, the modify
// engine, prompts) do so through a KeyReader. A KeyReader can wait with
// a deadline, which is how the prefix reader decides that the user is
// hesitating and should be shown help.
//
// # Readers
//
//   - ChanReader: reads from a channel fed by the terminal backend.
//   - ScriptReader: replays a key script for batch mode and tests. The
//     pseudo key "<Idle>" in a script makes the next timed read expire.
//
// # Usage
//
//	r, err := input.NewScriptReader("`<Idle>a")
//	ev, err := r.ReadKey(ctx, 1500*time.Millisecond)
//	if errors.Is(err, input.ErrTimeout) {
//	    // show help, then read again without a deadline
//	}
package input
