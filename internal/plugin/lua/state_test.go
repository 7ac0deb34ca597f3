package lua

import (
	"context"
	"errors"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

func TestStateDoString(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(context.Background(), `x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := state.GetGlobal("x"); got != glua.LNumber(2) {
		t.Errorf("x = %v, want 2", got)
	}
}

func TestStateDoStringSyntaxError(t *testing.T) {
	state := NewState()
	defer state.Close()

	err := state.DoString(context.Background(), `x = `)
	var se *ScriptError
	if !errors.As(err, &se) {
		t.Fatalf("DoString() error = %v, want *ScriptError", err)
	}
}

func TestStateCallGlobal(t *testing.T) {
	state := NewState()
	defer state.Close()

	if top := state.L.GetTop(); top != 0 {
		t.Fatalf("stack top = %d after NewState, want 0", top)
	}

	ctx := context.Background()
	if err := state.DoString(ctx, `function pair(a, b) return b, a end`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	results, err := state.CallGlobal(ctx, "pair", glua.LString("x"), glua.LString("y"))
	if err != nil {
		t.Fatalf("CallGlobal() error = %v", err)
	}
	if len(results) != 2 || results[0].String() != "y" || results[1].String() != "x" {
		t.Errorf("CallGlobal() = %v, want [y x]", results)
	}
	if top := state.L.GetTop(); top != 0 {
		t.Errorf("stack top = %d after call, want 0", top)
	}
}

func TestStateCallErrors(t *testing.T) {
	state := NewState()
	defer state.Close()

	ctx := context.Background()
	if err := state.DoString(ctx, `notfn = 3; function boom() error("bad") end`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	tests := []struct {
		name string
		fn   string
	}{
		{"missing", "nothing"},
		{"not a function", "notfn"},
		{"raises", "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := state.CallGlobal(ctx, tt.fn)
			var se *ScriptError
			if !errors.As(err, &se) {
				t.Fatalf("CallGlobal(%q) error = %v, want *ScriptError", tt.fn, err)
			}
			if se.Name != tt.fn {
				t.Errorf("ScriptError.Name = %q, want %q", se.Name, tt.fn)
			}
		})
	}
}

func TestStateTimeout(t *testing.T) {
	state := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer state.Close()

	err := state.DoString(context.Background(), `while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Errorf("DoString() error = %v, want ErrExecutionTimeout", err)
	}
}

func TestStateClosed(t *testing.T) {
	state := NewState()
	if err := state.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !state.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := state.DoString(context.Background(), `x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() error = %v, want ErrStateClosed", err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
