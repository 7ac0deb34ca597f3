package input

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dshills/texpand/internal/input/key"
)

func TestScriptReaderIdle(t *testing.T) {
	r, err := NewScriptReader("`<Idle>a")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	ev, err := r.ReadKey(ctx, time.Second)
	if err != nil || ev.Rune != '`' {
		t.Fatalf("first read = %v, %v", ev, err)
	}
	if _, err := r.ReadKey(ctx, time.Second); !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	ev, err = r.ReadKey(ctx, NoTimeout)
	if err != nil || ev.Rune != 'a' {
		t.Fatalf("third read = %v, %v", ev, err)
	}
	if _, err := r.ReadKey(ctx, NoTimeout); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestScriptReaderIdleSkippedWithoutDeadline(t *testing.T) {
	r, err := NewScriptReader("<Idle>x")
	if err != nil {
		t.Fatal(err)
	}
	ev, err := r.ReadKey(context.Background(), NoTimeout)
	if err != nil || ev.Rune != 'x' {
		t.Fatalf("read = %v, %v", ev, err)
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining() = %d", r.Remaining())
	}
}

func TestScriptReaderCanceled(t *testing.T) {
	r, _ := NewScriptReader("x")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.ReadKey(ctx, NoTimeout); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestChanReader(t *testing.T) {
	events := make(chan key.Event, 1)
	r := NewChanReader(events, nil)
	ctx := context.Background()

	if _, err := r.ReadKey(ctx, 10*time.Millisecond); !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}

	events <- key.NewRuneEvent('q', key.ModNone)
	ev, err := r.ReadKey(ctx, time.Second)
	if err != nil || ev.Rune != 'q' {
		t.Fatalf("read = %v, %v", ev, err)
	}

	close(events)
	if _, err := r.ReadKey(ctx, NoTimeout); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestChanReaderDone(t *testing.T) {
	done := make(chan struct{})
	close(done)
	r := NewChanReader(make(chan key.Event), done)
	if _, err := r.ReadKey(context.Background(), NoTimeout); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

type recordingView struct{ lines []string }

func (v *recordingView) ShowLine(prompt, text string) { v.lines = append(v.lines, prompt+text) }

func TestReadLine(t *testing.T) {
	tests := []struct {
		name        string
		script      string
		completions []string
		want        string
		wantErr     error
	}{
		{"plain", "chap1.tex<CR>", nil, "chap1.tex", nil},
		{"backspace", "abx<BS>c<CR>", nil, "abc", nil},
		{"unique completion", "eq<Tab><CR>", []string{"equation", "figure"}, "equation", nil},
		{"common prefix", "e<Tab><CR>", []string{"equation", "equation*", "enumerate"}, "e", nil},
		{"extend prefix", "eq<Tab>*<CR>", []string{"equation", "equation*"}, "equation*", nil},
		{"abort", "abc<C-g>", nil, "", ErrAborted},
		{"closed", "abc", nil, "", ErrClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewScriptReader(tt.script)
			if err != nil {
				t.Fatal(err)
			}
			view := &recordingView{}
			got, err := ReadLine(context.Background(), r, "Env: ", tt.completions, view)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ReadLine = %q, want %q", got, tt.want)
			}
			if len(view.lines) == 0 || view.lines[0] != "Env: " {
				t.Errorf("view not updated: %q", view.lines)
			}
		})
	}
}

func TestComplete(t *testing.T) {
	cands := []string{"align", "align*", "alignat"}
	if got := Complete("ali", cands); got != "align" {
		t.Errorf("Complete = %q", got)
	}
	if got := Complete("x", cands); got != "x" {
		t.Errorf("Complete no match = %q", got)
	}
}
