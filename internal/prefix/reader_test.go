package prefix

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dshills/texpand/internal/engine"
	"github.com/dshills/texpand/internal/input"
	"github.com/dshills/texpand/internal/input/key"
	"github.com/dshills/texpand/internal/table"
)

type recordingHelp struct {
	shows  []int
	levels []string
	hides  int
	height int
}

func (h *recordingHelp) Show(lines []string, scroll int) {
	h.shows = append(h.shows, scroll)
	h.levels = append(h.levels, lines[0])
}

func (h *recordingHelp) Hide() { h.hides++ }

func (h *recordingHelp) Height() int { return h.height }

type recordingStatus struct{ msgs []string }

func (s *recordingStatus) SetStatus(msg string) { s.msgs = append(s.msgs, msg) }

var backtick = key.NewRuneEvent('`', key.ModNone)

func run(t *testing.T, script string, spec Spec, opts ...Option) (Result, error) {
	t.Helper()
	keys, err := input.NewScriptReader(script)
	if err != nil {
		t.Fatal(err)
	}
	return NewReader(keys, opts...).Run(context.Background(), spec)
}

func levelHelp(level int) []string {
	return []string{"level " + string(rune('0'+level)), "a", "b", "c", "d", "e"}
}

func cycleSpec() Spec {
	return Spec{Prompt: "Symbol", PrefixKey: backtick, StartLevel: 1, MaxLevel: 3, Help: levelHelp}
}

func TestRunLevels(t *testing.T) {
	tests := []struct {
		script string
		level  int
		key    rune
	}{
		{"a", 1, 'a'},
		{"`a", 2, 'a'},
		{"``a", 3, 'a'},
		{"```a", 1, 'a'},
		{"````a", 2, 'a'},
	}
	for _, tt := range tests {
		res, err := run(t, tt.script, cycleSpec())
		if err != nil {
			t.Fatalf("%q: %v", tt.script, err)
		}
		if res.Level != tt.level || res.Key.Rune != tt.key || res.SelfInsert {
			t.Errorf("%q: got %+v", tt.script, res)
		}
	}
}

func TestRunPrefixReturnsToFirstLevel(t *testing.T) {
	for levels := 1; levels <= 4; levels++ {
		spec := cycleSpec()
		spec.MaxLevel = levels
		res, err := run(t, strings.Repeat("`", levels)+"x", spec)
		if err != nil {
			t.Fatal(err)
		}
		if res.Level != 1 {
			t.Errorf("levels=%d: level after full cycle = %d", levels, res.Level)
		}
	}
}

func TestRunExitOnPrefix(t *testing.T) {
	spec := Spec{PrefixKey: key.NewRuneEvent('\'', key.ModNone), StartLevel: 1, MaxLevel: 2, OnPrefix: Exit}
	res, err := run(t, "'", spec)
	if err != nil {
		t.Fatal(err)
	}
	if !res.SelfInsert || res.Key.Rune != '\'' {
		t.Errorf("got %+v", res)
	}
}

func TestRunCancel(t *testing.T) {
	help := &recordingHelp{height: 2}
	_, err := run(t, "`<Idle><C-g>", cycleSpec(), WithHelp(help))
	if !errors.Is(err, engine.ErrCanceled) {
		t.Fatalf("err = %v, want ErrCanceled", err)
	}
	if help.hides != 1 {
		t.Errorf("help hidden %d times, want 1", help.hides)
	}
}

func TestRunIdleShowsHelp(t *testing.T) {
	help := &recordingHelp{height: 10}
	res, err := run(t, "<Idle>`a", cycleSpec(), WithHelp(help), WithDelay(time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if res.Level != 2 {
		t.Errorf("level = %d", res.Level)
	}
	if len(help.shows) != 2 {
		t.Fatalf("help shown %d times, want 2", len(help.shows))
	}
	if help.levels[1] != "level 2" {
		t.Errorf("help not re-rendered for new level: %v", help.levels)
	}
}

func TestRunHelpKeyScrollsThenHides(t *testing.T) {
	help := &recordingHelp{height: 2}
	// 6 lines, page of 2: show at 0, scroll to 2, scroll to 4, then hide.
	res, err := run(t, "????x", cycleSpec(), WithHelp(help))
	if err != nil {
		t.Fatal(err)
	}
	if res.Key.Rune != 'x' {
		t.Errorf("key = %v", res.Key)
	}
	want := []int{0, 2, 4}
	if len(help.shows) != len(want) {
		t.Fatalf("shows = %v, want %v", help.shows, want)
	}
	for i := range want {
		if help.shows[i] != want[i] {
			t.Errorf("shows = %v, want %v", help.shows, want)
		}
	}
	if help.hides != 1 {
		t.Errorf("hides = %d, want 1", help.hides)
	}
}

func TestRunStatus(t *testing.T) {
	status := &recordingStatus{}
	if _, err := run(t, "`a", cycleSpec(), WithStatus(status)); err != nil {
		t.Fatal(err)
	}
	if len(status.msgs) < 3 {
		t.Fatalf("status = %q", status.msgs)
	}
	if status.msgs[0] != "Symbol [level 1/3]" || status.msgs[1] != "Symbol [level 2/3]" {
		t.Errorf("status = %q", status.msgs)
	}
	if status.msgs[len(status.msgs)-1] != "" {
		t.Error("status not cleared")
	}
}

func TestRunSourceClosed(t *testing.T) {
	_, err := run(t, "``", cycleSpec())
	if !errors.Is(err, input.ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
}

func TestColumns(t *testing.T) {
	lines := Columns([][]string{
		{"key", "level 1"},
		{"α", "\\alpha"},
		{"ab", "x"},
	})
	if lines[1] != "α    \\alpha" {
		t.Errorf("line 1 = %q", lines[1])
	}
	if lines[2] != "ab   x" {
		t.Errorf("line 2 = %q", lines[2])
	}
}

func TestSymbolHelp(t *testing.T) {
	tables := table.Compile(table.Overrides{})
	lines := SymbolHelp(tables, 2, []string{"Alt+a inserts level 1"})
	if !strings.Contains(lines[1], "[level 2]") {
		t.Errorf("header = %q", lines[1])
	}
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"\\alpha", "\\varepsilon", "\\exp", "Alt+a inserts level 1"} {
		if !strings.Contains(joined, want) {
			t.Errorf("help lacks %q", want)
		}
	}
}

func TestModifierHelp(t *testing.T) {
	tables := table.Compile(table.Overrides{})
	lines := ModifierHelp(tables, false)
	if !strings.Contains(lines[1], "[text]") {
		t.Errorf("header = %q", lines[1])
	}
	if !strings.Contains(strings.Join(lines, "\n"), "\\textbf") {
		t.Error("help lacks \\textbf")
	}
}
