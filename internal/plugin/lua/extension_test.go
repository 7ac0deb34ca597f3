package lua

import (
	"context"
	"fmt"
	"testing"

	"github.com/dshills/texpand/internal/engine"
	"github.com/dshills/texpand/internal/texmath"
)

type captureLogger struct {
	lines []string
}

func (c *captureLogger) Info(msg string, args ...any) {
	c.lines = append(c.lines, fmt.Sprintf(msg, args...))
}

func newExtension(t *testing.T, code string, opts ...Option) *Extension {
	t.Helper()
	ext := New(texmath.New(), opts...)
	t.Cleanup(func() { ext.Close() })
	if err := ext.LoadString(context.Background(), code); err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	return ext
}

const ellipsisHook = `
texpand.add_trigger_hook(function()
    if texpand.text_before(2) == ".." then
        texpand.delete_before(2)
        texpand.insert("\\ldots")
        return true
    end
    return false
end)
`

func TestExtensionTriggerHook(t *testing.T) {
	ext := newExtension(t, ellipsisHook)
	if ext.HookCount() != 1 {
		t.Fatalf("HookCount() = %d, want 1", ext.HookCount())
	}

	tests := []struct {
		name        string
		doc         string
		wantHandled bool
		wantText    string
	}{
		{"handled", "a..|", true, "a\\ldots"},
		{"declined", "a.|", false, "a."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := engine.NewDocumentAt(tt.doc, -1)
			handled, err := ext.RunTriggerHook(context.Background(), doc)
			if err != nil {
				t.Fatalf("RunTriggerHook() error = %v", err)
			}
			if handled != tt.wantHandled {
				t.Errorf("handled = %v, want %v", handled, tt.wantHandled)
			}
			if doc.Text() != tt.wantText {
				t.Errorf("text = %q, want %q", doc.Text(), tt.wantText)
			}
		})
	}
}

func TestExtensionHookError(t *testing.T) {
	ext := newExtension(t, `texpand.add_trigger_hook(function() error("nope") end)`)
	doc := engine.NewDocument("x")
	if _, err := ext.RunTriggerHook(context.Background(), doc); err == nil {
		t.Error("RunTriggerHook() error = nil, want error")
	}
}

func TestExtensionInMath(t *testing.T) {
	ext := newExtension(t, `texpand.add_trigger_hook(function()
        texpand.insert(texpand.in_math() and "M" or "T")
        return true
    end)`)

	tests := []struct {
		doc  string
		want string
	}{
		{"$x|$", "$xM$"},
		{"x|", "xT"},
	}
	for _, tt := range tests {
		doc := engine.NewDocumentAt(tt.doc, -1)
		if _, err := ext.RunTriggerHook(context.Background(), doc); err != nil {
			t.Fatalf("RunTriggerHook() error = %v", err)
		}
		if doc.Text() != tt.want {
			t.Errorf("%q: text = %q, want %q", tt.doc, doc.Text(), tt.want)
		}
	}
}

func TestExtensionLabelGenerator(t *testing.T) {
	ext := New(texmath.New())
	defer ext.Close()

	if _, ok := ext.LabelGenerator(); ok {
		t.Fatal("LabelGenerator() ok = true without generate_label")
	}
	if err := ext.LoadString(context.Background(), `function generate_label(env) return env:sub(1, 2) .. ":x" end`); err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	gen, ok := ext.LabelGenerator()
	if !ok {
		t.Fatal("LabelGenerator() ok = false")
	}
	label, err := gen.GenerateLabel("equation")
	if err != nil {
		t.Fatalf("GenerateLabel() error = %v", err)
	}
	if label != "eq:x" {
		t.Errorf("GenerateLabel() = %q, want %q", label, "eq:x")
	}
}

func TestExtensionCallAction(t *testing.T) {
	ext := newExtension(t, `
function wrap(name, arg)
    return "\\" .. name .. "{?}" .. arg
end
function side_effect()
    texpand.insert("!")
end
`)

	tests := []struct {
		name      string
		fn        string
		args      []string
		want      string
		wantPoint engine.ByteOffset
	}{
		{"string result", "wrap", []string{"textbf", "."}, "a\\textbf{}.", 9},
		{"side effect", "side_effect", nil, "a!", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := engine.NewDocument("a")
			if err := ext.CallAction(context.Background(), doc, tt.fn, tt.args); err != nil {
				t.Fatalf("CallAction() error = %v", err)
			}
			if doc.Text() != tt.want {
				t.Errorf("text = %q, want %q", doc.Text(), tt.want)
			}
			if doc.Point() != tt.wantPoint {
				t.Errorf("point = %d, want %d", doc.Point(), tt.wantPoint)
			}
		})
	}

	if err := ext.CallAction(context.Background(), engine.NewDocument(""), "missing", nil); err == nil {
		t.Error("CallAction(missing) error = nil, want error")
	}
}

func TestExtensionLog(t *testing.T) {
	logger := &captureLogger{}
	newExtension(t, `texpand.log("loaded"); print("hi")`, WithLogger(logger))

	want := []string{"lua: loaded", "lua: hi"}
	if fmt.Sprint(logger.lines) != fmt.Sprint(want) {
		t.Errorf("logged %q, want %q", logger.lines, want)
	}
}
