package table

import (
	"errors"
	"strings"
	"testing"
)

func TestCompileDefaultsOnly(t *testing.T) {
	m := Compile(Overrides{})
	if _, ok := m.Command("fr"); !ok {
		t.Error("default command fr missing")
	}
	if _, ok := m.EnvironmentExact("itemize"); !ok {
		t.Error("default environment itemize missing")
	}
	if m.Levels() != 3 {
		t.Errorf("Levels() = %d, want 3", m.Levels())
	}
}

func TestCompileOverridePrecedence(t *testing.T) {
	m := Compile(Overrides{
		Commands:     []Command{{Keyword: "fr", Replacement: "\\dfrac{?}{}", Math: true}},
		Environments: []Environment{{Name: "itemize", Body: "\\begin{itemize}\n\\item[] ?\n\\end{itemize}"}},
		Symbols:      []Symbol{{Key: 'a', Levels: []string{"\\aleph"}}},
		Modifiers:    []Modifier{{Key: 'b', Math: "\\boldsymbol", Command: true}},
	})

	if c, _ := m.Command("fr"); c.Replacement != "\\dfrac{?}{}" {
		t.Errorf("fr replacement = %q", c.Replacement)
	}
	if e, _ := m.EnvironmentExact("itemize"); !strings.Contains(e.Body, "\\item[]") {
		t.Errorf("itemize body = %q", e.Body)
	}
	if s, _ := m.SymbolAt('a', 1); s != "\\aleph" {
		t.Errorf("a level 1 = %q", s)
	}
	if md, _ := m.Modifier('b'); md.Math != "\\boldsymbol" || md.Text != "" {
		t.Errorf("b modifier = %+v", md)
	}
}

func TestCompileIdempotent(t *testing.T) {
	d := Defaults()
	once := CompileWith(Overrides{}, d)
	twice := CompileWith(d, d)

	if len(once.Commands()) != len(twice.Commands()) {
		t.Errorf("commands: %d vs %d", len(once.Commands()), len(twice.Commands()))
	}
	if len(once.Symbols()) != len(twice.Symbols()) {
		t.Errorf("symbols: %d vs %d", len(once.Symbols()), len(twice.Symbols()))
	}
	for _, c := range once.Commands() {
		got, ok := twice.Command(c.Keyword)
		if !ok || got.Replacement != c.Replacement || got.Action.String() != c.Action.String() {
			t.Errorf("lookup of %q changed", c.Keyword)
		}
	}
}

func TestDedupeKeepList(t *testing.T) {
	items := []string{"a", "b", "a", "c", "b"}
	id := func(s string) string { return s }

	got := Dedupe(items, id, nil)
	if strings.Join(got, "") != "abc" {
		t.Errorf("Dedupe = %v", got)
	}
	got = Dedupe(items, id, map[string]bool{"b": true})
	if strings.Join(got, "") != "abcb" {
		t.Errorf("Dedupe with keep = %v", got)
	}
}

func TestCompileKeepRetainsDuplicatesButFirstWins(t *testing.T) {
	m := Compile(Overrides{
		Symbols: []Symbol{{Key: 'a', Levels: []string{"\\aleph"}}},
		Keep:    []string{"a"},
	})
	n := 0
	for _, s := range m.Symbols() {
		if s.Key == 'a' {
			n++
		}
	}
	if n != 2 {
		t.Errorf("kept %d entries for a, want 2", n)
	}
	if s, _ := m.SymbolAt('a', 1); s != "\\aleph" {
		t.Errorf("lookup = %q, want the override", s)
	}
}

func TestEnvironmentPrefixLookup(t *testing.T) {
	m := Compile(Overrides{})
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"itemize", "itemize", true},
		{"item", "itemize", true},
		{"desc", "description", true},
		{"equation", "equation", true},
		{"eq", "", false},
		{"nosuch", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		env, ok := m.Environment(tt.name)
		if ok != tt.ok || env.Name != tt.want {
			t.Errorf("Environment(%q) = %q, %v; want %q, %v", tt.name, env.Name, ok, tt.want, tt.ok)
		}
	}
}

func TestDefaultEnvironmentsWellFormed(t *testing.T) {
	for _, env := range Defaults().Environments {
		if n := strings.Count(env.Body, "\\begin{"); n != 1 {
			t.Errorf("%s: %d \\begin, want 1", env.Name, n)
		}
		if n := strings.Count(env.Body, "\\end{"); n != 1 {
			t.Errorf("%s: %d \\end, want 1", env.Name, n)
		}
		if !strings.Contains(env.Body, "\\begin{"+env.Name+"}") {
			t.Errorf("%s: body does not open its own environment", env.Name)
		}
		if n := strings.Count(env.Body, "?"); n != 1 {
			t.Errorf("%s: %d cursor markers, want 1", env.Name, n)
		}
	}
}

func TestSymbolLevels(t *testing.T) {
	m := Compile(Overrides{})
	tests := []struct {
		key   rune
		level int
		want  string
		ok    bool
	}{
		{'a', 1, "\\alpha", true},
		{'a', 2, "", false},
		{'e', 2, "\\varepsilon", true},
		{'e', 3, "\\exp", true},
		{'c', 1, "", false},
		{'c', 3, "\\cos", true},
		{'a', 0, "", false},
		{'#', 1, "", false},
	}
	for _, tt := range tests {
		got, ok := m.SymbolAt(tt.key, tt.level)
		if got != tt.want || ok != tt.ok {
			t.Errorf("SymbolAt(%q, %d) = %q, %v", tt.key, tt.level, got, ok)
		}
	}
}

func TestSymbolLevelCycle(t *testing.T) {
	m := Compile(Overrides{})
	for _, s := range m.Symbols() {
		if !s.Defined() {
			continue
		}
		level := 1
		for i := 0; i < m.Levels(); i++ {
			level = level%m.Levels() + 1
		}
		if level != 1 {
			t.Fatalf("after %d presses level = %d", m.Levels(), level)
		}
	}
}

func TestModifierFor(t *testing.T) {
	m := Compile(Overrides{})
	tilde, _ := m.Modifier('~')
	if macro, ok := tilde.For(true); !ok || macro != "\\tilde" {
		t.Errorf("~ math = %q, %v", macro, ok)
	}
	if _, ok := tilde.For(false); ok {
		t.Error("~ should have no text form")
	}
	bold, _ := m.Modifier('b')
	if macro, ok := bold.For(false); !ok || macro != "\\textbf" {
		t.Errorf("b text = %q, %v", macro, ok)
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"", nil, "none", false},
		{"position-cursor", nil, "position-cursor", false},
		{"Environment", []string{"itemize"}, "environment(itemize)", false},
		{"lua", []string{"my_fn", "x"}, "lua(my_fn, x)", false},
		{"lua", nil, "", true},
		{"explode", nil, "", true},
	}
	for _, tt := range tests {
		a, err := ParseAction(tt.name, tt.args)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidAction) {
				t.Errorf("ParseAction(%q) err = %v, want ErrInvalidAction", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAction(%q) error: %v", tt.name, err)
			continue
		}
		if a.String() != tt.want {
			t.Errorf("ParseAction(%q) = %s, want %s", tt.name, a, tt.want)
		}
	}
}

func TestCommandActiveIn(t *testing.T) {
	m := Compile(Overrides{})
	fr, _ := m.Command("fr")
	if !fr.ActiveIn(true) || fr.ActiveIn(false) {
		t.Error("fr should be math only")
	}
	ite, _ := m.Command("ite")
	if ite.ActiveIn(true) || !ite.ActiveIn(false) {
		t.Error("ite should be text only")
	}
}
