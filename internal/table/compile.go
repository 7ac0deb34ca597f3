package table

import (
	"sort"
	"strings"
)

// Overrides are the user supplied entries placed before the defaults.
type Overrides struct {
	Commands     []Command
	Environments []Environment
	Symbols      []Symbol
	Modifiers    []Modifier
	// Keep lists keys exempt from deduplication in every table.
	// Single character keys name symbols and modifiers.
	Keep []string
}

// Merged is the compiled set of tables for one session.
type Merged struct {
	commands     []Command
	environments []Environment
	symbols      []Symbol
	modifiers    []Modifier
	levels       int

	commandIndex map[string]int
	envIndex     map[string]int
	symbolIndex  map[rune]int
	modIndex     map[rune]int
}

// Compile merges overrides with the built-in defaults.
func Compile(o Overrides) *Merged {
	return CompileWith(o, Defaults())
}

// CompileWith merges overrides with the given defaults.
func CompileWith(o Overrides, d Overrides) *Merged {
	keep := make(map[string]bool, len(o.Keep)+len(d.Keep))
	for _, k := range append(append([]string(nil), o.Keep...), d.Keep...) {
		keep[k] = true
	}

	m := &Merged{
		commands: Dedupe(concat(o.Commands, d.Commands),
			func(c Command) string { return c.Keyword }, keep),
		environments: Dedupe(concat(o.Environments, d.Environments),
			func(e Environment) string { return e.Name }, keep),
		symbols: Dedupe(concat(o.Symbols, d.Symbols),
			func(s Symbol) string { return string(s.Key) }, keep),
		modifiers: Dedupe(concat(o.Modifiers, d.Modifiers),
			func(md Modifier) string { return string(md.Key) }, keep),
	}

	m.commandIndex = firstIndex(m.commands, func(c Command) string { return c.Keyword })
	m.envIndex = firstIndex(m.environments, func(e Environment) string { return e.Name })
	m.symbolIndex = firstIndex(m.symbols, func(s Symbol) rune { return s.Key })
	m.modIndex = firstIndex(m.modifiers, func(md Modifier) rune { return md.Key })

	for _, s := range m.symbols {
		if len(s.Levels) > m.levels {
			m.levels = len(s.Levels)
		}
	}
	return m
}

// Dedupe returns items without later duplicates, preserving order.
// Keys present in keep are never removed.
func Dedupe[T any](items []T, keyOf func(T) string, keep map[string]bool) []T {
	seen := make(map[string]bool, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		k := keyOf(it)
		if seen[k] && !keep[k] {
			continue
		}
		seen[k] = true
		out = append(out, it)
	}
	return out
}

func concat[T any](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func firstIndex[T any, K comparable](items []T, keyOf func(T) K) map[K]int {
	idx := make(map[K]int, len(items))
	for i, it := range items {
		k := keyOf(it)
		if _, ok := idx[k]; !ok {
			idx[k] = i
		}
	}
	return idx
}

// Levels is the number of symbol levels.
func (m *Merged) Levels() int { return m.levels }

// Command looks up a keyword.
func (m *Merged) Command(keyword string) (Command, bool) {
	i, ok := m.commandIndex[keyword]
	if !ok {
		return Command{}, false
	}
	return m.commands[i], true
}

// EnvironmentExact looks up an environment by its full name.
func (m *Merged) EnvironmentExact(name string) (Environment, bool) {
	i, ok := m.envIndex[name]
	if !ok {
		return Environment{}, false
	}
	return m.environments[i], true
}

// Environment looks up an environment by exact name, or else by a
// prefix that matches exactly one environment name.
func (m *Merged) Environment(name string) (Environment, bool) {
	if env, ok := m.EnvironmentExact(name); ok {
		return env, true
	}
	if name == "" {
		return Environment{}, false
	}
	found := -1
	for n, i := range m.envIndex {
		if !strings.HasPrefix(n, name) {
			continue
		}
		if found >= 0 {
			return Environment{}, false
		}
		found = i
	}
	if found < 0 {
		return Environment{}, false
	}
	return m.environments[found], true
}

// EnvironmentNames returns the distinct environment names, sorted.
func (m *Merged) EnvironmentNames() []string {
	names := make([]string, 0, len(m.envIndex))
	for n := range m.envIndex {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Symbol looks up a symbol key.
func (m *Merged) Symbol(key rune) (Symbol, bool) {
	i, ok := m.symbolIndex[key]
	if !ok {
		return Symbol{}, false
	}
	return m.symbols[i], true
}

// SymbolAt returns the macro bound to key at the 1-based level.
func (m *Merged) SymbolAt(key rune, level int) (string, bool) {
	s, ok := m.Symbol(key)
	if !ok {
		return "", false
	}
	return s.At(level)
}

// Modifier looks up a modifier key.
func (m *Merged) Modifier(key rune) (Modifier, bool) {
	i, ok := m.modIndex[key]
	if !ok {
		return Modifier{}, false
	}
	return m.modifiers[i], true
}

// Commands returns the merged command list.
func (m *Merged) Commands() []Command { return append([]Command(nil), m.commands...) }

// Environments returns the merged environment list.
func (m *Merged) Environments() []Environment {
	return append([]Environment(nil), m.environments...)
}

// Symbols returns the merged symbol list.
func (m *Merged) Symbols() []Symbol { return append([]Symbol(nil), m.symbols...) }

// Modifiers returns the merged modifier list.
func (m *Merged) Modifiers() []Modifier { return append([]Modifier(nil), m.modifiers...) }
