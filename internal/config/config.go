package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dshills/texpand/internal/input/key"
	"github.com/dshills/texpand/internal/pair"
	"github.com/dshills/texpand/internal/session"
	"github.com/dshills/texpand/internal/table"
)

// FileName is the name of the main configuration file.
const FileName = "config.toml"

// Config is the loaded configuration.
type Config struct {
	Keys     Keys     `toml:"keys"`
	Behavior Behavior `toml:"behavior"`

	// TablesFile names an optional YAML tables file.
	TablesFile string `toml:"tables"`
	// Lua lists extension scripts, loaded in order.
	Lua []string `toml:"lua"`

	// Table entries from the main file.
	Tables

	// Extra holds the entries of the tables file.
	Extra Tables `toml:"-"`

	path string
}

// Keys binds the session commands. Values use the key notation of
// key.Parse; an empty value leaves a command unbound.
type Keys struct {
	Trigger      string `toml:"trigger"`
	SymbolPrefix string `toml:"symbol_prefix"`
	ModifyPrefix string `toml:"modify_prefix"`
	Environment  string `toml:"environment"`
	Item         string `toml:"item"`
	LRPair       string `toml:"lr_pair"`
	File         string `toml:"file"`
	Label        string `toml:"label"`
	Mark         string `toml:"mark"`
	// Direct lists a modifier set per symbol level, e.g. "Alt+Shift".
	Direct []string `toml:"direct"`
}

// Behavior holds the remaining settings.
type Behavior struct {
	Pairs            string   `toml:"pairs"`
	ParenMath        bool     `toml:"paren_math"`
	Simplify         bool     `toml:"simplify"`
	AutoLabel        bool     `toml:"auto_label"`
	HelpDelay        string   `toml:"help_delay"`
	MathEnvironments []string `toml:"math_environments"`
	LogLevel         string   `toml:"log_level"`
}

// Tables are user entries merged over the built-in tables.
type Tables struct {
	Commands     []CommandEntry     `toml:"commands" yaml:"commands"`
	Environments []EnvironmentEntry `toml:"environments" yaml:"environments"`
	Symbols      []SymbolEntry      `toml:"symbols" yaml:"symbols"`
	Modifiers    []ModifierEntry    `toml:"modifiers" yaml:"modifiers"`
	Keep         []string           `toml:"keep" yaml:"keep"`
}

// CommandEntry is a keyword table entry.
type CommandEntry struct {
	Keyword     string   `toml:"keyword" yaml:"keyword"`
	Doc         string   `toml:"doc" yaml:"doc"`
	Replacement string   `toml:"replacement" yaml:"replacement"`
	Action      string   `toml:"action" yaml:"action"`
	Args        []string `toml:"args" yaml:"args"`
	Text        bool     `toml:"text" yaml:"text"`
	Math        bool     `toml:"math" yaml:"math"`
}

// EnvironmentEntry is an environment template entry.
type EnvironmentEntry struct {
	Name string `toml:"name" yaml:"name"`
	Body string `toml:"body" yaml:"body"`
	Item string `toml:"item" yaml:"item"`
}

// SymbolEntry binds a key to one macro per level.
type SymbolEntry struct {
	Key    string   `toml:"key" yaml:"key"`
	Levels []string `toml:"levels" yaml:"levels"`
}

// ModifierEntry is a modify table entry.
type ModifierEntry struct {
	Key              string `toml:"key" yaml:"key"`
	Math             string `toml:"math" yaml:"math"`
	Text             string `toml:"text" yaml:"text"`
	Command          bool   `toml:"command" yaml:"command"`
	RemoveDot        bool   `toml:"remove_dot" yaml:"remove_dot"`
	ItalicCorrection bool   `toml:"italic_correction" yaml:"italic_correction"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Keys: Keys{
			Trigger:      "Tab",
			SymbolPrefix: "`",
			ModifyPrefix: "'",
			Environment:  "Alt+e",
			Item:         "Alt+Enter",
			LRPair:       "Alt+l",
			File:         "Alt+f",
			Mark:         "Ctrl+Space",
		},
		Behavior: Behavior{
			Pairs:     "([{",
			Simplify:  true,
			AutoLabel: true,
			HelpDelay: "1500ms",
			LogLevel:  "info",
		},
	}
}

// DefaultPath returns the per-user configuration file path.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "texpand", FileName)
}

// Path returns the file the configuration was loaded from, if any.
func (c *Config) Path() string { return c.path }

// resolve makes p relative to the configuration file's directory.
func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.path), p)
}

// TablesPath returns the resolved tables file path, or "".
func (c *Config) TablesPath() string { return c.resolve(c.TablesFile) }

// LuaPaths returns the resolved extension script paths.
func (c *Config) LuaPaths() []string {
	paths := make([]string, len(c.Lua))
	for i, p := range c.Lua {
		paths[i] = c.resolve(p)
	}
	return paths
}

// WatchPaths returns every file whose change requires a reload.
func (c *Config) WatchPaths() []string {
	var paths []string
	if c.path != "" {
		paths = append(paths, c.path)
	}
	if p := c.TablesPath(); p != "" {
		paths = append(paths, p)
	}
	return append(paths, c.LuaPaths()...)
}

// HelpDelay returns the parsed idle help delay.
func (c *Config) HelpDelay() (time.Duration, error) {
	d, err := time.ParseDuration(c.Behavior.HelpDelay)
	if err != nil || d < 0 {
		return 0, &ValidationError{Path: "behavior.help_delay", Message: "invalid duration", Value: c.Behavior.HelpDelay}
	}
	return d, nil
}

// Keymap parses the key bindings.
func (c *Config) Keymap() (session.Keymap, error) {
	k := c.Keys
	km := session.Keymap{}
	binds := []struct {
		name string
		spec string
		dst  *key.Event
	}{
		{"trigger", k.Trigger, &km.Trigger},
		{"symbol_prefix", k.SymbolPrefix, &km.SymbolPrefix},
		{"modify_prefix", k.ModifyPrefix, &km.ModifyPrefix},
		{"environment", k.Environment, &km.Environment},
		{"item", k.Item, &km.Item},
		{"lr_pair", k.LRPair, &km.LRPair},
		{"file", k.File, &km.File},
		{"label", k.Label, &km.Label},
		{"mark", k.Mark, &km.Mark},
	}
	for _, b := range binds {
		if b.spec == "" {
			continue
		}
		ev, err := key.Parse(b.spec)
		if err != nil {
			return session.Keymap{}, &ValidationError{Path: "keys." + b.name, Message: err.Error(), Value: b.spec}
		}
		*b.dst = ev
	}
	for i, spec := range k.Direct {
		m, err := key.ParseModifiers(spec)
		if err != nil {
			return session.Keymap{}, &ValidationError{Path: fmt.Sprintf("keys.direct[%d]", i), Message: err.Error(), Value: spec}
		}
		km.Direct = append(km.Direct, m)
	}
	return km, nil
}

// Overrides converts the main file's entries followed by the tables
// file's entries. Earlier entries win on duplicate keys.
func (c *Config) Overrides() (table.Overrides, error) {
	main, err := c.Tables.Overrides("")
	if err != nil {
		return table.Overrides{}, err
	}
	extra, err := c.Extra.Overrides(c.TablesPath())
	if err != nil {
		return table.Overrides{}, err
	}
	return table.Overrides{
		Commands:     append(main.Commands, extra.Commands...),
		Environments: append(main.Environments, extra.Environments...),
		Symbols:      append(main.Symbols, extra.Symbols...),
		Modifiers:    append(main.Modifiers, extra.Modifiers...),
		Keep:         append(main.Keep, extra.Keep...),
	}, nil
}

// Overrides converts the entries to table form. source prefixes error
// paths when non-empty.
func (t Tables) Overrides(source string) (table.Overrides, error) {
	at := func(format string, args ...any) string {
		p := fmt.Sprintf(format, args...)
		if source != "" {
			p = source + ": " + p
		}
		return p
	}

	var o table.Overrides
	for i, e := range t.Commands {
		if e.Keyword == "" {
			return o, &ValidationError{Path: at("commands[%d].keyword", i), Message: "must not be empty", Value: e.Keyword}
		}
		a, err := table.ParseAction(e.Action, e.Args)
		if err != nil {
			return o, &ValidationError{Path: at("commands[%d].action", i), Message: err.Error(), Value: e.Action}
		}
		text, math := e.Text, e.Math
		if !text && !math {
			text = true
		}
		o.Commands = append(o.Commands, table.Command{
			Keyword:     e.Keyword,
			Doc:         e.Doc,
			Replacement: e.Replacement,
			Action:      a,
			Text:        text,
			Math:        math,
		})
	}
	for i, e := range t.Environments {
		if e.Name == "" {
			return o, &ValidationError{Path: at("environments[%d].name", i), Message: "must not be empty", Value: e.Name}
		}
		if e.Body == "" {
			return o, &ValidationError{Path: at("environments[%d].body", i), Message: "must not be empty", Value: e.Body}
		}
		o.Environments = append(o.Environments, table.Environment{Name: e.Name, Body: e.Body, Item: e.Item})
	}
	for i, e := range t.Symbols {
		r, err := singleRune(e.Key)
		if err != nil {
			return o, &ValidationError{Path: at("symbols[%d].key", i), Message: err.Error(), Value: e.Key}
		}
		o.Symbols = append(o.Symbols, table.Symbol{Key: r, Levels: e.Levels})
	}
	for i, e := range t.Modifiers {
		r, err := singleRune(e.Key)
		if err != nil {
			return o, &ValidationError{Path: at("modifiers[%d].key", i), Message: err.Error(), Value: e.Key}
		}
		if e.Math == "" && e.Text == "" {
			return o, &ValidationError{Path: at("modifiers[%d]", i), Message: "needs a math or text macro", Value: e.Key}
		}
		o.Modifiers = append(o.Modifiers, table.Modifier{
			Key:              r,
			Math:             e.Math,
			Text:             e.Text,
			Command:          e.Command,
			RemoveDot:        e.RemoveDot,
			ItalicCorrection: e.ItalicCorrection,
		})
	}
	o.Keep = append(o.Keep, t.Keep...)
	return o, nil
}

func singleRune(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: want exactly one character", table.ErrInvalidKey)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// Validate checks every setting that can be checked without side effects.
func (c *Config) Validate() error {
	if _, err := c.HelpDelay(); err != nil {
		return err
	}
	if _, err := c.Keymap(); err != nil {
		return err
	}
	switch strings.ToLower(c.Behavior.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error", "off":
	default:
		return &ValidationError{Path: "behavior.log_level", Message: "unknown level", Value: c.Behavior.LogLevel}
	}
	for _, r := range c.Behavior.Pairs {
		if _, ok := pair.Closer(r); !ok {
			return &ValidationError{Path: "behavior.pairs", Message: fmt.Sprintf("%q cannot be paired", r), Value: c.Behavior.Pairs}
		}
	}
	_, err := c.Overrides()
	return err
}
