package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileSystem is the file access the loader needs.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader reads configuration files and the environment.
type Loader struct {
	fs        FileSystem
	lookupEnv func(string) (string, bool)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFS sets the file system.
func WithFS(fsys FileSystem) LoaderOption {
	return func(l *Loader) { l.fs = fsys }
}

// WithEnv sets the environment lookup. A nil lookup ignores the environment.
func WithEnv(lookup func(string) (string, bool)) LoaderOption {
	return func(l *Loader) { l.lookupEnv = lookup }
}

// NewLoader creates a loader over the OS file system and environment.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{fs: OSFS{}, lookupEnv: os.LookupEnv}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the configuration at path. An empty path loads the defaults
// and the environment only. When required is false a missing file is not
// an error.
func (l *Loader) Load(path string, required bool) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := l.fs.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist) && !required:
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := decodeTOML(path, data, cfg); err != nil {
				return nil, err
			}
			cfg.path = path
		}
	}

	if p := cfg.TablesPath(); p != "" {
		data, err := l.fs.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading tables file %s: %w", p, err)
		}
		extra, err := DecodeTables(p, data)
		if err != nil {
			return nil, err
		}
		cfg.Extra = extra
	}

	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the configuration at path with the default loader.
func Load(path string, required bool) (*Config, error) {
	return NewLoader().Load(path, required)
}

func decodeTOML(path string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(cfg)
	if err == nil {
		return nil
	}

	pe := &ParseError{Path: path, Message: err.Error(), Err: err}
	var derr *toml.DecodeError
	var serr *toml.StrictMissingError
	switch {
	case errors.As(err, &derr):
		pe.Line, pe.Column = derr.Position()
	case errors.As(err, &serr) && len(serr.Errors) > 0:
		first := serr.Errors[0]
		pe.Line, pe.Column = first.Position()
		pe.Message = "unknown key " + strings.Join(first.Key(), ".")
	}
	return pe
}

// DecodeTables parses a YAML tables file.
func DecodeTables(path string, data []byte) (Tables, error) {
	var t Tables
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		pe := &ParseError{Path: path, Message: err.Error(), Err: err}
		var terr *yaml.TypeError
		if errors.As(err, &terr) {
			pe.Message = strings.Join(terr.Errors, "; ")
		}
		return Tables{}, pe
	}
	return t, nil
}

// Environment variables read by the loader.
const (
	EnvLogLevel  = "TEXPAND_LOG_LEVEL"
	EnvHelpDelay = "TEXPAND_HELP_DELAY"
	EnvSimplify  = "TEXPAND_SIMPLIFY"
	EnvLabels    = "TEXPAND_LABELS"
)

func (l *Loader) applyEnv(cfg *Config) error {
	if l.lookupEnv == nil {
		return nil
	}
	if v, ok := l.lookupEnv(EnvLogLevel); ok {
		cfg.Behavior.LogLevel = strings.ToLower(v)
	}
	if v, ok := l.lookupEnv(EnvHelpDelay); ok {
		cfg.Behavior.HelpDelay = v
	}
	bools := []struct {
		name string
		dst  *bool
	}{
		{EnvSimplify, &cfg.Behavior.Simplify},
		{EnvLabels, &cfg.Behavior.AutoLabel},
	}
	for _, b := range bools {
		v, ok := l.lookupEnv(b.name)
		if !ok {
			continue
		}
		on, err := strconv.ParseBool(v)
		if err != nil {
			return &ValidationError{Path: b.name, Message: "not a boolean", Value: v}
		}
		*b.dst = on
	}
	return nil
}
