// Package main is the entry point for texpand.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/texpand/internal/app"
	"github.com/dshills/texpand/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	opts       app.Options
	batch      app.BatchOptions
	keys       bool
	dumpTables bool
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, f.opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	switch {
	case f.dumpTables:
		err = application.DumpTables(os.Stdout)
	case f.keys:
		err = application.RunBatch(ctx, f.batch)
	default:
		err = runTerminal(ctx, application)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runTerminal(ctx context.Context, application *app.Application) error {
	t, err := term.New()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}
	if err := t.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer t.Close()
	return application.RunTerminal(ctx, t)
}

func parseFlags() flags {
	var f flags
	var showVersion bool

	flag.StringVar(&f.opts.ConfigPath, "config", "", "Path to configuration file (default: per-user config.toml if present)")
	flag.StringVar(&f.opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&f.opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error, off); overrides the configuration")
	flag.StringVar(&f.opts.LogFile, "log", "", "Append log lines to this file")
	flag.StringVar(&f.batch.Script, "keys", "", "Replay a key script against the file and print the result")
	flag.IntVar(&f.opts.Point, "point", -1, "Initial byte offset of the point (default: end of file)")
	flag.BoolVar(&f.batch.Write, "w", false, "With -keys, write the result back to the file")
	flag.BoolVar(&f.batch.ShowPoint, "show-point", false, "With -keys, mark the point with | in the output")
	flag.BoolVar(&f.dumpTables, "dump-tables", false, "Print the merged tables and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "texpand - LaTeX macro expansion editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: texpand [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  texpand paper.tex                          Edit a file\n")
		fmt.Fprintf(os.Stderr, "  texpand -keys '$fr<Tab>1<Tab>2<Tab>'       Print the expansion\n")
		fmt.Fprintf(os.Stderr, "  texpand -keys 'equ<Tab>' -w paper.tex      Expand at the end of a file\n")
		fmt.Fprintf(os.Stderr, "  texpand -dump-tables                       Show the merged tables\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("texpand %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if !app.ValidLogLevel(f.opts.LogLevel) {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, error or off)\n", f.opts.LogLevel)
		os.Exit(2)
	}

	f.keys = isFlagSet("keys")
	if f.batch.Write && !f.keys {
		fmt.Fprintln(os.Stderr, "Error: -w needs -keys")
		os.Exit(2)
	}

	switch flag.NArg() {
	case 0:
		if f.batch.Write {
			fmt.Fprintln(os.Stderr, "Error: -w needs a file")
			os.Exit(2)
		}
	case 1:
		f.opts.File = flag.Arg(0)
	default:
		fmt.Fprintln(os.Stderr, "Error: at most one file")
		os.Exit(2)
	}
	return f
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}
