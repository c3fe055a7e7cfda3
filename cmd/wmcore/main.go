// Package main is the entry point for the wmcore terminal window manager.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/wmcore/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, logFile, code := parseFlags()
	if code >= 0 {
		return code
	}

	opts.LogOutput = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		opts.LogOutput = f
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseFlags returns the options, the log file and an exit code, which is
// negative when the program should go on.
func parseFlags() (app.Options, string, int) {
	var opts app.Options
	var logFile string
	var showVersion, showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to the preferences file (TOML)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to the preferences file (shorthand)")
	flag.StringVar(&opts.KeymapPath, "keymap", "", "Path to the user key-map file (.toml or .yaml)")
	flag.StringVar(&opts.ScriptDir, "scripts", "", "Directory of Lua operator scripts")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); default from preferences")
	flag.StringVar(&logFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&opts.Watch, "watch", true, "Reload preferences and key-maps when they change")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "wmcore - terminal window manager event core\n\n")
		fmt.Fprintf(os.Stderr, "Usage: wmcore [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  wmcore -c ~/.config/wmcore/prefs.toml\n")
		fmt.Fprintf(os.Stderr, "  wmcore -scripts ./scripts -log-file wm.log -log-level debug\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		return opts, "", 0
	}
	if showVersion {
		fmt.Printf("wmcore %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return opts, "", 0
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		return opts, "", 1
	}
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments %v\n", flag.Args())
		return opts, "", 1
	}
	return opts, logFile, -1
}
