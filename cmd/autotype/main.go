// Package main is the entry point for the autotype terminal widget.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/autotype/internal/app"
	"github.com/dshills/autotype/internal/config"
	"github.com/dshills/autotype/internal/logging"
	"github.com/dshills/autotype/internal/renderer"
	"github.com/dshills/autotype/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// cliOptions holds command line settings. Flags that were not given leave
// the configuration untouched.
type cliOptions struct {
	configPath string
	watch      bool
	lineMode   bool

	mode                string
	caret               string
	typingSpeed         int
	backspaceSpeed      int
	pauseAfterTyping    int
	pauseAfterBackspace int
	noBlink             bool
	logLevel            string
	logFile             string

	strings []string
	set     map[string]bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	stdoutIsTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	if !stdoutIsTerminal {
		cfg.Render.Mode = renderer.ModePlain.String()
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()

	application, err := app.New(cfg, app.Options{
		Stdout:   os.Stdout,
		LineMode: opts.lineMode || !stdoutIsTerminal,
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	if mode, _ := cfg.RenderMode(); mode == renderer.ModeStyled {
		t, err := backend.NewTerminal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
			return 1
		}
		if err := application.SetBackend(t); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
			return 1
		}
	}

	if opts.watch && opts.configPath != "" {
		reloader := config.NewReloader(opts.configPath, func(next *config.Config) {
			applyFlags(next, opts)
			if !stdoutIsTerminal {
				next.Render.Mode = renderer.ModePlain.String()
			}
			if err := application.Reload(next); err != nil {
				logger.Err(err, "reload rejected")
			}
		}, config.WithReloadLogger(logger))
		if err := reloader.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to watch %s: %v\n", opts.configPath, err)
			return 1
		}
		defer reloader.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// loadConfig layers flags over the configuration file and environment.
func loadConfig(opts cliOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, opts)

	if len(cfg.Widgets) == 0 {
		return nil, errors.New("no strings to type: pass them as arguments or configure a widget")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cfg *config.Config, opts cliOptions) {
	if len(opts.strings) > 0 {
		if len(cfg.Widgets) == 0 {
			cfg.Widgets = append(cfg.Widgets, config.Widget{})
		}
		cfg.Widgets[0].Strings = append([]string(nil), opts.strings...)
	}

	if opts.set["mode"] {
		cfg.Render.Mode = opts.mode
	}
	if opts.set["log-level"] {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.set["log-file"] {
		cfg.Logging.File = opts.logFile
	}

	for i := range cfg.Widgets {
		w := &cfg.Widgets[i]
		if opts.set["caret"] {
			w.Caret = config.Ptr(opts.caret)
		}
		if opts.set["typing-speed"] {
			w.TypingSpeed = config.Ptr(opts.typingSpeed)
		}
		if opts.set["backspace-speed"] {
			w.BackspaceSpeed = config.Ptr(opts.backspaceSpeed)
		}
		if opts.set["pause-after-typing"] {
			w.PauseAfterTyping = config.Ptr(opts.pauseAfterTyping)
		}
		if opts.set["pause-after-backspace"] {
			w.PauseAfterBackspace = config.Ptr(opts.pauseAfterBackspace)
		}
		if opts.noBlink {
			w.EnableBlinking = config.Ptr(false)
		}
	}
}

// newLogger builds the logger described by cfg. Without a log file, styled
// mode discards logs so they do not tear the screen.
func newLogger(cfg *config.Config) (*logging.Logger, func(), error) {
	level, _ := cfg.LogLevel()
	lc := logging.DefaultConfig()
	lc.Level = level
	lc.Format = logging.Format(cfg.Logging.Format)

	closeFn := func() {}
	switch {
	case cfg.Logging.File != "":
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		lc.Output = f
		closeFn = func() { _ = f.Close() }
	default:
		if mode, _ := cfg.RenderMode(); mode == renderer.ModeStyled {
			lc.Output = io.Discard
		}
	}

	return logging.New(lc), closeFn, nil
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.watch, "watch", false, "Reload the configuration file when it changes")
	flag.BoolVar(&opts.lineMode, "lines", false, "In plain mode, print every frame on its own line")
	flag.StringVar(&opts.mode, "mode", "", "Render mode (styled, plain)")
	flag.StringVar(&opts.caret, "caret", "", "Caret glyph drawn after the text")
	flag.IntVar(&opts.typingSpeed, "typing-speed", 0, "Delay between typed characters in ms")
	flag.IntVar(&opts.backspaceSpeed, "backspace-speed", 0, "Delay between erased characters in ms")
	flag.IntVar(&opts.pauseAfterTyping, "pause-after-typing", 0, "Pause after a string is fully typed in ms")
	flag.IntVar(&opts.pauseAfterBackspace, "pause-after-backspace", 0, "Pause after a string is erased in ms")
	flag.BoolVar(&opts.noBlink, "no-blink", false, "Disable caret blinking")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "autotype - typewriter text animation for the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: autotype [options] [strings...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment (overrides the file, flags override both):\n")
		for _, name := range config.EnvVariables() {
			fmt.Fprintf(os.Stderr, "  %s\n", name)
		}
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  autotype Hello World            Cycle two strings\n")
		fmt.Fprintf(os.Stderr, "  autotype -c autotype.toml       Run configured widgets\n")
		fmt.Fprintf(os.Stderr, "  autotype -c w.yaml --watch      Reload on edit\n")
		fmt.Fprintf(os.Stderr, "  autotype --mode plain Loading   Animate a single line\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("autotype %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.logLevel != "" {
		if _, err := logging.ParseLevel(opts.logLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
			os.Exit(1)
		}
	}

	opts.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	opts.strings = flag.Args()

	return opts
}
