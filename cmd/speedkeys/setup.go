package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/speedkeys/internal/config"
	"github.com/vovakirdan/speedkeys/internal/core"
	"github.com/vovakirdan/speedkeys/internal/registry"
	"github.com/vovakirdan/speedkeys/internal/words"
)

// app holds what every command builds from the global flags.
type app struct {
	cfg     config.Config
	words   *words.Source
	logger  *log.Logger
	logFile *os.File
}

// newLogger creates a logger in the same shape for every destination.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          "speedkeys",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           level,
	})
}

// setup loads config and words. With tui set, logs go to --log-file or
// nowhere so they cannot tear the alternate screen.
func setup(tui bool) (*app, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}

	a := &app{logger: newLogger(os.Stderr, level)}

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		a.logFile = f
		a.logger = newLogger(f, level)
	} else if tui {
		a.logger = newLogger(io.Discard, level)
	}

	a.cfg, err = config.Load(flagConfig)
	if err != nil {
		a.close()
		return nil, err
	}

	path := flagWords
	if path == "" {
		path = a.cfg.Words.Path
	}
	a.words, err = words.Open(path, flagSeed)
	if err != nil {
		a.close()
		return nil, err
	}

	a.logger.Debug("loaded",
		"config", flagConfig,
		"words", a.words.Name(),
		"count", a.words.Len(),
		"time_initial", a.cfg.Rules.TimeInitial)

	return a, nil
}

// deps builds the collaborators handed to every mode.
func (a *app) deps() registry.Deps {
	return registry.Deps{
		Config: a.cfg,
		Words:  a.words,
		Logger: a.logger,
	}
}

// close releases the log file, if any.
func (a *app) close() {
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// runtimeConfig reads the terminal size and the global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
