// Package main is the entry point for the smart-save application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term" //nolint:depguard // Required for TTY detection

	"github.com/joe/smart-save/internal/config"
	"github.com/joe/smart-save/internal/logging"
	"github.com/joe/smart-save/pkg/errors"
)

func main() {
	// Parse configuration
	cfg, err := config.ParseFlags()
	if err != nil {
		exit(err)
	}

	// The dialog owns the terminal, so console logs go only to the log file
	var logOutput io.Writer
	if cfg.Interactive {
		logOutput = io.Discard
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:    cfg.LogLevel,
		Format:   cfg.LogFormat,
		Output:   logOutput,
		FilePath: cfg.LogFile,
	})
	if err != nil {
		exit(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = run(ctx, cfg, logger, streams{
		In:       os.Stdin,
		Out:      os.Stdout,
		Terminal: term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd())),
		UI:       os.Stderr,
	})

	stop()
	_ = closeLog()

	if err != nil {
		exit(err)
	}
}

// exit prints err with its suggestions and terminates with status 1.
func exit(err error) {
	enriched := errors.NewEnricher().Enrich(err, "")

	fmt.Fprintf(os.Stderr, "Error: %v\n", enriched)

	if suggestions := errors.FormatSuggestions(enriched); suggestions != "" {
		fmt.Fprintf(os.Stderr, "%s\n", suggestions)
	}

	os.Exit(1)
}
