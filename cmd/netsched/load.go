package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/SeyhmusGuler/SCIRun/internal/config"
	"github.com/SeyhmusGuler/SCIRun/internal/logger"
	"github.com/SeyhmusGuler/SCIRun/internal/network"
)

type loadedNetwork struct {
	cfg *config.Config
	net *network.Network
	log *logger.Logger
}

// loadNetwork parses the network file, builds the logger it asks for and
// constructs the live network. Logs go to logOut.
func loadNetwork(operation, path string, flags *rootFlags, logOut io.Writer) (*loadedNetwork, error) {
	if err := validateNetworkPath(path); err != nil {
		return nil, newCommandError(operation, fmt.Sprintf("reading network file %q", path), err, "Check that the file exists and you have permission to read it.")
	}

	cfg, err := config.ParseConfig(path)
	if err != nil {
		return nil, newCommandError(operation, "parsing network file", err, "Fix the errors shown above and try again.")
	}

	log, err := logger.New(logger.Options{
		Level:         resolveLogLevel(flags, cfg),
		HumanReadable: !flags.jsonLogs,
		Writer:        logOut,
	})
	if err != nil {
		return nil, newCommandError(operation, "creating logger", err, "Use one of debug, info, warn or error.")
	}

	net, err := config.BuildNetwork(cfg, log)
	if err != nil {
		return nil, newCommandError(operation, "building network", err, "Check module types and connections in the network file.")
	}

	return &loadedNetwork{cfg: cfg, net: net, log: log}, nil
}

func resolveLogLevel(flags *rootFlags, cfg *config.Config) string {
	switch {
	case flags.verbose:
		return "debug"
	case flags.logLevel != "":
		return flags.logLevel
	case cfg.Settings.LogLevel != "":
		return cfg.Settings.LogLevel
	default:
		return "warn"
	}
}

func validateNetworkPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("network file is required")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve network path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("network file does not exist: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("network path %s is a directory", abs)
	}
	return nil
}

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}
