package draftcli

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/heropick/pkg/logger"
)

// SetupLogging sends log records to stderr so they never mix with the
// prompts on stdout.
func SetupLogging(level string) error {
	if err := logger.Init(logger.WithWriter(os.Stderr), logger.WithLevel(level)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// ShowHelp prints usage information for the draft tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `heropick draft tool
===================

Asks for both teams' picks and prints the heroes from your pool that best
round out the draft.

Usage:
  go run ./cmd/draft-cli [options]

Options:
  -url string
        Base URL of a running service; empty scores locally
  -config string
        Service config file for local mode (default: $HEROPICK_CONFIG)
  -top int
        Number of suggestions to show (default: service default)
  -roles string
        Comma-separated desired roles overriding the configured ones
  -timeout duration
        HTTP request timeout in remote mode (default 10s)
  -log-level string
        Log level: debug, info, warn, error (default "warn")
  -help
        Show this help message

Examples:
  # Score with the local data files
  go run ./cmd/draft-cli

  # Ask a running service for the top 10
  go run ./cmd/draft-cli -url http://localhost:9080 -top 10
`)
}
