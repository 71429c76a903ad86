// Package main is the entry point for the gocfail CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gocfail/internal/cli"
	"github.com/yaklabco/gocfail/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// ErrTestsFailed carries no message of its own; the run already
		// reported the failures.
		if errors.Is(err, cli.ErrTestsFailed) {
			return cli.ExitTestsFailed
		}
		logger := logging.Default()
		logger.Error("command failed", logging.FieldError, err)
		return cli.ExitInternalError
	}

	return cli.ExitSuccess
}
