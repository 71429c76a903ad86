// Package harness drives compile-fail fixtures through the
// parse → compile → normalize → match cycle and aggregates the verdicts.
package harness

import (
	"io"
	"os"

	"github.com/yaklabco/gocfail/pkg/config"
)

// Options controls one harness run.
type Options struct {
	// Fixtures is the directory containing compile-fail fixtures.
	Fixtures string

	// Extensions is the set of fixture file extensions.
	Extensions []string

	// Language is the optional enry language name used by the discovery
	// guard and doc-fixture extraction.
	Language string

	// Docs lists Markdown files whose fenced code blocks run as
	// additional fixtures.
	Docs []string

	// Jobs is the number of concurrent compiler invocations; 0 or 1 runs
	// sequentially. Results are recorded in discovery order either way.
	Jobs int

	// Quiet buffers the status stream into the final failure message.
	Quiet bool

	// Color is the output color mode: auto, always, never.
	Color string

	// Out receives the live status stream. Defaults to os.Stdout.
	Out io.Writer
}

// OptionsFromConfig maps a resolved configuration onto run options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Fixtures:   cfg.Fixtures,
		Extensions: cfg.Extensions,
		Language:   cfg.Language,
		Docs:       cfg.Docs,
		Jobs:       cfg.Jobs,
		Quiet:      cfg.Quiet,
		Color:      cfg.Color,
	}
}

func (o Options) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}
