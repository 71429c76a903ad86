// Package config defines core configuration types for gocfail.
// These types are pure data structures with no dependency on the loader.
package config

// DefaultFixturesDir is where compile-fail fixtures live by convention.
const DefaultFixturesDir = "tests/compile-fail"

// Config is the root configuration structure for gocfail.
type Config struct {
	// Fixtures is the directory containing compile-fail fixtures.
	Fixtures string `yaml:"fixtures"`

	// Extensions is the set of fixture file extensions (lowercase, with
	// leading dot).
	Extensions []string `yaml:"extensions"`

	// Language optionally names the fixture language (an enry language
	// name, e.g. "Rust"). When set, discovery warns about fixtures whose
	// content does not look like it, and doc-fixture extraction selects
	// untagged fenced blocks that do.
	Language string `yaml:"language"`

	// Command is the compiler argv template, program first. It must
	// contain the {source} placeholder in exactly one argument and may
	// contain {outdir} for the run's temporary output directory. The
	// command must emit machine-readable (JSON) diagnostics on stderr.
	Command []string `yaml:"command"`

	// Docs lists Markdown files whose fenced code blocks are extracted
	// and run as additional fixtures.
	Docs []string `yaml:"docs"`

	// Quiet suppresses the live status stream; the per-test report is
	// buffered into the final failure message instead.
	Quiet bool `yaml:"quiet"`

	// CLI-level options (not persisted to config files).

	// Jobs is the number of concurrent compiler invocations (0 or 1 =
	// sequential).
	Jobs int `yaml:"-"`

	// Color is the output color mode: auto, always, never.
	Color string `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults: rustc over
// tests/compile-fail, matching the convention the harness grew up with.
func NewConfig() *Config {
	return &Config{
		Fixtures:   DefaultFixturesDir,
		Extensions: []string{".rs"},
		Language:   "Rust",
		Command: []string{
			"rustc",
			"--edition=2021",
			"--error-format=json",
			"--out-dir", "{outdir}",
			"{source}",
		},
		Quiet: false,
		Jobs:  1,
		Color: "auto",
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Extensions = append([]string(nil), c.Extensions...)
	clone.Command = append([]string(nil), c.Command...)
	clone.Docs = append([]string(nil), c.Docs...)
	return &clone
}
