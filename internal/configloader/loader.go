// Package configloader provides configuration loading and resolution:
// project config discovery, environment variable overrides, hierarchical
// merging, and validation.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/gocfail/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config

	// CLISet names the fields the CLI explicitly set, so unset flags do
	// not clobber file or env values.
	CLISet map[string]bool
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig, limited to opts.CLISet)
//  2. Environment variables (GOCFAIL_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gocfail.yml upward search)
//  5. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	cfg := config.NewConfig()

	// File layer: explicit path wins over discovery.
	filePath := opts.ExplicitPath
	if filePath == "" {
		discovered, err := FindProjectConfig(ctx, workDir)
		if err != nil {
			return nil, fmt.Errorf("discover project config: %w", err)
		}
		filePath = discovered
	}

	if filePath != "" {
		fileCfg, err := loadFile(filePath)
		if err != nil {
			// A missing explicit path is an error; a vanished discovered
			// path is a warning.
			if opts.ExplicitPath != "" {
				return nil, err
			}
			result.Warnings = append(result.Warnings, err.Error())
		} else {
			mergeFile(cfg, fileCfg)
			result.LoadedFrom = append(result.LoadedFrom, filePath)
		}
	}

	// Environment layer.
	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, err
		}
	}

	// CLI layer.
	mergeCLI(cfg, opts.CLIConfig, opts.CLISet)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	result.Config = cfg
	return result, nil
}

func loadFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := config.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// mergeFile overlays non-zero file values onto the defaults.
func mergeFile(dst, src *config.Config) {
	if src.Fixtures != "" {
		dst.Fixtures = src.Fixtures
	}
	if len(src.Extensions) > 0 {
		dst.Extensions = src.Extensions
	}
	if src.Language != "" {
		dst.Language = src.Language
	}
	if len(src.Command) > 0 {
		dst.Command = src.Command
	}
	if len(src.Docs) > 0 {
		dst.Docs = src.Docs
	}
	if src.Quiet {
		dst.Quiet = true
	}
}

// mergeCLI overlays explicitly-set CLI values.
func mergeCLI(dst, src *config.Config, set map[string]bool) {
	if src == nil {
		return
	}
	if set["fixtures"] {
		dst.Fixtures = src.Fixtures
	}
	if set["ext"] {
		dst.Extensions = src.Extensions
	}
	if set["language"] {
		dst.Language = src.Language
	}
	if set["docs"] {
		dst.Docs = src.Docs
	}
	if set["quiet"] {
		dst.Quiet = src.Quiet
	}
	if set["jobs"] {
		dst.Jobs = src.Jobs
	}
	if src.Color != "" {
		dst.Color = src.Color
	}
}
