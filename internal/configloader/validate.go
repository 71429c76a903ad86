package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gocfail/pkg/config"
	"github.com/yaklabco/gocfail/pkg/invoke"
)

// Validate checks the resolved configuration for problems that would make
// a run meaningless. It reports the first problem found.
func Validate(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if cfg.Fixtures == "" {
		return fmt.Errorf("fixtures directory must not be empty")
	}

	if len(cfg.Extensions) == 0 {
		return fmt.Errorf("at least one fixture extension is required")
	}
	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}

	if len(cfg.Command) == 0 {
		return fmt.Errorf("compiler command template must not be empty")
	}
	sources := 0
	for _, arg := range cfg.Command[1:] {
		if strings.Contains(arg, invoke.SourcePlaceholder) {
			sources++
		}
	}
	if sources != 1 {
		return fmt.Errorf("compiler command template must contain %s in exactly one argument, found %d",
			invoke.SourcePlaceholder, sources)
	}

	if cfg.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", cfg.Jobs)
	}

	switch cfg.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q: must be auto, always, or never", cfg.Color)
	}

	return nil
}
