// Package fixture locates compile-fail fixtures: source files expected to
// fail compilation, annotated with the diagnostics they must produce.
package fixture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gocfail/internal/logging"
)

// Fixture is one discovered compile-fail test.
type Fixture struct {
	// Name is the display name used in the status stream. For directory
	// fixtures this is the base file name; for doc fixtures it is
	// "<doc>#<n>".
	Name string

	// Path is the on-disk source handed to the compiler.
	Path string
}

// Discover lists the fixtures in dir, flat (no recursion), filtered to the
// given extensions. It fails when the directory is unreadable, when it
// contains anything that is not a regular file, and when it yields zero
// fixtures — an empty fixture directory almost always means a wrong path.
//
// When language is non-empty, fixtures whose content does not look like
// that language are still run, but a warning is logged: stray files in the
// fixture directory are a common way to get confusing compiler errors.
func Discover(ctx context.Context, dir string, extensions []string, language string) ([]Fixture, error) {
	logger := logging.FromContext(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("couldn't open %s: %w", dir, err)
	}

	var fixtures []Fixture
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if !entry.Type().IsRegular() {
			return nil, fmt.Errorf("unsupported file type of compile-fail fixture %q: %s", path, entry.Type())
		}

		if !hasMatchingExtension(entry.Name(), extensions) {
			logger.Debug("skipping non-fixture file", logging.FieldPath, path)
			continue
		}

		if language != "" {
			if content, readErr := os.ReadFile(path); readErr == nil {
				if detected := enry.GetLanguage(entry.Name(), content); detected != "" && detected != language {
					logger.Warn("fixture does not look like the configured language",
						logging.FieldPath, path,
						logging.FieldLanguage, detected,
					)
				}
			}
		}

		logger.Debug("found compile-fail fixture", logging.FieldPath, path)
		fixtures = append(fixtures, Fixture{Name: entry.Name(), Path: path})
	}

	if len(fixtures) == 0 {
		return nil, fmt.Errorf("no compile-fail fixtures found in %s", dir)
	}

	return fixtures, nil
}

func hasMatchingExtension(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
