package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gocfail/pkg/config"
)

// envVarPrefix is the prefix for all gocfail environment variables.
const envVarPrefix = "GOCFAIL_"

// LoadFromEnv applies environment variable overrides to the configuration.
// Supported variables:
//
//	GOCFAIL_FIXTURES    fixture directory
//	GOCFAIL_EXTENSIONS  comma-separated fixture extensions
//	GOCFAIL_LANGUAGE    enry language name for the fixture guard
//	GOCFAIL_QUIET       true/false
//	GOCFAIL_JOBS        worker count
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	if v := os.Getenv(envVarPrefix + "FIXTURES"); v != "" {
		cfg.Fixtures = v
	}
	if v := os.Getenv(envVarPrefix + "EXTENSIONS"); v != "" {
		cfg.Extensions = parseSliceValue(v)
	}
	if v := os.Getenv(envVarPrefix + "LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv(envVarPrefix + "QUIET"); v != "" {
		quiet, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sQUIET: %q (expected true/false/1/0)", envVarPrefix, v)
		}
		cfg.Quiet = quiet
	}
	if v := os.Getenv(envVarPrefix + "JOBS"); v != "" {
		jobs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer for %sJOBS: %q", envVarPrefix, v)
		}
		cfg.Jobs = jobs
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns the supported environment variables with their
// descriptions, for help output.
func ListEnvVars() map[string]string {
	return map[string]string{
		envVarPrefix + "FIXTURES":   "Directory containing compile-fail fixtures",
		envVarPrefix + "EXTENSIONS": "Comma-separated fixture extensions (e.g. .rs)",
		envVarPrefix + "LANGUAGE":   "Fixture language name for the discovery guard",
		envVarPrefix + "QUIET":      "Buffer the status stream: true or false",
		envVarPrefix + "JOBS":       "Number of concurrent compiler invocations",
	}
}
