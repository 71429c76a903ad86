package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gocfail/pkg/config"
)

func TestValidateDefaults(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Validate(config.NewConfig()))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
		msg    string
	}{
		{
			name:   "empty fixtures",
			mutate: func(c *config.Config) { c.Fixtures = "" },
			msg:    "fixtures directory must not be empty",
		},
		{
			name:   "no extensions",
			mutate: func(c *config.Config) { c.Extensions = nil },
			msg:    "at least one fixture extension is required",
		},
		{
			name:   "extension without dot",
			mutate: func(c *config.Config) { c.Extensions = []string{"rs"} },
			msg:    "must start with a dot",
		},
		{
			name:   "empty command",
			mutate: func(c *config.Config) { c.Command = nil },
			msg:    "compiler command template must not be empty",
		},
		{
			name:   "no source placeholder",
			mutate: func(c *config.Config) { c.Command = []string{"rustc", "main.rs"} },
			msg:    "exactly one argument, found 0",
		},
		{
			name:   "two source placeholders",
			mutate: func(c *config.Config) { c.Command = []string{"rustc", "{source}", "{source}"} },
			msg:    "exactly one argument, found 2",
		},
		{
			name:   "negative jobs",
			mutate: func(c *config.Config) { c.Jobs = -1 },
			msg:    "jobs must not be negative",
		},
		{
			name:   "bad color mode",
			mutate: func(c *config.Config) { c.Color = "rainbow" },
			msg:    "invalid color mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestValidateNil(t *testing.T) {
	t.Parallel()

	assert.Error(t, Validate(nil))
}
