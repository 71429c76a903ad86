package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gocfail/internal/configloader"
	"github.com/yaklabco/gocfail/internal/logging"
	"github.com/yaklabco/gocfail/pkg/config"
	"github.com/yaklabco/gocfail/pkg/harness"
	"github.com/yaklabco/gocfail/pkg/invoke"
)

// ErrTestsFailed is returned when at least one compile-fail test failed.
var ErrTestsFailed = errors.New("compile-fail tests failed")

func newRunCommand() *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:   "run [fixtures-dir]",
		Short: "Run compile-fail tests",
		Long:  runLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(cmd, args, &cfg)
		},
	}

	cmd.Flags().StringSliceVar(&cfg.Extensions, "ext", nil, "fixture file extensions (with leading dot)")
	cmd.Flags().StringVar(&cfg.Language, "language", "", "fixture language name for the discovery guard")
	cmd.Flags().StringSliceVar(&cfg.Docs, "docs", nil, "Markdown files whose fenced code blocks run as fixtures")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 1, "number of concurrent compiler invocations")
	cmd.Flags().BoolVarP(&cfg.Quiet, "quiet", "q", false, "buffer the status stream into the final failure message")

	return cmd
}

const runLongDescription = `Run every compile-fail fixture and verify its diagnostics.

Each fixture must fail to compile, and the diagnostics it produces must
match its inline annotations exactly: every annotated diagnostic occurs
at its annotated line, and every error or warning the compiler emits is
annotated.

Examples:
  gocfail run                          Run fixtures from tests/compile-fail
  gocfail run ui/                      Run fixtures from ui/
  gocfail run --jobs 4                 Compile four fixtures at a time
  gocfail run --docs README.md         Also run fenced code blocks from README.md
  gocfail run --quiet                  Report only on failure`

func runTests(cmd *cobra.Command, args []string, cfg *config.Config) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	if len(args) == 1 {
		cfg.Fixtures = args[0]
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	cfg.Color = colorMode

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
		CLISet: map[string]bool{
			"fixtures": len(args) == 1,
			"ext":      cmd.Flags().Changed("ext"),
			"language": cmd.Flags().Changed("language"),
			"docs":     cmd.Flags().Changed("docs"),
			"jobs":     cmd.Flags().Changed("jobs"),
			"quiet":    cmd.Flags().Changed("quiet"),
		},
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		logging.FieldFixtures, finalCfg.Fixtures,
		logging.FieldProgram, finalCfg.Command[0],
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldQuiet, finalCfg.Quiet,
	)

	provider := &invoke.TemplateProvider{Command: finalCfg.Command}

	opts := harness.OptionsFromConfig(finalCfg)
	opts.Out = cmd.OutOrStdout()

	h := harness.New(provider, invoke.ExecRunner{})
	if err := h.Run(ctx, opts); err != nil {
		if errors.Is(err, harness.ErrTestsFailed) {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return ErrTestsFailed
		}
		return err
	}
	return nil
}
