package harness

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"unicode/utf8"

	"github.com/yaklabco/gocfail/internal/logging"
	"github.com/yaklabco/gocfail/pkg/diag"
	"github.com/yaklabco/gocfail/pkg/expect"
	"github.com/yaklabco/gocfail/pkg/fixture"
	"github.com/yaklabco/gocfail/pkg/invoke"
	"github.com/yaklabco/gocfail/pkg/match"
)

// Harness runs compile-fail fixtures against an externally provided
// compiler invocation.
type Harness struct {
	provider invoke.Provider
	runner   invoke.Runner
}

// New creates a Harness over the given collaborators.
func New(provider invoke.Provider, runner invoke.Runner) *Harness {
	return &Harness{provider: provider, runner: runner}
}

// fatalError marks a collaborator failure that invalidates the whole run,
// as opposed to a fixture-local failure that only fails one fixture.
type fatalError struct{ error }

func (e fatalError) Unwrap() error { return e.error }

// Run drives every discovered fixture and returns nil only when all of
// them produced exactly their annotated diagnostics.
//
// Fixture-local errors (annotation parse failures, undecodable compiler
// output, match violations, unexpected compile success) become that
// fixture's failure and the run continues. Collaborator errors (fixture
// directory missing or empty, invocation template invalid, compiler not
// spawnable) abort the run.
func (h *Harness) Run(ctx context.Context, opts Options) error {
	logger := logging.FromContext(ctx)

	fixtures, err := fixture.Discover(ctx, opts.Fixtures, opts.Extensions, opts.Language)
	if err != nil {
		return err
	}

	tmpDir, err := os.MkdirTemp("", "gocfail-")
	if err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)
	logger.Debug("temporary output directory", logging.FieldOutDir, tmpDir)

	// Doc fixtures are extracted next to the compiler output so they
	// disappear with the run.
	var ext string
	if len(opts.Extensions) > 0 {
		ext = opts.Extensions[0]
	}
	for _, doc := range opts.Docs {
		extracted, err := fixture.ExtractMarkdown(ctx, doc, tmpDir, fixture.ExtractOptions{
			Language:  opts.Language,
			Extension: ext,
		})
		if err != nil {
			return err
		}
		fixtures = append(fixtures, extracted...)
	}

	blueprint, err := h.provider.Obtain(ctx)
	if err != nil {
		return fmt.Errorf("obtain compiler invocation: %w", err)
	}
	blueprint.OutDir = tmpDir

	status := NewStatus(opts.out(), opts.Color, opts.Quiet, len(fixtures))
	status.Header()

	results := h.runAll(ctx, blueprint, fixtures, opts.Jobs)

	// Surface a collaborator failure before recording anything partial.
	for _, fx := range fixtures {
		var fatal fatalError
		if errors.As(results[fx.Path], &fatal) {
			return status.Abort(fatal.error)
		}
	}

	for _, fx := range fixtures {
		status.Record(fx.Name, results[fx.Path])
	}

	return status.Finalize()
}

// runAll executes every fixture and returns the per-fixture errors keyed
// by path. With jobs > 1 fixtures compile concurrently; results are still
// attributed deterministically because the caller walks the discovery
// order.
func (h *Harness) runAll(ctx context.Context, blueprint *invoke.Blueprint, fixtures []fixture.Fixture, jobs int) map[string]error {
	results := make(map[string]error, len(fixtures))

	if jobs <= 1 {
		for _, fx := range fixtures {
			results[fx.Path] = h.runFixture(ctx, blueprint, fx)
		}
		return results
	}

	if jobs > len(fixtures) {
		jobs = len(fixtures)
	}

	type outcome struct {
		path string
		err  error
	}

	workCh := make(chan fixture.Fixture)
	outCh := make(chan outcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for fx := range workCh {
				outCh <- outcome{path: fx.Path, err: h.runFixture(ctx, blueprint, fx)}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, fx := range fixtures {
			select {
			case <-ctx.Done():
				return
			case workCh <- fx:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	for out := range outCh {
		results[out.path] = out.err
	}

	// A cancelled context stops the producer before every fixture is fed.
	// A fixture with no result was never run and must never be recorded as
	// a pass; surface the cancellation as a run-wide abort instead.
	for _, fx := range fixtures {
		if _, ok := results[fx.Path]; !ok {
			cause := ctx.Err()
			if cause == nil {
				cause = errors.New("worker pool exited early")
			}
			results[fx.Path] = fatalError{fmt.Errorf("fixture %s was not run: %w", fx.Name, cause)}
		}
	}

	return results
}

// runFixture runs one fixture without touching the status stream.
func (h *Harness) runFixture(ctx context.Context, blueprint *invoke.Blueprint, fx fixture.Fixture) error {
	logger := logging.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return fatalError{fmt.Errorf("fixture %s was not run: %w", fx.Name, err)}
	}

	expectation, err := expect.ParseFile(fx.Path)
	if err != nil {
		return err
	}
	logger.Debug("parsed expectation",
		logging.FieldFixture, fx.Name,
		logging.FieldPatterns, len(expectation.Patterns),
	)

	cmd := blueprint.BuildCommand(ctx, fx.Path)
	logger.Debug("running compiler",
		logging.FieldFixture, fx.Name,
		logging.FieldProgram, blueprint.Program,
		logging.FieldArgs, cmd.Args,
	)

	result, err := h.runner.Run(cmd)
	if err != nil {
		return fatalError{fmt.Errorf("run compiler for %s: %w", fx.Name, err)}
	}

	if result.ExitCode == 0 {
		return fmt.Errorf("compilation of compile-fail test %s succeeded, but a failure was expected", fx.Path)
	}
	logger.Debug("compiler finished",
		logging.FieldFixture, fx.Name,
		logging.FieldExitCode, result.ExitCode,
		logging.FieldStdout, len(result.Stdout),
		logging.FieldStderr, len(result.Stderr),
	)

	if !utf8.Valid(result.Stderr) {
		return fmt.Errorf("compiler output for %s is not valid UTF-8", fx.Name)
	}

	messages, err := diag.ParseOutput(fx.Path, string(result.Stderr))
	if err != nil {
		return err
	}
	logger.Debug("normalized compiler output",
		logging.FieldFixture, fx.Name,
		logging.FieldMessages, len(messages),
	)

	if violation := match.Compare(expectation.Patterns, messages); violation != nil {
		return violation
	}
	return nil
}
