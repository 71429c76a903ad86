package harness

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/yaklabco/gocfail/internal/ui/pretty"
)

// ErrTestsFailed marks a run in which at least one fixture failed, as
// opposed to a run that could not be carried out at all.
var ErrTestsFailed = errors.New("compile-fail tests failed")

// runFailure is the error Finalize returns for a failing run. It unwraps
// to ErrTestsFailed and, in quiet mode, carries the buffered report.
type runFailure struct {
	failed int
	report string
}

func (e *runFailure) Error() string {
	plural := "s"
	if e.failed == 1 {
		plural = ""
	}
	msg := fmt.Sprintf("%d compile-fail test%s failed", e.failed, plural)
	if e.report != "" {
		msg += "\n\n" + e.report
	}
	return msg
}

func (e *runFailure) Unwrap() error { return ErrTestsFailed }

// Failure pairs a fixture name with the error that failed it.
type Failure struct {
	Name string
	Err  error
}

// Status aggregates per-fixture results and renders the status stream.
//
// A Status must be consumed exactly once, through Finalize or Abort;
// those are the only ways to observe the run's outcome. Recording into a
// consumed Status, consuming twice, or recording two results for one
// fixture are programming errors and panic.
type Status struct {
	out    io.Writer
	styles *pretty.Styles
	width  int

	// quiet buffers the stream instead of writing it live; Finalize
	// attaches the buffer to the failure it returns.
	quiet bool
	buf   *bytes.Buffer

	numTests  int
	numPassed int
	failures  []Failure
	recorded  map[string]bool
	consumed  bool
}

// NewStatus creates the aggregator for a run of numTests fixtures.
// In quiet mode out is ignored and the stream is buffered uncolored.
func NewStatus(out io.Writer, colorMode string, quiet bool, numTests int) *Status {
	s := &Status{
		quiet:    quiet,
		numTests: numTests,
		recorded: make(map[string]bool, numTests),
		width:    pretty.DividerWidth(out),
	}
	if quiet {
		s.buf = &bytes.Buffer{}
		s.out = s.buf
		s.styles = pretty.NewStyles(false)
	} else {
		s.out = out
		s.styles = pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))
	}
	return s
}

// Header writes the run announcement line.
func (s *Status) Header() {
	s.check()
	fmt.Fprint(s.out, s.styles.FormatRunHeader(s.numTests))
}

// Record stores one fixture's result and writes its status line.
// A nil err is a pass.
func (s *Status) Record(name string, err error) {
	s.check()
	if s.recorded[name] {
		panic(fmt.Sprintf("harness: duplicate result recorded for fixture %q", name))
	}
	s.recorded[name] = true

	fmt.Fprint(s.out, s.styles.FormatTestLine(name, err == nil))

	if err != nil {
		s.failures = append(s.failures, Failure{Name: name, Err: err})
	} else {
		s.numPassed++
	}
}

// Finalize writes the tally and the per-failure detail blocks, consumes
// the Status, and returns nil when every fixture passed. In quiet mode
// the buffered report is attached to the returned error.
func (s *Status) Finalize() error {
	s.check()
	s.consumed = true

	fmt.Fprint(s.out, s.styles.FormatResultLine(s.numPassed, len(s.failures)))
	fmt.Fprintln(s.out)

	for _, failure := range s.failures {
		fmt.Fprint(s.out, s.styles.FormatFailureBlock(failure.Name, failure.Err, s.width))
	}

	if len(s.failures) == 0 {
		return nil
	}

	failure := &runFailure{failed: len(s.failures)}
	if s.quiet {
		failure.report = s.buf.String()
	}
	return failure
}

// Abort consumes the Status without a tally, for collaborator failures
// that invalidate the run, and returns err unchanged. It keeps the
// consume-once discipline intact on the abort path.
func (s *Status) Abort(err error) error {
	s.check()
	s.consumed = true
	return err
}

// Failures returns the recorded failures, in record order.
func (s *Status) Failures() []Failure {
	return s.failures
}

func (s *Status) check() {
	if s.consumed {
		panic("harness: Status used after Finalize or Abort")
	}
}
