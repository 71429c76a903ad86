package pretty

import (
	"fmt"
	"strings"
)

// FormatRunHeader formats the line announcing a run, e.g.
// "running 3 compile-fail tests".
func (s *Styles) FormatRunHeader(numTests int) string {
	plural := "s"
	if numTests == 1 {
		plural = ""
	}
	return s.Header.Render(fmt.Sprintf("running %d compile-fail test%s", numTests, plural)) + "\n"
}

// FormatTestLine formats the short result of a single test, e.g.
// "test borrow.rs ... ok".
func (s *Styles) FormatTestLine(name string, passed bool) string {
	status := s.Pass.Render("ok")
	if !passed {
		status = s.Fail.Render("FAILED")
	}
	return fmt.Sprintf("test %s ... %s\n", s.TestName.Render(name), status)
}

// FormatResultLine formats the terminal tally, e.g.
// "test result: FAILED. 2 passed; 1 failed".
func (s *Styles) FormatResultLine(numPassed, numFailed int) string {
	status := s.Success.Render("ok")
	if numFailed > 0 {
		status = s.Failure.Render("FAILED")
	}
	return fmt.Sprintf("test result: %s. %d passed; %d failed\n", status, numPassed, numFailed)
}

// FormatFailureBlock formats one per-failure detail block:
// a "---- test NAME ----" header followed by the violation text.
func (s *Styles) FormatFailureBlock(name string, err error, width int) string {
	var b strings.Builder

	header := fmt.Sprintf("---- test %s ----", name)
	b.WriteString(s.Divider.Render(header))
	if pad := width - len(header); pad > 0 {
		b.WriteString(s.Divider.Render(strings.Repeat("-", pad)))
	}
	b.WriteString("\n")
	b.WriteString(err.Error())
	b.WriteString("\n\n")

	return b.String()
}
