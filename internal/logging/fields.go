// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldWorkingDir = "working_dir"

	// Fixture fields.
	FieldFixture  = "fixture"
	FieldFixtures = "fixtures"
	FieldLanguage = "language"
	FieldDoc      = "doc"
	FieldBlock    = "block"
	FieldPatterns = "patterns"

	// Invocation fields.
	FieldProgram  = "program"
	FieldArgs     = "args"
	FieldOutDir   = "out_dir"
	FieldExitCode = "exit_code"
	FieldStderr   = "stderr_bytes"
	FieldStdout   = "stdout_bytes"

	// Run fields.
	FieldJobs     = "jobs"
	FieldQuiet    = "quiet"
	FieldPassed   = "passed"
	FieldFailed   = "failed"
	FieldMessages = "messages"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
