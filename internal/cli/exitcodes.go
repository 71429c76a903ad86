package cli

// Exit codes for gocfail.
const (
	// ExitSuccess indicates every compile-fail test passed.
	ExitSuccess = 0

	// ExitTestsFailed indicates the run completed but tests failed.
	ExitTestsFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)
