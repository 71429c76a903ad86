package invoke

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
)

// Result captures one finished process execution.
type Result struct {
	// ExitCode is the process exit status. 0 means the compile succeeded,
	// which for a compile-fail fixture is itself a failure.
	ExitCode int

	Stdout []byte
	Stderr []byte
}

// Runner executes a prepared command and captures its output. The harness
// never spawns directly; tests substitute a stub.
type Runner interface {
	Run(cmd *exec.Cmd) (*Result, error)
}

// ExecRunner runs commands on the host.
type ExecRunner struct{}

// Run executes cmd to completion. A non-zero exit is a normal Result, not
// an error; an error means the process could not be started at all.
func (ExecRunner) Run(cmd *exec.Cmd) (*Result, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("run %s: %w", cmd.Path, err)
		}
	}

	return &Result{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
	}, nil
}
