package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInfo() BuildInfo {
	return BuildInfo{Version: "test", Commit: "abc1234", Date: "2026-01-01"}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand(testInfo())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommandStructure(t *testing.T) {
	t.Parallel()

	cmd := NewRootCommand(testInfo())
	assert.Equal(t, "gocfail", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "run")
	assert.Contains(t, names, "init")
	assert.Contains(t, names, "version")
}

func TestRootHelp(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "compile-fail")
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "--color")
}

func TestInitCreatesConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".gocfail.yml")
	_, err := execute(t, "init", "--output", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "fixtures:")
}

func TestInitRefusesToOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".gocfail.yml")
	require.NoError(t, os.WriteFile(path, []byte("fixtures: mine\n"), 0644))

	_, err := execute(t, "init", "--output", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// Untouched without --force.
	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "fixtures: mine\n", string(content))

	_, err = execute(t, "init", "--output", path, "--force")
	require.NoError(t, err)
}

func TestRunMissingFixturesDir(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "run", filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "couldn't open")
	assert.False(t, errors.Is(err, ErrTestsFailed), "a setup failure is not a test failure")
}

// fakeCompilerConfig writes a stub compiler script plus a config file
// pointing at it, and returns the config path.
func fakeCompilerConfig(t *testing.T, fixturesDir string) string {
	t.Helper()
	dir := t.TempDir()

	script := filepath.Join(dir, "fakecc.sh")
	scriptBody := `#!/bin/sh
printf '{"message":"mismatched types","code":{"code":"E0308","explanation":null},"level":"error","spans":[{"file_name":"%s","line_start":1,"line_end":1,"column_start":1,"column_end":2,"is_primary":true,"label":null,"suggested_replacement":null,"expansion":null}],"children":[],"rendered":null}\n' "$1" >&2
exit 1
`
	require.NoError(t, os.WriteFile(script, []byte(scriptBody), 0755))

	configPath := filepath.Join(dir, "gocfail.yml")
	configBody := fmt.Sprintf("fixtures: %s\nextensions: [\".rs\"]\ncommand: [\"sh\", %q, \"{source}\"]\n",
		fixturesDir, script)
	require.NoError(t, os.WriteFile(configPath, []byte(configBody), 0644))

	return configPath
}

func TestRunEndToEnd(t *testing.T) {
	t.Parallel()

	fixturesDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(fixturesDir, "types.rs"),
		[]byte("let x: u32 = \"nope\"; //~ ERROR[E0308]\n"),
		0644,
	))

	out, err := execute(t, "run", "--config", fakeCompilerConfig(t, fixturesDir))
	require.NoError(t, err)
	assert.Contains(t, out, "running 1 compile-fail test\n")
	assert.Contains(t, out, "test types.rs ... ok\n")
	assert.Contains(t, out, "test result: ok. 1 passed; 0 failed\n")
}

func TestRunEndToEndFailure(t *testing.T) {
	t.Parallel()

	fixturesDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(fixturesDir, "wrong.rs"),
		[]byte("bad //~ ERROR: cannot borrow\n"),
		0644,
	))

	out, err := execute(t, "run", "--config", fakeCompilerConfig(t, fixturesDir))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTestsFailed)
	assert.Contains(t, out, "test wrong.rs ... FAILED\n")
	assert.Contains(t, out, "expected message not found in compiler output")
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	// The version command logs to real stdout; this only checks it runs.
	_, err := execute(t, "version")
	require.NoError(t, err)
}
