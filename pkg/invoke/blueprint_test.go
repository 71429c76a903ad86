package invoke

import (
	"context"
	"strings"
	"testing"
)

func TestTemplateProviderObtain(t *testing.T) {
	t.Parallel()

	provider := &TemplateProvider{Command: []string{
		"rustc", "--edition=2021", "--error-format=json", "--out-dir", "{outdir}", "{source}",
	}}

	blueprint, err := provider.Obtain(context.Background())
	if err != nil {
		t.Fatalf("Obtain: %v", err)
	}
	if blueprint.Program != "rustc" {
		t.Errorf("program = %q", blueprint.Program)
	}
	if len(blueprint.Args) != 5 {
		t.Errorf("args = %v", blueprint.Args)
	}
}

func TestTemplateProviderValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		command []string
		msg     string
	}{
		{
			name:    "empty",
			command: nil,
			msg:     "needs a program",
		},
		{
			name:    "program only",
			command: []string{"rustc"},
			msg:     "needs a program",
		},
		{
			name:    "no source placeholder",
			command: []string{"rustc", "main.rs"},
			msg:     "couldn't find the {source} placeholder",
		},
		{
			name:    "two source placeholders",
			command: []string{"rustc", "{source}", "--extra={source}"},
			msg:     "want exactly 1",
		},
		{
			name:    "placeholder in program does not count",
			command: []string{"{source}", "build"},
			msg:     "couldn't find the {source} placeholder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := &TemplateProvider{Command: tt.command}
			_, err := provider.Obtain(context.Background())
			if err == nil {
				t.Fatal("Obtain succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not contain %q", err, tt.msg)
			}
		})
	}
}

func TestBuildCommandSubstitution(t *testing.T) {
	t.Parallel()

	blueprint := &Blueprint{
		Program: "rustc",
		Args:    []string{"--out-dir", "{outdir}", "--emit=metadata", "{source}"},
		OutDir:  "/tmp/gocfail-123",
	}

	cmd := blueprint.BuildCommand(context.Background(), "tests/compile-fail/fix.rs")

	want := []string{"--out-dir", "/tmp/gocfail-123", "--emit=metadata", "tests/compile-fail/fix.rs"}
	got := cmd.Args[1:]
	if len(got) != len(want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arg %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildCommandBothPlaceholdersInOneArg(t *testing.T) {
	t.Parallel()

	blueprint := &Blueprint{
		Program: "cc",
		Args:    []string{"-o", "{outdir}/{source}.o", "{source}"},
		OutDir:  "/tmp/out",
	}

	cmd := blueprint.BuildCommand(context.Background(), "fix.c")
	if got := cmd.Args[2]; got != "/tmp/out/fix.c.o" {
		t.Errorf("arg = %q, want both placeholders substituted", got)
	}
}

func TestBuildCommandWithoutOutDir(t *testing.T) {
	t.Parallel()

	// Without an out dir, the outdir placeholder passes through untouched.
	blueprint := &Blueprint{
		Program: "cc",
		Args:    []string{"-o", "{outdir}/a.out", "{source}"},
	}

	cmd := blueprint.BuildCommand(context.Background(), "fix.c")
	if got := cmd.Args[2]; got != "{outdir}/a.out" {
		t.Errorf("arg = %q, want untouched placeholder", got)
	}
}

func TestBuildCommandDoesNotMutateBlueprint(t *testing.T) {
	t.Parallel()

	blueprint := &Blueprint{
		Program: "rustc",
		Args:    []string{"{source}"},
	}

	blueprint.BuildCommand(context.Background(), "first.rs")
	cmd := blueprint.BuildCommand(context.Background(), "second.rs")
	if got := cmd.Args[1]; got != "second.rs" {
		t.Errorf("arg = %q, blueprint was mutated by an earlier stamp", got)
	}
}
