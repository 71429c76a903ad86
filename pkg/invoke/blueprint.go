// Package invoke holds the collaborator contracts the harness drives:
// obtaining a compiler invocation for a fixture, and running it.
package invoke

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Placeholders recognized in invocation templates.
const (
	// SourcePlaceholder is replaced with the fixture path. A template must
	// contain it in exactly one argument.
	SourcePlaceholder = "{source}"

	// OutDirPlaceholder is replaced with the run's temporary output
	// directory, when one is set.
	OutDirPlaceholder = "{outdir}"
)

// Blueprint is a reusable compiler invocation template. One blueprint is
// obtained per run and stamped out once per fixture.
type Blueprint struct {
	// Program is the compiler executable.
	Program string

	// Args are the compiler arguments, with placeholders unsubstituted.
	Args []string

	// OutDir is substituted for the outdir placeholder when non-empty.
	OutDir string
}

// Provider obtains an invocation blueprint for a run. Implementations may
// hook into a build system; the harness only needs the resulting template.
type Provider interface {
	Obtain(ctx context.Context) (*Blueprint, error)
}

// BuildCommand stamps the blueprint into a runnable command compiling
// source. The returned command has no stdio wired; the process runner owns
// capture.
func (b *Blueprint) BuildCommand(ctx context.Context, source string) *exec.Cmd {
	args := make([]string, len(b.Args))
	for i, arg := range b.Args {
		arg = strings.ReplaceAll(arg, SourcePlaceholder, source)
		if b.OutDir != "" {
			arg = strings.ReplaceAll(arg, OutDirPlaceholder, b.OutDir)
		}
		args[i] = arg
	}
	return exec.CommandContext(ctx, b.Program, args...)
}

// TemplateProvider builds blueprints from a configured argv template,
// e.g. ["rustc", "--edition=2021", "--error-format=json", "--out-dir",
// "{outdir}", "{source}"].
type TemplateProvider struct {
	// Command is the full argv, program first.
	Command []string
}

// Obtain validates the template and returns the blueprint. The source
// placeholder must appear in exactly one argument so every fixture maps to
// one well-defined substitution.
func (p *TemplateProvider) Obtain(_ context.Context) (*Blueprint, error) {
	if len(p.Command) < 2 {
		return nil, fmt.Errorf("invocation template needs a program and at least one argument, got %d entries", len(p.Command))
	}

	args := p.Command[1:]
	matches := 0
	for _, arg := range args {
		if strings.Contains(arg, SourcePlaceholder) {
			matches++
		}
	}
	if matches == 0 {
		return nil, fmt.Errorf("couldn't find the %s placeholder in the invocation template", SourcePlaceholder)
	}
	if matches > 1 {
		return nil, fmt.Errorf("found %d arguments containing the %s placeholder in the invocation template, want exactly 1", matches, SourcePlaceholder)
	}

	return &Blueprint{
		Program: p.Command[0],
		Args:    append([]string(nil), args...),
	}, nil
}
