// Package match reconciles parsed expectations against normalized compiler
// output. It is pure: no I/O, no logging.
package match

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gocfail/pkg/diag"
	"github.com/yaklabco/gocfail/pkg/expect"
)

// Violation describes the first way a fixture failed to reconcile.
// Exactly one of MissingPattern and Unexpected is set. It is a first-class
// verdict value, not an exception; it implements error so the harness can
// record it as a fixture failure.
type Violation struct {
	// MissingPattern is the first expected pattern, in expectation order,
	// that no actual message matched.
	MissingPattern *expect.Pattern

	// Unexpected is the first actual error or warning, in output order,
	// that no pattern matched.
	Unexpected *diag.Message

	// Actual is the full normalized output, kept so a failing fixture's
	// annotations can be fixed without re-running the compiler.
	Actual []diag.Message
}

func (v *Violation) Error() string {
	var b strings.Builder

	switch {
	case v.MissingPattern != nil:
		fmt.Fprintf(&b, "expected message not found in compiler output: %s", v.MissingPattern)
	case v.Unexpected != nil:
		fmt.Fprintf(&b, "unexpected %s in compiler output (all errors and warnings must be matched by a pattern): %s",
			v.Unexpected.Kind, FormatMessage(*v.Unexpected))
	default:
		b.WriteString("violation with no detail")
	}

	b.WriteString("\n\ncompiler output:\n")
	b.WriteString(FormatMessages(v.Actual))

	return b.String()
}

// Matches reports whether one pattern matches one message: kinds equal
// (two absent kinds are equal), lines equal, and the matcher holds —
// codes compare exactly, text compares by substring containment.
func Matches(p expect.Pattern, m diag.Message) bool {
	if p.Kind != m.Kind || p.Line != m.Line {
		return false
	}
	switch p.Matcher.Kind {
	case expect.MatchCode:
		return m.Code != "" && m.Code == p.Matcher.Value
	default:
		return strings.Contains(m.Text, p.Matcher.Value)
	}
}

// Compare reconciles expected patterns against actual messages and returns
// nil on a pass, or the first violation found.
//
// Two independent scans, both of which must pass:
//
//  1. Completeness: every pattern matches at least one message.
//  2. Soundness: every Error or Warning message matches at least one
//     pattern. Notes, helps, suggestions, and messages without a mapped
//     kind are exempt, so fixtures can stay brief. (Exempting unmapped
//     kinds means an error-like level the kind table does not know would
//     slip through; that matches the reference behavior and is a known
//     gap, not an invariant.)
//
// One pattern may match many messages and vice versa; only existence is
// checked. Compare is deterministic and idempotent over its inputs.
func Compare(expected []expect.Pattern, actual []diag.Message) *Violation {
	for i := range expected {
		if !anyMessageMatches(expected[i], actual) {
			return &Violation{MissingPattern: &expected[i], Actual: actual}
		}
	}

	for i := range actual {
		if actual[i].Kind != expect.KindError && actual[i].Kind != expect.KindWarning {
			continue
		}
		if !anyPatternMatches(expected, actual[i]) {
			return &Violation{Unexpected: &actual[i], Actual: actual}
		}
	}

	return nil
}

func anyMessageMatches(p expect.Pattern, msgs []diag.Message) bool {
	for _, m := range msgs {
		if Matches(p, m) {
			return true
		}
	}
	return false
}

func anyPatternMatches(patterns []expect.Pattern, m diag.Message) bool {
	for _, p := range patterns {
		if Matches(p, m) {
			return true
		}
	}
	return false
}

// FormatMessage renders one normalized message for failure reports, e.g.
// `line 3: error[E0308] mismatched types`.
func FormatMessage(m diag.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "line %d: %s", m.Line, m.Kind)
	if m.Code != "" {
		fmt.Fprintf(&b, "[%s]", m.Code)
	}
	b.WriteString(" ")
	b.WriteString(m.Text)
	return b.String()
}

// FormatMessages renders the full message list, one per line.
func FormatMessages(msgs []diag.Message) string {
	if len(msgs) == 0 {
		return "  (no messages)\n"
	}
	var b strings.Builder
	for _, m := range msgs {
		b.WriteString("  ")
		b.WriteString(FormatMessage(m))
		b.WriteString("\n")
	}
	return b.String()
}
