package expect

import "fmt"

// MatcherKind selects which predicate a Matcher applies.
type MatcherKind int

const (
	// MatchText matches when the rendered message contains the value as a
	// substring.
	MatchText MatcherKind = iota

	// MatchCode matches when the diagnostic's stable code equals the value
	// exactly.
	MatchCode
)

// Matcher is the predicate half of a pattern. Exactly one form is present:
// a text substring or an exact code.
type Matcher struct {
	Kind  MatcherKind
	Value string
}

// String renders the matcher the way it appears in a fixture.
func (m Matcher) String() string {
	if m.Kind == MatchCode {
		return "[" + m.Value + "]"
	}
	return ": " + m.Value
}

// Pattern is one expected diagnostic parsed from a fixture annotation.
// Immutable once created.
type Pattern struct {
	// Kind is the expected message kind. The grammar always supplies one,
	// but the matching contract treats KindNone as "absent" and two absent
	// kinds as equal.
	Kind Kind

	// Matcher is the message predicate.
	Matcher Matcher

	// Line is the 1-based source line the diagnostic must point at.
	Line int
}

// NewPattern constructs a Pattern, rejecting non-positive target lines.
func NewPattern(kind Kind, matcher Matcher, line int) (Pattern, error) {
	if line < 1 {
		return Pattern{}, fmt.Errorf("pattern target line %d is before line 1", line)
	}
	return Pattern{Kind: kind, Matcher: matcher, Line: line}, nil
}

// String renders the pattern for failure reports, e.g.
// `error[E0308] at line 4` or `warning: unused variable at line 2`.
func (p Pattern) String() string {
	return fmt.Sprintf("%s%s at line %d", p.Kind, p.Matcher, p.Line)
}

// Expectation is the ordered, non-empty set of patterns owned by one
// fixture.
type Expectation struct {
	Patterns []Pattern
}
