// Package expect parses the expected-diagnostic annotations embedded in
// compile-fail fixtures.
//
// The micro-syntax, per physical line (at most one marker per line, the
// first `//~` wins):
//
//	//~<carets> <kind>: <text>   substring match, len(carets) lines above
//	//~<carets> <kind>[<code>]   exact code match, same positional rule
//	//~| <kind>: <text>          reuses the previous pattern's target line
//
// Kind tokens are case-insensitive; "warn" is an alias for "warning".
package expect

import "strings"

// Kind is the category of message a compiler can emit.
//
// The zero value KindNone represents an absent kind: compilers do not
// always attach a recognizable level, and normalized messages carry
// KindNone in that case.
type Kind int

const (
	KindNone Kind = iota
	KindError
	KindWarning
	KindNote
	KindHelp
	KindSuggestion
)

// ParseKind maps a textual level to a Kind, case-insensitively.
// The second return is false for unrecognized tokens.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(s) {
	case "error":
		return KindError, true
	case "warning", "warn":
		return KindWarning, true
	case "note":
		return KindNote, true
	case "help":
		return KindHelp, true
	case "suggestion":
		return KindSuggestion, true
	default:
		return KindNone, false
	}
}

// String returns the canonical lowercase token for the kind.
func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindWarning:
		return "warning"
	case KindNote:
		return "note"
	case KindHelp:
		return "help"
	case KindSuggestion:
		return "suggestion"
	default:
		return "none"
	}
}
