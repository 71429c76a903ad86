// Package diag normalizes the compiler's structured diagnostic stream into
// a flat list of positioned messages for one target file.
//
// The input is line-oriented: lines beginning with `{` are JSON diagnostic
// records, anything else is incidental compiler chatter and is skipped.
package diag

import "github.com/yaklabco/gocfail/pkg/expect"

// Message is one normalized diagnostic position. A single raw record may
// flatten to zero, one, or many Messages: extra message lines, suggestion
// lines, macro-backtrace notes, and span-label notes each become one.
type Message struct {
	// Kind is the mapped severity; KindNone when the compiler's level did
	// not map to a known kind.
	Kind expect.Kind

	// Code is the stable diagnostic code, empty when the compiler attached
	// none.
	Code string

	// Text is the rendered message line.
	Text string

	// Line is the 1-based line the message points at.
	Line int
}

// The wire structs below mirror the compiler's JSON diagnostic format.
// They are transient: decoded per record, discarded after flattening.

// Diagnostic is one structured diagnostic record, possibly carrying child
// sub-diagnostics.
type Diagnostic struct {
	// Message is the primary message; may span multiple lines.
	Message string `json:"message"`

	Code *Code `json:"code"`

	// Level is the textual severity, e.g. "error", "warning", "note".
	Level string `json:"level"`

	Spans []Span `json:"spans"`

	// Children are associated sub-diagnostics (notes, helps).
	Children []Diagnostic `json:"children"`

	// Rendered is the message as the compiler would print it.
	Rendered *string `json:"rendered"`
}

// Code is a stable diagnostic identifier with an optional explanation.
type Code struct {
	Code        string  `json:"code"`
	Explanation *string `json:"explanation"`
}

// Span is one source location attached to a diagnostic.
type Span struct {
	FileName string `json:"file_name"`

	// 1-based lines and character columns.
	LineStart   int `json:"line_start"`
	LineEnd     int `json:"line_end"`
	ColumnStart int `json:"column_start"`
	ColumnEnd   int `json:"column_end"`

	// IsPrimary marks the point (or one of the points) where the problem
	// occurred, as opposed to secondary context spans.
	IsPrimary bool `json:"is_primary"`

	// Label is placed at this location when present.
	Label *string `json:"label"`

	// SuggestedReplacement is text proposed to be sliced in atop this span.
	SuggestedReplacement *string `json:"suggested_replacement"`

	// Expansion records the macro invocation that created the code at this
	// span, if any.
	Expansion *Expansion `json:"expansion"`
}

// Expansion is one frame of a macro-expansion backtrace. The nested span
// may itself derive from a macro.
type Expansion struct {
	Span          Span   `json:"span"`
	MacroDeclName string `json:"macro_decl_name"`
}
