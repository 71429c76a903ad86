package diag

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gocfail/pkg/expect"
)

// ParseOutput decodes the compiler's stderr stream and flattens every
// diagnostic record into positioned Messages for fileName, in emission
// order.
//
// Lines that do not start with `{` are skipped: compilers intermingle
// non-JSON output. A line that does start with `{` but fails to decode is
// a hard error for the whole pass.
func ParseOutput(fileName, output string) ([]Message, error) {
	var msgs []Message

	for _, line := range strings.Split(output, "\n") {
		if !strings.HasPrefix(line, "{") {
			continue
		}

		var d Diagnostic
		if err := json.Unmarshal([]byte(line), &d); err != nil {
			return nil, fmt.Errorf("decode diagnostic record: %w", err)
		}

		flatten(&msgs, &d, nil, fileName)
	}

	return msgs, nil
}

// flatten walks one diagnostic tree. defaultSpans is the parent's primary
// span set: sub-diagnostics often carry no span of their own and inherit
// the parent's.
func flatten(out *[]Message, d *Diagnostic, defaultSpans []*Span, fileName string) {
	var spansInFile []*Span
	for i := range d.Spans {
		if samePath(d.Spans[i].FileName, fileName) {
			spansInFile = append(spansInFile, &d.Spans[i])
		}
	}

	// Compilers sometimes attach duplicate primary spans; first wins.
	var primary []*Span
	for _, span := range spansInFile {
		if span.IsPrimary {
			primary = append(primary, span)
			break
		}
	}
	if len(primary) == 0 {
		primary = defaultSpans
	}

	var code string
	if d.Code != nil {
		code = d.Code.Code
	}

	// A multi-line message becomes one Message per line; only the first
	// carries the declared severity, and every line sits on the span's
	// start line.
	lines := splitLines(d.Message)
	if len(lines) > 0 {
		kind, _ := expect.ParseKind(d.Level)
		for _, span := range primary {
			*out = append(*out, Message{
				Kind: kind,
				Code: code,
				Text: lines[0],
				Line: span.LineStart,
			})
		}
		for _, line := range lines[1:] {
			for _, span := range primary {
				*out = append(*out, Message{
					Code: code,
					Text: line,
					Line: span.LineStart,
				})
			}
		}
	}

	// Replacement suggestions: one Suggestion message per replacement
	// line, advancing from the span's start line.
	for _, span := range primary {
		if span.SuggestedReplacement == nil {
			continue
		}
		for i, line := range splitLines(*span.SuggestedReplacement) {
			*out = append(*out, Message{
				Kind: expect.KindSuggestion,
				Code: code,
				Text: line,
				Line: span.LineStart + i,
			})
		}
	}

	// Macro-expansion backtrace notes.
	for _, span := range primary {
		if span.Expansion != nil {
			pushBacktrace(out, span.Expansion, fileName)
		}
	}

	// Labels on any span in the target file, primary or not.
	for _, span := range spansInFile {
		if span.Label == nil {
			continue
		}
		*out = append(*out, Message{
			Kind: expect.KindNote,
			Code: code,
			Text: *span.Label,
			Line: span.LineStart,
		})
	}

	for i := range d.Children {
		flatten(out, &d.Children[i], primary, fileName)
	}
}

// pushBacktrace emits a note for every expansion ancestor that lives in
// the target file, oldest frames last. Backtrace notes carry no code.
func pushBacktrace(out *[]Message, expansion *Expansion, fileName string) {
	if samePath(expansion.Span.FileName, fileName) {
		*out = append(*out, Message{
			Kind: expect.KindNote,
			Text: "in this expansion of " + expansion.MacroDeclName,
			Line: expansion.Span.LineStart,
		})
	}

	if expansion.Span.Expansion != nil {
		pushBacktrace(out, expansion.Span.Expansion, fileName)
	}
}

// splitLines splits on newlines without producing a trailing empty line,
// so an empty message yields no lines at all.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
