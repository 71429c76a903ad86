package match

import (
	"strings"
	"testing"

	"github.com/yaklabco/gocfail/pkg/diag"
	"github.com/yaklabco/gocfail/pkg/expect"
)

func textPattern(t *testing.T, kind expect.Kind, text string, line int) expect.Pattern {
	t.Helper()
	p, err := expect.NewPattern(kind, expect.Matcher{Kind: expect.MatchText, Value: text}, line)
	if err != nil {
		t.Fatalf("NewPattern: %v", err)
	}
	return p
}

func codePattern(t *testing.T, kind expect.Kind, code string, line int) expect.Pattern {
	t.Helper()
	p, err := expect.NewPattern(kind, expect.Matcher{Kind: expect.MatchCode, Value: code}, line)
	if err != nil {
		t.Fatalf("NewPattern: %v", err)
	}
	return p
}

func TestMatches(t *testing.T) {
	t.Parallel()

	msg := diag.Message{Kind: expect.KindError, Code: "E0308", Text: "mismatched types", Line: 4}

	tests := []struct {
		name    string
		pattern expect.Pattern
		want    bool
	}{
		{"text substring", textPattern(t, expect.KindError, "mismatched", 4), true},
		{"full text", textPattern(t, expect.KindError, "mismatched types", 4), true},
		{"text not contained", textPattern(t, expect.KindError, "borrowed value", 4), false},
		{"wrong line", textPattern(t, expect.KindError, "mismatched", 5), false},
		{"wrong kind", textPattern(t, expect.KindWarning, "mismatched", 4), false},
		{"code exact", codePattern(t, expect.KindError, "E0308", 4), true},
		{"code mismatch", codePattern(t, expect.KindError, "E0506", 4), false},
		{"code is not substring", codePattern(t, expect.KindError, "E030", 4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Matches(tt.pattern, msg); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchesCodeRequiresActualCode(t *testing.T) {
	t.Parallel()

	// A message without a code never satisfies a code pattern, even an
	// empty one.
	msg := diag.Message{Kind: expect.KindError, Text: "mismatched types", Line: 4}
	if Matches(codePattern(t, expect.KindError, "", 4), msg) {
		t.Error("empty code pattern matched a codeless message")
	}
	if Matches(codePattern(t, expect.KindError, "E0308", 4), msg) {
		t.Error("code pattern matched a codeless message")
	}
}

func TestMatchesAbsentKinds(t *testing.T) {
	t.Parallel()

	// Message-continuation lines carry no kind; they are still matchable
	// by a pattern with no mapped kind. The grammar cannot produce one, so
	// continuation lines are effectively only reachable through text
	// patterns on the first line; equality of two absent kinds is still
	// part of the contract.
	p := expect.Pattern{Kind: expect.KindNone, Matcher: expect.Matcher{Kind: expect.MatchText, Value: "found"}, Line: 2}
	m := diag.Message{Text: "expected u32, found &str", Line: 2}
	if !Matches(p, m) {
		t.Error("absent kinds did not compare equal")
	}
}

func TestCompareAllMatched(t *testing.T) {
	t.Parallel()

	expected := []expect.Pattern{
		textPattern(t, expect.KindError, "mismatched types", 3),
		codePattern(t, expect.KindError, "E0308", 3),
	}
	actual := []diag.Message{
		{Kind: expect.KindError, Code: "E0308", Text: "mismatched types", Line: 3},
	}

	if v := Compare(expected, actual); v != nil {
		t.Fatalf("Compare = %v, want pass", v)
	}
}

func TestCompareMissingPattern(t *testing.T) {
	t.Parallel()

	expected := []expect.Pattern{
		textPattern(t, expect.KindError, "mismatched types", 3),
		textPattern(t, expect.KindError, "cannot borrow", 9),
	}
	actual := []diag.Message{
		{Kind: expect.KindError, Text: "mismatched types", Line: 3},
	}

	v := Compare(expected, actual)
	if v == nil {
		t.Fatal("Compare passed, want missing-pattern violation")
	}
	if v.MissingPattern == nil || v.Unexpected != nil {
		t.Fatalf("violation = %+v, want MissingPattern only", v)
	}
	if v.MissingPattern.Line != 9 {
		t.Errorf("missing pattern line = %d, want 9", v.MissingPattern.Line)
	}

	msg := v.Error()
	if !strings.Contains(msg, "expected message not found in compiler output") {
		t.Errorf("Error() = %q", msg)
	}
	if !strings.Contains(msg, "compiler output:") {
		t.Errorf("Error() lacks the output dump: %q", msg)
	}
}

func TestCompareUnexpectedMessage(t *testing.T) {
	t.Parallel()

	expected := []expect.Pattern{
		textPattern(t, expect.KindError, "mismatched types", 3),
	}
	actual := []diag.Message{
		{Kind: expect.KindError, Text: "mismatched types", Line: 3},
		{Kind: expect.KindWarning, Text: "unused variable: `x`", Line: 1},
	}

	v := Compare(expected, actual)
	if v == nil {
		t.Fatal("Compare passed, want unexpected-message violation")
	}
	if v.Unexpected == nil || v.MissingPattern != nil {
		t.Fatalf("violation = %+v, want Unexpected only", v)
	}
	if v.Unexpected.Line != 1 {
		t.Errorf("unexpected line = %d, want 1", v.Unexpected.Line)
	}

	msg := v.Error()
	if !strings.Contains(msg, "unexpected warning in compiler output") {
		t.Errorf("Error() = %q", msg)
	}
}

func TestCompareExemptKinds(t *testing.T) {
	t.Parallel()

	// Notes, helps, suggestions, and unmapped kinds do not need patterns.
	expected := []expect.Pattern{
		textPattern(t, expect.KindError, "mismatched types", 3),
	}
	actual := []diag.Message{
		{Kind: expect.KindError, Text: "mismatched types", Line: 3},
		{Kind: expect.KindNote, Text: "expected u32", Line: 3},
		{Kind: expect.KindHelp, Text: "try removing the cast", Line: 3},
		{Kind: expect.KindSuggestion, Text: "let x: u32 = 1;", Line: 3},
		{Kind: expect.KindNone, Text: "continuation line", Line: 3},
	}

	if v := Compare(expected, actual); v != nil {
		t.Fatalf("Compare = %v, want pass with exempt kinds unmatched", v)
	}
}

func TestCompareCompletenessBeforeSoundness(t *testing.T) {
	t.Parallel()

	// When both scans would fail, the missing pattern is reported first.
	expected := []expect.Pattern{
		textPattern(t, expect.KindError, "never emitted", 1),
	}
	actual := []diag.Message{
		{Kind: expect.KindError, Text: "something else", Line: 2},
	}

	v := Compare(expected, actual)
	if v == nil || v.MissingPattern == nil {
		t.Fatalf("violation = %+v, want MissingPattern", v)
	}
}

func TestCompareManyToMany(t *testing.T) {
	t.Parallel()

	// One pattern may cover many messages and one message many patterns.
	expected := []expect.Pattern{
		textPattern(t, expect.KindError, "mismatched", 3),
		textPattern(t, expect.KindError, "types", 3),
	}
	actual := []diag.Message{
		{Kind: expect.KindError, Text: "mismatched types", Line: 3},
		{Kind: expect.KindError, Text: "mismatched types in closure", Line: 3},
	}

	if v := Compare(expected, actual); v != nil {
		t.Fatalf("Compare = %v, want pass", v)
	}
}

func TestCompareIdempotent(t *testing.T) {
	t.Parallel()

	expected := []expect.Pattern{
		textPattern(t, expect.KindError, "mismatched types", 3),
	}
	actual := []diag.Message{
		{Kind: expect.KindWarning, Text: "unused", Line: 1},
	}

	first := Compare(expected, actual)
	second := Compare(expected, actual)
	if first == nil || second == nil {
		t.Fatal("Compare passed, want violation")
	}
	if first.Error() != second.Error() {
		t.Error("Compare is not deterministic over identical inputs")
	}
}

func TestFormatMessage(t *testing.T) {
	t.Parallel()

	withCode := diag.Message{Kind: expect.KindError, Code: "E0308", Text: "mismatched types", Line: 3}
	if got := FormatMessage(withCode); got != "line 3: error[E0308] mismatched types" {
		t.Errorf("FormatMessage = %q", got)
	}

	noCode := diag.Message{Kind: expect.KindWarning, Text: "unused variable", Line: 1}
	if got := FormatMessage(noCode); got != "line 1: warning unused variable" {
		t.Errorf("FormatMessage = %q", got)
	}
}

func TestFormatMessagesEmpty(t *testing.T) {
	t.Parallel()

	if got := FormatMessages(nil); got != "  (no messages)\n" {
		t.Errorf("FormatMessages(nil) = %q", got)
	}
}
