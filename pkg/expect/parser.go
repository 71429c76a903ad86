package expect

import (
	"fmt"
	"os"
	"strings"
)

// marker introduces an expected-diagnostic annotation.
const marker = "//~"

// ParseError is a line-attributed annotation parse failure.
type ParseError struct {
	// Path is the fixture path, empty when parsing raw text.
	Path string

	// Line is the 1-based physical line carrying the bad marker.
	Line int

	// Msg describes the failure.
	Msg string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

// ParseFile reads the fixture at path and parses its annotations.
func ParseFile(path string) (*Expectation, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(path, string(content))
}

// Parse extracts the ordered pattern list from fixture text. A fixture
// with no recognizable markers is itself an error: it cannot usefully
// assert compilation failure.
func Parse(path, content string) (*Expectation, error) {
	p := &parser{path: path}

	for i, line := range strings.Split(content, "\n") {
		if err := p.parseLine(i+1, strings.TrimSuffix(line, "\r")); err != nil {
			return nil, err
		}
	}

	if len(p.patterns) == 0 {
		return nil, fmt.Errorf("no error patterns found in %s", path)
	}

	return &Expectation{Patterns: p.patterns}, nil
}

type parser struct {
	path     string
	patterns []Pattern

	// lastPatternLine is the last physical line that produced a pattern,
	// 0 if none did yet. Continuation markers are only legal directly
	// after such a line.
	lastPatternLine int
}

func (p *parser) errf(line int, format string, args ...any) error {
	return &ParseError{Path: p.path, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// parseLine parses one physical line. Lines without a marker contribute
// nothing; lines with a marker must parse completely.
func (p *parser) parseLine(lineno int, line string) error {
	idx := strings.Index(line, marker)
	if idx < 0 {
		return nil
	}
	rest := line[idx+len(marker):]

	var target int
	if strings.HasPrefix(rest, "|") {
		// Continuation: reuse the previous pattern's target line.
		if p.lastPatternLine != lineno-1 {
			return p.errf(lineno, "a `//~|` pattern must be directly preceded by another pattern")
		}
		target = p.patterns[len(p.patterns)-1].Line
		rest = rest[1:]
	} else {
		carets := 0
		for carets < len(rest) && rest[carets] == '^' {
			carets++
		}
		rest = rest[carets:]
		target = lineno - carets
		if target < 1 {
			return p.errf(lineno, "invalid line offset before line 1")
		}
	}

	rest = strings.TrimLeft(rest, " \t")

	tok := 0
	for tok < len(rest) && isLetter(rest[tok]) {
		tok++
	}
	if tok == 0 {
		return p.errf(lineno, "missing message kind after `%s`", marker)
	}
	kindTok := rest[:tok]
	kind, ok := ParseKind(kindTok)
	if !ok {
		return p.errf(lineno, "invalid message kind %q", kindTok)
	}
	rest = rest[tok:]

	var matcher Matcher
	switch {
	case strings.HasPrefix(rest, ":"):
		text := strings.TrimSpace(rest[1:])
		if text == "" {
			return p.errf(lineno, "empty message text after %q", kindTok+":")
		}
		matcher = Matcher{Kind: MatchText, Value: text}

	case strings.HasPrefix(rest, "["):
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return p.errf(lineno, "unterminated `[` in code pattern")
		}
		matcher = Matcher{Kind: MatchCode, Value: rest[1:end]}
		if trailing := strings.TrimSpace(rest[end+1:]); trailing != "" {
			return p.errf(lineno, "trailing text %q after code pattern", trailing)
		}

	default:
		return p.errf(lineno, "expected `:` or `[` after message kind, found %q", rest)
	}

	pattern, err := NewPattern(kind, matcher, target)
	if err != nil {
		return p.errf(lineno, "%v", err)
	}

	p.patterns = append(p.patterns, pattern)
	p.lastPatternLine = lineno
	return nil
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
