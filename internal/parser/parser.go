// Package parser recognizes #include directives in shell script text.
//
// A directive occupies a whole line: the literal prefix "#include" followed
// by whitespace and a path argument in one of four forms (angle brackets,
// double quotes, single quotes, or a bare token). Everything else is opaque
// text the preprocessor passes through untouched.
package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDirective indicates a recognized #include line whose path
// argument is malformed (empty, unclosed delimiter, or a bare token
// containing whitespace or delimiter characters).
var ErrInvalidDirective = errors.New("invalid include directive")

// QuoteStyle identifies how the path argument of a directive was delimited.
type QuoteStyle int

const (
	// QuoteAngle is #include <path>
	QuoteAngle QuoteStyle = iota
	// QuoteDouble is #include "path"
	QuoteDouble
	// QuoteSingle is #include 'path'
	QuoteSingle
	// QuoteNone is #include path
	QuoteNone
)

// String returns the string representation of QuoteStyle.
func (q QuoteStyle) String() string {
	switch q {
	case QuoteAngle:
		return "angle"
	case QuoteDouble:
		return "double"
	case QuoteSingle:
		return "single"
	case QuoteNone:
		return "none"
	default:
		return "unknown"
	}
}

// Directive is a single parsed #include occurrence. It is created per line
// during parsing and consumed immediately by resolution; Path is the raw
// text as written, before any filesystem resolution.
type Directive struct {
	Line       int    // 1-indexed line number within SourceFile
	Path       string // raw referenced path, delimiters stripped
	Quote      QuoteStyle
	SourceFile string // file the directive was found in
}

// DirectiveError reports a malformed directive with enough context to point
// the author at the offending line.
type DirectiveError struct {
	SourceFile string
	Line       int
	Text       string // the trimmed directive line as seen
}

// Error implements the error interface for DirectiveError.
func (e *DirectiveError) Error() string {
	return fmt.Sprintf("%s:%d: invalid include directive: %q", e.SourceFile, e.Line, e.Text)
}

// Unwrap lets errors.Is match DirectiveError against ErrInvalidDirective.
func (e *DirectiveError) Unwrap() error {
	return ErrInvalidDirective
}

const directivePrefix = "#include"

// ParseLine scans one line for an include directive. It returns (nil, nil)
// for ordinary text. Leading whitespace before #include is tolerated. A line
// whose trimmed form starts with #include but continues with a non-space
// character ("#included", "#includes:") is ordinary text, not a malformed
// directive; a bare "#include" with no argument is malformed.
func ParseLine(line string, lineNumber int, sourceFile string) (*Directive, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, directivePrefix) {
		return nil, nil
	}

	rest := trimmed[len(directivePrefix):]
	if rest != "" && !isSpace(rest[0]) {
		// Prefix runs into a longer word; this is prose, not a directive.
		return nil, nil
	}

	path, quote, ok := splitArgument(strings.TrimSpace(rest))
	if !ok {
		return nil, &DirectiveError{SourceFile: sourceFile, Line: lineNumber, Text: trimmed}
	}

	return &Directive{
		Line:       lineNumber,
		Path:       path,
		Quote:      quote,
		SourceFile: sourceFile,
	}, nil
}

// splitArgument strips the delimiters from a directive argument and reports
// which quoting style was used. Delimited forms are tried first; a bare
// argument must be a single token free of quote and bracket characters.
func splitArgument(arg string) (string, QuoteStyle, bool) {
	if len(arg) > 2 {
		last := len(arg) - 1
		switch {
		case arg[0] == '<' && arg[last] == '>':
			return arg[1:last], QuoteAngle, true
		case arg[0] == '"' && arg[last] == '"':
			return arg[1:last], QuoteDouble, true
		case arg[0] == '\'' && arg[last] == '\'':
			return arg[1:last], QuoteSingle, true
		}
	}

	if arg == "" || strings.ContainsAny(arg, " \t<>\"'") {
		return "", QuoteNone, false
	}
	return arg, QuoteNone, true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}
