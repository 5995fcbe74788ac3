// Package errs implements the diagnostic model shared by the lexer,
// parser, and schema validator: a Kind, a source Location, an optional
// rendered Context with a caret, and an optional one-line Suggestion —
// in the style of compiler/errors.CompilerError in this corpus's
// Conduit compiler, narrowed to the error kinds a TOML processor needs.
package errs

import "fmt"

// Kind enumerates the diagnostic categories a parse, lex, or validate
// call can report.
type Kind int

const (
	UnexpectedCharacter Kind = iota
	InvalidEscape
	UnterminatedString
	NumberFormat
	InvalidValue
	UnexpectedToken
	UnexpectedEOF
	DuplicateKey
	InvalidTable
	InvalidArray
)

func (k Kind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "UnexpectedCharacter"
	case InvalidEscape:
		return "InvalidEscape"
	case UnterminatedString:
		return "UnterminatedString"
	case NumberFormat:
		return "NumberFormat"
	case InvalidValue:
		return "InvalidValue"
	case UnexpectedToken:
		return "UnexpectedToken"
	case UnexpectedEOF:
		return "UnexpectedEof"
	case DuplicateKey:
		return "DuplicateKey"
	case InvalidTable:
		return "InvalidTable"
	case InvalidArray:
		return "InvalidArray"
	default:
		return "Unknown"
	}
}

// Location pinpoints where in the source an error occurred.
type Location struct {
	Line   int
	Column int
}

// Context carries the rendered source window around an error: the
// source line itself plus enough information to draw a caret under the
// offending column, the way compiler/errors/context.go's
// extractSourceContext builds a ±N-line window.
type Context struct {
	SourceLine string
	CaretStart int // zero-based column where the caret run begins
	CaretLen   int
}

// Error is a single diagnostic. It implements the error interface so it
// can be returned and wrapped like any other Go error, while still
// exposing the structured fields callers need for IDE-style reporting.
type Error struct {
	Kind     Kind
	Message  string
	Location Location
	Context  *Context
	Hint     string
}

func (e *Error) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%d:%d: %s (%s)", e.Location.Line, e.Location.Column, e.Message, e.Hint)
	}
	return fmt.Sprintf("%d:%d: %s", e.Location.Line, e.Location.Column, e.Message)
}

// New builds an Error with no context or hint attached yet.
func New(kind Kind, line, column int, message string) *Error {
	return &Error{Kind: kind, Message: message, Location: Location{Line: line, Column: column}}
}

// WithHint attaches a one-line fix suggestion, fluent-builder style,
// matching the CompilerError.WithSuggestion pattern this is grounded on.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// WithContext attaches a rendered source window.
func (e *Error) WithContext(ctx *Context) *Error {
	e.Context = ctx
	return e
}

// EnrichFromSource fills in Context from the full source text, deriving
// the offending line and a caret span under Location. It mirrors
// compiler/errors.EnrichError's use of extractSourceContext, simplified
// to the single-line window a TOML diagnostic needs (no multi-line
// CompilerError chaining).
func (e *Error) EnrichFromSource(source string) *Error {
	lines := splitLines(source)
	idx := e.Location.Line - 1
	if idx < 0 || idx >= len(lines) {
		return e
	}
	line := lines[idx]
	start := e.Location.Column - 1
	if start < 0 {
		start = 0
	}
	length := 1
	if start > len(line) {
		start = len(line)
	}
	e.Context = &Context{SourceLine: line, CaretStart: start, CaretLen: length}
	return e
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}
