package csv

// Error kinds for dialect construction, header resolution, parsing and
// printing. The four kinds are distinguishable so callers can tell
// configuration mistakes from malformed data from sink I/O.

import (
	"errors"
	"fmt"

	"github.com/tabforge/dialect-csv/internal/tokenizer"
)

// Sentinel errors surfaced inside a *ParseError for malformed input.
var (
	// ErrUnterminatedQuote indicates a quoted field still open at EOF.
	ErrUnterminatedQuote = tokenizer.ErrUnterminatedQuote

	// ErrTruncatedEscape indicates the stream ended mid escape sequence.
	ErrTruncatedEscape = tokenizer.ErrTruncatedEscape

	// ErrCharAfterQuote indicates a stray character between a closing
	// quote and the next delimiter or line terminator.
	ErrCharAfterQuote = tokenizer.ErrCharAfterQuote

	// ErrNoHeaders is returned by name-based record lookups when the
	// dialect resolved no headers.
	ErrNoHeaders = errors.New("record has no headers")
)

// ConfigError reports a dialect invariant violated at build time. It is
// raised eagerly by NewDialect and never retried.
type ConfigError struct {
	// Option names the offending dialect option.
	Option string
	// Message describes the violation.
	Message string
}

func (e *ConfigError) Error() string {
	return "csv: invalid " + e.Option + ": " + e.Message
}

// HeaderError reports a missing or duplicate column name, discovered when
// the header is first resolved. Fatal to that parser instance.
type HeaderError struct {
	// Name is the offending column name ("" for a missing name).
	Name string
	// Column is the 0-based column index.
	Column int
	// Message describes the violation.
	Message string
}

func (e *HeaderError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("csv: header column %d: %s", e.Column, e.Message)
	}
	return fmt.Sprintf("csv: header column %d (%q): %s", e.Column, e.Name, e.Message)
}

// ParseError reports malformed quoting or escaping, or an underlying read
// failure, with position information. Fatal per stream: records already
// produced remain valid, the parser should be closed and not reused.
type ParseError struct {
	// StartLine is the line the current record started on (1-indexed).
	StartLine int64
	// Line is the line where the error occurred (1-indexed).
	Line int64
	// Err is the underlying error.
	Err error
}

func (e *ParseError) Error() string {
	if e.StartLine == e.Line {
		return fmt.Sprintf("csv: parse error on line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("csv: parse error on line %d (record started on line %d): %v",
		e.Line, e.StartLine, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// SinkError wraps an I/O failure while writing to the print sink. The
// underlying error is propagated unchanged, never swallowed.
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("csv: write: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *SinkError) Unwrap() error {
	return e.Err
}
