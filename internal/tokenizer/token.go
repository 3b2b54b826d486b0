// Package tokenizer turns a character stream into typed CSV tokens under a
// configurable dialect: delimiter (possibly multi-character), quote, escape
// and comment characters.
//
// The tokenizer emits one token per call into a caller-owned scratch Token,
// which is reset in place on every call. The caller decides how tokens
// combine into records; the tokenizer only knows about field boundaries,
// line terminators and comments.
package tokenizer

// Type identifies the unit a token carries.
type Type int

const (
	// Invalid marks malformed input (unterminated quote, bad escape).
	// Fatal to the calling parse.
	Invalid Type = iota
	// Field is a delimiter-terminated field.
	Field
	// EndOfRecord is a line-terminator-terminated field; it closes the record.
	EndOfRecord
	// EOF is the end of the stream, possibly carrying a final unterminated field.
	EOF
	// Comment is a full comment line, marker and terminator stripped.
	Comment
)

// String returns the name of the token type.
func (t Type) String() string {
	switch t {
	case Invalid:
		return "Invalid"
	case Field:
		return "Field"
	case EndOfRecord:
		return "EndOfRecord"
	case EOF:
		return "EOF"
	case Comment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Token is the reusable scratch record filled by NextToken. The content
// buffer is retained across Reset calls so a steady-state parse does not
// allocate per field.
type Token struct {
	// Type of the most recent scan.
	Type Type

	// Content is the accumulated field or comment text.
	Content []rune

	// WasQuoted reports whether the field arrived quoted on the wire.
	// The assembler needs this for null/empty disambiguation.
	WasQuoted bool

	// IsReady reports whether Content holds a field that should be added
	// to the current record. Only meaningful for EOF tokens: an EOF token
	// that is not ready produced no trailing field.
	IsReady bool
}

// Reset clears the token for the next scan, keeping the content buffer.
func (t *Token) Reset() {
	t.Type = Invalid
	t.Content = t.Content[:0]
	t.WasQuoted = false
	t.IsReady = false
}

// Value returns the content as a string.
func (t *Token) Value() string {
	return string(t.Content)
}

func (t *Token) append(c rune) {
	t.Content = append(t.Content, c)
}

// TrimTrailingSpaces drops trailing space and tab runes from the content.
// Used by callers when surrounding spaces are ignored and the field was
// not quoted.
func (t *Token) TrimTrailingSpaces() {
	n := len(t.Content)
	for n > 0 {
		c := t.Content[n-1]
		if c != ' ' && c != '\t' {
			break
		}
		n--
	}
	t.Content = t.Content[:n]
}
