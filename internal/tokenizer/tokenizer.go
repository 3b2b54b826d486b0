package tokenizer

import (
	"errors"
	"io"
	"strings"
)

// Errors reported for malformed input. The tokenizer additionally sets
// Token.Type to Invalid so callers can distinguish malformed data from
// source read failures.
var (
	// ErrUnterminatedQuote is returned when a quoted field is still open at EOF.
	ErrUnterminatedQuote = errors.New("unterminated quoted field")
	// ErrTruncatedEscape is returned when the stream ends right after an escape character.
	ErrTruncatedEscape = errors.New("truncated escape sequence")
	// ErrCharAfterQuote is returned when a non-space character follows a
	// closing quote without an intervening delimiter or line terminator.
	ErrCharAfterQuote = errors.New("invalid character between quoted field and delimiter")
)

// Config carries the tokenizer-relevant slice of a dialect. A zero rune
// disables the corresponding character. The tokenizer does not validate
// the configuration; the dialect has done that once, at build time.
type Config struct {
	// Delimiter separates fields. May be longer than one character.
	Delimiter string
	// Quote encapsulates fields that contain delimiters or terminators.
	Quote rune
	// Escape introduces a two-character escape sequence.
	Escape rune
	// Comment marks comment lines when it is the first non-space
	// character of a physical line.
	Comment rune
	// IgnoreSurroundingSpaces drops spaces around unquoted fields.
	IgnoreSurroundingSpaces bool
	// IgnoreEmptyLines skips blank lines instead of producing an
	// empty single-field record.
	IgnoreEmptyLines bool
}

// Tokenizer scans a character source one token at a time. It never rewinds:
// each NextToken call advances exactly one field, record end, comment, or EOF.
type Tokenizer struct {
	in  *reader
	cfg Config

	delim []rune

	// firstEOL is the first line-terminator style seen ("\n", "\r" or
	// "\r\n"), for callers that want to mirror the input convention.
	firstEOL string

	// lastWasDelim is set when the previous token ended on a delimiter,
	// so that EOF right after a delimiter still yields the empty last field.
	lastWasDelim bool
}

// New creates a Tokenizer over r with the given configuration.
func New(r io.Reader, cfg Config) *Tokenizer {
	return &Tokenizer{
		in:    newReader(r),
		cfg:   cfg,
		delim: []rune(cfg.Delimiter),
	}
}

// Line returns the current 1-based line number. Terminators inside quoted
// fields count, so the number is exact even mid-record.
func (t *Tokenizer) Line() int64 { return t.in.line }

// Offset returns the number of characters consumed so far.
func (t *Tokenizer) Offset() int64 { return t.in.offset }

// FirstEndOfLine returns the first record-terminator style encountered,
// or "" if none has been seen yet.
func (t *Tokenizer) FirstEndOfLine() string { return t.firstEOL }

// NextToken scans the next token into tok, resetting it first. Malformed
// input sets tok.Type to Invalid and returns one of the sentinel errors
// above; a failing source read returns the underlying error unchanged.
func (t *Tokenizer) NextToken(tok *Token) error {
	tok.Reset()

	lineStart := t.in.atLineStart
	c, err := t.in.read()
	if err == io.EOF {
		tok.Type = EOF
		tok.IsReady = t.lastWasDelim
		t.lastWasDelim = false
		return nil
	}
	if err != nil {
		return err
	}

	eol, err := t.readEndOfLine(c)
	if err != nil {
		return err
	}
	if eol {
		if !lineStart || !t.cfg.IgnoreEmptyLines {
			// Mid-record the terminator closes the record with an empty
			// last field; at line start it is an empty single-field record.
			tok.Type = EndOfRecord
			tok.IsReady = true
			t.lastWasDelim = false
			return nil
		}
		// Skip blank lines.
		for {
			c, err = t.in.read()
			if err == io.EOF {
				tok.Type = EOF
				return nil
			}
			if err != nil {
				return err
			}
			eol, err = t.readEndOfLine(c)
			if err != nil {
				return err
			}
			if !eol {
				break
			}
		}
		lineStart = true
	}
	t.lastWasDelim = false

	if t.cfg.Comment != 0 && lineStart {
		ok, err := t.atCommentMarker(c)
		if err != nil {
			return err
		}
		if ok {
			return t.readComment(tok)
		}
	}

	return t.parseField(tok, c)
}

// atCommentMarker reports whether c begins a comment line: the marker must
// be the first non-space character of the line. On a match the skipped
// spaces and the marker itself are consumed.
func (t *Tokenizer) atCommentMarker(c rune) (bool, error) {
	if c == t.cfg.Comment {
		return true, nil
	}
	n := 0
	for c == ' ' || c == '\t' {
		r, err := t.in.peek(n)
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		c = r
		n++
	}
	if c != t.cfg.Comment {
		return false, nil
	}
	for i := 0; i < n; i++ {
		if _, err := t.in.read(); err != nil {
			return false, err
		}
	}
	return true, nil
}

// readComment consumes the rest of the line as a Comment token, marker
// already consumed, terminator eaten, surrounding spaces trimmed.
func (t *Tokenizer) readComment(tok *Token) error {
	tok.Type = Comment
	for {
		c, err := t.in.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		eol, err := t.readEndOfLine(c)
		if err != nil {
			return err
		}
		if eol {
			break
		}
		tok.append(c)
	}
	for len(tok.Content) > 0 && (tok.Content[0] == ' ' || tok.Content[0] == '\t') {
		tok.Content = tok.Content[1:]
	}
	tok.TrimTrailingSpaces()
	return nil
}

// parseField scans one field starting at c, quoted or not.
func (t *Tokenizer) parseField(tok *Token, c rune) error {
	leading := t.cfg.IgnoreSurroundingSpaces
	var err error
	for {
		eol, eerr := t.readEndOfLine(c)
		if eerr != nil {
			return eerr
		}
		if eol {
			tok.Type = EndOfRecord
			tok.IsReady = true
			break
		}
		del, derr := t.matchDelimiter(c)
		if derr != nil {
			return derr
		}
		if del {
			tok.Type = Field
			tok.IsReady = true
			t.lastWasDelim = true
			break
		}
		switch {
		case leading && len(tok.Content) == 0 && (c == ' ' || c == '\t'):
			// skip leading spaces
		case t.cfg.Quote != 0 && c == t.cfg.Quote && len(tok.Content) == 0:
			return t.parseQuoted(tok)
		case t.cfg.Escape != 0 && c == t.cfg.Escape:
			ec, eserr := t.readEscape()
			if eserr != nil {
				tok.Type = Invalid
				return eserr
			}
			for _, r := range ec {
				tok.append(r)
			}
		default:
			tok.append(c)
		}

		c, err = t.in.read()
		if err == io.EOF {
			tok.Type = EOF
			tok.IsReady = true
			break
		}
		if err != nil {
			return err
		}
	}
	if t.cfg.IgnoreSurroundingSpaces {
		tok.TrimTrailingSpaces()
	}
	return nil
}

// parseQuoted scans a quoted field, opening quote already consumed. A
// doubled quote is a literal quote; a configured distinct escape character
// escapes any following character, including terminators and the quote.
// After the closing quote only spaces may precede the delimiter,
// terminator, or EOF.
func (t *Tokenizer) parseQuoted(tok *Token) error {
	tok.WasQuoted = true
	for {
		c, err := t.in.read()
		if err == io.EOF {
			tok.Type = Invalid
			return ErrUnterminatedQuote
		}
		if err != nil {
			return err
		}

		if t.cfg.Escape != 0 && c == t.cfg.Escape && t.cfg.Escape != t.cfg.Quote {
			ec, eserr := t.readEscape()
			if eserr != nil {
				tok.Type = Invalid
				return eserr
			}
			for _, r := range ec {
				tok.append(r)
			}
			continue
		}
		if c != t.cfg.Quote {
			// Terminators inside quotes are content; the reader still
			// counts the line.
			tok.append(c)
			continue
		}
		next, perr := t.in.peek(0)
		if perr == nil && next == t.cfg.Quote {
			t.in.read()
			tok.append(t.cfg.Quote)
			continue
		}
		if perr != nil && perr != io.EOF {
			return perr
		}

		// Closing quote; find out how the field ends.
		for {
			c, err = t.in.read()
			if err == io.EOF {
				tok.Type = EOF
				tok.IsReady = true
				return nil
			}
			if err != nil {
				return err
			}
			del, derr := t.matchDelimiter(c)
			if derr != nil {
				return derr
			}
			if del {
				tok.Type = Field
				tok.IsReady = true
				t.lastWasDelim = true
				return nil
			}
			eol, eerr := t.readEndOfLine(c)
			if eerr != nil {
				return eerr
			}
			if eol {
				tok.Type = EndOfRecord
				tok.IsReady = true
				return nil
			}
			if c != ' ' && c != '\t' {
				tok.Type = Invalid
				return ErrCharAfterQuote
			}
		}
	}
}

// readEscape consumes the character after an escape character. 'n' and 'r'
// decode to LF and CR, and a dialect meta character (delimiter, quote,
// escape, comment) stands for itself. Any other pair is kept verbatim,
// escape character included, so that markers like \N pass through intact.
func (t *Tokenizer) readEscape() ([]rune, error) {
	c, err := t.in.read()
	if err == io.EOF {
		return nil, ErrTruncatedEscape
	}
	if err != nil {
		return nil, err
	}
	switch {
	case c == 'n':
		return []rune{'\n'}, nil
	case c == 'r':
		return []rune{'\r'}, nil
	case c == t.cfg.Escape || c == t.cfg.Quote || c == t.cfg.Comment,
		strings.ContainsRune(t.cfg.Delimiter, c),
		c == '\n' || c == '\r':
		return []rune{c}, nil
	default:
		return []rune{t.cfg.Escape, c}, nil
	}
}

// matchDelimiter reports whether c begins a full delimiter match, using
// bounded lookahead for multi-character delimiters. A partial match cut
// short by EOF does not trigger. On a match the remaining delimiter
// characters are consumed.
func (t *Tokenizer) matchDelimiter(c rune) (bool, error) {
	if c != t.delim[0] {
		return false, nil
	}
	for i := 1; i < len(t.delim); i++ {
		r, err := t.in.peek(i - 1)
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if r != t.delim[i] {
			return false, nil
		}
	}
	for i := 1; i < len(t.delim); i++ {
		if _, err := t.in.read(); err != nil {
			return false, err
		}
	}
	return true, nil
}

// readEndOfLine reports whether c terminates a line, consuming the LF of a
// CRLF pair. CR, LF and CRLF are all accepted on input regardless of the
// dialect's output separator.
func (t *Tokenizer) readEndOfLine(c rune) (bool, error) {
	switch c {
	case '\r':
		next, err := t.in.peek(0)
		if err == nil && next == '\n' {
			t.in.read()
			t.noteEOL("\r\n")
			return true, nil
		}
		if err != nil && err != io.EOF {
			return false, err
		}
		t.noteEOL("\r")
		return true, nil
	case '\n':
		t.noteEOL("\n")
		return true, nil
	}
	return false, nil
}

func (t *Tokenizer) noteEOL(s string) {
	if t.firstEOL == "" {
		t.firstEOL = s
	}
}
