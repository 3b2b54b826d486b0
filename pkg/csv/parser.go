package csv

import (
	"io"
	"strings"

	"github.com/tabforge/dialect-csv/internal/tokenizer"
)

// Parser assembles records from a character source under a Dialect. It is
// a forward-only cursor: records cannot be re-read, and every Read call
// observes the same underlying stream position. Cancellation is closing
// the underlying source; subsequent reads then fail, ending iteration.
//
// The Dialect is copied at construction; mutating the caller's value
// afterwards has no effect on the parse.
type Parser struct {
	dialect Dialect
	lexer   *tokenizer.Tokenizer
	tok     tokenizer.Token

	headers *Headers

	values   []string
	nulls    []bool
	comments []string

	recordNumber int64
	baseOffset   int64

	err    error // sticky fatal error
	closer io.Closer
}

// NewParser creates a Parser reading from r under d. If the dialect asks
// for a header (explicit or read from input), it is resolved here, before
// the first Read, consuming whatever initial records that requires.
func NewParser(r io.Reader, d Dialect) (*Parser, error) {
	return NewParserAt(r, d, 0, 0)
}

// NewParserAt is NewParser for a stream that begins mid-source:
// recordOffset is added to every record number and charOffset to every
// character position, so numbering resumes where a previous parse left off.
func NewParserAt(r io.Reader, d Dialect, recordOffset, charOffset int64) (*Parser, error) {
	if !d.built() {
		return nil, &ConfigError{Option: "dialect", Message: "not built; use NewDialect or a preset"}
	}
	p := &Parser{
		dialect: d,
		lexer: tokenizer.New(r, tokenizer.Config{
			Delimiter:               d.delimiter,
			Quote:                   d.quote,
			Escape:                  d.escape,
			Comment:                 d.comment,
			IgnoreSurroundingSpaces: d.ignoreSurroundingSpaces,
			IgnoreEmptyLines:        d.ignoreEmptyLines,
		}),
		recordNumber: recordOffset,
		baseOffset:   charOffset,
	}
	if err := p.resolveHeaders(); err != nil {
		return nil, err
	}
	return p, nil
}

// resolveHeaders builds the Headers value per the dialect's header setting.
// Header records consumed here do not count toward record numbering.
func (p *Parser) resolveHeaders() error {
	switch p.dialect.headerMode {
	case headerNone:
		return nil
	case headerFromInput:
		rec, err := p.readRecord()
		if err == io.EOF {
			rec = nil
		} else if err != nil {
			return err
		}
		var names []string
		if rec != nil {
			names = rec.values
			p.recordNumber--
		}
		h, err := newHeaders(names, p.dialect.ignoreHeaderCase,
			p.dialect.allowMissingColumnNames, p.dialect.allowDuplicateHeaderNames)
		if err != nil {
			return err
		}
		p.headers = h
		return nil
	default: // headerExplicit
		if p.dialect.skipHeaderRecord {
			rec, err := p.readRecord()
			if err != nil && err != io.EOF {
				return err
			}
			if rec != nil {
				p.recordNumber--
			}
		}
		h, err := newHeaders(p.dialect.header, p.dialect.ignoreHeaderCase,
			p.dialect.allowMissingColumnNames, p.dialect.allowDuplicateHeaderNames)
		if err != nil {
			return err
		}
		p.headers = h
		return nil
	}
}

// Headers returns the resolved headers, or nil when the dialect disables
// them.
func (p *Parser) Headers() *Headers { return p.headers }

// HeaderNames returns the resolved column names, or nil without headers.
func (p *Parser) HeaderNames() []string {
	if p.headers == nil {
		return nil
	}
	return p.headers.Names()
}

// Line returns the current 1-based input line number.
func (p *Parser) Line() int64 { return p.lexer.Line() }

// FirstEndOfLine returns the first record-terminator style seen on input
// ("\n", "\r" or "\r\n"), or "" before any terminator.
func (p *Parser) FirstEndOfLine() string { return p.lexer.FirstEndOfLine() }

// Read returns the next record, or io.EOF when the input is exhausted.
// Any other error is fatal: the parser stays in the failed state and
// further Reads return the same error.
func (p *Parser) Read() (*Record, error) {
	if p.err != nil {
		return nil, p.err
	}
	rec, err := p.readRecord()
	if err != nil && err != io.EOF {
		p.err = err
	}
	return rec, err
}

// ReadAll reads records until EOF. A nil error means the whole input was
// consumed; records read before a mid-stream failure remain valid and are
// returned alongside the error.
func (p *Parser) ReadAll() ([]*Record, error) {
	var out []*Record
	for {
		rec, err := p.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

// Close closes the underlying source when the parser owns one (openers
// like ParseFile arrange that). Parsers over caller-supplied readers
// close nothing.
func (p *Parser) Close() error {
	if p.closer == nil {
		return nil
	}
	c := p.closer
	p.closer = nil
	return c.Close()
}

// readRecord drives the tokenizer until a record closes. Comment tokens
// merge into the pending comment and keep the record open.
func (p *Parser) readRecord() (*Record, error) {
	p.values = p.values[:0]
	p.nulls = p.nulls[:0]
	p.comments = p.comments[:0]

	startLine := p.lexer.Line()
	startOffset := p.baseOffset + p.lexer.Offset()

	for {
		if err := p.lexer.NextToken(&p.tok); err != nil {
			return nil, &ParseError{StartLine: startLine, Line: p.lexer.Line(), Err: err}
		}
		switch p.tok.Type {
		case tokenizer.Field:
			p.addValue(false)
		case tokenizer.EndOfRecord:
			p.addValue(true)
			return p.emit(startOffset), nil
		case tokenizer.EOF:
			if p.tok.IsReady {
				p.addValue(true)
			}
			if len(p.values) > 0 {
				return p.emit(startOffset), nil
			}
			return nil, io.EOF
		case tokenizer.Comment:
			p.comments = append(p.comments, p.tok.Value())
			// A comment at the head of a record moves its start past the
			// comment's own line.
			if len(p.values) == 0 {
				startLine = p.lexer.Line()
				startOffset = p.baseOffset + p.lexer.Offset()
			}
		}
	}
}

// addValue applies per-field post-processing in order: trim, trailing
// delimiter suppression, then null/empty disambiguation.
func (p *Parser) addValue(last bool) {
	text := p.tok.Value()
	if p.dialect.trim {
		text = strings.TrimSpace(text)
	}
	if last && text == "" && p.dialect.trailingDelimiter {
		return
	}
	value, isNull := p.assembleValue(text, p.tok.WasQuoted)
	p.values = append(p.values, value)
	p.nulls = append(p.nulls, isNull)
}

// assembleValue is the null/empty decision table. It evolved alongside
// the dialect presets; keep the cases exactly as they are.
func (p *Parser) assembleValue(text string, quoted bool) (string, bool) {
	strict := p.dialect.quoteMode.isStrict()
	if p.dialect.hasNullString {
		// A quoted field that merely spells the null string stays a
		// literal under strict modes; everywhere else it is null.
		if text == p.dialect.nullString && !(strict && quoted) {
			return "", true
		}
		return text, false
	}
	// Without a null string, strict modes quote every real value, so an
	// unquoted empty field can only mean absent.
	if strict && text == "" && !quoted {
		return "", true
	}
	return text, false
}

// emit closes the pending record. Numbering advances here and nowhere
// else, so skipped lines and comments never consume a number.
func (p *Parser) emit(startOffset int64) *Record {
	p.recordNumber++
	rec := &Record{
		values:  append([]string(nil), p.values...),
		nulls:   append([]bool(nil), p.nulls...),
		comment: strings.Join(p.comments, "\n"),
		number:  p.recordNumber,
		offset:  startOffset,
		headers: p.headers,
	}
	return rec
}
