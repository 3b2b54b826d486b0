package csv

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Printer writes properly delimited, quoted and escaped fields in a
// Dialect. Its quoting decisions are the exact forward mirror of the
// tokenizer: anything the printer emits, a parser under the same dialect
// reads back unambiguously.
//
// Writes are synchronous and go through an internal buffer; any sink
// failure surfaces as a *SinkError wrapping the unchanged underlying error.
type Printer struct {
	w       *bufio.Writer
	sink    io.Writer
	dialect Dialect

	// newRecord is true before the first field of a record, suppressing
	// the leading delimiter and feeding the minimal-quoting empty-field rule.
	newRecord bool
	records   int64
}

// NewPrinter creates a Printer on w under d. With an explicit header and
// skipHeaderRecord unset, the header record is written immediately.
func NewPrinter(w io.Writer, d Dialect) (*Printer, error) {
	if !d.built() {
		return nil, &ConfigError{Option: "dialect", Message: "not built; use NewDialect or a preset"}
	}
	p := &Printer{
		w:         bufio.NewWriter(w),
		sink:      w,
		dialect:   d,
		newRecord: true,
	}
	if d.headerMode == headerExplicit && !d.skipHeaderRecord {
		for _, name := range d.header {
			if err := p.Print(name); err != nil {
				return nil, err
			}
		}
		if err := p.Println(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Records returns the number of records completed by Println.
func (p *Printer) Records() int64 { return p.records }

// Print writes one field. nil prints as the dialect's null; an io.Reader
// value streams without being fully buffered; everything else is
// stringified. The leading delimiter is written before every field except
// the first of its record.
func (p *Printer) Print(value any) error {
	first := p.newRecord
	if err := p.beginField(); err != nil {
		return err
	}
	if value == nil {
		return p.printNull()
	}
	if r, ok := value.(io.Reader); ok {
		return p.printStream(r)
	}
	s := stringify(value)
	if p.dialect.trim {
		s = strings.TrimSpace(s)
	}
	return p.printValue(value, s, first)
}

// PrintRecord prints the values as one record and ends it.
func (p *Printer) PrintRecord(values ...any) error {
	for _, v := range values {
		if err := p.Print(v); err != nil {
			return err
		}
	}
	return p.Println()
}

// PrintStrings prints a record of plain string fields.
func (p *Printer) PrintStrings(values []string) error {
	for _, v := range values {
		if err := p.Print(v); err != nil {
			return err
		}
	}
	return p.Println()
}

// Println ends the current record: the optional trailing delimiter, then
// the record separator, then first-field state resets.
func (p *Printer) Println() error {
	if p.dialect.trailingDelimiter {
		if err := p.write(p.dialect.delimiter); err != nil {
			return err
		}
	}
	if err := p.write(p.dialect.recordSeparator); err != nil {
		return err
	}
	p.newRecord = true
	p.records++
	return nil
}

// PrintComment writes comment lines when the dialect has a comment
// marker, one marker-prefixed line per embedded line break. Without a
// marker it does nothing. An open record is ended first.
func (p *Printer) PrintComment(comment string) error {
	if p.dialect.comment == 0 {
		return nil
	}
	if !p.newRecord {
		if err := p.Println(); err != nil {
			return err
		}
	}
	for _, line := range strings.Split(comment, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if err := p.write(string(p.dialect.comment) + " " + line + p.dialect.recordSeparator); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes buffered output to the sink.
func (p *Printer) Flush() error {
	if err := p.w.Flush(); err != nil {
		return &SinkError{Err: err}
	}
	return nil
}

// Close closes the printer, flushing first only when the dialect's
// autoFlush flag is set. The sink is closed when it is an io.Closer.
func (p *Printer) Close() error {
	if p.dialect.autoFlush {
		return p.CloseWithFlush()
	}
	return p.closeSink()
}

// CloseWithFlush flushes and closes regardless of the autoFlush flag.
func (p *Printer) CloseWithFlush() error {
	if err := p.Flush(); err != nil {
		return err
	}
	return p.closeSink()
}

func (p *Printer) closeSink() error {
	if c, ok := p.sink.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return &SinkError{Err: err}
		}
	}
	return nil
}

func (p *Printer) beginField() error {
	if p.newRecord {
		p.newRecord = false
		return nil
	}
	return p.write(p.dialect.delimiter)
}

// printNull emits the null form: the quoted null string under QuoteAll,
// otherwise the bare null string, or nothing when none is configured.
func (p *Printer) printNull() error {
	ns := p.dialect.nullString
	if p.dialect.quote != 0 && p.dialect.quoteMode == QuoteAll {
		return p.writeQuoted(ns)
	}
	return p.write(ns)
}

// printValue runs the quoting-decision ladder for a non-null value. orig
// is the pre-stringification value, which QuoteNonNumeric inspects;
// first marks the record's first field.
func (p *Printer) printValue(orig any, s string, first bool) error {
	if p.dialect.quote == 0 {
		return p.writeEscaped(s)
	}
	switch p.dialect.quoteMode {
	case QuoteAll, QuoteAllNonNull:
		return p.writeQuoted(s)
	case QuoteNonNumeric:
		if isNumeric(orig) {
			return p.write(s)
		}
		return p.writeQuoted(s)
	case QuoteNone:
		return p.writeEscaped(s)
	default: // QuoteMinimal
		if p.needsQuotes(s, first) {
			return p.writeQuoted(s)
		}
		return p.write(s)
	}
}

// needsQuotes is the minimal-mode decision. The first-character guard
// compares against the comment marker (or '#' when comments are disabled)
// to stay within historical parser leniency limits.
func (p *Printer) needsQuotes(s string, first bool) bool {
	if s == "" {
		// Only the first field of a record needs quoting when empty: an
		// unquoted leading empty field would read as a skipped line.
		return first
	}
	runes := []rune(s)
	guard := p.dialect.comment
	if guard == 0 {
		guard = '#'
	}
	if runes[0] <= guard {
		return true
	}
	if runes[len(runes)-1] <= ' ' {
		return true
	}
	esc := p.dialect.escape
	if esc == 0 {
		esc = p.dialect.quote
	}
	for _, c := range runes {
		if c == '\r' || c == '\n' || c == p.dialect.quote || c == esc {
			return true
		}
	}
	return strings.Contains(s, p.dialect.delimiter)
}

// writeQuoted emits the value wrapped in quote characters, doubling every
// quote-char and escape-char occurrence inside it.
func (p *Printer) writeQuoted(s string) error {
	q := string(p.dialect.quote)
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteString(q)
	for _, c := range s {
		if c == p.dialect.quote || (p.dialect.escape != 0 && c == p.dialect.escape) {
			b.WriteRune(c)
		}
		b.WriteRune(c)
	}
	b.WriteString(q)
	return p.write(b.String())
}

// writeEscaped is the pure escaping path: CR and LF become escape+r and
// escape+n, the escape character doubles, and every character of a
// delimiter match is escaped individually. Without an escape character
// the value is written raw.
func (p *Printer) writeEscaped(s string) error {
	esc := p.dialect.escape
	if esc == 0 {
		return p.write(s)
	}
	var b strings.Builder
	runes := []rune(s)
	delim := []rune(p.dialect.delimiter)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '\n':
			b.WriteRune(esc)
			b.WriteRune('n')
		case c == '\r':
			b.WriteRune(esc)
			b.WriteRune('r')
		case c == esc:
			b.WriteRune(esc)
			b.WriteRune(esc)
		case matchesAt(runes, i, delim):
			for _, d := range delim {
				b.WriteRune(esc)
				b.WriteRune(d)
			}
			i += len(delim) - 1
		default:
			b.WriteRune(c)
		}
	}
	return p.write(b.String())
}

func matchesAt(runes []rune, i int, delim []rune) bool {
	if i+len(delim) > len(runes) {
		return false
	}
	for j, d := range delim {
		if runes[i+j] != d {
			return false
		}
	}
	return true
}

// printStream writes a field from a character stream without buffering it
// whole. With a quote character the field is always quoted, since the
// decision cannot be made without seeing the full value; otherwise the
// escaping path runs with a lookahead ring sized to the delimiter.
func (p *Printer) printStream(r io.Reader) error {
	br := bufio.NewReader(r)
	if p.dialect.quote != 0 && p.dialect.quoteMode != QuoteNone {
		return p.streamQuoted(br)
	}
	return p.streamEscaped(br)
}

func (p *Printer) streamQuoted(br *bufio.Reader) error {
	if err := p.write(string(p.dialect.quote)); err != nil {
		return err
	}
	for {
		c, _, err := br.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if c == p.dialect.quote || (p.dialect.escape != 0 && c == p.dialect.escape) {
			if err := p.writeRune(c); err != nil {
				return err
			}
		}
		if err := p.writeRune(c); err != nil {
			return err
		}
	}
	return p.write(string(p.dialect.quote))
}

func (p *Printer) streamEscaped(br *bufio.Reader) error {
	esc := p.dialect.escape
	delim := []rune(p.dialect.delimiter)
	// The ring holds at most one delimiter's worth of lookahead.
	var pending []rune
	fill := func(n int) error {
		for len(pending) < n {
			c, _, err := br.ReadRune()
			if err == io.EOF {
				return io.EOF
			}
			if err != nil {
				return err
			}
			pending = append(pending, c)
		}
		return nil
	}
	for {
		if err := fill(1); err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		c := pending[0]
		if esc == 0 {
			pending = pending[1:]
			if err := p.writeRune(c); err != nil {
				return err
			}
			continue
		}
		switch {
		case c == '\n':
			pending = pending[1:]
			if err := p.write(string(esc) + "n"); err != nil {
				return err
			}
		case c == '\r':
			pending = pending[1:]
			if err := p.write(string(esc) + "r"); err != nil {
				return err
			}
		case c == esc:
			pending = pending[1:]
			if err := p.write(string(esc) + string(esc)); err != nil {
				return err
			}
		case c == delim[0]:
			err := fill(len(delim))
			if err != nil && err != io.EOF {
				return err
			}
			if runesEqual(pending, delim) {
				pending = pending[len(delim):]
				for _, d := range delim {
					if err := p.write(string(esc) + string(d)); err != nil {
						return err
					}
				}
			} else {
				pending = pending[1:]
				if err := p.writeRune(c); err != nil {
					return err
				}
			}
		default:
			pending = pending[1:]
			if err := p.writeRune(c); err != nil {
				return err
			}
		}
	}
}

func runesEqual(have, want []rune) bool {
	if len(have) < len(want) {
		return false
	}
	for i, w := range want {
		if have[i] != w {
			return false
		}
	}
	return true
}

func (p *Printer) write(s string) error {
	if _, err := p.w.WriteString(s); err != nil {
		return &SinkError{Err: err}
	}
	return nil
}

func (p *Printer) writeRune(c rune) error {
	if _, err := p.w.WriteRune(c); err != nil {
		return &SinkError{Err: err}
	}
	return nil
}

// stringify renders a non-nil field value.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// isNumeric reports whether the pre-stringification value is a numeric
// type, which QuoteNonNumeric leaves unquoted.
func isNumeric(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64:
		return true
	default:
		return false
	}
}
