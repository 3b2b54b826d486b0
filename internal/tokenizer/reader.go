package tokenizer

import (
	"bufio"
	"io"
)

// reader is a rune reader with unbounded peek, character-offset and
// line-number tracking. Lines are counted when the terminating character
// is consumed; the CR of a CRLF pair does not count (the LF will).
type reader struct {
	r      *bufio.Reader
	peeked []rune

	line        int64 // 1-based
	offset      int64 // runes consumed
	atLineStart bool
}

func newReader(r io.Reader) *reader {
	return &reader{
		r:           bufio.NewReader(r),
		line:        1,
		atLineStart: true,
	}
}

// fill ensures at least n runes are buffered, or returns io.EOF if the
// stream ends first. Any other read error is returned as-is.
func (r *reader) fill(n int) error {
	for len(r.peeked) < n {
		c, _, err := r.r.ReadRune()
		if err != nil {
			return err
		}
		r.peeked = append(r.peeked, c)
	}
	return nil
}

// peek returns the rune i positions ahead without consuming it.
func (r *reader) peek(i int) (rune, error) {
	if err := r.fill(i + 1); err != nil {
		return 0, err
	}
	return r.peeked[i], nil
}

// read consumes and returns the next rune, updating offset and line count.
func (r *reader) read() (rune, error) {
	if err := r.fill(1); err != nil {
		return 0, err
	}
	c := r.peeked[0]
	r.peeked = r.peeked[1:]
	r.offset++

	switch c {
	case '\n':
		r.line++
		r.atLineStart = true
	case '\r':
		// A lone CR terminates a line; the CR of CRLF defers to the LF.
		if next, err := r.peek(0); err != nil || next != '\n' {
			r.line++
			r.atLineStart = true
		}
	default:
		r.atLineStart = false
	}
	return c, nil
}
