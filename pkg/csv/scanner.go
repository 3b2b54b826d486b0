package csv

import "io"

// Scanner is a streaming facade over Parser for reading records one at a
// time with the familiar Scan/Err shape.
//
//	sc := csv.NewScanner(file, csv.Default())
//	for sc.Scan() {
//		rec := sc.Record()
//		// process rec
//	}
//	if err := sc.Err(); err != nil {
//		// handle error
//	}
type Scanner struct {
	reader  io.Reader
	dialect Dialect
	parser  *Parser
	rec     *Record
	err     error
	started bool
}

// NewScanner creates a Scanner reading from r under d. The parser (and
// any header resolution) is created lazily on the first Scan, so a
// construction failure surfaces through Err.
func NewScanner(r io.Reader, d Dialect) *Scanner {
	return &Scanner{reader: r, dialect: d}
}

// Scan advances to the next record. It returns false at end of input or
// on error; Err tells the two apart.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	if !s.started {
		s.started = true
		s.parser, s.err = NewParser(s.reader, s.dialect)
		if s.err != nil {
			return false
		}
	}
	rec, err := s.parser.Read()
	if err == io.EOF {
		s.rec = nil
		return false
	}
	if err != nil {
		s.err = err
		s.rec = nil
		return false
	}
	s.rec = rec
	return true
}

// Record returns the record produced by the last successful Scan.
func (s *Scanner) Record() *Record { return s.rec }

// Err returns the first error encountered, or nil at clean end of input.
func (s *Scanner) Err() error { return s.err }

// Headers returns the resolved column names, or nil before the first
// Scan or when the dialect has no header.
func (s *Scanner) Headers() []string {
	if s.parser == nil {
		return nil
	}
	return s.parser.HeaderNames()
}
