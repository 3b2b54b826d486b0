package csv

import (
	"strconv"
	"strings"
)

// Sniffer detects the likely dialect of a CSV sample: delimiter, quote
// usage, and whether the first row is a header. For best results give it
// at least two or three lines of data.
type Sniffer struct {
	sample string

	delimiter rune
	quoted    bool
	hasHeader bool
	analyzed  bool
}

// candidate delimiters, most common first.
var sniffDelimiters = []rune{',', '\t', ';', '|'}

// NewSniffer creates a Sniffer over a sample of CSV data.
func NewSniffer(sample string) *Sniffer {
	return &Sniffer{sample: sample}
}

func (s *Sniffer) analyze() {
	if s.analyzed {
		return
	}
	s.delimiter = s.detectDelimiter()
	s.quoted = strings.ContainsRune(s.sample, '"')
	s.hasHeader = s.detectHeader()
	s.analyzed = true
}

// DetectDelimiter returns the detected field delimiter, defaulting to
// comma when nothing scores.
func (s *Sniffer) DetectDelimiter() rune {
	s.analyze()
	return s.delimiter
}

// Quoted reports whether the sample appears to use double quotes.
func (s *Sniffer) Quoted() bool {
	s.analyze()
	return s.quoted
}

// HasHeader reports whether the first row looks like column names rather
// than data.
func (s *Sniffer) HasHeader() bool {
	s.analyze()
	return s.hasHeader
}

// Dialect returns a suggested Dialect: Default with the detected
// delimiter, reading the header from input when one was detected.
func (s *Sniffer) Dialect() Dialect {
	s.analyze()
	opts := []Option{WithDelimiter(string(s.delimiter))}
	if s.hasHeader {
		opts = append(opts, WithHeader())
	}
	d, err := NewDialect(opts...)
	if err != nil {
		return Default()
	}
	return d
}

// detectDelimiter scores each candidate by per-line occurrence counts,
// with a bonus for a count that is consistent across lines.
func (s *Sniffer) detectDelimiter() rune {
	lines := sampleLines(s.sample)
	if len(lines) == 0 {
		return ','
	}

	scores := make(map[rune]int, len(sniffDelimiters))
	for _, delim := range sniffDelimiters {
		counts := make([]int, 0, len(lines))
		for _, line := range lines {
			counts = append(counts, strings.Count(line, string(delim)))
		}
		if counts[0] == 0 {
			continue
		}
		consistent := true
		for _, c := range counts[1:] {
			if c != counts[0] {
				consistent = false
				break
			}
		}
		if consistent {
			scores[delim] = counts[0] * 10
		} else {
			scores[delim] = counts[0]
		}
	}

	best, bestScore := ',', 0
	for _, delim := range sniffDelimiters {
		if scores[delim] > bestScore {
			best, bestScore = delim, scores[delim]
		}
	}
	return best
}

// detectHeader compares the first row against the second: a first row
// with no numeric cells above a numeric-looking second row is a header.
func (s *Sniffer) detectHeader() bool {
	lines := sampleLines(s.sample)
	if len(lines) < 2 {
		return false
	}
	delim := string(s.delimiter)
	first := strings.Split(lines[0], delim)
	second := strings.Split(lines[1], delim)

	for _, cell := range first {
		if looksNumeric(cell) {
			return false
		}
	}
	for _, cell := range second {
		if looksNumeric(cell) {
			return true
		}
	}
	return false
}

func looksNumeric(cell string) bool {
	cell = strings.TrimSpace(strings.Trim(cell, `"`))
	if cell == "" {
		return false
	}
	_, err := strconv.ParseFloat(cell, 64)
	return err == nil
}

func sampleLines(sample string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(sample, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
