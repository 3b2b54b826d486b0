// Package csv reads and writes delimiter-separated text under configurable
// dialects.
//
// CSV is a deceptively irregular format: quoting, escaping, comments,
// multi-character delimiters and null-versus-empty semantics all vary by
// producer (RFC 4180, Excel, MySQL, PostgreSQL, Informix, mongoexport, …).
// This package models the variation as an immutable Dialect value and
// keeps one contract across it: whatever the Printer quotes or escapes,
// the Parser reads back unambiguously, for every dialect.
//
// # Dialects
//
// Build a Dialect from a preset or from options:
//
//	d, err := csv.NewDialect(
//		csv.WithDelimiter(";"),
//		csv.WithHeader(),
//		csv.WithIgnoreSurroundingSpaces(true),
//	)
//
// All invariants are validated once, at build time; parsers and printers
// copy the value at construction, so a Dialect can be shared freely.
//
// # Parsing
//
// Parser is a forward-only cursor over one character source:
//
//	p, err := csv.NewParser(file, csv.Default())
//	for {
//		rec, err := p.Read()
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			// handle error
//		}
//		name, _ := rec.GetByName("name")
//		_ = name
//	}
//
// Scanner wraps the same cursor in a Scan/Err loop, and ParseFile/ParseURL
// open sources with charset decoding.
//
// # Printing
//
//	pr, err := csv.NewPrinter(os.Stdout, csv.PostgreSQLCSV())
//	err = pr.PrintRecord("a", nil, "c") // nil prints as the dialect null
//	err = pr.CloseWithFlush()
//
// # Concurrency
//
// Distinct parser and printer instances share no state. A single parser
// or printer is not safe for concurrent use.
package csv

import "strings"

// Parse reads every record of input under d.
func Parse(input string, d Dialect) ([]*Record, error) {
	p, err := ParseString(input, d)
	if err != nil {
		return nil, err
	}
	return p.ReadAll()
}

// Print renders rows under d and returns the text.
func Print(rows [][]string, d Dialect) (string, error) {
	var b strings.Builder
	p, err := NewPrinter(&b, d)
	if err != nil {
		return "", err
	}
	for _, row := range rows {
		if err := p.PrintStrings(row); err != nil {
			return "", err
		}
	}
	if err := p.Flush(); err != nil {
		return "", err
	}
	return b.String(), nil
}
