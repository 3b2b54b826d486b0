package csv

import (
	"io"
	"strings"
)

// Document is an in-memory CSV table with a fluent API: optional headers
// plus data rows. It round-trips through any Dialect.
//
//	doc := csv.NewDocument().
//		SetHeaders([]string{"name", "age"}).
//		AddRow([]string{"Alice", "30"}).
//		AddRow([]string{"Bob", "25"})
//	out, err := doc.String(csv.RFC4180())
type Document struct {
	headers []string
	rows    [][]string
}

// NewDocument creates an empty Document.
func NewDocument() *Document {
	return &Document{}
}

// ParseDocument parses input under d into a Document. When the dialect
// resolves headers they populate the document's headers; otherwise every
// row is data.
func ParseDocument(input string, d Dialect) (*Document, error) {
	p, err := NewParser(strings.NewReader(input), d)
	if err != nil {
		return nil, err
	}
	records, err := p.ReadAll()
	if err != nil {
		return nil, err
	}
	doc := NewDocument()
	doc.headers = p.HeaderNames()
	for _, rec := range records {
		doc.rows = append(doc.rows, rec.Values())
	}
	return doc, nil
}

// SetHeaders sets the column names. Returns the Document for chaining.
func (d *Document) SetHeaders(headers []string) *Document {
	d.headers = append([]string(nil), headers...)
	return d
}

// AddRow appends one data row. Returns the Document for chaining.
func (d *Document) AddRow(row []string) *Document {
	d.rows = append(d.rows, append([]string(nil), row...))
	return d
}

// Headers returns a copy of the column names, nil when unset.
func (d *Document) Headers() []string {
	return append([]string(nil), d.headers...)
}

// Rows returns a copy of the data rows.
func (d *Document) Rows() [][]string {
	out := make([][]string, len(d.rows))
	for i, row := range d.rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// RowCount returns the number of data rows.
func (d *Document) RowCount() int { return len(d.rows) }

// Print writes the document to w under dialect: the header row first
// when set, then every data row.
func (d *Document) Print(w io.Writer, dialect Dialect) error {
	// The document supplies the header itself; strip any dialect header
	// so the printer does not emit one of its own.
	dialect, err := NewDialectFrom(dialect, WithoutHeader())
	if err != nil {
		return err
	}
	p, err := NewPrinter(w, dialect)
	if err != nil {
		return err
	}
	if len(d.headers) > 0 {
		if err := p.PrintStrings(d.headers); err != nil {
			return err
		}
	}
	for _, row := range d.rows {
		if err := p.PrintStrings(row); err != nil {
			return err
		}
	}
	return p.Flush()
}

// String renders the document under dialect.
func (d *Document) String(dialect Dialect) (string, error) {
	var b strings.Builder
	if err := d.Print(&b, dialect); err != nil {
		return "", err
	}
	return b.String(), nil
}
