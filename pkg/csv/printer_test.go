package csv

import (
	"errors"
	"strings"
	"testing"
)

func printRecord(t *testing.T, d Dialect, values ...any) string {
	t.Helper()
	var sb strings.Builder
	p, err := NewPrinter(&sb, d)
	if err != nil {
		t.Fatalf("NewPrinter: %v", err)
	}
	if err := p.PrintRecord(values...); err != nil {
		t.Fatalf("PrintRecord: %v", err)
	}
	if err := p.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	return sb.String()
}

func TestPrinter_Minimal(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   string
	}{
		{
			name:   "plain fields unquoted",
			values: []any{"a", "b", "c"},
			want:   "a,b,c\r\n",
		},
		{
			name:   "delimiter forces quotes",
			values: []any{"x,y", "z"},
			want:   "\"x,y\",z\r\n",
		},
		{
			name:   "embedded newline forces quotes",
			values: []any{"l1\nl2"},
			want:   "\"l1\nl2\"\r\n",
		},
		{
			name:   "embedded quote doubles",
			values: []any{`say "hi"`},
			want:   "\"say \"\"hi\"\"\"\r\n",
		},
		{
			name:   "leading empty field quoted",
			values: []any{"", "b"},
			want:   "\"\",b\r\n",
		},
		{
			name:   "non-leading empty field bare",
			values: []any{"a", ""},
			want:   "a,\r\n",
		},
		{
			name:   "trailing space forces quotes",
			values: []any{"a "},
			want:   "\"a \"\r\n",
		},
		{
			name:   "low leading character forces quotes",
			values: []any{"#note"},
			want:   "\"#note\"\r\n",
		},
		{
			name:   "numbers stringify",
			values: []any{42, 3.5},
			want:   "42,3.5\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := printRecord(t, Default(), tt.values...)
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrinter_QuoteModes(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		vals []any
		want string
	}{
		{
			name: "quote all",
			opts: []Option{WithQuoteMode(QuoteAll)},
			vals: []any{"a", "1"},
			want: "\"a\",\"1\"\r\n",
		},
		{
			name: "quote all non null",
			opts: []Option{WithQuoteMode(QuoteAllNonNull), WithNullString("NULL")},
			vals: []any{"a", nil},
			want: "\"a\",NULL\r\n",
		},
		{
			name: "quote all quotes the null string",
			opts: []Option{WithQuoteMode(QuoteAll), WithNullString("NULL")},
			vals: []any{"a", nil},
			want: "\"a\",\"NULL\"\r\n",
		},
		{
			name: "non numeric leaves numbers bare",
			opts: []Option{WithQuoteMode(QuoteNonNumeric)},
			vals: []any{"a", 42, 3.5},
			want: "\"a\",42,3.5\r\n",
		},
		{
			name: "numeric-looking string still quotes",
			opts: []Option{WithQuoteMode(QuoteNonNumeric)},
			vals: []any{"42"},
			want: "\"42\"\r\n",
		},
		{
			name: "quote none escapes",
			opts: []Option{WithQuoteMode(QuoteNone), WithQuote(0), WithEscape('\\')},
			vals: []any{"x,y", "a\nb"},
			want: "x\\,y,a\\nb\r\n",
		},
		{
			name: "null without null string prints nothing",
			opts: nil,
			vals: []any{"a", nil, "b"},
			want: "a,,b\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDialect(NewDialect(tt.opts...))
			got := printRecord(t, d, tt.vals...)
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrinter_EscapePath(t *testing.T) {
	// MySQL: tab-delimited, no quote, backslash escapes.
	d := MySQL()
	tests := []struct {
		name string
		vals []any
		want string
	}{
		{"plain", []any{"a", "b"}, "a\tb\n"},
		{"embedded tab", []any{"a\tb"}, "a\\\tb\n"},
		{"embedded newline", []any{"a\nb"}, "a\\nb\n"},
		{"embedded carriage return", []any{"a\rb"}, "a\\rb\n"},
		{"backslash doubles", []any{`a\b`}, "a\\\\b\n"},
		{"null", []any{nil}, "\\N\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := printRecord(t, d, tt.vals...)
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrinter_MultiCharDelimiterEscaping(t *testing.T) {
	d := mustDialect(NewDialect(
		WithDelimiter("[|]"),
		WithQuote(0),
		WithEscape('\\'),
		WithQuoteMode(QuoteNone),
		WithRecordSeparator("\n"),
	))
	got := printRecord(t, d, "a[|]b", "c")
	want := "a\\[\\|\\]b[|]c\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPrinter_TrailingDelimiter(t *testing.T) {
	d := mustDialect(NewDialect(WithTrailingDelimiter(true), WithRecordSeparator("\n")))
	got := printRecord(t, d, "a", "b")
	if got != "a,b,\n" {
		t.Errorf("output = %q, want a,b,\\n", got)
	}
}

func TestPrinter_HeaderRecord(t *testing.T) {
	d := mustDialect(NewDialect(WithHeader("id", "name"), WithRecordSeparator("\n")))
	var sb strings.Builder
	p, err := NewPrinter(&sb, d)
	if err != nil {
		t.Fatalf("NewPrinter: %v", err)
	}
	if err := p.PrintRecord("1", "ada"); err != nil {
		t.Fatalf("PrintRecord: %v", err)
	}
	if err := p.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	want := "id,name\n1,ada\n"
	if sb.String() != want {
		t.Errorf("output = %q, want %q", sb.String(), want)
	}
}

func TestPrinter_HeaderSuppressed(t *testing.T) {
	d := mustDialect(NewDialect(
		WithHeader("id", "name"),
		WithSkipHeaderRecord(true),
		WithRecordSeparator("\n"),
	))
	got := printRecord(t, d, "1", "ada")
	if got != "1,ada\n" {
		t.Errorf("output = %q, want 1,ada\\n", got)
	}
}

func TestPrinter_PrintComment(t *testing.T) {
	t.Run("with marker", func(t *testing.T) {
		d := mustDialect(NewDialect(WithComment('#'), WithRecordSeparator("\n")))
		var sb strings.Builder
		p, err := NewPrinter(&sb, d)
		if err != nil {
			t.Fatalf("NewPrinter: %v", err)
		}
		if err := p.PrintComment("one\ntwo"); err != nil {
			t.Fatalf("PrintComment: %v", err)
		}
		if err := p.PrintRecord("a"); err != nil {
			t.Fatalf("PrintRecord: %v", err)
		}
		if err := p.Flush(); err != nil {
			t.Fatalf("Flush: %v", err)
		}
		want := "# one\n# two\na\n"
		if sb.String() != want {
			t.Errorf("output = %q, want %q", sb.String(), want)
		}
	})

	t.Run("without marker is a no-op", func(t *testing.T) {
		var sb strings.Builder
		p, err := NewPrinter(&sb, Default())
		if err != nil {
			t.Fatalf("NewPrinter: %v", err)
		}
		if err := p.PrintComment("dropped"); err != nil {
			t.Fatalf("PrintComment: %v", err)
		}
		if err := p.Flush(); err != nil {
			t.Fatalf("Flush: %v", err)
		}
		if sb.String() != "" {
			t.Errorf("output = %q, want empty", sb.String())
		}
	})

	t.Run("ends an open record first", func(t *testing.T) {
		d := mustDialect(NewDialect(WithComment('#'), WithRecordSeparator("\n")))
		var sb strings.Builder
		p, err := NewPrinter(&sb, d)
		if err != nil {
			t.Fatalf("NewPrinter: %v", err)
		}
		if err := p.Print("a"); err != nil {
			t.Fatalf("Print: %v", err)
		}
		if err := p.PrintComment("c"); err != nil {
			t.Fatalf("PrintComment: %v", err)
		}
		if err := p.Flush(); err != nil {
			t.Fatalf("Flush: %v", err)
		}
		want := "a\n# c\n"
		if sb.String() != want {
			t.Errorf("output = %q, want %q", sb.String(), want)
		}
	})
}

func TestPrinter_StreamField(t *testing.T) {
	t.Run("quoted stream", func(t *testing.T) {
		d := mustDialect(NewDialect(WithRecordSeparator("\n")))
		var sb strings.Builder
		p, err := NewPrinter(&sb, d)
		if err != nil {
			t.Fatalf("NewPrinter: %v", err)
		}
		if err := p.Print(strings.NewReader(`say "hi", ok`)); err != nil {
			t.Fatalf("Print: %v", err)
		}
		if err := p.Println(); err != nil {
			t.Fatalf("Println: %v", err)
		}
		if err := p.Flush(); err != nil {
			t.Fatalf("Flush: %v", err)
		}
		want := "\"say \"\"hi\"\", ok\"\n"
		if sb.String() != want {
			t.Errorf("output = %q, want %q", sb.String(), want)
		}
	})

	t.Run("escaped stream", func(t *testing.T) {
		var sb strings.Builder
		p, err := NewPrinter(&sb, MySQL())
		if err != nil {
			t.Fatalf("NewPrinter: %v", err)
		}
		if err := p.Print(strings.NewReader("a\tb\nc")); err != nil {
			t.Fatalf("Print: %v", err)
		}
		if err := p.Println(); err != nil {
			t.Fatalf("Println: %v", err)
		}
		if err := p.Flush(); err != nil {
			t.Fatalf("Flush: %v", err)
		}
		want := "a\\\tb\\nc\n"
		if sb.String() != want {
			t.Errorf("output = %q, want %q", sb.String(), want)
		}
	})
}

func TestPrinter_SinkError(t *testing.T) {
	p, err := NewPrinter(failWriter{}, Default())
	if err != nil {
		t.Fatalf("NewPrinter: %v", err)
	}
	if err := p.Print("a"); err != nil {
		t.Fatalf("Print should buffer without error, got %v", err)
	}
	err = p.Flush()
	var se *SinkError
	if !errors.As(err, &se) {
		t.Fatalf("Flush error = %v, want *SinkError", err)
	}
	if !errors.Is(err, errSinkClosed) {
		t.Errorf("SinkError should wrap the underlying error, got %v", err)
	}
}

var errSinkClosed = errors.New("sink closed")

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errSinkClosed }

func TestPrint_Convenience(t *testing.T) {
	out, err := Print([][]string{{"a", "b"}, {"c,d", "e"}}, mustDialect(NewDialect(WithRecordSeparator("\n"))))
	if err != nil {
		t.Fatalf("Print: %v", err)
	}
	want := "a,b\n\"c,d\",e\n"
	if out != want {
		t.Errorf("Print = %q, want %q", out, want)
	}
}

// Round trips: whatever the printer emits, a parser under the same dialect
// reads back as the original values.
func TestRoundTrip(t *testing.T) {
	dialects := []struct {
		name    string
		dialect Dialect
	}{
		{"default", Default()},
		{"rfc4180", RFC4180()},
		{"mysql", MySQL()},
		{"oracle", Oracle()},
		{"postgresql-text", PostgreSQLText()},
		{"informix-unload", InformixUnload()},
		{"tdf", TDF()},
		{"multi-char delimiter", mustDialect(NewDialect(WithDelimiter("[|]")))},
		{"quote all", mustDialect(NewDialect(WithQuoteMode(QuoteAll)))},
	}

	rows := [][]string{
		{"plain", "with,comma", `with "quote"`},
		{"line1\nline2", "tab\there", "z"},
		{"", "middle", ""},
	}

	for _, td := range dialects {
		t.Run(td.name, func(t *testing.T) {
			var sb strings.Builder
			p, err := NewPrinter(&sb, td.dialect)
			if err != nil {
				t.Fatalf("NewPrinter: %v", err)
			}
			for _, row := range rows {
				if err := p.PrintStrings(row); err != nil {
					t.Fatalf("PrintStrings(%v): %v", row, err)
				}
			}
			if err := p.Flush(); err != nil {
				t.Fatalf("Flush: %v", err)
			}

			recs, err := Parse(sb.String(), td.dialect)
			if err != nil {
				t.Fatalf("Parse(%q): %v", sb.String(), err)
			}
			if len(recs) != len(rows) {
				t.Fatalf("parsed %d records, want %d (output %q)", len(recs), len(rows), sb.String())
			}
			for i, row := range rows {
				got := recs[i].Values()
				if len(got) != len(row) {
					t.Fatalf("record %d = %v, want %v (output %q)", i, got, row, sb.String())
				}
				for j := range row {
					if got[j] != row[j] {
						t.Errorf("record %d field %d = %q, want %q", i, j, got[j], row[j])
					}
				}
			}
		})
	}
}

// Null idempotence: printing null then parsing yields null again, whenever
// the dialect can represent a null distinctly.
func TestRoundTrip_Nulls(t *testing.T) {
	dialects := []struct {
		name    string
		dialect Dialect
	}{
		{"mysql", MySQL()},
		{"oracle", Oracle()},
		{"postgresql-text", PostgreSQLText()},
		{"minimal with null string", mustDialect(NewDialect(WithNullString("NULL")))},
		{"quote all with null string", mustDialect(NewDialect(WithQuoteMode(QuoteAll), WithNullString("NULL")))},
	}

	for _, td := range dialects {
		t.Run(td.name, func(t *testing.T) {
			var sb strings.Builder
			p, err := NewPrinter(&sb, td.dialect)
			if err != nil {
				t.Fatalf("NewPrinter: %v", err)
			}
			if err := p.PrintRecord("a", nil, "b"); err != nil {
				t.Fatalf("PrintRecord: %v", err)
			}
			if err := p.Flush(); err != nil {
				t.Fatalf("Flush: %v", err)
			}

			recs, err := Parse(sb.String(), td.dialect)
			if err != nil {
				t.Fatalf("Parse(%q): %v", sb.String(), err)
			}
			if len(recs) != 1 || recs[0].Len() != 3 {
				t.Fatalf("parsed %v from %q", recs, sb.String())
			}
			if !recs[0].IsNull(1) {
				t.Errorf("middle field not null after round trip of %q", sb.String())
			}
			if recs[0].IsNull(0) || recs[0].IsNull(2) {
				t.Errorf("outer fields became null after round trip of %q", sb.String())
			}
		})
	}
}
