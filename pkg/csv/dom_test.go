package csv

import "testing"

func TestDocument_Build(t *testing.T) {
	doc := NewDocument().
		SetHeaders([]string{"name", "age"}).
		AddRow([]string{"alice", "30"}).
		AddRow([]string{"bob", "25"})

	if doc.RowCount() != 2 {
		t.Fatalf("RowCount() = %d, want 2", doc.RowCount())
	}

	d := mustDialect(NewDialect(WithRecordSeparator("\n")))
	out, err := doc.String(d)
	if err != nil {
		t.Fatalf("String: %v", err)
	}
	want := "name,age\nalice,30\nbob,25\n"
	if out != want {
		t.Errorf("String() = %q, want %q", out, want)
	}
}

func TestDocument_NoHeaders(t *testing.T) {
	doc := NewDocument().AddRow([]string{"a", "b"})

	d := mustDialect(NewDialect(WithRecordSeparator("\n")))
	out, err := doc.String(d)
	if err != nil {
		t.Fatalf("String: %v", err)
	}
	if out != "a,b\n" {
		t.Errorf("String() = %q, want a,b\\n", out)
	}
}

func TestParseDocument(t *testing.T) {
	d := mustDialect(NewDialect(WithHeader()))
	doc, err := ParseDocument("id,name\n1,ada\n2,grace\n", d)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if h := doc.Headers(); len(h) != 2 || h[0] != "id" {
		t.Errorf("Headers() = %v", h)
	}
	if doc.RowCount() != 2 {
		t.Errorf("RowCount() = %d, want 2", doc.RowCount())
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	d := mustDialect(NewDialect(WithHeader()))
	in := NewDocument().
		SetHeaders([]string{"k", "v"}).
		AddRow([]string{"x", "with,comma"})

	out, err := in.String(d)
	if err != nil {
		t.Fatalf("String: %v", err)
	}
	back, err := ParseDocument(out, d)
	if err != nil {
		t.Fatalf("ParseDocument(%q): %v", out, err)
	}
	if h := back.Headers(); len(h) != 2 || h[0] != "k" {
		t.Errorf("Headers() = %v", h)
	}
	rows := back.Rows()
	if len(rows) != 1 || rows[0][1] != "with,comma" {
		t.Errorf("Rows() = %v", rows)
	}
}

func TestDocument_PrintStripsExplicitDialectHeader(t *testing.T) {
	// A dialect carrying its own header must not double up with the
	// document's.
	d := mustDialect(NewDialect(WithHeader("x", "y"), WithRecordSeparator("\n")))
	doc := NewDocument().
		SetHeaders([]string{"a", "b"}).
		AddRow([]string{"1", "2"})

	out, err := doc.String(d)
	if err != nil {
		t.Fatalf("String: %v", err)
	}
	want := "a,b\n1,2\n"
	if out != want {
		t.Errorf("String() = %q, want %q", out, want)
	}
}
