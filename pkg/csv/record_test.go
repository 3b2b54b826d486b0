package csv

import (
	"errors"
	"strings"
	"testing"
)

func parseOne(t *testing.T, input string, d Dialect) *Record {
	t.Helper()
	p, err := NewParser(strings.NewReader(input), d)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	rec, err := p.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return rec
}

func TestRecord_Get(t *testing.T) {
	rec := parseOne(t, "a,b,c", Default())

	if rec.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", rec.Len())
	}
	if v, ok := rec.Get(1); !ok || v != "b" {
		t.Errorf("Get(1) = %q, %v; want b, true", v, ok)
	}
	if _, ok := rec.Get(3); ok {
		t.Error("Get(3) should be out of range")
	}
	if _, ok := rec.Get(-1); ok {
		t.Error("Get(-1) should be out of range")
	}
}

func TestRecord_GetByName(t *testing.T) {
	d := mustDialect(NewDialect(WithHeader("id", "name")))
	rec := parseOne(t, "1,ada\n", d)

	if v, err := rec.GetByName("name"); err != nil || v != "ada" {
		t.Errorf("GetByName(name) = %q, %v; want ada, nil", v, err)
	}

	var he *HeaderError
	if _, err := rec.GetByName("missing"); !errors.As(err, &he) {
		t.Errorf("GetByName(missing) error = %v, want *HeaderError", err)
	}
}

func TestRecord_GetByName_NoHeaders(t *testing.T) {
	rec := parseOne(t, "a,b", Default())
	if _, err := rec.GetByName("a"); !errors.Is(err, ErrNoHeaders) {
		t.Errorf("GetByName error = %v, want ErrNoHeaders", err)
	}
}

func TestRecord_ShortRecord(t *testing.T) {
	d := mustDialect(NewDialect(WithHeader("a", "b", "c"), WithSkipHeaderRecord(false)))
	rec := parseOne(t, "1,2\n", d)

	if !rec.IsMapped("c") {
		t.Error("c should be mapped even when this record is short")
	}
	if rec.IsSet("c") {
		t.Error("c should not be set on a two-field record")
	}
	if rec.IsSet("b") != true {
		t.Error("b should be set")
	}
	var he *HeaderError
	if _, err := rec.GetByName("c"); !errors.As(err, &he) {
		t.Errorf("GetByName(c) error = %v, want *HeaderError", err)
	}
}

func TestRecord_ToMap(t *testing.T) {
	d := mustDialect(NewDialect(WithHeader()))
	rec := parseOne(t, "id,name\n7,grace\n", d)

	m := rec.ToMap()
	if len(m) != 2 || m["id"] != "7" || m["name"] != "grace" {
		t.Errorf("ToMap() = %v", m)
	}
}

func TestRecord_ToMap_NoHeaders(t *testing.T) {
	rec := parseOne(t, "a,b", Default())
	if m := rec.ToMap(); m != nil {
		t.Errorf("ToMap() without headers = %v, want nil", m)
	}
}

func TestRecord_Values_Copies(t *testing.T) {
	rec := parseOne(t, "a,b", Default())
	vals := rec.Values()
	vals[0] = "mutated"
	if v, _ := rec.Get(0); v != "a" {
		t.Error("Values() must return a copy")
	}
}
