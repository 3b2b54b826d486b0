package csv

// Record is one parsed row: an ordered list of string-or-null fields, an
// optional merged comment, the 1-based record number, and the character
// offset where the record started. Records are immutable once returned
// and keep a reference to the parse's Headers for name lookup only.
type Record struct {
	values  []string
	nulls   []bool
	comment string
	number  int64
	offset  int64
	headers *Headers
}

// Len returns the number of fields in the record.
func (r *Record) Len() int { return len(r.values) }

// Get returns the field at index i. Null fields read as "". The second
// return is false when i is out of range.
func (r *Record) Get(i int) (string, bool) {
	if i < 0 || i >= len(r.values) {
		return "", false
	}
	return r.values[i], true
}

// IsNull reports whether the field at index i is null. Out-of-range
// indexes are not null.
func (r *Record) IsNull(i int) bool {
	return i >= 0 && i < len(r.nulls) && r.nulls[i]
}

// GetByName returns the field for the named column. It fails when the
// parse resolved no headers, the name is not mapped, or this record is
// too short to hold the column.
func (r *Record) GetByName(name string) (string, error) {
	if r.headers == nil {
		return "", ErrNoHeaders
	}
	i, ok := r.headers.IndexOf(name)
	if !ok {
		return "", &HeaderError{Name: name, Column: -1, Message: "no such column"}
	}
	if i >= len(r.values) {
		return "", &HeaderError{Name: name, Column: i, Message: "column not set in this record"}
	}
	return r.values[i], nil
}

// IsMapped reports whether name resolves to a column in the headers,
// regardless of whether this record reaches that column.
func (r *Record) IsMapped(name string) bool {
	if r.headers == nil {
		return false
	}
	_, ok := r.headers.IndexOf(name)
	return ok
}

// IsSet reports whether name is mapped and this record holds a value for it.
func (r *Record) IsSet(name string) bool {
	if r.headers == nil {
		return false
	}
	i, ok := r.headers.IndexOf(name)
	return ok && i < len(r.values)
}

// Values returns a copy of the field values in column order, nulls as "".
func (r *Record) Values() []string {
	return append([]string(nil), r.values...)
}

// ToMap returns a name-to-value view of the record. Null fields map to "";
// use IsNull to distinguish. Returns nil when the parse has no headers.
func (r *Record) ToMap() map[string]string {
	if r.headers == nil {
		return nil
	}
	m := make(map[string]string, len(r.headers.index))
	for _, i := range r.headers.index {
		if i < len(r.values) {
			m[r.headers.names[i]] = r.values[i]
		}
	}
	return m
}

// Comment returns the comment lines merged onto this record and whether
// there were any.
func (r *Record) Comment() (string, bool) {
	return r.comment, r.comment != ""
}

// Number returns the 1-based sequential record number. Skipped blank
// lines and comment-only lines do not advance it.
func (r *Record) Number() int64 { return r.number }

// CharOffset returns the character offset at which the record started.
func (r *Record) CharOffset() int64 { return r.offset }

// Headers returns the column names for this parse, or nil when the
// dialect resolved none.
func (r *Record) Headers() []string {
	if r.headers == nil {
		return nil
	}
	return r.headers.Names()
}
