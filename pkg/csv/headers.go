package csv

import "strings"

// Headers is the resolved column naming for one parse: the ordered name
// list (possibly containing blanks and duplicates) plus a name-to-index
// map. Built once, at parser construction, from either the dialect's
// explicit header or the first input record.
type Headers struct {
	names      []string
	index      map[string]int
	ignoreCase bool
}

// newHeaders validates names under the dialect's header rules and builds
// the lookup map. Blank names error unless allowMissing; repeated
// non-blank names error unless allowDuplicates (blank names are exempt
// from the duplicate check). Column order is preserved; blank names stay
// in the ordered list but never enter the map.
func newHeaders(names []string, ignoreCase, allowMissing, allowDuplicates bool) (*Headers, error) {
	h := &Headers{
		names:      append([]string(nil), names...),
		index:      make(map[string]int, len(names)),
		ignoreCase: ignoreCase,
	}
	for i, name := range names {
		if isBlank(name) {
			if !allowMissing {
				return nil, &HeaderError{Column: i, Message: "missing column name"}
			}
			continue
		}
		key := h.key(name)
		if _, dup := h.index[key]; dup && !allowDuplicates {
			return nil, &HeaderError{Name: name, Column: i, Message: "duplicate column name"}
		}
		// Later occurrences win, so lookup of a duplicated name resolves
		// to its last column.
		h.index[key] = i
	}
	return h, nil
}

// key normalizes a lookup name. The case-insensitive map is an ordinary
// map under a case-normalizing key wrapper.
func (h *Headers) key(name string) string {
	if h.ignoreCase {
		return strings.ToLower(name)
	}
	return name
}

// Len returns the number of columns, blanks included.
func (h *Headers) Len() int { return len(h.names) }

// Names returns a copy of the ordered column names.
func (h *Headers) Names() []string {
	return append([]string(nil), h.names...)
}

// IndexOf returns the column index for name. For duplicated names it is
// the last occurrence.
func (h *Headers) IndexOf(name string) (int, bool) {
	i, ok := h.index[h.key(name)]
	return i, ok
}
