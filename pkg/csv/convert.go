package csv

import (
	"strconv"

	gojson "github.com/goccy/go-json"
)

// Rows converts records to a plain string matrix, nulls as "".
func Rows(records []*Record) [][]string {
	out := make([][]string, len(records))
	for i, rec := range records {
		out[i] = rec.Values()
	}
	return out
}

// Maps converts records to name-to-value maps, preserving nulls as nil.
// Records without headers use the 0-based column index as the key.
func Maps(records []*Record) []map[string]any {
	out := make([]map[string]any, len(records))
	for i, rec := range records {
		m := make(map[string]any, rec.Len())
		names := rec.Headers()
		for j := 0; j < rec.Len(); j++ {
			key := strconv.Itoa(j)
			if j < len(names) && !isBlank(names[j]) {
				key = names[j]
			}
			if rec.IsNull(j) {
				m[key] = nil
			} else {
				v, _ := rec.Get(j)
				m[key] = v
			}
		}
		out[i] = m
	}
	return out
}

// JSON renders records as JSON: an array of objects when the parse
// resolved headers, an array of arrays otherwise. Null fields become
// JSON null either way.
func JSON(records []*Record) ([]byte, error) {
	if len(records) > 0 && records[0].headers != nil {
		return gojson.Marshal(Maps(records))
	}
	rows := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, rec.Len())
		for j := 0; j < rec.Len(); j++ {
			if rec.IsNull(j) {
				row[j] = nil
			} else {
				v, _ := rec.Get(j)
				row[j] = v
			}
		}
		rows[i] = row
	}
	return gojson.Marshal(rows)
}
