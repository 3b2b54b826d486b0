package csv

import "database/sql"

// PrintRows writes every row of a query result in the printer's dialect:
// one record per row, SQL NULLs as null fields. With withHeader set the
// column labels are written first as an ordinary header record. Works
// against any database/sql driver.
func (p *Printer) PrintRows(rows *sql.Rows, withHeader bool) error {
	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	if withHeader {
		if err := p.PrintStrings(cols); err != nil {
			return err
		}
	}
	values := make([]sql.NullString, len(cols))
	dests := make([]any, len(cols))
	for i := range values {
		dests[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dests...); err != nil {
			return err
		}
		for _, v := range values {
			if v.Valid {
				if err := p.Print(v.String); err != nil {
					return err
				}
			} else if err := p.Print(nil); err != nil {
				return err
			}
		}
		if err := p.Println(); err != nil {
			return err
		}
	}
	return rows.Err()
}
