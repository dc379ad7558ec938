package model

// Row represents a single data line of the source CSV.
//
// Values are addressed by header name. The header order is kept so that
// anything iterating over a row (template resolution in particular) does so
// in a deterministic, file-defined order.
//
// Example:
//
//	row := NewRow(1, []string{"produkt_ean", "zdjecie"}, []string{"5901234123457", "http://x/img.png"})
//	url, ok := row.Get("zdjecie") // "http://x/img.png", true
type Row struct {
	// Index is the 1-based position of the row among the data rows
	// (the header line is not counted).
	Index int

	columns []string
	values  map[string]string
}

// NewRow creates a Row from a header and one record.
//
// Records shorter than the header leave the trailing columns absent.
// Extra trailing values without a header are dropped.
func NewRow(index int, header, record []string) *Row {
	r := &Row{
		Index:   index,
		columns: header,
		values:  make(map[string]string, len(header)),
	}
	for i, col := range header {
		if i >= len(record) {
			break
		}
		r.values[col] = record[i]
	}
	return r
}

// Get returns the value stored under column and whether the column is present.
func (r *Row) Get(column string) (string, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Value returns the value stored under column, or "" if absent.
func (r *Row) Value(column string) string {
	return r.values[column]
}

// Keys returns the columns present in this row, in header order.
func (r *Row) Keys() []string {
	keys := make([]string, 0, len(r.values))
	for _, col := range r.columns {
		if _, ok := r.values[col]; ok {
			keys = append(keys, col)
		}
	}
	return keys
}

// Table is a fully materialized CSV file: the header and every data row.
type Table struct {
	Header []string
	Rows   []*Row
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Preview holds the header and the first few rows of a CSV file, used to
// let the user pick image columns before a run.
type Preview struct {
	Header  []string
	Records [][]string
}
