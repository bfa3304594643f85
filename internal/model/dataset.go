package model

import "time"

// Record is a named-field projection of one dataset row (column name → cell value).
// It is recomputed from the source row on every projection and never stored.
type Record map[string]string

// Dataset holds one parsed table: an ordered list of column names and an
// ordered list of rows. Every row has exactly as many cells as there are
// columns; empty/missing cells are the empty string.
type Dataset struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	Revision  int64      `json:"revision"`
	SourceURL string     `json:"source_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// RecordAt projects row i into a Record. Duplicate column names are not
// deduplicated: the first occurrence wins on lookup.
func (d *Dataset) RecordAt(i int) Record {
	if i < 0 || i >= len(d.Rows) {
		return nil
	}
	row := d.Rows[i]
	rec := make(Record, len(d.Columns))
	for c, name := range d.Columns {
		if _, seen := rec[name]; seen {
			continue
		}
		if c < len(row) {
			rec[name] = row[c]
		} else {
			rec[name] = ""
		}
	}
	return rec
}

// Records projects every row.
func (d *Dataset) Records() []Record {
	records := make([]Record, 0, len(d.Rows))
	for i := range d.Rows {
		records = append(records, d.RecordAt(i))
	}
	return records
}

// Sample projects at most n rows from the top of the table.
func (d *Dataset) Sample(n int) []Record {
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	sample := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		sample = append(sample, d.RecordAt(i))
	}
	return sample
}

// HasColumn reports whether name is one of the dataset's columns.
func (d *Dataset) HasColumn(name string) bool {
	for _, col := range d.Columns {
		if col == name {
			return true
		}
	}
	return false
}
