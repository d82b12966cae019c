package models

import (
	"bytes"
	"encoding/json"
)

// Table is a tabular query result. Columns keeps the order the backend
// returned them in; each row maps column name to value.
type Table struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

func (t *Table) Len() int { return len(t.Rows) }

// Page returns a copy of t restricted to rows [offset, offset+limit).
func (t *Table) Page(offset, limit int) *Table {
	if offset < 0 {
		offset = 0
	}
	if offset > len(t.Rows) {
		offset = len(t.Rows)
	}
	end := offset + limit
	if limit < 0 || end > len(t.Rows) {
		end = len(t.Rows)
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[offset:end]}
}

// UnmarshalJSON decodes integral numbers as int64 and the rest as float64,
// matching the types a query result carries before encoding.
func (t *Table) UnmarshalJSON(data []byte) error {
	var raw struct {
		Columns []string         `json:"columns"`
		Rows    []map[string]any `json:"rows"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	for _, row := range raw.Rows {
		for col, v := range row {
			if n, ok := v.(json.Number); ok {
				row[col] = number(n)
			}
		}
	}
	t.Columns, t.Rows = raw.Columns, raw.Rows
	return nil
}

func number(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
