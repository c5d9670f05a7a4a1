package record

import (
	"fmt"

	"gostock/domain/core"
)

// Table is an ordered, append-only collection of rows sharing one schema.
// Table values are immutable: Append returns a new Table.
type Table struct {
	schema Schema
	rows   []Row
}

// NewTable creates an empty table for the schema
func NewTable(schema Schema) Table {
	return Table{schema: schema.Clone()}
}

// FromRows builds a table from already-aligned rows.
// Every row must have exactly one value per schema column.
func FromRows(schema Schema, rows []Row) (Table, error) {
	t := Table{schema: schema.Clone(), rows: make([]Row, 0, len(rows))}
	for i, row := range rows {
		if len(row) != len(schema) {
			return Table{}, fmt.Errorf("%w: row %d has %d values, schema has %d columns",
				core.ErrSchemaMismatch, i+1, len(row), len(schema))
		}
		t.rows = append(t.rows, row.clone())
	}
	return t, nil
}

func (t Table) Schema() Schema {
	return t.schema.Clone()
}

// Len returns the number of data rows
func (t Table) Len() int {
	return len(t.rows)
}

// Rows returns a copy of the rows in insertion order
func (t Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	for i, row := range t.rows {
		out[i] = row.clone()
	}
	return out
}

// Records returns the rows as column name -> value maps
func (t Table) Records() []map[string]string {
	out := make([]map[string]string, len(t.rows))
	for i, row := range t.rows {
		rec := make(map[string]string, len(t.schema))
		for j, col := range t.schema {
			rec[col] = row[j]
		}
		out[i] = rec
	}
	return out
}

// Append returns a new table equal to t with item added as the last row.
// The item must carry exactly the schema's columns; values are stored as-is.
func (t Table) Append(item Draft) (Table, error) {
	for col := range item {
		if t.schema.Index(col) < 0 {
			return Table{}, core.NewSchemaMismatchError(col, "is not in the schema")
		}
	}

	row := make(Row, len(t.schema))
	for i, col := range t.schema {
		value, ok := item[col]
		if !ok {
			return Table{}, core.NewSchemaMismatchError(col, "has no value")
		}
		row[i] = value
	}

	rows := make([]Row, len(t.rows), len(t.rows)+1)
	copy(rows, t.rows)
	rows = append(rows, row)

	return Table{schema: t.schema, rows: rows}, nil
}

// Equal reports whether both tables have the same schema and rows in the same order
func (t Table) Equal(other Table) bool {
	if !t.schema.Equal(other.schema) || len(t.rows) != len(other.rows) {
		return false
	}
	for i := range t.rows {
		if !Schema(t.rows[i]).Equal(Schema(other.rows[i])) {
			return false
		}
	}
	return true
}
