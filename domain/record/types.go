package record

import (
	"fmt"
	"strings"

	"gostock/domain/core"
)

// DefaultColumnPrefix is used for generated column names (Column_1, Column_2, ...)
const DefaultColumnPrefix = "Column_"

// Schema is the ordered list of column names defining a table's shape
type Schema []string

// Row holds one text value per schema column, in schema order
type Row []string

// Draft is a new item collected from form inputs, keyed by column name.
// It is only valid long enough to be appended.
type Draft map[string]string

// NewSchema validates a user-declared column list.
// Names must be non-blank and unique; they are kept verbatim.
func NewSchema(names []string) (Schema, error) {
	if len(names) == 0 {
		return nil, core.NewInvalidSchemaError("at least one column is required")
	}

	seen := make(map[string]bool, len(names))
	schema := make(Schema, 0, len(names))
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, core.NewInvalidSchemaError(fmt.Sprintf("column %d has no name", i+1))
		}
		if seen[name] {
			return nil, core.NewInvalidSchemaError(fmt.Sprintf("duplicate column %q", name))
		}
		seen[name] = true
		schema = append(schema, name)
	}
	return schema, nil
}

// DefaultSchema returns Column_1 .. Column_n
func DefaultSchema(n int) Schema {
	if n < 1 {
		n = 1
	}
	schema := make(Schema, n)
	for i := range schema {
		schema[i] = DefaultColumnName(i)
	}
	return schema
}

// DefaultColumnName returns the generated name for the 0-based column index
func DefaultColumnName(idx int) string {
	return fmt.Sprintf("%s%d", DefaultColumnPrefix, idx+1)
}

// Index returns the position of name in the schema, or -1
func (s Schema) Index(name string) int {
	for i, col := range s {
		if col == name {
			return i
		}
	}
	return -1
}

// Equal reports whether both schemas list the same names in the same order
func (s Schema) Equal(other Schema) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

func (s Schema) Clone() Schema {
	if s == nil {
		return nil
	}
	out := make(Schema, len(s))
	copy(out, s)
	return out
}

func (r Row) clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// DraftFromMap takes exactly the schema's columns from values.
// Keys outside the schema are ignored and missing columns become empty strings.
func DraftFromMap(schema Schema, values map[string]string) Draft {
	draft := make(Draft, len(schema))
	for _, col := range schema {
		draft[col] = values[col]
	}
	return draft
}
