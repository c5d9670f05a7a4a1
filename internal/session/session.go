package session

import (
	"sync"
	"time"

	"gostock/domain/record"
	"gostock/domain/stock"
)

// Session is the mutable per-user context passed into every handler.
// Callers hold Lock while reading or changing fields.
type Session struct {
	sync.Mutex

	ID          string
	FileName    string
	ColumnCount int
	ColumnNames []string

	State            stock.State
	Table            *record.Table
	Export           []byte
	SchemaOverridden bool
	Notice           string

	CreatedAt time.Time
	LastSeen  time.Time
}

// Defaults seed new sessions
type Defaults struct {
	FileName    string
	ColumnCount int
}

func newSession(id string, defaults Defaults, now time.Time) *Session {
	count := defaults.ColumnCount
	if count < 1 {
		count = 1
	}
	return &Session{
		ID:          id,
		FileName:    defaults.FileName,
		ColumnCount: count,
		ColumnNames: record.DefaultSchema(count),
		State:       stock.StateNoFileChecked,
		CreatedAt:   now,
		LastSeen:    now,
	}
}

// DeclaredSchema returns the user-declared column names, one per declared column.
// Missing names fall back to Column_{i}.
func (s *Session) DeclaredSchema() record.Schema {
	count := s.ColumnCount
	if count < 1 {
		count = 1
	}
	schema := make(record.Schema, count)
	for i := range schema {
		if i < len(s.ColumnNames) {
			schema[i] = s.ColumnNames[i]
		} else {
			schema[i] = record.DefaultColumnName(i)
		}
	}
	return schema
}

// SetColumns updates the declared column count and names.
// The count is clamped to at least 1.
func (s *Session) SetColumns(count int, names []string) {
	if count < 1 {
		count = 1
	}
	s.ColumnCount = count
	s.ColumnNames = append([]string(nil), names...)
	s.ColumnNames = s.DeclaredSchema()
}

// ActiveSchema is the loaded table's schema when there is one, else the declared schema
func (s *Session) ActiveSchema() record.Schema {
	if s.Table != nil {
		return s.Table.Schema()
	}
	return s.DeclaredSchema()
}

// Reset returns the session to NoFileChecked and drops per-file results
func (s *Session) Reset() {
	s.State = stock.StateNoFileChecked
	s.Table = nil
	s.Export = nil
	s.SchemaOverridden = false
	s.Notice = ""
}
