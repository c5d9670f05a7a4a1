package excel

import "gostock/domain/record"

// UnnamedColumnPrefix names header cells that were left blank
const UnnamedColumnPrefix = "Unnamed: "

// SheetData represents the raw contents of the first worksheet
type SheetData struct {
	Sheet  string
	Header []string   // header cells as read
	Rows   [][]string // data rows as read, possibly ragged
}

// ParsedSheet is a sheet after header normalisation and row alignment
type ParsedSheet struct {
	Schema      record.Schema
	Rows        []record.Row
	SkippedRows  int // fully blank rows
	PaddedHeader int // columns added past the last header cell
}
