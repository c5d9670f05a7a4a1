package excel

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gostock/domain/core"
	"gostock/domain/record"
	"gostock/internal"

	"github.com/xuri/excelize/v2"
)

// SheetReader reads the first worksheet of an xlsx file
type SheetReader struct {
	filePath string
	logger   *internal.Logger
}

// NewSheetReader creates a reader for filePath
func NewSheetReader(filePath string, logger *internal.Logger) *SheetReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &SheetReader{filePath: filePath, logger: logger}
}

// ReadSheet reads the raw header and data rows of the first worksheet
func (r *SheetReader) ReadSheet() (*SheetData, error) {
	startTime := time.Now()
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, core.NewParseError(r.filePath, err)
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, core.NewParseError(r.filePath, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, core.NewParseError(r.filePath, fmt.Errorf("workbook has no sheets"))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, core.NewParseError(r.filePath, fmt.Errorf("failed to read %s: %w", sheets[0], err))
	}
	r.logger.Debug("[SheetReader] %s read in %.2fms (%d rows)", sheets[0], float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	if len(rows) == 0 || isBlankRow(rows[0]) {
		return nil, core.NewParseError(r.filePath, fmt.Errorf("sheet %s has no header row", sheets[0]))
	}

	return &SheetData{
		Sheet:  sheets[0],
		Header: rows[0],
		Rows:   rows[1:],
	}, nil
}

// ReadTable reads the first worksheet and aligns it into a table
func (r *SheetReader) ReadTable() (record.Table, error) {
	data, err := r.ReadSheet()
	if err != nil {
		return record.Table{}, err
	}

	parsed := ParseSheet(data)
	if parsed.SkippedRows > 0 {
		r.logger.Debug("[SheetReader] skipped %d blank rows in %s", parsed.SkippedRows, r.filePath)
	}
	if parsed.PaddedHeader > 0 {
		r.logger.Warn("[SheetReader] %s has %d data columns without a header cell; named %s<i>", r.filePath, parsed.PaddedHeader, UnnamedColumnPrefix)
	}

	table, err := record.FromRows(parsed.Schema, parsed.Rows)
	if err != nil {
		return record.Table{}, core.NewParseError(r.filePath, err)
	}
	return table, nil
}

// ParseSheet normalises the header and aligns every data row to it.
// The width is that of the widest row, so trailing header cells that are
// blank (and trimmed by the reader) still get a column. Blank header cells
// become "Unnamed: i" and repeated names get ".1", ".2" suffixes.
// Fully blank data rows are skipped, so an all-empty row does not survive a reload.
func ParseSheet(data *SheetData) *ParsedSheet {
	width := len(data.Header)
	for _, raw := range data.Rows {
		if !isBlankRow(raw) && len(raw) > width {
			width = len(raw)
		}
	}
	header := make([]string, width)
	copy(header, data.Header)

	schema := NormalizeHeader(header)
	parsed := &ParsedSheet{
		Schema:       schema,
		Rows:         make([]record.Row, 0, len(data.Rows)),
		PaddedHeader: width - len(data.Header),
	}

	for _, raw := range data.Rows {
		if isBlankRow(raw) {
			parsed.SkippedRows++
			continue
		}
		row := make(record.Row, len(schema))
		copy(row, raw)
		parsed.Rows = append(parsed.Rows, row)
	}
	return parsed
}

// NormalizeHeader turns raw header cells into a schema with unique, non-blank names
func NormalizeHeader(header []string) record.Schema {
	schema := make(record.Schema, len(header))
	used := make(map[string]bool, len(header))
	counts := make(map[string]int, len(header))

	for i, cell := range header {
		name := cell
		if strings.TrimSpace(name) == "" {
			name = UnnamedColumnPrefix + strconv.Itoa(i)
		}
		base := name
		for used[name] {
			counts[base]++
			name = base + "." + strconv.Itoa(counts[base])
		}
		used[name] = true
		schema[i] = name
	}
	return schema
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
