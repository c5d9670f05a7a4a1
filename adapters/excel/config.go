package excel

import (
	"os"

	"gostock/internal"
)

// Built-in excelize number format id for "0.00"
const NumFmtTwoDecimals = 2

// StoreConfig holds configuration for the spreadsheet record store
type StoreConfig struct {
	SheetName string      `json:"sheet_name"`
	FileMode  os.FileMode `json:"file_mode"`

	// ExportNumFmt is applied to column A of exported workbooks
	ExportNumFmt int `json:"export_num_fmt"`

	Logger *internal.Logger `json:"-"`
}

// DefaultStoreConfig returns sensible defaults for spreadsheet processing
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		SheetName:    "Sheet1",
		FileMode:     0o644,
		ExportNumFmt: NumFmtTwoDecimals,
		Logger:       internal.DefaultLogger,
	}
}
