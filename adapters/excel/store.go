package excel

import (
	"context"
	"fmt"
	"os"

	"gostock/domain/core"
	"gostock/domain/record"
	"gostock/ports"
)

// Store implements RecordStorePort on xlsx files
type Store struct {
	config StoreConfig
}

var _ ports.RecordStorePort = (*Store)(nil)

// NewStore creates a spreadsheet record store
func NewStore(config StoreConfig) *Store {
	defaults := DefaultStoreConfig()
	if config.SheetName == "" {
		config.SheetName = defaults.SheetName
	}
	if config.FileMode == 0 {
		config.FileMode = defaults.FileMode
	}
	if config.Logger == nil {
		config.Logger = defaults.Logger
	}
	return &Store{config: config}
}

// Exists reports whether a regular file is present at path
func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, core.NewIOError(path, err)
	}
	if info.IsDir() {
		return false, core.NewIOError(path, fmt.Errorf("is a directory"))
	}
	return true, nil
}

// Load reads the table at path. An absent file is created header-only from fallback.
func (s *Store) Load(ctx context.Context, path string, fallback record.Schema) (record.Table, error) {
	exists, err := s.Exists(ctx, path)
	if err != nil {
		return record.Table{}, err
	}

	if !exists {
		s.config.Logger.Info("[Store] %s not found, creating it with columns %v", path, fallback)
		if err := s.CreateEmpty(ctx, path, fallback); err != nil {
			return record.Table{}, err
		}
		return record.NewTable(fallback), nil
	}

	table, err := NewSheetReader(path, s.config.Logger).ReadTable()
	if err != nil {
		s.config.Logger.Error("[Store] failed to load %s: %v", path, err)
		return record.Table{}, err
	}

	s.config.Logger.Debug("[Store] loaded %s - columns: %d, rows: %d", path, len(table.Schema()), table.Len())
	return table, nil
}

// Save overwrites path with the full table
func (s *Store) Save(ctx context.Context, table record.Table, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := EncodeTable(table, WriteOptions{SheetName: s.config.SheetName})
	if err != nil {
		return core.NewIOError(path, err)
	}
	if err := os.WriteFile(path, data, s.config.FileMode); err != nil {
		s.config.Logger.Error("[Store] failed to save %s: %v", path, err)
		return core.NewIOError(path, err)
	}

	s.config.Logger.Info("[Store] saved %s (%d rows)", path, table.Len())
	return nil
}

// CreateEmpty writes a header-only file for schema
func (s *Store) CreateEmpty(ctx context.Context, path string, schema record.Schema) error {
	if len(schema) == 0 {
		return core.NewInvalidSchemaError("at least one column is required")
	}
	return s.Save(ctx, record.NewTable(schema), path)
}

// Export encodes table for download, with column A formatted as 0.00
func (s *Store) Export(ctx context.Context, table record.Table) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := EncodeTable(table, WriteOptions{
		SheetName:         s.config.SheetName,
		FirstColumnNumFmt: s.config.ExportNumFmt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export table: %w", err)
	}
	return data, nil
}
