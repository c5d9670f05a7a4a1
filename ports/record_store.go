package ports

import (
	"context"

	"gostock/domain/record"
)

// RecordStorePort loads, saves and exports spreadsheet-backed tables.
// Implementations never merge: Save and CreateEmpty always rewrite the whole file.
type RecordStorePort interface {
	// Exists probes path; a missing file is not an error
	Exists(ctx context.Context, path string) (bool, error)

	// Load parses the file at path using its header row as schema.
	// When the file is absent it writes a header-only file for fallback and returns it empty.
	Load(ctx context.Context, path string, fallback record.Schema) (record.Table, error)

	Save(ctx context.Context, table record.Table, path string) error
	CreateEmpty(ctx context.Context, path string, schema record.Schema) error

	// Export serializes table into a downloadable spreadsheet buffer, independent of any path
	Export(ctx context.Context, table record.Table) ([]byte, error)
}
