package ports

import (
	"context"

	"dataclaw/domain/table"
)

// TableLoader turns a file path into a cleaned, typed table
type TableLoader interface {
	// Ingest runs the full fallback chain plus numeric coercion.
	Ingest(ctx context.Context, path string) (*table.Table, error)
	// Sample reads at most maxRows under the fixed-format assumption.
	Sample(ctx context.Context, path string, maxRows int) (*table.Table, error)
}
