package ingest

import (
	"context"

	"dataclaw/adapters/ingest/coercer"
	"dataclaw/domain/table"
	"dataclaw/internal"
)

// Pipeline is the canonical entry point that turns a file path into a
// cleaned, typed table: resolution followed by per-column numeric coercion.
// Role detection is not baked in here; callers run it against the returned
// column names when they need it.
type Pipeline struct {
	resolver *Resolver
	coercer  *coercer.NumericCoercer
	log      *internal.Logger
}

// NewPipeline creates an ingestion pipeline with the given coercion config
func NewPipeline(cfg coercer.Config) *Pipeline {
	return &Pipeline{
		resolver: NewResolver(),
		coercer:  coercer.NewNumericCoercer(cfg),
		log:      internal.DefaultLogger,
	}
}

// Ingest loads the file through the full fallback chain and coerces every
// residual text column that passes the majority vote. Resolution failures
// propagate; coercion never fails.
func (p *Pipeline) Ingest(ctx context.Context, path string) (*table.Table, error) {
	frame, err := p.resolver.Resolve(path)
	if err != nil {
		return nil, err
	}
	return p.typed(frame), nil
}

// Sample is the lighter-weight variant used by diagnostics: fixed format,
// bounded row count, no deduplication.
func (p *Pipeline) Sample(ctx context.Context, path string, maxRows int) (*table.Table, error) {
	frame, err := p.resolver.ResolveFixed(path, maxRows)
	if err != nil {
		return nil, err
	}
	return p.typed(frame), nil
}

func (p *Pipeline) typed(frame *RawFrame) *table.Table {
	tbl := table.New(frame.Headers)
	for _, row := range frame.Rows {
		tbl.AppendTextRow(row)
	}

	coercions := 0
	for i := 0; i < tbl.ColumnCount(); i++ {
		col := tbl.ColumnAt(i)
		if col.Type != table.TypeText {
			continue
		}
		if p.coercer.CoerceColumn(col) {
			coercions++
		}
	}
	p.log.Debug("[Pipeline] %d of %d columns coerced to numeric", coercions, tbl.ColumnCount())
	return tbl
}
