package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"dataclaw/internal"
	"dataclaw/ports"
)

// InfoService produces a quick per-column diagnostic over a bounded sample
// of the file: resolved type, null rate and a first example value.
type InfoService struct {
	loader     ports.TableLoader
	sampleRows int
	log        *internal.Logger
}

// InfoResult is the outcome of a successful diagnostic
type InfoResult struct {
	Report  string
	Rows    int
	Columns int
}

// NewInfoService creates an info service sampling at most sampleRows rows
func NewInfoService(loader ports.TableLoader, sampleRows int) *InfoService {
	if sampleRows <= 0 {
		sampleRows = 1000
	}
	return &InfoService{
		loader:     loader,
		sampleRows: sampleRows,
		log:        internal.DefaultLogger,
	}
}

// Info samples the file under the fixed-format assumption and reports one
// markdown table row per column.
func (s *InfoService) Info(ctx context.Context, path string) (*InfoResult, error) {
	tbl, err := s.loader.Sample(ctx, path, s.sampleRows)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# 🔍 Diagnostic: %s\n\n", filepath.Base(path))
	fmt.Fprintf(&b, "**Rows sampled**: %s | **Columns**: %d\n\n", formatInt(tbl.RowCount()), tbl.ColumnCount())

	rows := make([][]string, 0, tbl.ColumnCount())
	for i := 0; i < tbl.ColumnCount(); i++ {
		col := tbl.ColumnAt(i)

		pctNull := 0.0
		if tbl.RowCount() > 0 {
			pctNull = float64(col.MissingCount()) / float64(tbl.RowCount()) * 100
		}

		example := "—"
		if v, ok := col.FirstNonMissing(); ok {
			example = truncate(v.String(), 30)
		}

		rows = append(rows, []string{
			col.Name,
			string(col.Type),
			fmt.Sprintf("%.1f%%", pctNull),
			example,
		})
	}
	b.WriteString(markdownTable([]string{"Column", "Type", "% Nulls", "Example"}, rows))

	return &InfoResult{
		Report:  b.String(),
		Rows:    tbl.RowCount(),
		Columns: tbl.ColumnCount(),
	}, nil
}
