package app

import (
	"context"
	"fmt"
	"path/filepath"

	"dataclaw/adapters/export"
	"dataclaw/adapters/ingest"
	"dataclaw/internal"
	"dataclaw/internal/errors"
)

// DefaultOutputName is used when the caller does not name the cleaned file
const DefaultOutputName = "cleaned.csv"

// CleanService removes exact-duplicate and fully-empty rows from a file
// under the fixed semicolon/utf-8 assumption, with no fallback chain and
// no type coercion.
type CleanService struct {
	resolver   *ingest.Resolver
	outputRoot string
	log        *internal.Logger
}

// CleanResult reports the row counts of one cleaning pass
type CleanResult struct {
	OutputPath string
	Before     int
	After      int
}

// Removed returns how many rows the pass dropped
func (r *CleanResult) Removed() int {
	return r.Before - r.After
}

// Message renders the user-facing status text
func (r *CleanResult) Message() string {
	return fmt.Sprintf(
		"✅ Clean file saved to: %s\n   Rows before: %s\n   Rows after: %s\n   Removed: %s (duplicates/blank)",
		r.OutputPath, formatInt(r.Before), formatInt(r.After), formatInt(r.Removed()))
}

// NewCleanService creates a clean service writing into outputRoot
func NewCleanService(outputRoot string) *CleanService {
	return &CleanService{
		resolver:   ingest.NewResolver(),
		outputRoot: outputRoot,
		log:        internal.DefaultLogger,
	}
}

// Clean reads, deduplicates and rewrites the file. The output format
// follows outputName: .xlsx for a workbook, semicolon-delimited csv
// otherwise.
func (s *CleanService) Clean(ctx context.Context, path, outputName string) (*CleanResult, error) {
	if outputName == "" {
		outputName = DefaultOutputName
	}

	frame, err := s.resolver.ResolveFixed(path, -1)
	if err != nil {
		return nil, err
	}

	before := len(frame.Rows)
	cleaned := ingest.CleanRecords(frame.Rows)

	outputPath, err := filepath.Abs(filepath.Join(s.outputRoot, outputName))
	if err != nil {
		return nil, err
	}
	if err := export.WriteTable(outputPath, frame.Headers, cleaned); err != nil {
		return nil, errors.Wrapf(err, "failed to write cleaned file %s", outputName)
	}

	s.log.Info("[Clean] %s: %d rows in, %d rows out", filepath.Base(path), before, len(cleaned))
	return &CleanResult{
		OutputPath: outputPath,
		Before:     before,
		After:      len(cleaned),
	}, nil
}
