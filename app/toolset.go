package app

import (
	"context"
	"fmt"
	"time"

	"dataclaw/domain/core"
	"dataclaw/internal"
	"dataclaw/models"
	"dataclaw/ports"
)

// Toolset is the system boundary: three callable operations that accept
// and return plain strings and never let an internal failure escape. Every
// error kind maps to an explicit user-facing line here.
type Toolset struct {
	analyze *AnalyzeService
	clean   *CleanService
	info    *InfoService
	audit   ports.RunAuditRepository // nil disables auditing
	log     *internal.Logger
}

// NewToolset wires the three services behind the tool boundary
func NewToolset(analyze *AnalyzeService, clean *CleanService, info *InfoService, audit ports.RunAuditRepository) *Toolset {
	return &Toolset{
		analyze: analyze,
		clean:   clean,
		info:    info,
		audit:   audit,
		log:     internal.DefaultLogger,
	}
}

// AnalyzeCSV runs the full analysis and returns the report text. An empty
// question falls back to the default analysis prompt.
func (t *Toolset) AnalyzeCSV(ctx context.Context, path, question string) (out string) {
	started := time.Now()
	runID := core.NewRunID()
	defer t.recoverToLine("analyze_csv", &out)

	if question == "" {
		question = DefaultQuestion
	}

	result, err := t.analyze.Analyze(ctx, path, question)
	if err != nil {
		t.record(ctx, runID, "analyze_csv", path, 0, 0, started, models.OutcomeError)
		return fmt.Sprintf("❌ Analysis error: %s. Hint: check the file path and that it is a valid delimited file.", t.describe(err))
	}

	t.record(ctx, runID, "analyze_csv", path, result.Rows, result.Columns, started, models.OutcomeOK)
	return result.Report
}

// CleanCSV deduplicates the file and returns a status message
func (t *Toolset) CleanCSV(ctx context.Context, path, outputName string) (out string) {
	started := time.Now()
	runID := core.NewRunID()
	defer t.recoverToLine("clean_csv", &out)

	result, err := t.clean.Clean(ctx, path, outputName)
	if err != nil {
		t.record(ctx, runID, "clean_csv", path, 0, 0, started, models.OutcomeError)
		return fmt.Sprintf("❌ Cleaning error: %s", t.describe(err))
	}

	t.record(ctx, runID, "clean_csv", path, result.After, 0, started, models.OutcomeOK)
	return result.Message()
}

// CSVInfo returns the per-column diagnostic for the file
func (t *Toolset) CSVInfo(ctx context.Context, path string) (out string) {
	started := time.Now()
	runID := core.NewRunID()
	defer t.recoverToLine("csv_info", &out)

	result, err := t.info.Info(ctx, path)
	if err != nil {
		t.record(ctx, runID, "csv_info", path, 0, 0, started, models.OutcomeError)
		return fmt.Sprintf("❌ Diagnostic error: %s", t.describe(err))
	}

	t.record(ctx, runID, "csv_info", path, result.Rows, result.Columns, started, models.OutcomeOK)
	return result.Report
}

// describe maps each known error kind to its user-facing text
func (t *Toolset) describe(err error) string {
	switch {
	case core.IsFileNotFound(err):
		return err.Error()
	case core.IsUnreadableFile(err):
		return fmt.Sprintf("%v (all encoding and delimiter strategies exhausted)", err)
	default:
		return fmt.Sprintf("unexpected failure: %v", err)
	}
}

// recoverToLine converts a panic inside a tool into the single-line error
// report, keeping the never-raises contract explicit.
func (t *Toolset) recoverToLine(tool string, out *string) {
	if r := recover(); r != nil {
		t.log.Error("[Toolset] %s panicked: %v", tool, r)
		*out = fmt.Sprintf("❌ %s failed unexpectedly: %v. Hint: check the file path and format.", tool, r)
	}
}

// record writes the invocation to the audit ledger when one is configured.
// Audit failures are logged, never surfaced to the caller.
func (t *Toolset) record(ctx context.Context, runID core.RunID, tool, path string, rows, cols int, started time.Time, outcome string) {
	if t.audit == nil {
		return
	}
	run := &models.RunRecord{
		RunID:       runID,
		Tool:        tool,
		FilePath:    path,
		RowCount:    rows,
		ColumnCount: cols,
		DurationMs:  time.Since(started).Milliseconds(),
		Outcome:     outcome,
		CreatedAt:   time.Now(),
	}
	if err := t.audit.RecordRun(ctx, run); err != nil {
		t.log.Warn("[Toolset] failed to record %s run: %v", tool, err)
	}
}
