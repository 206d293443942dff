package models

import (
	"time"

	"dataclaw/domain/core"
)

// RunRecord captures one tool invocation for the optional audit ledger.
// Only call metadata is recorded; parsed tables are never persisted.
type RunRecord struct {
	RunID       core.RunID `db:"run_id"`
	Tool        string     `db:"tool"`
	FilePath    string     `db:"file_path"`
	RowCount    int        `db:"row_count"`
	ColumnCount int        `db:"column_count"`
	DurationMs  int64      `db:"duration_ms"`
	Outcome     string     `db:"outcome"`
	CreatedAt   time.Time  `db:"created_at"`
}

// Run outcomes
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
