package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"dataclaw/models"
	"dataclaw/ports"
)

// RunAuditRepositoryImpl implements RunAuditRepository for PostgreSQL
type RunAuditRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunAuditRepository creates a new PostgreSQL run audit repository
func NewRunAuditRepository(db *sqlx.DB) ports.RunAuditRepository {
	return &RunAuditRepositoryImpl{db: db}
}

// EnsureSchema creates the audit table if it does not exist. Hosts call
// this once at startup.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS run_audit (
			run_id       UUID PRIMARY KEY,
			tool         TEXT NOT NULL,
			file_path    TEXT NOT NULL,
			row_count    INTEGER NOT NULL DEFAULT 0,
			column_count INTEGER NOT NULL DEFAULT 0,
			duration_ms  BIGINT NOT NULL DEFAULT 0,
			outcome      TEXT NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

// RecordRun inserts one invocation record
func (r *RunAuditRepositoryImpl) RecordRun(ctx context.Context, run *models.RunRecord) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO run_audit (
			run_id, tool, file_path, row_count, column_count,
			duration_ms, outcome, created_at
		) VALUES (
			:run_id, :tool, :file_path, :row_count, :column_count,
			:duration_ms, :outcome, :created_at
		)
	`, run)
	return err
}
