package ports

import (
	"context"

	"dataclaw/models"
)

// RunAuditRepository persists tool invocation metadata
type RunAuditRepository interface {
	RecordRun(ctx context.Context, run *models.RunRecord) error
}
