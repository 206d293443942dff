package core

import (
	"github.com/google/uuid"
)

// RunID identifies a single tool invocation for logging and auditing.
type RunID string

// NewRunID creates a new unique run identifier using UUID v7 for time-ordered generation
func NewRunID() RunID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return RunID(id.String())
}

// String returns the string representation
func (id RunID) String() string {
	return string(id)
}

// IsEmpty checks if the run ID is empty
func (id RunID) IsEmpty() bool {
	return id == ""
}
