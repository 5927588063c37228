package ops

import (
	"context"
	"strings"

	"github.com/hpungsan/taskflow/internal/db"
	"github.com/hpungsan/taskflow/internal/errors"
	"github.com/hpungsan/taskflow/internal/task"
)

// UpdateStatusInput contains parameters for the UpdateStatus operation.
type UpdateStatusInput struct {
	ID     string
	Status string
}

// UpdateStatusOutput contains the result of the UpdateStatus operation.
type UpdateStatusOutput struct {
	Task task.Task `json:"task"`
}

// UpdateStatus applies a status transition. The status token is validated
// against the closed enumeration before any mutation; the store applies the
// transition side effects (completed_at, the single-"now" cascade, and the
// sync_version bump) atomically.
func UpdateStatus(ctx context.Context, store *db.Store, input UpdateStatusInput) (*UpdateStatusOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	status, ok := task.ParseStatus(input.Status)
	if !ok {
		return nil, errors.NewUnknownStatus(input.Status)
	}

	updated, err := store.UpdateTaskStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	return &UpdateStatusOutput{Task: *updated}, nil
}
