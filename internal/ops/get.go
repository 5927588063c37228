package ops

import (
	"context"
	"strings"

	"github.com/hpungsan/taskflow/internal/db"
	"github.com/hpungsan/taskflow/internal/errors"
	"github.com/hpungsan/taskflow/internal/task"
)

// GetInput contains parameters for the Get operation.
type GetInput struct {
	ID string
}

// GetOutput contains the result of the Get operation.
type GetOutput struct {
	Task task.Task `json:"task"`
}

// Get retrieves a single task by id.
func Get(ctx context.Context, store *db.Store, input GetInput) (*GetOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	t, err := store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Task: *t}, nil
}
