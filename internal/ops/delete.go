package ops

import (
	"context"
	"strings"

	"github.com/hpungsan/taskflow/internal/db"
	"github.com/hpungsan/taskflow/internal/errors"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// Delete removes a task permanently. Deletion is permissive: an absent id is
// reported via Deleted=false, not an error.
func Delete(ctx context.Context, store *db.Store, input DeleteInput) (*DeleteOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	deleted, err := store.DeleteTask(ctx, id)
	if err != nil {
		return nil, err
	}

	return &DeleteOutput{
		Deleted: deleted,
		ID:      id,
	}, nil
}
