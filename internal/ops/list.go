package ops

import (
	"context"

	"github.com/hpungsan/taskflow/internal/db"
	"github.com/hpungsan/taskflow/internal/errors"
	"github.com/hpungsan/taskflow/internal/task"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Status string // required
	Limit  int    // default: 20, max: 100
	Offset int    // default: 0
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []task.Task `json:"items"`
	Pagination Pagination  `json:"pagination"`
	Sort       string      `json:"sort"`
}

// List retrieves tasks in a status, newest first, with pagination.
func List(ctx context.Context, store *db.Store, input ListInput) (*ListOutput, error) {
	status, ok := task.ParseStatus(input.Status)
	if !ok {
		return nil, errors.NewUnknownStatus(input.Status)
	}

	// Apply limit defaults and bounds
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	// Ensure offset is non-negative
	offset := max(input.Offset, 0)

	items, total, err := store.ListByStatus(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}

	hasMore := offset+len(items) < total

	return &ListOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: hasMore,
			Total:   total,
		},
		Sort: "created_at_desc",
	}, nil
}
