package ops

import (
	"context"
	"strings"
	"time"

	"github.com/hpungsan/taskflow/internal/db"
	"github.com/hpungsan/taskflow/internal/errors"
	"github.com/hpungsan/taskflow/internal/nlp"
	"github.com/hpungsan/taskflow/internal/task"
)

// CaptureInput contains parameters for the Capture operation.
type CaptureInput struct {
	// Text is the free-form line the user typed. Required.
	Text string

	// Source is a provenance tag for the capture entry point.
	// Defaults to "quick_capture".
	Source string

	// Raw skips the natural-language parser: the text becomes the title
	// as-is, with no context or scheduling derivation.
	Raw bool
}

// CaptureOutput contains the result of the Capture operation.
type CaptureOutput struct {
	Task task.Task `json:"task"`
}

// Capture turns a line of text into a persisted task. Parsed captures run the
// extraction pipeline over the text; raw captures store it verbatim. Either
// way the new task starts in "next" with sync_version 1 and the raw input
// preserved in original_input.
func Capture(ctx context.Context, store *db.Store, input CaptureInput) (*CaptureOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, errors.NewInvalidRequest("text is required")
	}

	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = SourceQuickCapture
	}

	title := text
	var taskContext *string
	var scheduledFor *int64

	if !input.Raw {
		parsed := nlp.Parse(text)
		title = parsed.Title
		taskContext = parsed.Context
		scheduledFor = parsed.ScheduledFor
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	now := time.Now().Unix()
	originalInput := text

	t := &task.Task{
		ID:            id,
		Title:         title,
		Status:        task.StatusNext,
		Context:       taskContext,
		ScheduledFor:  scheduledFor,
		CreatedAt:     now,
		UpdatedAt:     now,
		OriginalInput: &originalInput,
		Source:        source,
		SyncVersion:   1,
	}

	if err := store.CreateTask(ctx, t); err != nil {
		return nil, err
	}

	return &CaptureOutput{Task: *t}, nil
}
