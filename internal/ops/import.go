package ops

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hpungsan/taskflow/internal/db"
	"github.com/hpungsan/taskflow/internal/errors"
	"github.com/hpungsan/taskflow/internal/task"
)

// ImportMode controls collision behavior during import.
type ImportMode string

const (
	ImportModeError   ImportMode = "error"   // default: fail on id collision
	ImportModeReplace ImportMode = "replace" // overwrite on id collision
)

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path string     // required
	Mode ImportMode // default: error
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors,omitempty"`
}

// ImportError describes a line that could not be imported.
type ImportError struct {
	Line    int    `json:"line"`
	ID      string `json:"id,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// importRecord is a task line from an export file. The embedded header field
// lets the header line be recognized and skipped.
type importRecord struct {
	task.Task
	TaskflowExport bool `json:"_taskflow_export"`
}

// Import reads tasks from a JSONL export file. Malformed lines are reported
// per-line rather than aborting the whole import; id collisions follow the
// selected mode.
func Import(ctx context.Context, store *db.Store, input ImportInput) (*ImportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	if input.Mode == "" {
		input.Mode = ImportModeError
	}
	if input.Mode != ImportModeError && input.Mode != ImportModeReplace {
		return nil, errors.NewInvalidRequest("mode must be one of: error, replace")
	}

	file, err := os.Open(input.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound(input.Path)
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to open import file: %w", err))
	}
	defer file.Close()

	output := &ImportOutput{}

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record importRecord
		if err := json.Unmarshal(line, &record); err != nil {
			output.Skipped++
			output.Errors = append(output.Errors, ImportError{
				Line:    lineNum,
				Code:    "PARSE_ERROR",
				Message: fmt.Sprintf("invalid JSON: %v", err),
			})
			continue
		}

		// Header line
		if record.TaskflowExport {
			continue
		}

		if record.ID == "" || record.Title == "" {
			output.Skipped++
			output.Errors = append(output.Errors, ImportError{
				Line:    lineNum,
				ID:      record.ID,
				Code:    "INVALID_RECORD",
				Message: "missing id or title field",
			})
			continue
		}

		t := record.Task
		// Foreign status tokens degrade to "next", same as a storage read
		t.Status = task.StatusFromStored(string(t.Status))
		if t.Source == "" {
			t.Source = SourceImport
		}
		if t.SyncVersion < 1 {
			t.SyncVersion = 1
		}

		if input.Mode == ImportModeReplace {
			if err := store.UpsertTask(ctx, &t); err != nil {
				return nil, err
			}
			output.Imported++
			continue
		}

		exists, err := store.TaskExists(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			output.Skipped++
			output.Errors = append(output.Errors, ImportError{
				Line:    lineNum,
				ID:      t.ID,
				Code:    "CONFLICT",
				Message: "task id already exists",
			})
			continue
		}

		if err := store.CreateTask(ctx, &t); err != nil {
			return nil, err
		}
		output.Imported++
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return output, nil
}
