package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hpungsan/taskflow/internal/db"
	"github.com/hpungsan/taskflow/internal/errors"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	// Path is the export file path. Defaults to
	// <baseDir>/exports/tasks-<timestamp>.jsonl.
	Path string

	// BaseDir is the taskflow data directory, used for the default path.
	BaseDir string
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Count      int    `json:"count"`
	ExportedAt int64  `json:"exported_at"`
}

// ExportHeader is the first line of a JSONL export file.
type ExportHeader struct {
	TaskflowExport bool   `json:"_taskflow_export"`
	SchemaVersion  string `json:"schema_version"`
	ExportedAt     int64  `json:"exported_at"`
}

// Export writes every task to a JSONL file: one header line followed by one
// task record per line. The file is written to a temp path and renamed so a
// failed export never clobbers an existing file.
func Export(ctx context.Context, store *db.Store, input ExportInput) (*ExportOutput, error) {
	now := time.Now()
	exportedAt := now.Unix()

	exportPath := input.Path
	if exportPath == "" {
		if input.BaseDir == "" {
			return nil, errors.NewInvalidRequest("path is required when no base directory is set")
		}
		name := fmt.Sprintf("tasks-%s.jsonl", now.UTC().Format("20060102-150405"))
		exportPath = filepath.Join(input.BaseDir, "exports", name)
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	tasks, err := store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	tempPath := exportPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	// Preserve any existing file on failure
	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	enc := json.NewEncoder(file)
	if err := enc.Encode(ExportHeader{
		TaskflowExport: true,
		SchemaVersion:  "1.0",
		ExportedAt:     exportedAt,
	}); err != nil {
		return nil, errors.NewInternal(err)
	}

	for i := range tasks {
		if err := enc.Encode(&tasks[i]); err != nil {
			return nil, errors.NewInternal(err)
		}
	}

	if err := file.Close(); err != nil {
		file = nil
		return nil, errors.NewInternal(err)
	}
	file = nil

	if err := os.Rename(tempPath, exportPath); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export file: %w", err))
	}
	success = true

	return &ExportOutput{
		Path:       exportPath,
		Count:      len(tasks),
		ExportedAt: exportedAt,
	}, nil
}
