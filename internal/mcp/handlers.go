package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/taskflow/internal/config"
	"github.com/hpungsan/taskflow/internal/db"
	"github.com/hpungsan/taskflow/internal/errors"
	"github.com/hpungsan/taskflow/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store   *db.Store
	cfg     *config.Config
	baseDir string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store *db.Store, cfg *config.Config, baseDir string) *Handlers {
	return &Handlers{store: store, cfg: cfg, baseDir: baseDir}
}

// Request types for each tool

// CaptureRequest represents the arguments for capture.
type CaptureRequest struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
	Raw    bool   `json:"raw,omitempty"`
}

// GetRequest represents the arguments for get.
type GetRequest struct {
	ID string `json:"id"`
}

// UpdateStatusRequest represents the arguments for update_status.
type UpdateStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// DeleteRequest represents the arguments for delete.
type DeleteRequest struct {
	ID string `json:"id"`
}

// ListRequest represents the arguments for list.
type ListRequest struct {
	Status string `json:"status"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// ExportRequest represents the arguments for export.
type ExportRequest struct {
	Path string `json:"path,omitempty"`
}

// ImportRequest represents the arguments for import.
type ImportRequest struct {
	Path string `json:"path"`
	Mode string `json:"mode,omitempty"`
}

// Handler implementations

// HandleCapture handles the capture tool call.
func (h *Handlers) HandleCapture(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CaptureRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	source := input.Source
	if source == "" {
		source = ops.SourceMCP
	}

	result, err := ops.Capture(ctx, h.store, ops.CaptureInput{
		Text:   input.Text,
		Source: source,
		Raw:    input.Raw,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleGet handles the get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Get(ctx, h.store, ops.GetInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleUpdateStatus handles the update_status tool call.
func (h *Handlers) HandleUpdateStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UpdateStatusRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.UpdateStatus(ctx, h.store, ops.UpdateStatusInput{
		ID:     input.ID,
		Status: input.Status,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(ctx, h.store, ops.DeleteInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(ctx, h.store, ops.ListInput{
		Status: input.Status,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDashboard handles the dashboard tool call.
func (h *Handlers) HandleDashboard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Dashboard(ctx, h.store, h.cfg)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleReport handles the report tool call.
func (h *Handlers) HandleReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Report(ctx, h.store, h.cfg)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleReviewed handles the reviewed tool call.
func (h *Handlers) HandleReviewed(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.MarkReviewed(ctx, h.store, h.cfg)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExport handles the export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Export(ctx, h.store, ops.ExportInput{
		Path:    input.Path,
		BaseDir: h.baseDir,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleImport handles the import tool call.
func (h *Handlers) HandleImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ImportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	// Mode validation lives in ops.Import; the empty string defaults there too.
	result, err := ops.Import(ctx, h.store, ops.ImportInput{
		Path: input.Path,
		Mode: ops.ImportMode(input.Mode),
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if taskErr, ok := err.(*errors.TaskError); ok {
		errorObj := map[string]any{
			"code":    taskErr.Code,
			"message": taskErr.Message,
			"status":  taskErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if taskErr.Code != errors.ErrInternal && taskErr.Details != nil {
			errorObj["details"] = taskErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
