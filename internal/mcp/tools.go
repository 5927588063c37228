package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var captureToolDef = mcp.NewTool("task_capture",
	mcp.WithDescription("Capture a task from a line of text. Natural-language markers are parsed out of the text: @word sets the context, and date phrases like 'tomorrow', 'in 3 days', or 'next friday' set the scheduled date. Pass raw=true to store the text verbatim."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("The task text, optionally containing @context and date markers"),
	),
	mcp.WithString("source",
		mcp.Description("Where the capture came from (defaults to 'mcp')"),
	),
	mcp.WithBoolean("raw",
		mcp.Description("Skip marker parsing and store the text as-is"),
	),
)

var getToolDef = mcp.NewTool("task_get",
	mcp.WithDescription("Fetch a single task by id."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Task id (ULID)"),
	),
)

var updateStatusToolDef = mcp.NewTool("task_update_status",
	mcp.WithDescription("Move a task to a new status. Valid statuses: now, next, waiting, someday, done. Promoting a task to 'now' demotes the previous 'now' task to 'next'; completing a task records its completion time."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Task id (ULID)"),
	),
	mcp.WithString("status",
		mcp.Required(),
		mcp.Description("Target status: now, next, waiting, someday, or done"),
	),
)

var deleteToolDef = mcp.NewTool("task_delete",
	mcp.WithDescription("Delete a task permanently. Deleting an id that does not exist is not an error."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Task id (ULID)"),
	),
)

var listToolDef = mcp.NewTool("task_list",
	mcp.WithDescription("List tasks in a given status, newest first, with pagination."),
	mcp.WithString("status",
		mcp.Required(),
		mcp.Description("Status to list: now, next, waiting, someday, or done"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Max results per page (default 20, max 100)"),
	),
	mcp.WithNumber("offset",
		mcp.Description("Number of results to skip"),
	),
)

var dashboardToolDef = mcp.NewTool("task_dashboard",
	mcp.WithDescription("Get the triage snapshot: the current 'now' task, upcoming 'next' tasks, 'waiting' tasks, and the days remaining until the next review is due."),
)

var reportToolDef = mcp.NewTool("task_report",
	mcp.WithDescription("Render the triage snapshot as a markdown agenda."),
)

var reviewedToolDef = mcp.NewTool("task_reviewed",
	mcp.WithDescription("Record that a triage review happened now and reset the review countdown."),
)

var exportToolDef = mcp.NewTool("task_export",
	mcp.WithDescription("Export all tasks to a JSONL file."),
	mcp.WithString("path",
		mcp.Description("Destination file path (defaults to the data directory's exports/ folder)"),
	),
)

var importToolDef = mcp.NewTool("task_import",
	mcp.WithDescription("Import tasks from a JSONL export file. Mode 'error' (default) skips tasks whose id already exists; 'replace' overwrites them."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Path to the JSONL export file"),
	),
	mcp.WithString("mode",
		mcp.Description("Collision mode: error or replace"),
	),
)
