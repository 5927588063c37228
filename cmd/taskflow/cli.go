package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/taskflow/internal/config"
	"github.com/hpungsan/taskflow/internal/db"
	"github.com/hpungsan/taskflow/internal/errors"
	"github.com/hpungsan/taskflow/internal/ops"
	"github.com/hpungsan/taskflow/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(store *db.Store, cfg *config.Config, baseDir string) *cli.App {
	app := &cli.App{
		Name:    "taskflow",
		Usage:   "Personal task capture and triage",
		Version: Version,
		Commands: []*cli.Command{
			captureCmd(store),
			getCmd(store),
			statusCmd(store),
			deleteCmd(store),
			listCmd(store),
			dashboardCmd(store, cfg),
			reportCmd(store, cfg),
			reviewedCmd(store, cfg),
			exportCmd(store, baseDir),
			importCmd(store),
			webCmd(store, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// captureCmd creates the capture command.
func captureCmd(store *db.Store) *cli.Command {
	return &cli.Command{
		Name:      "capture",
		Aliases:   []string{"add"},
		Usage:     "Capture a task from a line of text (or stdin when piped)",
		ArgsUsage: "[text]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "raw", Usage: "Store the text verbatim, skipping marker parsing"},
		},
		Action: func(c *cli.Context) error {
			text := strings.Join(c.Args().Slice(), " ")
			if text == "" && stdinHasData() {
				piped, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				text = piped
			}
			if text == "" {
				return outputError(errors.NewInvalidRequest("task text is required"))
			}

			output, err := ops.Capture(context.Background(), store, ops.CaptureInput{
				Text:   text,
				Source: ops.SourceCLI,
				Raw:    c.Bool("raw"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// getCmd creates the get command.
func getCmd(store *db.Store) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Fetch a task by ID",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := ops.Get(context.Background(), store, ops.GetInput{
				ID: c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// statusCmd creates the status command.
func statusCmd(store *db.Store) *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "Move a task to a new status (now|next|waiting|someday|done)",
		ArgsUsage: "<id> <status>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return outputError(errors.NewInvalidRequest("usage: taskflow status <id> <status>"))
			}

			output, err := ops.UpdateStatus(context.Background(), store, ops.UpdateStatusInput{
				ID:     c.Args().Get(0),
				Status: c.Args().Get(1),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(store *db.Store) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a task permanently",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := ops.Delete(context.Background(), store, ops.DeleteInput{
				ID: c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(store *db.Store) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List tasks in a status, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Value: "next", Usage: "Status to list"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(context.Background(), store, ops.ListInput{
				Status: c.String("status"),
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// dashboardCmd creates the dashboard command.
func dashboardCmd(store *db.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "Show the triage snapshot: now, next, waiting, review countdown",
		Action: func(c *cli.Context) error {
			output, err := ops.Dashboard(context.Background(), store, cfg)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// reportCmd creates the report command.
func reportCmd(store *db.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Print the triage snapshot as a markdown agenda",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Emit the report as JSON instead of raw markdown"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Report(context.Background(), store, cfg)
			if err != nil {
				return outputError(err)
			}

			if c.Bool("json") {
				return outputJSON(output)
			}
			fmt.Print(output.Markdown)
			return nil
		},
	}
}

// reviewedCmd creates the reviewed command.
func reviewedCmd(store *db.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "reviewed",
		Usage: "Record that a triage review happened now",
		Action: func(c *cli.Context) error {
			output, err := ops.MarkReviewed(context.Background(), store, cfg)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(store *db.Store, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export all tasks to a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.taskflow/exports/tasks-<timestamp>.jsonl)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(context.Background(), store, ops.ExportInput{
				Path:    c.String("path"),
				BaseDir: baseDir,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(store *db.Store) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import tasks from a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Import file path"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "error", Usage: "Collision mode: error|replace"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Import(context.Background(), store, ops.ImportInput{
				Path: c.String("path"),
				Mode: ops.ImportMode(c.String("mode")),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// webCmd creates the web command.
func webCmd(store *db.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Start the local web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Value: 7360, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(store, cfg, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if taskErr, ok := err.(*errors.TaskError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", taskErr.Code, taskErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
