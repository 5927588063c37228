package ops

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hpungsan/taskflow/internal/config"
	"github.com/hpungsan/taskflow/internal/db"
	"github.com/hpungsan/taskflow/internal/task"
)

// reportScheduledLimit caps the scheduled section of the agenda.
const reportScheduledLimit = 10

// ReportOutput contains the result of the Report operation.
type ReportOutput struct {
	Markdown    string `json:"markdown"`
	GeneratedAt int64  `json:"generated_at"`
}

// Report renders the current triage state as a markdown agenda. The CLI
// prints it raw; the web UI renders it to HTML.
func Report(ctx context.Context, store *db.Store, cfg *config.Config) (*ReportOutput, error) {
	dashboard, err := Dashboard(ctx, store, cfg)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	var b strings.Builder
	fmt.Fprintf(&b, "# Agenda: %s\n\n", now.UTC().Format("Mon, 02 Jan 2006"))

	switch {
	case dashboard.ReviewDueInDays < 0:
		fmt.Fprintf(&b, "Review overdue by %d day(s).\n\n", -dashboard.ReviewDueInDays)
	case dashboard.ReviewDueInDays == 0:
		b.WriteString("Review due today.\n\n")
	default:
		fmt.Fprintf(&b, "Review due in %d day(s).\n\n", dashboard.ReviewDueInDays)
	}

	b.WriteString("## Now\n\n")
	if dashboard.NowTask != nil {
		writeTaskLine(&b, *dashboard.NowTask)
	} else {
		b.WriteString("_Nothing in focus._\n")
	}
	b.WriteString("\n")

	writeTaskSection(&b, "Next", dashboard.NextTasks)
	writeTaskSection(&b, "Waiting", dashboard.WaitingTasks)

	scheduled, err := store.ListScheduled(ctx, reportScheduledLimit)
	if err != nil {
		return nil, err
	}
	writeTaskSection(&b, "Scheduled", scheduled)

	return &ReportOutput{
		Markdown:    b.String(),
		GeneratedAt: now.Unix(),
	}, nil
}

// writeTaskSection writes a markdown section for a task list.
func writeTaskSection(b *strings.Builder, heading string, tasks []task.Task) {
	fmt.Fprintf(b, "## %s\n\n", heading)
	if len(tasks) == 0 {
		b.WriteString("_Empty._\n")
	}
	for _, t := range tasks {
		writeTaskLine(b, t)
	}
	b.WriteString("\n")
}

// writeTaskLine writes one task as a markdown list item.
func writeTaskLine(b *strings.Builder, t task.Task) {
	b.WriteString("- " + t.Title)
	if t.Context != nil {
		fmt.Fprintf(b, " `@%s`", *t.Context)
	}
	if t.ScheduledFor != nil {
		fmt.Fprintf(b, " (scheduled %s)", time.Unix(*t.ScheduledFor, 0).UTC().Format("2006-01-02"))
	}
	b.WriteString("\n")
}
