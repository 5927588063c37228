package ops

import (
	"context"
	"strings"
	"testing"

	"github.com/hpungsan/taskflow/internal/config"
)

func TestReport(t *testing.T) {
	store := newTestStore(t)
	cfg := config.DefaultConfig()
	ctx := context.Background()

	focus := captureTask(t, store, "Write the memo @work tomorrow")
	captureTask(t, store, "Sharpen pencils")
	if _, err := UpdateStatus(ctx, store, UpdateStatusInput{ID: focus, Status: "now"}); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	out, err := Report(ctx, store, cfg)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	md := out.Markdown

	for _, want := range []string{
		"# Agenda",
		"## Now",
		"## Next",
		"## Waiting",
		"## Scheduled",
		"- Write the memo `@work` (scheduled ",
		"- Sharpen pencils",
		"_Empty._",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q:\n%s", want, md)
		}
	}
	if out.GeneratedAt == 0 {
		t.Error("GeneratedAt = 0, want current timestamp")
	}
}

func TestReport_ScheduledSection(t *testing.T) {
	store := newTestStore(t)
	cfg := config.DefaultConfig()
	ctx := context.Background()

	captureTask(t, store, "Call dentist tomorrow")
	captureTask(t, store, "Renew passport in 3 days")
	finished := captureTask(t, store, "Book flights tomorrow")
	if _, err := UpdateStatus(ctx, store, UpdateStatusInput{ID: finished, Status: "done"}); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	out, err := Report(ctx, store, cfg)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	md := out.Markdown

	if !strings.Contains(md, "## Scheduled") {
		t.Fatalf("report missing scheduled section:\n%s", md)
	}

	section := md[strings.Index(md, "## Scheduled"):]
	dentist := strings.Index(section, "- Call dentist")
	passport := strings.Index(section, "- Renew passport")
	if dentist == -1 || passport == -1 {
		t.Fatalf("scheduled section missing tasks:\n%s", section)
	}
	// Soonest date first
	if dentist > passport {
		t.Errorf("scheduled order wrong, dentist at %d after passport at %d:\n%s", dentist, passport, section)
	}
	if strings.Contains(section, "- Book flights") {
		t.Errorf("done task leaked into scheduled section:\n%s", section)
	}
}

func TestReport_EmptyStore(t *testing.T) {
	store := newTestStore(t)

	out, err := Report(context.Background(), store, config.DefaultConfig())
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if !strings.Contains(out.Markdown, "_Nothing in focus._") {
		t.Errorf("report missing focus placeholder:\n%s", out.Markdown)
	}
}
