package ops

import (
	"context"
	"testing"

	"github.com/hpungsan/taskflow/internal/db"
)

// newTestStore creates a store backed by a temp directory.
func newTestStore(t *testing.T) *db.Store {
	t.Helper()

	store, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// captureTask is a shorthand for capturing one parsed task in tests.
func captureTask(t *testing.T, store *db.Store, text string) string {
	t.Helper()

	out, err := Capture(context.Background(), store, CaptureInput{Text: text, Source: "test"})
	if err != nil {
		t.Fatalf("Capture(%q) failed: %v", text, err)
	}
	return out.Task.ID
}
