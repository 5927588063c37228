package db

import (
	"context"
	"testing"
	"time"

	"github.com/hpungsan/taskflow/internal/errors"
	"github.com/hpungsan/taskflow/internal/task"
)

// newTestStore creates a store backed by a temp directory.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// newTestTask creates a task with default values for testing.
func newTestTask(id, title string) *task.Task {
	now := time.Now().Unix()
	return &task.Task{
		ID:          id,
		Title:       title,
		Status:      task.StatusNext,
		CreatedAt:   now,
		UpdatedAt:   now,
		Source:      "test",
		SyncVersion: 1,
	}
}

func stringPtr(s string) *string {
	return &s
}

func int64Ptr(n int64) *int64 {
	return &n
}

func TestCreateAndGetTask(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	c := newTestTask("01TASK1", "Buy milk")
	c.Context = stringPtr("groceries")
	c.ScheduledFor = int64Ptr(1750000000)
	c.OriginalInput = stringPtr("Buy milk @groceries tomorrow")

	if err := store.CreateTask(ctx, c); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	retrieved, err := store.GetTask(ctx, "01TASK1")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}

	if retrieved.ID != c.ID {
		t.Errorf("ID = %q, want %q", retrieved.ID, c.ID)
	}
	if retrieved.Title != c.Title {
		t.Errorf("Title = %q, want %q", retrieved.Title, c.Title)
	}
	if retrieved.Status != task.StatusNext {
		t.Errorf("Status = %q, want %q", retrieved.Status, task.StatusNext)
	}
	if retrieved.Context == nil || *retrieved.Context != "groceries" {
		t.Errorf("Context = %v, want %q", retrieved.Context, "groceries")
	}
	if retrieved.ScheduledFor == nil || *retrieved.ScheduledFor != 1750000000 {
		t.Errorf("ScheduledFor = %v, want 1750000000", retrieved.ScheduledFor)
	}
	if retrieved.CompletedAt != nil {
		t.Errorf("CompletedAt = %v, want nil", retrieved.CompletedAt)
	}
	if retrieved.OriginalInput == nil || *retrieved.OriginalInput != "Buy milk @groceries tomorrow" {
		t.Errorf("OriginalInput = %v, want original string", retrieved.OriginalInput)
	}
	if retrieved.Source != "test" {
		t.Errorf("Source = %q, want %q", retrieved.Source, "test")
	}
	if retrieved.SyncVersion != 1 {
		t.Errorf("SyncVersion = %d, want 1", retrieved.SyncVersion)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetTask(context.Background(), "missing")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("GetTask error = %v, want NOT_FOUND", err)
	}
}

func TestUpdateTaskStatus_IntoDone(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	c := newTestTask("01TASK1", "Finish report")
	if err := store.CreateTask(ctx, c); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	updated, err := store.UpdateTaskStatus(ctx, "01TASK1", task.StatusDone)
	if err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}

	if updated.Status != task.StatusDone {
		t.Errorf("Status = %q, want %q", updated.Status, task.StatusDone)
	}
	if updated.CompletedAt == nil {
		t.Error("CompletedAt is nil, want timestamp")
	}
	if updated.SyncVersion != 2 {
		t.Errorf("SyncVersion = %d, want 2", updated.SyncVersion)
	}
}

func TestUpdateTaskStatus_OutOfDone_ClearsCompletedAt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	c := newTestTask("01TASK1", "Reopenable")
	if err := store.CreateTask(ctx, c); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if _, err := store.UpdateTaskStatus(ctx, "01TASK1", task.StatusDone); err != nil {
		t.Fatalf("UpdateTaskStatus(done) failed: %v", err)
	}

	updated, err := store.UpdateTaskStatus(ctx, "01TASK1", task.StatusWaiting)
	if err != nil {
		t.Fatalf("UpdateTaskStatus(waiting) failed: %v", err)
	}

	if updated.Status != task.StatusWaiting {
		t.Errorf("Status = %q, want %q", updated.Status, task.StatusWaiting)
	}
	if updated.CompletedAt != nil {
		t.Errorf("CompletedAt = %v, want nil after reopening", *updated.CompletedAt)
	}
	if updated.SyncVersion != 3 {
		t.Errorf("SyncVersion = %d, want 3", updated.SyncVersion)
	}
}

func TestUpdateTaskStatus_NowDemotesPreviousHolder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := newTestTask("01TASKA", "Task A")
	b := newTestTask("01TASKB", "Task B")
	if err := store.CreateTask(ctx, a); err != nil {
		t.Fatalf("CreateTask(a) failed: %v", err)
	}
	if err := store.CreateTask(ctx, b); err != nil {
		t.Fatalf("CreateTask(b) failed: %v", err)
	}

	// A takes "now"
	if _, err := store.UpdateTaskStatus(ctx, "01TASKA", task.StatusNow); err != nil {
		t.Fatalf("promote A failed: %v", err)
	}

	// B takes "now"; A must be demoted to "next" in the same operation
	promoted, err := store.UpdateTaskStatus(ctx, "01TASKB", task.StatusNow)
	if err != nil {
		t.Fatalf("promote B failed: %v", err)
	}

	if promoted.Status != task.StatusNow {
		t.Errorf("B status = %q, want %q", promoted.Status, task.StatusNow)
	}
	if promoted.SyncVersion != 2 {
		t.Errorf("B SyncVersion = %d, want 2", promoted.SyncVersion)
	}

	demoted, err := store.GetTask(ctx, "01TASKA")
	if err != nil {
		t.Fatalf("GetTask(a) failed: %v", err)
	}
	if demoted.Status != task.StatusNext {
		t.Errorf("A status = %q, want %q", demoted.Status, task.StatusNext)
	}
	// A was mutated twice: promoted (2) then demoted (3)
	if demoted.SyncVersion != 3 {
		t.Errorf("A SyncVersion = %d, want 3", demoted.SyncVersion)
	}

	// Exactly one task holds "now"
	nowTasks, total, err := store.ListByStatus(ctx, task.StatusNow, 10, 0)
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	if total != 1 || len(nowTasks) != 1 {
		t.Errorf("now tasks = %d (total %d), want exactly 1", len(nowTasks), total)
	}
	if nowTasks[0].ID != "01TASKB" {
		t.Errorf("now task = %q, want %q", nowTasks[0].ID, "01TASKB")
	}
}

func TestUpdateTaskStatus_RepromoteSameTask(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	c := newTestTask("01TASK1", "Focused")
	if err := store.CreateTask(ctx, c); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if _, err := store.UpdateTaskStatus(ctx, "01TASK1", task.StatusNow); err != nil {
		t.Fatalf("first promote failed: %v", err)
	}

	// Promoting the current holder again must not demote it
	updated, err := store.UpdateTaskStatus(ctx, "01TASK1", task.StatusNow)
	if err != nil {
		t.Fatalf("second promote failed: %v", err)
	}
	if updated.Status != task.StatusNow {
		t.Errorf("Status = %q, want %q", updated.Status, task.StatusNow)
	}
	if updated.SyncVersion != 3 {
		t.Errorf("SyncVersion = %d, want 3", updated.SyncVersion)
	}
}

func TestUpdateTaskStatus_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.UpdateTaskStatus(context.Background(), "missing", task.StatusDone)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("UpdateTaskStatus error = %v, want NOT_FOUND", err)
	}
}

func TestUpdateTaskStatus_RefreshesUpdatedAt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	c := newTestTask("01TASK1", "Stale")
	c.CreatedAt = 1000
	c.UpdatedAt = 1000
	if err := store.CreateTask(ctx, c); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	updated, err := store.UpdateTaskStatus(ctx, "01TASK1", task.StatusWaiting)
	if err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}

	if updated.UpdatedAt <= 1000 {
		t.Errorf("UpdatedAt = %d, want refreshed past 1000", updated.UpdatedAt)
	}
	if updated.CreatedAt != 1000 {
		t.Errorf("CreatedAt = %d, want immutable 1000", updated.CreatedAt)
	}
}

func TestDeleteTask(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	c := newTestTask("01TASK1", "Ephemeral")
	if err := store.CreateTask(ctx, c); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	deleted, err := store.DeleteTask(ctx, "01TASK1")
	if err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if !deleted {
		t.Error("deleted = false, want true")
	}

	if _, err := store.GetTask(ctx, "01TASK1"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("GetTask after delete = %v, want NOT_FOUND", err)
	}
}

func TestDeleteTask_AbsentIsNoOp(t *testing.T) {
	store := newTestStore(t)

	deleted, err := store.DeleteTask(context.Background(), "missing")
	if err != nil {
		t.Fatalf("DeleteTask on absent id errored: %v", err)
	}
	if deleted {
		t.Error("deleted = true, want false for absent id")
	}
}

func TestListByStatus_OrderAndPagination(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"01OLD", "01MID", "01NEW"} {
		c := newTestTask(id, "Task "+id)
		c.CreatedAt = int64(1000 + i)
		c.UpdatedAt = c.CreatedAt
		if err := store.CreateTask(ctx, c); err != nil {
			t.Fatalf("CreateTask(%s) failed: %v", id, err)
		}
	}

	tasks, total, err := store.ListByStatus(ctx, task.StatusNext, 2, 0)
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}

	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(tasks) != 2 {
		t.Fatalf("len(tasks) = %d, want 2", len(tasks))
	}
	// created_at DESC
	if tasks[0].ID != "01NEW" || tasks[1].ID != "01MID" {
		t.Errorf("order = [%s %s], want [01NEW 01MID]", tasks[0].ID, tasks[1].ID)
	}

	rest, _, err := store.ListByStatus(ctx, task.StatusNext, 2, 2)
	if err != nil {
		t.Fatalf("ListByStatus offset failed: %v", err)
	}
	if len(rest) != 1 || rest[0].ID != "01OLD" {
		t.Errorf("offset page = %v, want [01OLD]", rest)
	}
}

func TestListScheduled(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	later := newTestTask("01LATER", "Later")
	later.ScheduledFor = int64Ptr(2000)
	soon := newTestTask("01SOON", "Soon")
	soon.ScheduledFor = int64Ptr(1000)
	unscheduled := newTestTask("01NONE", "No date")
	finished := newTestTask("01DONE", "Finished")
	finished.Status = task.StatusDone
	finished.ScheduledFor = int64Ptr(500)

	for _, c := range []*task.Task{later, soon, unscheduled, finished} {
		if err := store.CreateTask(ctx, c); err != nil {
			t.Fatalf("CreateTask(%s) failed: %v", c.ID, err)
		}
	}

	tasks, err := store.ListScheduled(ctx, 10)
	if err != nil {
		t.Fatalf("ListScheduled failed: %v", err)
	}

	if len(tasks) != 2 {
		t.Fatalf("len(tasks) = %d, want 2", len(tasks))
	}
	// scheduled_for ASC; done and unscheduled rows excluded
	if tasks[0].ID != "01SOON" || tasks[1].ID != "01LATER" {
		t.Errorf("order = [%s %s], want [01SOON 01LATER]", tasks[0].ID, tasks[1].ID)
	}

	capped, err := store.ListScheduled(ctx, 1)
	if err != nil {
		t.Fatalf("ListScheduled limit failed: %v", err)
	}
	if len(capped) != 1 || capped[0].ID != "01SOON" {
		t.Errorf("capped page = %v, want [01SOON]", capped)
	}
}

func TestListByStatus_EmptyIsNotNil(t *testing.T) {
	store := newTestStore(t)

	tasks, total, err := store.ListByStatus(context.Background(), task.StatusSomeday, 10, 0)
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	if tasks == nil {
		t.Error("tasks is nil, want empty slice")
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
}

func TestScanTask_UnknownStoredStatusDefaultsToNext(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Simulate a row written by a newer or corrupted client
	_, err := store.db.Exec(`
		INSERT INTO tasks (id, title, status, created_at, updated_at, source, sync_version)
		VALUES ('01BAD', 'Mystery', 'archived', 1000, 1000, 'test', 1)
	`)
	if err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}

	retrieved, err := store.GetTask(ctx, "01BAD")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if retrieved.Status != task.StatusNext {
		t.Errorf("Status = %q, want defensive default %q", retrieved.Status, task.StatusNext)
	}
}

func TestUpsertTask(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	c := newTestTask("01TASK1", "Original title")
	if err := store.UpsertTask(ctx, c); err != nil {
		t.Fatalf("UpsertTask insert failed: %v", err)
	}

	c.Title = "Replaced title"
	c.SyncVersion = 5
	if err := store.UpsertTask(ctx, c); err != nil {
		t.Fatalf("UpsertTask replace failed: %v", err)
	}

	retrieved, err := store.GetTask(ctx, "01TASK1")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if retrieved.Title != "Replaced title" {
		t.Errorf("Title = %q, want %q", retrieved.Title, "Replaced title")
	}
	if retrieved.SyncVersion != 5 {
		t.Errorf("SyncVersion = %d, want 5", retrieved.SyncVersion)
	}
}

func TestSettings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, ok, err := store.GetSetting(ctx, "last_review_date")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if ok {
		t.Error("GetSetting found a value in an empty settings table")
	}

	if err := store.SetSetting(ctx, "last_review_date", "1750000000"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	if err := store.SetSetting(ctx, "last_review_date", "1750000001"); err != nil {
		t.Fatalf("SetSetting overwrite failed: %v", err)
	}

	value, ok, err := store.GetSetting(ctx, "last_review_date")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if !ok || value != "1750000001" {
		t.Errorf("GetSetting = (%q, %v), want (\"1750000001\", true)", value, ok)
	}
}
