package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/hpungsan/taskflow/internal/errors"
	"github.com/hpungsan/taskflow/internal/task"
)

// taskColumns is the canonical column list for task scans.
const taskColumns = `id, title, status, context, scheduled_for, completed_at,
	created_at, updated_at, original_input, source, tags, sync_version`

// CreateTask inserts a new task. Identity, timestamps, and the initial
// sync_version are assigned by the caller before insert.
func (s *Store) CreateTask(ctx context.Context, t *task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO tasks (
			id, title, status, context, scheduled_for, completed_at,
			created_at, updated_at, original_input, source, tags, sync_version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		t.ID, t.Title, string(t.Status), toNullString(t.Context),
		toNullInt64(t.ScheduledFor), toNullInt64(t.CompletedAt),
		t.CreatedAt, t.UpdatedAt, toNullString(t.OriginalInput),
		t.Source, toNullString(t.Tags), t.SyncVersion,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	return nil
}

// GetTask retrieves a task by its ULID.
func (s *Store) GetTask(ctx context.Context, id string) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return getTask(ctx, s.db, id)
}

// queryRower is satisfied by *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// getTask reads one task inside an existing lock scope or transaction.
func getTask(ctx context.Context, q queryRower, id string) (*task.Task, error) {
	row := q.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return t, nil
}

// UpdateTaskStatus applies a status transition with its side effects in one
// transaction:
//   - into done: completed_at set to current time
//   - out of done: completed_at cleared
//   - into now: any other task holding "now" is demoted to "next"
//
// Every mutated task's sync_version increments by exactly 1 and its
// updated_at refreshes. Returns the updated task.
func (s *Store) UpdateTaskStatus(ctx context.Context, id string, status task.Status) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer tx.Rollback()

	// Verify the task exists before mutating anything
	if _, err := getTask(ctx, tx, id); err != nil {
		return nil, err
	}

	now := time.Now().Unix()

	// Singleton-"now" invariant: demote the previous holder as part of the
	// same logical operation.
	if status == task.StatusNow {
		_, err := tx.ExecContext(ctx, `
			UPDATE tasks
			SET status = ?, sync_version = sync_version + 1, updated_at = ?
			WHERE status = ? AND id <> ?
		`, string(task.StatusNext), now, string(task.StatusNow), id)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
	}

	var completedAt sql.NullInt64
	if status == task.StatusDone {
		completedAt = sql.NullInt64{Int64: now, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE tasks
		SET status = ?, completed_at = ?, sync_version = sync_version + 1, updated_at = ?
		WHERE id = ?
	`, string(status), completedAt, now, id)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	updated, err := getTask(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return updated, nil
}

// DeleteTask removes a task permanently. Deleting an absent id is a no-op;
// the bool reports whether a row was actually removed.
func (s *Store) DeleteTask(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, errors.NewInternal(err)
	}

	return rowsAffected > 0, nil
}

// ListByStatus returns tasks in the given status ordered by created_at
// descending, plus the total count for that status.
func (s *Store) ListByStatus(ctx context.Context, status task.Status, limit, offset int) ([]task.Task, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE status = ?`, string(status)).Scan(&total)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE status = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, string(status), limit, offset)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	tasks, err := collectTasks(rows)
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListScheduled returns tasks carrying a scheduled date that are not yet
// done, ordered by scheduled date ascending.
func (s *Store) ListScheduled(ctx context.Context, limit int) ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE scheduled_for IS NOT NULL AND status <> ?
		ORDER BY scheduled_for ASC, id ASC
		LIMIT ?
	`, string(task.StatusDone), limit)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

// ListAll returns every task ordered by created_at descending. Used by export.
func (s *Store) ListAll(ctx context.Context) ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

// UpsertTask inserts a task or replaces the existing row with the same id.
// Used by import in replace mode.
func (s *Store) UpsertTask(ctx context.Context, t *task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO tasks (
			id, title, status, context, scheduled_for, completed_at,
			created_at, updated_at, original_input, source, tags, sync_version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			status = excluded.status,
			context = excluded.context,
			scheduled_for = excluded.scheduled_for,
			completed_at = excluded.completed_at,
			updated_at = excluded.updated_at,
			original_input = excluded.original_input,
			source = excluded.source,
			tags = excluded.tags,
			sync_version = excluded.sync_version
	`

	_, err := s.db.ExecContext(ctx, query,
		t.ID, t.Title, string(t.Status), toNullString(t.Context),
		toNullInt64(t.ScheduledFor), toNullInt64(t.CompletedAt),
		t.CreatedAt, t.UpdatedAt, toNullString(t.OriginalInput),
		t.Source, toNullString(t.Tags), t.SyncVersion,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	return nil
}

// TaskExists reports whether a task row with the given id exists.
func (s *Store) TaskExists(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM tasks WHERE id = ? LIMIT 1`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.NewInternal(err)
	}
	return true, nil
}

// GetSetting reads a settings value. The bool reports presence; absent keys
// are not an error so callers can apply their own fallbacks.
func (s *Store) GetSetting(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.NewInternal(err)
	}
	return value, true, nil
}

// SetSetting writes a settings value, replacing any existing one.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask scans a single row into a Task struct.
func scanTask(row rowScanner) (*task.Task, error) {
	var (
		t             task.Task
		status        string
		taskContext   sql.NullString
		scheduledFor  sql.NullInt64
		completedAt   sql.NullInt64
		originalInput sql.NullString
		tags          sql.NullString
	)

	err := row.Scan(
		&t.ID, &t.Title, &status, &taskContext, &scheduledFor, &completedAt,
		&t.CreatedAt, &t.UpdatedAt, &originalInput, &t.Source, &tags, &t.SyncVersion,
	)
	if err != nil {
		return nil, err
	}

	// Unrecognized stored status tokens default to "next" rather than
	// failing the read.
	t.Status = task.StatusFromStored(status)

	t.Context = fromNullString(taskContext)
	t.ScheduledFor = fromNullInt64(scheduledFor)
	t.CompletedAt = fromNullInt64(completedAt)
	t.OriginalInput = fromNullString(originalInput)
	t.Tags = fromNullString(tags)

	return &t, nil
}

// collectTasks drains rows into a slice.
func collectTasks(rows *sql.Rows) ([]task.Task, error) {
	tasks := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return tasks, nil
}

// toNullString converts a *string to sql.NullString.
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// fromNullString converts a sql.NullString to *string.
func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// toNullInt64 converts a *int64 to sql.NullInt64.
func toNullInt64(n *int64) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *n, Valid: true}
}

// fromNullInt64 converts a sql.NullInt64 to *int64.
func fromNullInt64(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	return &ni.Int64
}
