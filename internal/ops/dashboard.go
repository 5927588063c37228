package ops

import (
	"context"
	"strconv"
	"time"

	"github.com/hpungsan/taskflow/internal/config"
	"github.com/hpungsan/taskflow/internal/db"
	"github.com/hpungsan/taskflow/internal/task"
)

// DashboardOutput is the read-model snapshot for the dashboard views.
type DashboardOutput struct {
	NowTask         *task.Task  `json:"now_task"`
	NextTasks       []task.Task `json:"next_tasks"`
	WaitingTasks    []task.Task `json:"waiting_tasks"`
	ReviewDueInDays int         `json:"review_due_in_days"`
}

// Dashboard assembles the "now" task, upcoming tasks, waiting tasks, and the
// review countdown from store queries. It consumes the query_by_status
// contract only; no state is mutated.
func Dashboard(ctx context.Context, store *db.Store, cfg *config.Config) (*DashboardOutput, error) {
	nowTasks, _, err := store.ListByStatus(ctx, task.StatusNow, 1, 0)
	if err != nil {
		return nil, err
	}
	var nowTask *task.Task
	if len(nowTasks) > 0 {
		nowTask = &nowTasks[0]
	}

	nextLimit := cfg.DashboardNextLimit
	if nextLimit <= 0 {
		nextLimit = 10
	}
	nextTasks, _, err := store.ListByStatus(ctx, task.StatusNext, nextLimit, 0)
	if err != nil {
		return nil, err
	}

	waitingLimit := cfg.DashboardWaitingLimit
	if waitingLimit <= 0 {
		waitingLimit = 10
	}
	waitingTasks, _, err := store.ListByStatus(ctx, task.StatusWaiting, waitingLimit, 0)
	if err != nil {
		return nil, err
	}

	reviewDue, err := reviewDueInDays(ctx, store, cfg, time.Now().Unix())
	if err != nil {
		return nil, err
	}

	return &DashboardOutput{
		NowTask:         nowTask,
		NextTasks:       nextTasks,
		WaitingTasks:    waitingTasks,
		ReviewDueInDays: reviewDue,
	}, nil
}

// reviewDueInDays computes how many days remain until the next review is
// due. Missing or malformed settings fall back to hard-coded defaults
// (never reviewed, weekly frequency) rather than failing the dashboard.
func reviewDueInDays(ctx context.Context, store *db.Store, cfg *config.Config, now int64) (int, error) {
	var lastReview int64
	if value, ok, err := store.GetSetting(ctx, SettingLastReviewDate); err != nil {
		return 0, err
	} else if ok {
		if parsed, perr := strconv.ParseInt(value, 10, 64); perr == nil {
			lastReview = parsed
		}
	}

	frequency := cfg.ReviewFrequencyDays
	if frequency <= 0 {
		frequency = 7
	}
	if value, ok, err := store.GetSetting(ctx, SettingReviewFrequencyDays); err != nil {
		return 0, err
	} else if ok {
		if parsed, perr := strconv.Atoi(value); perr == nil && parsed > 0 {
			frequency = parsed
		}
	}

	daysSinceReview := (now - lastReview) / 86400
	return frequency - int(daysSinceReview), nil
}
