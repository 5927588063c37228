package ops

import (
	"context"
	"strconv"
	"time"

	"github.com/hpungsan/taskflow/internal/config"
	"github.com/hpungsan/taskflow/internal/db"
)

// MarkReviewedOutput contains the result of the MarkReviewed operation.
type MarkReviewedOutput struct {
	LastReviewDate  int64 `json:"last_review_date"`
	ReviewDueInDays int   `json:"review_due_in_days"`
}

// MarkReviewed records that a triage review happened now and returns the
// recomputed countdown.
func MarkReviewed(ctx context.Context, store *db.Store, cfg *config.Config) (*MarkReviewedOutput, error) {
	now := time.Now().Unix()

	if err := store.SetSetting(ctx, SettingLastReviewDate, strconv.FormatInt(now, 10)); err != nil {
		return nil, err
	}

	due, err := reviewDueInDays(ctx, store, cfg, now)
	if err != nil {
		return nil, err
	}

	return &MarkReviewedOutput{
		LastReviewDate:  now,
		ReviewDueInDays: due,
	}, nil
}
