package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/jmcalloway/motoclubs-backend/pkg/logger"
)

const claimExpiryDays = 60

type ClaimExpiryJobParams struct {
	Logger     *logger.Logger
	Repository claimExpiryRepo
	TTLDays    int
}

type claimExpiryRepo interface {
	ExpirePendingBefore(ctx context.Context, cutoff, reviewedAt time.Time) (int64, error)
}

// NewClaimExpiryJob auto-rejects pending ownership claims that sat in the
// queue past the TTL. The club record is never mutated by an expiry.
func NewClaimExpiryJob(params ClaimExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("claims repository required")
	}
	ttl := params.TTLDays
	if ttl <= 0 {
		ttl = claimExpiryDays
	}
	return &claimExpiryJob{
		logg: params.Logger,
		repo: params.Repository,
		ttl:  ttl,
		now:  time.Now,
	}, nil
}

type claimExpiryJob struct {
	logg *logger.Logger
	repo claimExpiryRepo
	ttl  int
	now  func() time.Time
}

func (j *claimExpiryJob) Name() string { return "claim-expiry" }

func (j *claimExpiryJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	cutoff := now.Add(-time.Duration(j.ttl) * 24 * time.Hour)
	expired, err := j.repo.ExpirePendingBefore(ctx, cutoff, now)
	if err != nil {
		return fmt.Errorf("claim expiry: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":       cutoff,
		"ttl_days":     j.ttl,
		"rows_expired": expired,
	})
	j.logg.Info(logCtx, "claim expiry complete")
	return nil
}
