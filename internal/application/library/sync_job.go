package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/YaRavva/Fiction-Library-sub007/internal/domain/library"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const maxStoredFailures = 100

type SyncJobConfig struct {
	ItemTimeout   time.Duration
	BatchDeadline time.Duration
	Notifier      domain.Notifier
	Logger        logrus.FieldLogger
}

type SyncJob struct {
	name    string
	store   domain.WorkItemStore
	fetcher domain.Fetcher
	cfg     SyncJobConfig
}

func NewSyncJob(name string, store domain.WorkItemStore, fetcher domain.Fetcher, cfg SyncJobConfig) *SyncJob {
	if cfg.ItemTimeout <= 0 {
		cfg.ItemTimeout = 30 * time.Second
	}
	if cfg.BatchDeadline <= 0 {
		cfg.BatchDeadline = 10 * time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	return &SyncJob{
		name:    name,
		store:   store,
		fetcher: fetcher,
		cfg:     cfg,
	}
}

func (j *SyncJob) Name() string {
	return j.name
}

// Run selects at most batchSize items whose target attribute is absent and
// fills each one in turn. Item failures are recorded in the result; only a
// failure to start the batch is returned as an error.
func (j *SyncJob) Run(ctx context.Context, batchSize int) (domain.SyncResult, error) {
	if batchSize <= 0 {
		return domain.SyncResult{}, fmt.Errorf("%w: %d", ErrInvalidBatchSize, batchSize)
	}

	result := domain.SyncResult{
		RunID: uuid.NewString(),
		Job:   j.name,
	}
	log := j.cfg.Logger.WithFields(logrus.Fields{"job": j.name, "run_id": result.RunID})

	items, err := j.store.SelectMissing(ctx, batchSize)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrSelectBatch, err)
	}
	if len(items) > batchSize {
		items = items[:batchSize]
	}
	log.Infof("selected %d items (batch size %d)", len(items), batchSize)

	batchCtx, cancel := context.WithTimeout(ctx, j.cfg.BatchDeadline)
	defer cancel()

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if batchCtx.Err() != nil {
			log.Warnf("batch deadline reached, %d items left unattempted", len(items)-result.Attempted)
			break
		}

		result.Attempted++
		itemLog := log.WithField("item_id", item.ID)

		value, err := j.fetch(batchCtx, item)
		if err != nil {
			j.recordFailure(&result, item, fmt.Errorf("fetch: %w", err))
			itemLog.Warnf("fetch failed: %v", err)
			continue
		}

		if err := j.store.Fill(ctx, item.ID, value); err != nil {
			j.recordFailure(&result, item, fmt.Errorf("fill: %w", err))
			itemLog.Warnf("write back failed: %v", err)
			continue
		}

		result.Succeeded++
		itemLog.Debug("filled")

		if j.cfg.Notifier != nil {
			if err := j.cfg.Notifier.ItemFilled(ctx, j.name, item, value); err != nil {
				itemLog.Warnf("notify failed: %v", err)
			}
		}
	}

	log.Infof("done: attempted=%d succeeded=%d failed=%d", result.Attempted, result.Succeeded, result.Failed)
	return result, nil
}

func (j *SyncJob) fetch(ctx context.Context, item domain.WorkItem) (string, error) {
	itemCtx, cancel := context.WithTimeout(ctx, j.cfg.ItemTimeout)
	defer cancel()

	value, err := j.fetcher.Fetch(itemCtx, item)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(value) == "" {
		return "", domain.ErrEmptyValue
	}
	return value, nil
}

func (j *SyncJob) recordFailure(result *domain.SyncResult, item domain.WorkItem, err error) {
	result.Failed++
	if len(result.Failures) < maxStoredFailures {
		result.Failures = append(result.Failures, domain.ItemFailure{
			ItemID: item.ID,
			Reason: truncateReason(err.Error()),
		})
	}
}

// IsFatal reports whether err prevented a batch from starting.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvalidBatchSize) || errors.Is(err, ErrSelectBatch)
}

func truncateReason(reason string) string {
	const maxLen = 1000
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxLen {
		return reason
	}
	return reason[:maxLen]
}
