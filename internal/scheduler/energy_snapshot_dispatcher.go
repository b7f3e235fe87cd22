package scheduler

import (
	"context"
	"fmt"
	"time"

	"ecopro_backend/platform/config"
	"ecopro_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// trackedStatuses are the portfolio slices snapshotted on every interval.
// The empty status covers the whole portfolio.
var trackedStatuses = []string{"", "accepted"}

// EnergySnapshotDispatcher periodically enqueues snapshot refresh tasks so
// the energy report cache stays warm without request-path recomputation.
type EnergySnapshotDispatcher struct {
	client   *asynq.Client
	queue    string
	interval time.Duration
	log      *logger.Logger
}

func NewEnergySnapshotDispatcher(cfg config.SchedulerConfig, log *logger.Logger) (*EnergySnapshotDispatcher, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	interval := cfg.GetEnergySnapshotInterval()
	if interval <= 0 {
		interval = time.Hour
	}

	return &EnergySnapshotDispatcher{
		client:   asynq.NewClient(opt),
		queue:    queue,
		interval: interval,
		log:      log,
	}, nil
}

func (d *EnergySnapshotDispatcher) Close() error {
	if d == nil || d.client == nil {
		return nil
	}
	return d.client.Close()
}

func (d *EnergySnapshotDispatcher) Run(ctx context.Context) {
	if d == nil || d.client == nil {
		return
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	// Warm the cache at startup rather than waiting a full interval.
	d.dispatch(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		d.dispatch(ctx)
	}
}

func (d *EnergySnapshotDispatcher) dispatch(ctx context.Context) {
	for _, status := range trackedStatuses {
		task, err := NewEnergySnapshotTask(EnergySnapshotPayload{Status: status})
		if err != nil {
			d.log.Warn("energy snapshot task build failed", "status", status, "error", err)
			continue
		}

		if _, err := d.client.EnqueueContext(ctx, task, asynq.Queue(d.queue)); err != nil {
			d.log.Warn("energy snapshot enqueue failed", "status", status, "error", err)
		}
	}
}
