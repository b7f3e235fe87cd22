package scheduler

import (
	"context"
	"fmt"

	"ecopro_backend/internal/valorisation"
	"ecopro_backend/platform/config"
	"ecopro_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// SnapshotRefresher recomputes and stores an energy snapshot for one status
// filter. The valorisation service implements it.
type SnapshotRefresher interface {
	RefreshSnapshot(ctx context.Context, status string) (valorisation.EnergySnapshot, error)
}

type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	refresher SnapshotRefresher
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, log *logger.Logger) (*Worker, error) {
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

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		log:    log,
	}

	mux.HandleFunc(TaskEnergySnapshot, w.handleEnergySnapshot)

	return w, nil
}

// SetSnapshotRefresher wires the valorisation service into the worker.
func (w *Worker) SetSnapshotRefresher(refresher SnapshotRefresher) {
	w.refresher = refresher
}

func (w *Worker) handleEnergySnapshot(ctx context.Context, task *asynq.Task) error {
	if w.refresher == nil {
		return nil
	}

	payload, err := ParseEnergySnapshotPayload(task)
	if err != nil {
		return err
	}

	snapshot, err := w.refresher.RefreshSnapshot(ctx, payload.Status)
	if err != nil {
		return err
	}

	w.log.Info("energy snapshot task done",
		"status", payload.Status, "totalMwh", snapshot.Result.TotalMwh)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
