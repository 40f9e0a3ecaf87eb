package scheduler

import (
	"context"
	"fmt"

	"samakicash_backend/platform/config"
	"samakicash_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// MatchAlertDeliverer handles a dequeued match alert. Implemented by
// the notification service.
type MatchAlertDeliverer interface {
	DeliverMatchAlert(ctx context.Context, payload MatchAlertPayload) error
}

type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	deliverer MatchAlertDeliverer
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, deliverer MatchAlertDeliverer, log *logger.Logger) (*Worker, error) {
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
		server:    server,
		mux:       mux,
		deliverer: deliverer,
		log:       log,
	}

	mux.HandleFunc(TaskMatchAlert, w.handleMatchAlert)

	return w, nil
}

func (w *Worker) handleMatchAlert(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseMatchAlertPayload(task)
	if err != nil {
		return err
	}
	return w.deliverer.DeliverMatchAlert(ctx, payload)
}

// Run serves tasks until the context is cancelled.
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
