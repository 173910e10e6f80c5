package producer

import (
	"context"
	"time"

	"resto-admin/internal/messaging/kafka"
	"resto-admin/internal/metrics"

	"go.uber.org/zap"
)

const (
	batchSize       = 50
	sentRetention   = 7 * 24 * time.Hour
	purgeEveryTicks = 1000
)

type Worker struct {
	repo         kafka.OutboxRepository
	writer       MessageWriter
	metrics      *metrics.Metrics
	logger       *zap.Logger
	pollInterval time.Duration
	now          func() time.Time
}

func NewWorker(repo kafka.OutboxRepository, writer MessageWriter, m *metrics.Metrics, logger *zap.Logger, pollInterval time.Duration) *Worker {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}
	if logger == nil {
		logger = zap.L()
	}
	return &Worker{
		repo:         repo,
		writer:       writer,
		metrics:      m,
		logger:       logger.Named("kafka.producer.worker"),
		pollInterval: pollInterval,
		now:          time.Now,
	}
}

// Run polls the outbox until ctx is cancelled. Sent events older than a week are purged now and then.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("outbox worker started", zap.Duration("poll_interval", w.pollInterval))

	ticks := 0
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if _, err := w.ProcessOnce(ctx); err != nil {
				w.logger.Error("process outbox events failed", zap.Error(err))
			}
			ticks++
			if ticks%purgeEveryTicks == 0 {
				w.purge(ctx)
			}
		}
	}
}

// ProcessOnce publishes one batch of due events and returns how many were sent.
func (w *Worker) ProcessOnce(ctx context.Context) (int, error) {
	events, err := w.repo.ListPending(ctx, batchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	w.logger.Debug("processing pending outbox events", zap.Int("count", len(events)))

	sent := 0
	for _, event := range events {
		if err := w.writer.WriteMessages(ctx, toMessage(event)); err != nil {
			w.logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			w.metrics.OutboxEvent("failed")
			if err := w.repo.MarkFailed(ctx, event.ID, err.Error()); err != nil {
				w.logger.Error("mark outbox failed failed", zap.String("outbox_id", event.ID), zap.Error(err))
			}
			continue
		}

		if err := w.repo.MarkSent(ctx, event.ID); err != nil {
			w.logger.Error("mark outbox sent failed", zap.String("outbox_id", event.ID), zap.Error(err))
			continue
		}
		w.metrics.OutboxEvent("sent")
		sent++
	}

	w.logger.Info("outbox batch done", zap.Int("sent", sent), zap.Int("total", len(events)))
	return sent, nil
}

func (w *Worker) purge(ctx context.Context) {
	n, err := w.repo.PurgeSent(ctx, w.now().Add(-sentRetention))
	if err != nil {
		w.logger.Warn("purge sent outbox events failed", zap.Error(err))
		return
	}
	if n > 0 {
		w.logger.Info("purged sent outbox events", zap.Int64("count", n))
	}
}
