package app

import (
	"context"
	"errors"

	"resto-admin/internal/bootstrap"
	"resto-admin/internal/config"
	"resto-admin/internal/messaging/kafka/consumer"
	"resto-admin/internal/shared/cache"
	"resto-admin/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer reads audit events and drops the affected cached lists.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return errors.New("kafka.broker is required")
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis, cfg.DB.MaxRetries)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          cfg.Kafka.AuditTopic,
		GroupID:        cfg.Kafka.GroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.LastOffset,
	})
	defer reader.Close()

	m, stopMetrics := serveMetrics(cfg.HTTP, logger)
	defer stopMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeAuditEvents(ctx, reader, cache.New(redisClient), m, logger)
	}()

	bootstrap.WaitForSignal()
	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}
