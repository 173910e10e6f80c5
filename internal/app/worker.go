package app

import (
	"context"
	"errors"
	"time"

	"resto-admin/internal/bootstrap"
	"resto-admin/internal/config"
	"resto-admin/internal/messaging/kafka"
	"resto-admin/internal/messaging/kafka/producer"
	"resto-admin/internal/shared/connection"

	"go.uber.org/zap"
)

const outboxPollInterval = 3 * time.Second

// RunWorker publishes pending audit outbox events to kafka until the process is signalled.
func RunWorker(cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

	if cfg.Kafka.Broker == "" {
		return errors.New("kafka.broker is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := kafka.Migrate(context.Background(), sqlDB); err != nil {
		return err
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.DB.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	m, stopMetrics := serveMetrics(cfg.HTTP, logger)
	defer stopMetrics()

	worker := producer.NewWorker(kafka.NewOutboxRepository(sqlDB), kafkaWriter, m, logger, outboxPollInterval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.Run(ctx)
	}()

	bootstrap.WaitForSignal()
	logger.Info("worker shutting down")
	cancel()
	<-done

	return nil
}
