package app

import (
	"context"
	"net/http"

	"resto-admin/internal/audit"
	"resto-admin/internal/config"
	"resto-admin/internal/messaging/kafka"
	"resto-admin/internal/metrics"
	"resto-admin/internal/middleware"
	"resto-admin/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, migrates the audit tables and mounts every module on a new
// router. The returned cleanup closes the connections.
func BuildApp(cfg *config.Config, logger *zap.Logger) (*gin.Engine, func(), error) {
	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis, cfg.DB.MaxRetries)
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	cleanup := func() {
		_ = redisClient.Close()
		_ = sqlDB.Close()
	}

	if err := audit.Migrate(gormDB); err != nil {
		cleanup()
		return nil, nil, err
	}
	if err := kafka.Migrate(context.Background(), sqlDB); err != nil {
		cleanup()
		return nil, nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		m.Middleware(),
	)
	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	// 2. Register Modules & Routes
	if err := registerModules(router, cfg, backends{sqlDB: sqlDB, gormDB: gormDB, rdb: redisClient}, logger); err != nil {
		cleanup()
		return nil, nil, err
	}

	logger.Info("application built",
		zap.String("platform", cfg.Platform.BaseURL),
		zap.Bool("audit_stream", cfg.Kafka.Broker != ""),
	)
	return router, cleanup, nil
}
