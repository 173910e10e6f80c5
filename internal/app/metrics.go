package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"resto-admin/internal/config"
	"resto-admin/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// serveMetrics exposes /metrics for the background processes on the configured HTTP port.
func serveMetrics(cfg config.HTTPConfig, logger *zap.Logger) (*metrics.Metrics, func()) {
	m := metrics.New(prometheus.NewRegistry())

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(m.Handler()))
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadTimeout,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	return m, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}
