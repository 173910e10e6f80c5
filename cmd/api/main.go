package main

import (
	"log"

	"resto-admin/internal/app"
	"resto-admin/internal/bootstrap"
	"resto-admin/internal/config"
	"resto-admin/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := bootstrap.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Log.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	apperror.Init()

	// build dependency + routes
	router, cleanup, err := app.BuildApp(cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	bootstrap.StartHTTPServer(router, cfg.HTTP, bootstrap.NewStdoutAuditLogger(logger))
}
