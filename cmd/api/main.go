package main

import (
	"context"
	"log"
	"time"

	"go-couture-api/internal/app"
	"go-couture-api/internal/bootstrap"
	"go-couture-api/internal/config"
	"go-couture-api/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.ValidateAPI(); err != nil {
		log.Fatal(err)
	}

	logger, err := bootstrap.NewLogger(cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	auditLogger := bootstrap.NewAuditLogger(logger)
	if cfg.IsProduction() {
		// audit lines go to their own stream in production
		auditLogger = bootstrap.NewStdoutAuditLogger()
	}

	// build dependency + routes
	a, err := app.BuildApp(context.Background(), cfg, r, logger, auditLogger)
	if err != nil {
		logger.Fatal("failed to build app", zap.Error(err))
	}
	defer a.Close()

	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         cfg.Port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		auditLogger,
	)
}
