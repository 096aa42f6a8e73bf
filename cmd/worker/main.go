package main

import (
	"log"

	"go-couture-api/internal/app"
	"go-couture-api/internal/bootstrap"
	"go-couture-api/internal/config"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := bootstrap.NewLogger(cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := app.RunWorker(cfg, logger); err != nil {
		logger.Fatal("worker failed", zap.Error(err))
	}
}
