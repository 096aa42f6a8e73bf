package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-couture-api/internal/config"
	"go-couture-api/internal/messaging/kafka/producer"
	"go-couture-api/internal/outbox"
	"go-couture-api/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker publishes pending outbox events to kafka until SIGINT/SIGTERM.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("worker")
	log.Info("starting outbox processor")

	// 1. Connect to database
	db, err := connection.ConnectDBWithRetry(cfg.DBURL, 5)
	if err != nil {
		return err
	}
	defer db.Close()

	// 2. Setup Kafka writer
	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.KafkaTopic, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()
	log.Info("kafka writer initialized", zap.String("topic", cfg.KafkaTopic))

	// 3. Create outbox repository
	outboxRepo := outbox.NewRepository(db)

	// 4. Start processor
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger)

	// 5. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	cancel()
	time.Sleep(1 * time.Second)
	log.Info("stopped")

	return nil
}
