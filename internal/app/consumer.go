package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-couture-api/internal/config"
	"go-couture-api/internal/email"
	"go-couture-api/internal/messaging/kafka/consumer"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer turns checkout events into store notification emails.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("consumer")
	log.Info("starting checkout notification consumer")

	mailer, err := newMailer(cfg, log)
	if err != nil {
		return err
	}

	// Setup Kafka reader
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   cfg.KafkaTopic,
		GroupID: "checkout-notification-group",
	})
	defer reader.Close()
	log.Info("kafka reader initialized", zap.String("topic", cfg.KafkaTopic))

	notifier := &consumer.CheckoutNotifier{
		Mailer:     mailer,
		StoreEmail: cfg.StoreEmail,
		Logger:     logger,
	}

	// Start consuming
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeMessages(ctx, reader, notifier)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	cancel()
	log.Info("stopped")

	return nil
}

func newMailer(cfg *config.Config, log *zap.Logger) (email.Service, error) {
	if cfg.ResendAPIKey == "" || cfg.StoreEmail == "" {
		log.Warn("RESEND_API_KEY or STORE_EMAIL missing, notifications will only be logged")
		return email.NewNoopService(), nil
	}
	return email.NewResendService(cfg.ResendAPIKey, cfg.ResendFromEmail)
}
