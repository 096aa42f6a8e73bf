package producer

import (
	"context"
	"time"

	"go-couture-api/internal/outbox"

	"go.uber.org/zap"
)

const (
	pollInterval = 5 * time.Second
	batchSize    = 10
)

func ProcessOutboxEvents(ctx context.Context, repo outbox.Repository, writer MessageWriter, logger *zap.Logger) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	logger.Info("outbox processor started", zap.Duration("interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := processPendingEvents(ctx, repo, writer, logger); err != nil {
				logger.Error("error processing events", zap.Error(err))
			}
		}
	}
}

func processPendingEvents(ctx context.Context, repo outbox.Repository, writer MessageWriter, logger *zap.Logger) error {
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	logger.Info("processing pending events", zap.Int("count", len(events)))

	for _, event := range events {
		if err := publishEvent(ctx, writer, event); err != nil {
			logger.Error("failed to publish event", zap.Stringer("id", event.ID), zap.Error(err))
			if err := repo.MarkFailed(ctx, event.ID); err != nil {
				logger.Error("failed to mark event as FAILED", zap.Stringer("id", event.ID), zap.Error(err))
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("failed to mark event as SENT", zap.Stringer("id", event.ID), zap.Error(err))
			continue
		}

		logger.Debug("event sent", zap.Stringer("id", event.ID), zap.String("type", event.EventType))
	}

	return nil
}
