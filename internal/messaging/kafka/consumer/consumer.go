package consumer

import (
	"context"
	"errors"
	"time"

	"go-couture-api/internal/outbox"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var (
	retryBaseDelay = time.Second
	retryMaxDelay  = 30 * time.Second
)

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

func ConsumeMessages(ctx context.Context, reader MessageReader, notifier *CheckoutNotifier) {
	logger := notifier.Logger
	logger.Info("started consuming messages")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("error fetching message", zap.Error(err))
			continue
		}

		handleMessage(ctx, reader, notifier, msg)
	}
}

func handleMessage(ctx context.Context, reader MessageReader, notifier *CheckoutNotifier, msg kafka.Message) {
	logger := notifier.Logger
	eventType := getHeader(msg.Headers, "event_type")

	if eventType != outbox.EventCheckoutConfirmed {
		// skip unknown event types
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	// The message is retried in place: committing a later offset would
	// also commit this one.
	for attempt := 1; ; attempt++ {
		err := notifier.handleCheckoutConfirmed(ctx, msg.Value)
		if err == nil {
			break
		}
		if errors.Is(err, errMalformedEvent) {
			// committed so it does not stall the partition
			logger.Error("dropping malformed checkout event", zap.Int64("offset", msg.Offset), zap.Error(err))
			break
		}

		delay := retryDelay(attempt)
		logger.Error("error handling CHECKOUT_CONFIRMED, retrying",
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		logger.Error("error committing message", zap.Error(err))
	}
}

func retryDelay(attempt int) time.Duration {
	d := retryBaseDelay
	for i := 1; i < attempt && d < retryMaxDelay; i++ {
		d *= 2
	}
	return min(d, retryMaxDelay)
}
