package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-couture-api/internal/checkout"
	"go-couture-api/internal/email"

	"go.uber.org/zap"
)

var errMalformedEvent = errors.New("malformed checkout event")

// CheckoutNotifier tells the store about confirmed checkouts by email.
type CheckoutNotifier struct {
	Mailer     email.Service
	StoreEmail string
	Logger     *zap.Logger
}

func (n *CheckoutNotifier) handleCheckoutConfirmed(ctx context.Context, payload []byte) error {
	var ev checkout.ConfirmedEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("%w: %v", errMalformedEvent, err)
	}
	if ev.Reference == "" {
		return fmt.Errorf("%w: missing reference", errMalformedEvent)
	}

	n.Logger.Info("notifying store of checkout", zap.String("reference", ev.Reference))

	return n.Mailer.SendCheckoutNotification(ctx, n.StoreEmail, email.CheckoutNotification{
		Reference:     ev.Reference,
		CustomerName:  ev.Customer.Name,
		CustomerEmail: ev.Customer.Email,
		CustomerPhone: ev.Customer.Phone,
		Summary:       ev.Summary,
		Total:         ev.TotalFormatted,
	})
}
