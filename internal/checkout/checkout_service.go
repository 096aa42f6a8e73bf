package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-couture-api/internal/outbox"
	"go-couture-api/internal/product"
	producterrors "go-couture-api/internal/product/errors"

	"go.uber.org/zap"
)

type ProductReader interface {
	GetByID(ctx context.Context, id string) (product.Product, error)
}

type Settings struct {
	PublicKey      string
	WhatsAppNumber string
}

type Service interface {
	Initiate(ctx context.Context, req InitiateRequest) (PaymentSession, error)
	Confirm(ctx context.Context, req ConfirmRequest) (ConfirmResult, error)
}

type service struct {
	products ProductReader
	gateway  Gateway
	outbox   outbox.Repository
	settings Settings
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(products ProductReader, gateway Gateway, outboxRepo outbox.Repository, settings Settings, logger ...*zap.Logger) Service {
	l := zap.L().Named("checkout.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("checkout.service")
	}
	return &service{
		products: products,
		gateway:  gateway,
		outbox:   outboxRepo,
		settings: settings,
		logger:   l,
		now:      time.Now,
	}
}

// price looks every item up in the catalog so totals never trust
// client-sent prices.
func (s *service) price(ctx context.Context, reqs []ItemRequest) ([]Item, error) {
	items := make([]Item, 0, len(reqs))
	for _, r := range reqs {
		p, err := s.products.GetByID(ctx, r.ProductID)
		if errors.Is(err, producterrors.ErrProductNotFound) {
			return nil, ErrItemUnavailable
		}
		if err != nil {
			return nil, err
		}
		if !p.InStock {
			return nil, ErrItemUnavailable
		}
		items = append(items, Item{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  r.Quantity,
			Size:      r.Size,
			Color:     r.Color,
		})
	}
	return items, nil
}

func (s *service) prepare(ctx context.Context, c Customer, reqs []ItemRequest) (Customer, []Item, error) {
	if err := c.Validate(); err != nil {
		return Customer{}, nil, err
	}
	if len(reqs) == 0 {
		return Customer{}, nil, ErrEmptyCart
	}
	items, err := s.price(ctx, reqs)
	if err != nil {
		return Customer{}, nil, err
	}
	return c.trimmed(), items, nil
}

func (s *service) Initiate(ctx context.Context, req InitiateRequest) (PaymentSession, error) {
	customer, items, err := s.prepare(ctx, req.Customer, req.Items)
	if err != nil {
		return PaymentSession{}, err
	}

	ref := req.Reference
	if ref == "" {
		ref = NewReference(s.now())
	}
	cfg := NewPaymentConfig(ref, Total(items), customer, s.settings.PublicKey)

	session, err := s.gateway.Initiate(ctx, cfg, customer, items)
	if err != nil {
		s.logger.Error("payment initiation failed", zap.String("reference", ref), zap.Error(err))
		return PaymentSession{}, ErrPaymentUnavailable.Wrap(err)
	}

	s.logger.Info("payment initiated",
		zap.String("reference", ref),
		zap.Int64("amount", cfg.AmountMinor),
	)
	return session, nil
}

func (s *service) Confirm(ctx context.Context, req ConfirmRequest) (ConfirmResult, error) {
	customer, items, err := s.prepare(ctx, req.Customer, req.Items)
	if err != nil {
		return ConfirmResult{}, err
	}

	total := Total(items)
	summary := BuildSummary(items, total, customer)
	link := DeepLink(s.settings.WhatsAppNumber, summary)

	payload, err := json.Marshal(ConfirmedEvent{
		Reference:      req.Reference,
		Customer:       customer,
		Items:          items,
		Total:          total.InexactFloat64(),
		TotalFormatted: FormatNaira(total),
		Summary:        summary,
		DeepLink:       link,
		ConfirmedAt:    s.now().UTC(),
	})
	if err != nil {
		return ConfirmResult{}, ErrConfirmFailed.Wrap(err)
	}

	if _, err := s.outbox.Create(ctx, outbox.CreateParams{
		AggregateType: outbox.AggregateCheckout,
		AggregateID:   req.Reference,
		EventType:     outbox.EventCheckoutConfirmed,
		Payload:       payload,
	}); err != nil {
		s.logger.Error("failed to record checkout", zap.String("reference", req.Reference), zap.Error(err))
		return ConfirmResult{}, ErrConfirmFailed.Wrap(err)
	}

	return ConfirmResult{Reference: req.Reference, Summary: summary, DeepLink: link}, nil
}
