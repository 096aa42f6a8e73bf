package checkout

import (
	"context"
	"sync"
	"time"

	"go-couture-api/internal/cart"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentAPI is the server side of a checkout as seen by the device.
type PaymentAPI interface {
	InitiatePayment(ctx context.Context, req InitiateRequest) (PaymentSession, error)
	ConfirmPayment(ctx context.Context, req ConfirmRequest) (ConfirmResult, error)
}

// Result is what the shopper is sent to once payment succeeds.
type Result struct {
	Reference string
	Summary   string
	DeepLink  string
}

// maxCompleted bounds how many finished references Complete remembers.
const maxCompleted = 32

type pending struct {
	customer Customer
	items    []Item
	total    decimal.Decimal
}

// Handoff moves a device cart through payment to the store's chat. The
// payment widget reports back through Complete or Cancel.
type Handoff struct {
	mu        sync.Mutex
	cart      *cart.Store
	api       PaymentAPI
	whatsapp  string
	publicKey string
	now       func() time.Time
	pending   map[string]pending
	completed map[string]Result
	done      []string
	logger    *zap.Logger
}

func NewHandoff(store *cart.Store, api PaymentAPI, whatsappNumber, publicKey string, logger ...*zap.Logger) *Handoff {
	l := zap.L().Named("checkout.handoff")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("checkout.handoff")
	}
	return &Handoff{
		cart:      store,
		api:       api,
		whatsapp:  whatsappNumber,
		publicKey: publicKey,
		now:       time.Now,
		pending:   make(map[string]pending),
		completed: make(map[string]Result),
		logger:    l,
	}
}

// Begin checks the shopper's details and cart, then opens a payment session.
func (h *Handoff) Begin(ctx context.Context, c Customer) (PaymentSession, error) {
	if err := c.Validate(); err != nil {
		return PaymentSession{}, err
	}
	lines := h.cart.Lines()
	if len(lines) == 0 {
		return PaymentSession{}, ErrEmptyCart
	}

	c = c.trimmed()
	items := ItemsFromLines(lines)
	total := Total(items)
	ref := NewReference(h.now())

	session, err := h.api.InitiatePayment(ctx, InitiateRequest{
		Reference: ref,
		Customer:  c,
		Items:     RequestItems(items),
	})
	if err != nil {
		return PaymentSession{}, err
	}
	if session.Reference == "" {
		session.Reference = ref
	}
	if session.Config.Reference == "" {
		session.Config = NewPaymentConfig(session.Reference, total, c, h.publicKey)
	}

	h.mu.Lock()
	h.pending[session.Reference] = pending{customer: c, items: items, total: total}
	h.mu.Unlock()

	return session, nil
}

// Complete is the payment success callback. It clears the cart and returns
// the chat link carrying the order summary. Repeated calls for the same
// reference return the first result and change nothing.
func (h *Handoff) Complete(ctx context.Context, reference string) (Result, error) {
	h.mu.Lock()
	if res, ok := h.completed[reference]; ok {
		h.mu.Unlock()
		return res, nil
	}
	p, ok := h.pending[reference]
	if !ok {
		h.mu.Unlock()
		return Result{}, ErrUnknownReference
	}
	delete(h.pending, reference)

	summary := BuildSummary(p.items, p.total, p.customer)
	res := Result{
		Reference: reference,
		Summary:   summary,
		DeepLink:  DeepLink(h.whatsapp, summary),
	}
	h.remember(res)
	h.mu.Unlock()

	h.logger.Info("payment successful", zap.String("reference", reference))

	if err := h.cart.Clear(); err != nil {
		h.logger.Error("failed to clear cart", zap.Error(err))
	}

	// the store is told through the chat link; the server record is best effort
	if _, err := h.api.ConfirmPayment(ctx, ConfirmRequest{
		Reference: reference,
		Customer:  p.customer,
		Items:     RequestItems(p.items),
	}); err != nil {
		h.logger.Warn("failed to record checkout", zap.String("reference", reference), zap.Error(err))
	}

	return res, nil
}

// Cancel is called when the payment widget is closed without paying. The
// reference can no longer be completed.
func (h *Handoff) Cancel(reference string) {
	h.mu.Lock()
	delete(h.pending, reference)
	h.mu.Unlock()
	h.logger.Info("payment closed", zap.String("reference", reference))
}

// remember records res, forgetting the oldest result past maxCompleted.
func (h *Handoff) remember(res Result) {
	h.completed[res.Reference] = res
	h.done = append(h.done, res.Reference)
	if len(h.done) > maxCompleted {
		delete(h.completed, h.done[0])
		h.done = h.done[1:]
	}
}
