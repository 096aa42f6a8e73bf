package checkout_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"go-couture-api/internal/cart"
	"go-couture-api/internal/checkout"
	"go-couture-api/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePaymentAPI struct {
	mu         sync.Mutex
	InitiateFn func(ctx context.Context, req checkout.InitiateRequest) (checkout.PaymentSession, error)
	confirmErr error
	confirmed  []checkout.ConfirmRequest
}

func (f *fakePaymentAPI) InitiatePayment(ctx context.Context, req checkout.InitiateRequest) (checkout.PaymentSession, error) {
	if f.InitiateFn != nil {
		return f.InitiateFn(ctx, req)
	}
	return checkout.PaymentSession{Reference: req.Reference, Token: "tok"}, nil
}

func (f *fakePaymentAPI) ConfirmPayment(_ context.Context, req checkout.ConfirmRequest) (checkout.ConfirmResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmed = append(f.confirmed, req)
	return checkout.ConfirmResult{Reference: req.Reference}, f.confirmErr
}

func cartWith(t *testing.T, slot cart.Slot) *cart.Store {
	t.Helper()
	s := cart.NewStore(slot)
	s.Load()
	require.NoError(t, s.Add(product.Product{ID: "a", Name: "Lace Gown", Price: 10000}, 3, "M", "Red"))
	return s
}

func TestHandoff_Begin(t *testing.T) {
	ctx := context.Background()

	t.Run("missing details", func(t *testing.T) {
		h := checkout.NewHandoff(cartWith(t, cart.NewMemorySlot()), &fakePaymentAPI{}, "234", "pk")
		_, err := h.Begin(ctx, checkout.Customer{Name: "Ada"})
		assert.ErrorIs(t, err, checkout.ErrMissingDetails)
	})

	t.Run("empty cart", func(t *testing.T) {
		empty := cart.NewStore(cart.NewMemorySlot())
		empty.Load()
		h := checkout.NewHandoff(empty, &fakePaymentAPI{}, "234", "pk")
		_, err := h.Begin(ctx, ada)
		assert.ErrorIs(t, err, checkout.ErrEmptyCart)
	})

	t.Run("builds config", func(t *testing.T) {
		api := &fakePaymentAPI{InitiateFn: func(_ context.Context, req checkout.InitiateRequest) (checkout.PaymentSession, error) {
			assert.NotEmpty(t, req.Reference)
			require.Len(t, req.Items, 1)
			assert.Equal(t, 3, req.Items[0].Quantity)
			assert.Equal(t, "M", req.Items[0].Size)
			return checkout.PaymentSession{Reference: req.Reference}, nil
		}}
		h := checkout.NewHandoff(cartWith(t, cart.NewMemorySlot()), api, "234", "pk")

		session, err := h.Begin(ctx, ada)
		require.NoError(t, err)
		assert.Equal(t, int64(3000000), session.Config.AmountMinor)
		assert.Equal(t, "pk", session.Config.PublicKey)
		assert.Equal(t, session.Reference, session.Config.Reference)
	})

	t.Run("api failure leaves cart alone", func(t *testing.T) {
		store := cartWith(t, cart.NewMemorySlot())
		api := &fakePaymentAPI{InitiateFn: func(context.Context, checkout.InitiateRequest) (checkout.PaymentSession, error) {
			return checkout.PaymentSession{}, checkout.ErrPaymentUnavailable
		}}
		h := checkout.NewHandoff(store, api, "234", "pk")

		_, err := h.Begin(ctx, ada)
		assert.ErrorIs(t, err, checkout.ErrPaymentUnavailable)
		assert.Equal(t, 1, store.Len())
	})
}

func TestHandoff_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("clears cart and links to chat once", func(t *testing.T) {
		slot := cart.NewMemorySlot()
		store := cartWith(t, slot)
		api := &fakePaymentAPI{}
		h := checkout.NewHandoff(store, api, "2349064515891", "pk")

		session, err := h.Begin(ctx, ada)
		require.NoError(t, err)

		res, err := h.Complete(ctx, session.Reference)
		require.NoError(t, err)
		assert.Contains(t, res.Summary, "• Lace Gown (x3) - ₦30,000")
		assert.Contains(t, res.DeepLink, "https://wa.me/2349064515891?text=Hello%21")
		assert.Zero(t, store.Len())

		reloaded := cart.NewStore(slot)
		reloaded.Load()
		assert.Zero(t, reloaded.Len())

		// cart changes after payment must not leak into a repeated callback
		require.NoError(t, store.Add(product.Product{ID: "z", Name: "New", Price: 1}, 1, "", ""))
		again, err := h.Complete(ctx, session.Reference)
		require.NoError(t, err)
		assert.Equal(t, res, again)
		assert.Equal(t, 1, store.Len())
		assert.Len(t, api.confirmed, 1)
	})

	t.Run("server record failure does not fail the handoff", func(t *testing.T) {
		store := cartWith(t, cart.NewMemorySlot())
		api := &fakePaymentAPI{confirmErr: errors.New("offline")}
		h := checkout.NewHandoff(store, api, "234", "pk")

		session, err := h.Begin(ctx, ada)
		require.NoError(t, err)

		_, err = h.Complete(ctx, session.Reference)
		assert.NoError(t, err)
		assert.Zero(t, store.Len())
	})

	t.Run("unknown reference", func(t *testing.T) {
		h := checkout.NewHandoff(cartWith(t, cart.NewMemorySlot()), &fakePaymentAPI{}, "234", "pk")
		_, err := h.Complete(ctx, "nope")
		assert.ErrorIs(t, err, checkout.ErrUnknownReference)
	})

	t.Run("cancel keeps cart", func(t *testing.T) {
		store := cartWith(t, cart.NewMemorySlot())
		h := checkout.NewHandoff(store, &fakePaymentAPI{}, "234", "pk")
		session, err := h.Begin(ctx, ada)
		require.NoError(t, err)

		h.Cancel(session.Reference)
		assert.Equal(t, 1, store.Len())

		_, err = h.Complete(ctx, session.Reference)
		assert.ErrorIs(t, err, checkout.ErrUnknownReference)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("only recent results are remembered", func(t *testing.T) {
		store := cartWith(t, cart.NewMemorySlot())
		n := 0
		api := &fakePaymentAPI{InitiateFn: func(_ context.Context, req checkout.InitiateRequest) (checkout.PaymentSession, error) {
			n++
			return checkout.PaymentSession{Reference: fmt.Sprintf("ref-%d", n)}, nil
		}}
		h := checkout.NewHandoff(store, api, "234", "pk")

		var refs []string
		for i := 0; i < 40; i++ {
			if store.Len() == 0 {
				require.NoError(t, store.Add(product.Product{ID: "a", Name: "Lace Gown", Price: 10000}, 1, "", ""))
			}
			session, err := h.Begin(ctx, ada)
			require.NoError(t, err)
			_, err = h.Complete(ctx, session.Reference)
			require.NoError(t, err)
			refs = append(refs, session.Reference)
		}

		_, err := h.Complete(ctx, refs[len(refs)-1])
		assert.NoError(t, err)
		_, err = h.Complete(ctx, refs[0])
		assert.ErrorIs(t, err, checkout.ErrUnknownReference)
	})
}
