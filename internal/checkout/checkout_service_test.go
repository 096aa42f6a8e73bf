package checkout_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-couture-api/internal/checkout"
	checkoutMock "go-couture-api/internal/mock/checkout"
	outboxMock "go-couture-api/internal/mock/outbox"
	"go-couture-api/internal/outbox"
	"go-couture-api/internal/product"
	producterrors "go-couture-api/internal/product/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeProducts map[string]product.Product

func (f fakeProducts) GetByID(_ context.Context, id string) (product.Product, error) {
	p, ok := f[id]
	if !ok {
		return product.Product{}, producterrors.ErrProductNotFound
	}
	return p, nil
}

var (
	ada     = checkout.Customer{Name: "Ada Obi", Email: "ada@example.com", Phone: "0803"}
	catalog = fakeProducts{
		"a": {ID: "a", Name: "Lace Gown", Price: 10000, InStock: true},
		"b": {ID: "b", Name: "Old Stock", Price: 500, InStock: false},
	}
	settings = checkout.Settings{PublicKey: "pk_test", WhatsAppNumber: "2349064515891"}
)

func TestService_Initiate(t *testing.T) {
	ctx := context.Background()

	t.Run("prices from the catalog", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gw := checkoutMock.NewMockGateway(ctrl)
		svc := checkout.NewService(catalog, gw, outboxMock.NewMockRepository(ctrl), settings)

		gw.EXPECT().
			Initiate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cfg checkout.PaymentConfig, c checkout.Customer, items []checkout.Item) (checkout.PaymentSession, error) {
				assert.Equal(t, "1717", cfg.Reference)
				assert.Equal(t, int64(3000000), cfg.AmountMinor)
				assert.Equal(t, "pk_test", cfg.PublicKey)
				assert.Equal(t, 10000.0, items[0].Price)
				return checkout.PaymentSession{Reference: cfg.Reference, Token: "snap-token", Config: cfg}, nil
			})

		session, err := svc.Initiate(ctx, checkout.InitiateRequest{
			Reference: "1717",
			Customer:  ada,
			Items:     []checkout.ItemRequest{{ProductID: "a", Quantity: 3}},
		})
		require.NoError(t, err)
		assert.Equal(t, "snap-token", session.Token)
	})

	t.Run("details are checked before the cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := checkout.NewService(catalog, checkoutMock.NewMockGateway(ctrl), outboxMock.NewMockRepository(ctrl), settings)

		_, err := svc.Initiate(ctx, checkout.InitiateRequest{Customer: checkout.Customer{Name: "Ada"}})
		assert.ErrorIs(t, err, checkout.ErrMissingDetails)

		_, err = svc.Initiate(ctx, checkout.InitiateRequest{Customer: ada})
		assert.ErrorIs(t, err, checkout.ErrEmptyCart)
	})

	t.Run("unavailable items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := checkout.NewService(catalog, checkoutMock.NewMockGateway(ctrl), outboxMock.NewMockRepository(ctrl), settings)

		for _, id := range []string{"b", "missing"} {
			_, err := svc.Initiate(ctx, checkout.InitiateRequest{
				Customer: ada,
				Items:    []checkout.ItemRequest{{ProductID: id, Quantity: 1}},
			})
			assert.ErrorIs(t, err, checkout.ErrItemUnavailable, id)
		}
	})

	t.Run("gateway failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gw := checkoutMock.NewMockGateway(ctrl)
		svc := checkout.NewService(catalog, gw, outboxMock.NewMockRepository(ctrl), settings)

		gw.EXPECT().
			Initiate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(checkout.PaymentSession{}, errors.New("snap down"))

		_, err := svc.Initiate(ctx, checkout.InitiateRequest{
			Customer: ada,
			Items:    []checkout.ItemRequest{{ProductID: "a", Quantity: 1}},
		})
		assert.ErrorIs(t, err, checkout.ErrPaymentUnavailable)
	})
}

func TestService_Confirm(t *testing.T) {
	ctx := context.Background()

	t.Run("records outbox event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := outboxMock.NewMockRepository(ctrl)
		svc := checkout.NewService(catalog, checkoutMock.NewMockGateway(ctrl), repo, settings)

		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, arg outbox.CreateParams) (uuid.UUID, error) {
				assert.Equal(t, outbox.EventCheckoutConfirmed, arg.EventType)
				assert.Equal(t, outbox.AggregateCheckout, arg.AggregateType)
				assert.Equal(t, "1717", arg.AggregateID)

				var ev checkout.ConfirmedEvent
				require.NoError(t, json.Unmarshal(arg.Payload, &ev))
				assert.Equal(t, 20000.0, ev.Total)
				assert.Equal(t, "₦20,000", ev.TotalFormatted)
				assert.Contains(t, ev.Summary, "• Lace Gown (x2) - ₦20,000")
				return uuid.New(), nil
			})

		res, err := svc.Confirm(ctx, checkout.ConfirmRequest{
			Reference: "1717",
			Customer:  ada,
			Items:     []checkout.ItemRequest{{ProductID: "a", Quantity: 2, Size: "M"}},
		})
		require.NoError(t, err)
		assert.Contains(t, res.DeepLink, "https://wa.me/2349064515891?text=")
	})

	t.Run("outbox failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := outboxMock.NewMockRepository(ctrl)
		svc := checkout.NewService(catalog, checkoutMock.NewMockGateway(ctrl), repo, settings)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.Nil, errors.New("db down"))

		_, err := svc.Confirm(ctx, checkout.ConfirmRequest{
			Reference: "1717",
			Customer:  ada,
			Items:     []checkout.ItemRequest{{ProductID: "a", Quantity: 1}},
		})
		assert.ErrorIs(t, err, checkout.ErrConfirmFailed)
	})
}
