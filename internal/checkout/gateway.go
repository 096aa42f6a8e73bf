package checkout

import (
	"context"

	"go-couture-api/internal/midtrans"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=gateway.go -destination=../mock/checkout/gateway_mock.go -package=mock
type Gateway interface {
	Initiate(ctx context.Context, cfg PaymentConfig, c Customer, items []Item) (PaymentSession, error)
}

type midtransGateway struct {
	svc midtrans.Service
}

func NewMidtransGateway(svc midtrans.Service) Gateway {
	return &midtransGateway{svc: svc}
}

func (g *midtransGateway) Initiate(_ context.Context, cfg PaymentConfig, c Customer, items []Item) (PaymentSession, error) {
	first, last := splitName(c.Name)

	details := make([]midtrans.ItemDetail, 0, len(items))
	for _, it := range items {
		details = append(details, midtrans.ItemDetail{
			ID:    it.ProductID,
			Price: ToMinor(decimal.NewFromFloat(it.Price)),
			Qty:   int32(it.Quantity),
			Name:  it.Name,
		})
	}

	fields := make([]string, 0, len(cfg.Metadata.CustomFields))
	for _, f := range cfg.Metadata.CustomFields {
		fields = append(fields, f.Value)
	}

	resp, err := g.svc.CreateTransactionToken(&midtrans.CreateTransactionRequest{
		OrderID:     cfg.Reference,
		GrossAmount: cfg.AmountMinor,
		Customer: &midtrans.CustomerDetails{
			FirstName: first,
			LastName:  last,
			Email:     c.Email,
			Phone:     c.Phone,
		},
		Items:        details,
		CustomFields: fields,
	})
	if err != nil {
		return PaymentSession{}, err
	}

	return PaymentSession{
		Reference:   cfg.Reference,
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
		Config:      cfg,
	}, nil
}
