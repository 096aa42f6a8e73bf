package client

import (
	"context"
	"net/http"

	"go-couture-api/internal/checkout"
	"go-couture-api/internal/middleware"
)

func (c *Client) InitiatePayment(ctx context.Context, req checkout.InitiateRequest) (checkout.PaymentSession, error) {
	cl, err := jsonCall(http.MethodPost, "/api/v1/checkout/payments", req)
	if err != nil {
		return checkout.PaymentSession{}, err
	}
	if req.Reference != "" {
		cl.header = http.Header{middleware.IdempotencyHeader: {"payment-" + req.Reference}}
	}

	var out checkout.PaymentSession
	_, err = c.do(ctx, cl, &out)
	return out, err
}

// ConfirmPayment is keyed by reference, so a retried confirmation replays the
// first answer instead of recording a second order.
func (c *Client) ConfirmPayment(ctx context.Context, req checkout.ConfirmRequest) (checkout.ConfirmResult, error) {
	cl, err := jsonCall(http.MethodPost, "/api/v1/checkout/confirmations", req)
	if err != nil {
		return checkout.ConfirmResult{}, err
	}
	cl.header = http.Header{middleware.IdempotencyHeader: {"confirm-" + req.Reference}}

	var out checkout.ConfirmResult
	_, err = c.do(ctx, cl, &out)
	return out, err
}
