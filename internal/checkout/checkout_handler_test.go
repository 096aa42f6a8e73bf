package checkout_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-couture-api/internal/checkout"
	"go-couture-api/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCheckoutService struct {
	InitiateFn func(ctx context.Context, req checkout.InitiateRequest) (checkout.PaymentSession, error)
	ConfirmFn  func(ctx context.Context, req checkout.ConfirmRequest) (checkout.ConfirmResult, error)
}

func (f *fakeCheckoutService) Initiate(ctx context.Context, req checkout.InitiateRequest) (checkout.PaymentSession, error) {
	return f.InitiateFn(ctx, req)
}

func (f *fakeCheckoutService) Confirm(ctx context.Context, req checkout.ConfirmRequest) (checkout.ConfirmResult, error) {
	return f.ConfirmFn(ctx, req)
}

func setupTestRouter(t *testing.T, svc checkout.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	checkout.RegisterRoutes(r.Group("/api/v1"), checkout.NewHandler(svc), middleware.Guard{Redis: rdb})
	return r
}

func postJSON(r http.Handler, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Initiate(t *testing.T) {
	svc := &fakeCheckoutService{
		InitiateFn: func(_ context.Context, req checkout.InitiateRequest) (checkout.PaymentSession, error) {
			if req.Customer.Email == "" {
				return checkout.PaymentSession{}, checkout.ErrMissingDetails
			}
			return checkout.PaymentSession{Reference: "1717", Token: "tok"}, nil
		},
	}
	r := setupTestRouter(t, svc)

	w := postJSON(r, "/api/v1/checkout/payments", checkout.InitiateRequest{
		Customer: ada,
		Items:    []checkout.ItemRequest{{ProductID: "a", Quantity: 1}},
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"tok"`)

	w = postJSON(r, "/api/v1/checkout/payments", checkout.InitiateRequest{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please fill in all your details before proceeding to checkout.")

	w = postJSON(r, "/api/v1/checkout/payments", map[string]any{
		"items": []map[string]any{{"productId": "a", "quantity": 0}},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Confirm(t *testing.T) {
	calls := 0
	svc := &fakeCheckoutService{
		ConfirmFn: func(_ context.Context, req checkout.ConfirmRequest) (checkout.ConfirmResult, error) {
			calls++
			return checkout.ConfirmResult{Reference: req.Reference, DeepLink: "https://wa.me/1"}, nil
		},
	}
	r := setupTestRouter(t, svc)
	body := checkout.ConfirmRequest{
		Reference: "1717",
		Customer:  ada,
		Items:     []checkout.ItemRequest{{ProductID: "a", Quantity: 1}},
	}

	w := postJSON(r, "/api/v1/checkout/confirmations", body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	headers := map[string]string{middleware.IdempotencyHeader: "1717"}
	w = postJSON(r, "/api/v1/checkout/confirmations", body, headers)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/api/v1/checkout/confirmations", body, headers)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
	assert.Equal(t, 1, calls)
}
