package email_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-couture-api/internal/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResendService_SendCheckoutNotification(t *testing.T) {
	var got map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.Equal(t, "/emails", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc, err := email.NewResendService(`"re_123"`, "")
	require.NoError(t, err)
	email.SetBaseURL(svc, srv.URL)

	err = svc.SendCheckoutNotification(context.Background(), "store@example.com", email.CheckoutNotification{
		Reference:    "1717",
		CustomerName: "Ada <Admin>",
		Summary:      "line one\nline two",
		Total:        "₦30,000",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_123", auth)
	assert.Equal(t, "onboarding@resend.dev", got["from"])
	assert.Equal(t, "New order 1717", got["subject"])
	assert.Contains(t, got["html"], "line one<br>line two")
	assert.Contains(t, got["html"], "Ada &lt;Admin&gt;")
}

func TestResendService_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	svc, err := email.NewResendService("key", "shop@example.com")
	require.NoError(t, err)
	email.SetBaseURL(svc, srv.URL)

	err = svc.SendCheckoutNotification(context.Background(), "store@example.com", email.CheckoutNotification{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "invalid from")
}

func TestNewResendService_RequiresKey(t *testing.T) {
	_, err := email.NewResendService("", "")
	assert.Error(t, err)
	assert.NoError(t, email.NewNoopService().SendCheckoutNotification(context.Background(), "", email.CheckoutNotification{}))
}
