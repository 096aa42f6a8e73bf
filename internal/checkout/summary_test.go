package checkout_test

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"go-couture-api/internal/checkout"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNaira(t *testing.T) {
	tests := map[string]string{
		"0":         "₦0",
		"950":       "₦950",
		"10000":     "₦10,000",
		"1234567":   "₦1,234,567",
		"2500.5":    "₦2,500.5",
		"1999.999":  "₦2,000",
		"-45000":    "-₦45,000",
		"100000.05": "₦100,000.05",
	}
	for in, want := range tests {
		assert.Equal(t, want, checkout.FormatNaira(decimal.RequireFromString(in)), in)
	}
}

func TestBuildSummary(t *testing.T) {
	items := []checkout.Item{
		{ProductID: "a", Name: "Lace Gown", Price: 10000, Quantity: 3},
		{ProductID: "b", Name: "Silk Wrap", Price: 4500, Quantity: 1},
	}
	c := checkout.Customer{Name: "Ada Obi", Email: "ada@example.com", Phone: "+2348030000000"}

	got := checkout.BuildSummary(items, checkout.Total(items), c)

	want := "Hello! I just completed payment for my order:\n\n" +
		"• Lace Gown (x3) - ₦30,000\n" +
		"• Silk Wrap (x1) - ₦4,500\n\n" +
		"Total: ₦34,500\n\n" +
		"Name: Ada Obi\nEmail: ada@example.com\nPhone: +2348030000000"
	assert.Equal(t, want, got)
}

func TestDeepLink(t *testing.T) {
	link := checkout.DeepLink("2349064515891", "Hi & bye\nTotal: ₦1,000")

	require.True(t, strings.HasPrefix(link, "https://wa.me/2349064515891?text="))
	assert.NotContains(t, link, "+")
	assert.Contains(t, link, "%0A")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Hi & bye\nTotal: ₦1,000", u.Query().Get("text"))
}

func TestBookingLink(t *testing.T) {
	assert.Equal(t,
		"https://wa.me/2349064515891?text=Hello%2C%20I%20would%20like%20to%20schedule%20an%20appointment%20at%20MBJ%20EXCLUSIVE",
		checkout.BookingLink("2349064515891"),
	)
}

func TestPaymentConfig(t *testing.T) {
	now := time.UnixMilli(1717171717171)
	ref := checkout.NewReference(now)
	assert.Equal(t, "1717171717171", ref)

	cfg := checkout.NewPaymentConfig(ref, decimal.RequireFromString("34500.50"),
		checkout.Customer{Name: " Ada ", Email: "ada@example.com", Phone: "0803"}, "pk_test")

	assert.Equal(t, int64(3450050), cfg.AmountMinor)
	assert.Equal(t, "ada@example.com", cfg.Email)
	assert.Equal(t, "pk_test", cfg.PublicKey)
	require.Len(t, cfg.Metadata.CustomFields, 2)
	assert.Equal(t, "customer_name", cfg.Metadata.CustomFields[0].VariableName)
	assert.Equal(t, "Ada", cfg.Metadata.CustomFields[0].Value)
	assert.Equal(t, "phone_number", cfg.Metadata.CustomFields[1].VariableName)
}

func TestCustomer_Validate(t *testing.T) {
	assert.NoError(t, checkout.Customer{Name: "Ada", Email: "ada@example.com", Phone: "0803"}.Validate())
	assert.ErrorIs(t, checkout.Customer{Name: "Ada", Email: "", Phone: "0803"}.Validate(), checkout.ErrMissingDetails)
	assert.ErrorIs(t, checkout.Customer{Name: " ", Email: "bad", Phone: "0803"}.Validate(), checkout.ErrMissingDetails)
	assert.ErrorIs(t, checkout.Customer{Name: "Ada", Email: "not-an-email", Phone: "0803"}.Validate(), checkout.ErrInvalidEmail)
}
