package checkout

import (
	"strconv"
	"time"

	"go-couture-api/internal/cart"

	"github.com/shopspring/decimal"
)

// Item is one priced line of a checkout.
type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}

func (it Item) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
}

func ItemsFromLines(lines []cart.Line) []Item {
	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, Item{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Price:     l.Product.Price,
			Quantity:  l.Quantity,
			Size:      l.SelectedSize,
			Color:     l.SelectedColor,
		})
	}
	return items
}

func Total(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Subtotal())
	}
	return sum
}

type CustomField struct {
	DisplayName  string `json:"display_name"`
	VariableName string `json:"variable_name"`
	Value        string `json:"value"`
}

type Metadata struct {
	CustomFields []CustomField `json:"custom_fields"`
}

// PaymentConfig is handed to the payment widget.
type PaymentConfig struct {
	Reference   string   `json:"reference"`
	Email       string   `json:"email"`
	AmountMinor int64    `json:"amount"`
	PublicKey   string   `json:"publicKey"`
	Metadata    Metadata `json:"metadata"`
}

// NewReference derives a payment reference from wall-clock milliseconds.
func NewReference(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// ToMinor converts a naira amount to kobo.
func ToMinor(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func NewPaymentConfig(reference string, total decimal.Decimal, c Customer, publicKey string) PaymentConfig {
	c = c.trimmed()
	return PaymentConfig{
		Reference:   reference,
		Email:       c.Email,
		AmountMinor: ToMinor(total),
		PublicKey:   publicKey,
		Metadata: Metadata{
			CustomFields: []CustomField{
				{DisplayName: "Customer Name", VariableName: "customer_name", Value: c.Name},
				{DisplayName: "Phone Number", VariableName: "phone_number", Value: c.Phone},
			},
		},
	}
}

// PaymentSession is what the client needs to open the payment widget.
type PaymentSession struct {
	Reference   string        `json:"reference"`
	Token       string        `json:"token"`
	RedirectURL string        `json:"redirectUrl"`
	Config      PaymentConfig `json:"config"`
}
