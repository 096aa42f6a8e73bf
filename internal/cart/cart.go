package cart

import (
	"go-couture-api/internal/product"

	"github.com/shopspring/decimal"
)

// Line is one product configuration in the cart. Empty size or color means
// the shopper did not pick one.
type Line struct {
	Product       product.Product `json:"product"`
	Quantity      int             `json:"quantity"`
	SelectedSize  string          `json:"selectedSize,omitempty"`
	SelectedColor string          `json:"selectedColor,omitempty"`
}

// Key identifies a line. Two adds with the same key merge.
type Key struct {
	ProductID string
	Size      string
	Color     string
}

func (l Line) Key() Key {
	return Key{ProductID: l.Product.ID, Size: l.SelectedSize, Color: l.SelectedColor}
}

func (l Line) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(l.Product.Price).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Total sums price times quantity over lines.
func Total(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}

func ItemCount(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}
