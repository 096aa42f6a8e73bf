package editor

import (
	"strings"

	"go-couture-api/internal/product"
	producterrors "go-couture-api/internal/product/errors"

	"github.com/shopspring/decimal"
)

// Sizes are the size options offered on the product form.
var Sizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

// Colors are the color options offered on the product form.
var Colors = []string{
	"Black", "White", "Gold", "Silver", "Red", "Blue", "Green", "Purple",
	"Pink", "Burgundy", "Coral", "Peach", "Navy", "Emerald", "Cream", "Multi",
}

// Draft is the in-progress product form. Price is kept as typed text until
// submission.
type Draft struct {
	Name        string
	Description string
	Price       string
	Category    product.Category
	Images      []string
	Sizes       []string
	Colors      []string
	InStock     bool
	IsFeatured  bool
}

func NewDraft() Draft {
	return Draft{
		Category: product.CategoryDresses,
		Images:   []string{},
		Sizes:    []string{},
		Colors:   []string{},
		InStock:  true,
	}
}

// DraftFrom seeds a draft with an existing product for editing.
func DraftFrom(p product.Product) Draft {
	d := NewDraft()
	d.Name = p.Name
	d.Description = p.Description
	d.Price = decimal.NewFromFloat(p.Price).String()
	d.Category = p.Category
	d.Images = append(d.Images, p.Images...)
	d.Sizes = append(d.Sizes, p.Sizes...)
	d.Colors = append(d.Colors, p.Colors...)
	d.InStock = p.InStock
	d.IsFeatured = p.IsFeatured
	return d
}

func (d Draft) clone() Draft {
	d.Images = append([]string{}, d.Images...)
	d.Sizes = append([]string{}, d.Sizes...)
	d.Colors = append([]string{}, d.Colors...)
	return d
}

// Validate returns the first unmet requirement. Nothing is written when it
// fails.
func Validate(d Draft) error {
	_, err := d.Input()
	return err
}

// Input converts a valid draft into the catalog write payload.
func (d Draft) Input() (product.Input, error) {
	if strings.TrimSpace(d.Name) == "" ||
		strings.TrimSpace(d.Description) == "" ||
		strings.TrimSpace(d.Price) == "" {
		return product.Input{}, producterrors.ErrMissingFields
	}

	price, err := decimal.NewFromString(strings.TrimSpace(d.Price))
	if err != nil || price.IsNegative() {
		return product.Input{}, producterrors.ErrInvalidPrice
	}
	p, _ := price.Float64()

	in := product.Input{
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		Price:       p,
		Category:    d.Category,
		Images:      d.Images,
		Sizes:       d.Sizes,
		Colors:      d.Colors,
		InStock:     d.InStock,
		IsFeatured:  d.IsFeatured,
	}
	if err := product.ValidateInput(in); err != nil {
		return product.Input{}, err
	}
	return in, nil
}

func toggle(list []string, v string) []string {
	for i, s := range list {
		if s == v {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return append(list, v)
}
