package product

import (
	"database/sql"
	"errors"
	"fmt"
	"math"

	"go-couture-api/internal/shared/database/helper"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrDecode marks a stored row that does not fit the Product shape.
var ErrDecode = errors.New("product: cannot decode row")

// Row is a products record exactly as scanned, before any trust is placed in it.
type Row struct {
	ID          string
	Name        sql.NullString
	Description sql.NullString
	Price       sql.NullString
	Category    sql.NullString
	Images      pq.StringArray
	Sizes       pq.StringArray
	Colors      pq.StringArray
	InStock     sql.NullBool
	IsFeatured  sql.NullBool
	CreatedAt   sql.NullTime
	UpdatedAt   sql.NullTime
}

func decodeError(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrDecode, field, reason)
}

// DecodeRow validates every field of r and converts it to a Product.
func DecodeRow(r Row) (Product, error) {
	if _, err := uuid.Parse(r.ID); err != nil {
		return Product{}, decodeError("id", "is not a uuid")
	}
	if !r.Name.Valid || r.Name.String == "" {
		return Product{}, decodeError("name", "is empty")
	}
	if !r.Price.Valid {
		return Product{}, decodeError("price", "is null")
	}
	price, err := helper.NumericToFloat64(r.Price.String)
	if err != nil {
		return Product{}, decodeError("price", "is not numeric")
	}
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return Product{}, decodeError("price", "is out of range")
	}
	category, ok := ParseCategory(r.Category.String)
	if !r.Category.Valid || !ok {
		return Product{}, decodeError("category", fmt.Sprintf("%q is unknown", r.Category.String))
	}
	if !r.CreatedAt.Valid {
		return Product{}, decodeError("created_at", "is null")
	}

	return Product{
		ID:          r.ID,
		Name:        r.Name.String,
		Description: r.Description.String,
		Price:       price,
		Category:    category,
		Images:      helper.EmptyIfNil(r.Images),
		Sizes:       helper.EmptyIfNil(r.Sizes),
		Colors:      helper.EmptyIfNil(r.Colors),
		InStock:     r.InStock.Valid && r.InStock.Bool,
		IsFeatured:  r.IsFeatured.Valid && r.IsFeatured.Bool,
		CreatedAt:   r.CreatedAt.Time,
		UpdatedAt:   helper.NullTimeOr(r.UpdatedAt, r.CreatedAt.Time),
	}, nil
}
