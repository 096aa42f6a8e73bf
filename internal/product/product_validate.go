package product

import (
	"strings"

	producterrors "go-couture-api/internal/product/errors"
)

// ValidateInput reports the first unmet requirement of a write payload.
func ValidateInput(in Input) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" {
		return producterrors.ErrMissingFields
	}
	if in.Price < 0 {
		return producterrors.ErrInvalidPrice
	}
	if _, ok := ParseCategory(string(in.Category)); !ok {
		return producterrors.ErrInvalidCategory
	}
	if len(in.Images) == 0 {
		return producterrors.ErrImageRequired
	}
	if len(in.Sizes) == 0 {
		return producterrors.ErrSizeRequired
	}
	if len(in.Colors) == 0 {
		return producterrors.ErrColorRequired
	}
	return nil
}
