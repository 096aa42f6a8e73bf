package producterrors

import (
	"net/http"

	"go-couture-api/internal/pkg/apperror"
)

var (
	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"Product not found",
		http.StatusNotFound,
	)

	ErrDataUnavailable = apperror.New(
		apperror.CodeUnavailable,
		"Failed to fetch products",
		http.StatusInternalServerError,
	)

	ErrWriteFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to save product",
		http.StatusInternalServerError,
	)

	ErrMissingFields = apperror.New(
		apperror.CodeInvalidInput,
		"Please fill in all required fields",
		http.StatusBadRequest,
	)

	ErrInvalidPrice = apperror.New(
		apperror.CodeInvalidInput,
		"Price must be a valid non-negative number",
		http.StatusBadRequest,
	)

	ErrInvalidCategory = apperror.New(
		apperror.CodeInvalidInput,
		"Category must be one of dresses, gowns, separates, bridal",
		http.StatusBadRequest,
	)

	ErrImageRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Please upload at least one image",
		http.StatusBadRequest,
	)

	ErrSizeRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Please select at least one size",
		http.StatusBadRequest,
	)

	ErrColorRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Please select at least one color",
		http.StatusBadRequest,
	)
)
