package carterrors

import (
	"net/http"

	"go-couture-api/internal/pkg/apperror"
)

var (
	ErrInvalidQuantity = apperror.New(
		apperror.CodeInvalidInput,
		"Quantity must be greater than zero",
		http.StatusBadRequest,
	)

	ErrProductRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Product is required",
		http.StatusBadRequest,
	)

	ErrPersistFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to save cart",
		http.StatusInternalServerError,
	)
)
