package checkout

import (
	"net/http"

	"go-couture-api/internal/pkg/apperror"
)

var (
	ErrEmptyCart = apperror.New(
		apperror.CodeInvalidInput,
		"Your cart is empty!",
		http.StatusBadRequest,
	)

	ErrMissingDetails = apperror.New(
		apperror.CodeInvalidInput,
		"Please fill in all your details before proceeding to checkout.",
		http.StatusBadRequest,
	)

	ErrInvalidEmail = apperror.New(
		apperror.CodeInvalidInput,
		"Please enter a valid email address",
		http.StatusBadRequest,
	)

	ErrItemUnavailable = apperror.New(
		apperror.CodeInvalidInput,
		"Some items in your cart are no longer available",
		http.StatusBadRequest,
	)

	ErrPaymentUnavailable = apperror.New(
		apperror.CodeUnavailable,
		"Failed to initialize payment",
		http.StatusBadGateway,
	)

	ErrConfirmFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to record checkout",
		http.StatusInternalServerError,
	)

	ErrUnknownReference = apperror.New(
		apperror.CodeNotFound,
		"Payment reference not found",
		http.StatusNotFound,
	)
)
