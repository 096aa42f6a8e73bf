package editor

import (
	"net/http"

	"go-couture-api/internal/pkg/apperror"
)

var (
	ErrSubmitInProgress = apperror.New(
		apperror.CodeConflict,
		"Product is already being saved",
		http.StatusConflict,
	)

	ErrSaveFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to save product. Please try again.",
		http.StatusInternalServerError,
	)

	ErrImageIndex = apperror.New(
		apperror.CodeInvalidInput,
		"Image does not exist",
		http.StatusBadRequest,
	)

	ErrNotEditing = apperror.New(
		apperror.CodeConflict,
		"Product form is not editable",
		http.StatusConflict,
	)
)
