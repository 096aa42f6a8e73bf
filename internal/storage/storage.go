// Package storage uploads product images to object storage and resolves
// their public URLs. Objects live in a single bucket (a folder, for
// Cloudinary) fixed by configuration.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go-couture-api/internal/pkg/apperror"

	"github.com/google/uuid"
)

const (
	MaxImageSize        = 5 << 20
	MaxImagesPerProduct = 5
	ProductPrefix       = "products"
)

var (
	ErrNotImage = apperror.New(
		apperror.CodeInvalidInput,
		"Please select an image file",
		http.StatusBadRequest,
	)

	ErrImageTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"Image size must be less than 5MB",
		http.StatusBadRequest,
	)

	ErrTooManyImages = apperror.New(
		apperror.CodeInvalidInput,
		"Maximum 5 images allowed",
		http.StatusBadRequest,
	)

	ErrUploadFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to upload image",
		http.StatusBadGateway,
	)
)

//go:generate mockgen -source=storage.go -destination=../mock/storage/storage_mock.go -package=mock
type Service interface {
	// Upload stores body at path and returns its public URL.
	Upload(ctx context.Context, path string, body io.Reader, contentType string) (string, error)
	PublicURL(path string) (string, error)
}

// ValidateImage enforces the image MIME type and the 5 MB ceiling.
func ValidateImage(contentType string, size int64) error {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return ErrNotImage
	}
	if size > MaxImageSize {
		return ErrImageTooLarge
	}
	return nil
}

// NewObjectPath returns products/<random>-<unix millis>.<ext>.
func NewObjectPath(filename, contentType string, now time.Time) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		if _, sub, ok := strings.Cut(contentType, "/"); ok && sub != "" {
			ext = strings.ToLower(sub)
		} else {
			ext = "bin"
		}
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s/%s-%d.%s", ProductPrefix, random, now.UnixMilli(), ext)
}
