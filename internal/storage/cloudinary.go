package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type cloudinaryService struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryService(cloudName, apiKey, apiSecret, folder string) (Service, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &cloudinaryService{cld: cld, folder: folder}, nil
}

// publicID maps an object path to a Cloudinary public id, which carries the
// folder and drops the extension.
func (s *cloudinaryService) publicID(objectPath string) string {
	id := strings.TrimSuffix(objectPath, path.Ext(objectPath))
	if s.folder == "" {
		return id
	}
	return s.folder + "/" + id
}

func (s *cloudinaryService) Upload(ctx context.Context, objectPath string, body io.Reader, _ string) (string, error) {
	res, err := s.cld.Upload.Upload(ctx, body, uploader.UploadParams{
		PublicID:     s.publicID(objectPath),
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("failed to upload image: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

func (s *cloudinaryService) PublicURL(objectPath string) (string, error) {
	img, err := s.cld.Image(s.publicID(objectPath))
	if err != nil {
		return "", err
	}
	return img.String()
}
