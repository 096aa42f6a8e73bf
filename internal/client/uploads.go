package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"go-couture-api/internal/editor"
	"go-couture-api/internal/storage"
)

// UploadImage sends one image to the admin upload endpoint and returns its
// public URL.
func (c *Client) UploadImage(ctx context.Context, f editor.File) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, f.Name))
	h.Set("Content-Type", f.ContentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f.Body); err != nil {
		return "", fmt.Errorf("read %s: %w", f.Name, err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	var results []storage.UploadResult
	_, err = c.do(ctx, call{
		method:      http.MethodPost,
		path:        "/api/v1/admin/uploads",
		body:        &buf,
		contentType: mw.FormDataContentType(),
		admin:       true,
	}, &results)
	if err != nil {
		return "", err
	}

	if len(results) == 0 {
		return "", storage.ErrUploadFailed
	}
	if results[0].Error != "" {
		return "", storage.ErrUploadFailed.Wrap(errors.New(results[0].Error))
	}
	return results[0].URL, nil
}
