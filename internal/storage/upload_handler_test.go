package storage_test

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	storageMock "go-couture-api/internal/mock/storage"
	"go-couture-api/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func stringsReader(s string) io.Reader { return strings.NewReader(s) }

var (
	jpegData = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00 jpeg body")
	pngData  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR png body")
)

type part struct {
	name        string
	contentType string
	body        []byte
}

func multipartBody(t *testing.T, parts ...part) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="files"; filename="`+p.name+`"`)
		h.Set("Content-Type", p.contentType)
		w, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = w.Write(p.body)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func setupUploadRouter(svc storage.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/uploads", storage.NewHandler(svc).UploadImages)
	return r
}

func TestHandler_UploadImages(t *testing.T) {
	t.Run("per-file results", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := storageMock.NewMockService(ctrl)

		svc.EXPECT().
			Upload(gomock.Any(), gomock.Any(), gomock.Any(), "image/jpeg").
			DoAndReturn(func(_ any, path string, r io.Reader, _ string) (string, error) {
				assert.True(t, strings.HasPrefix(path, "products/"))
				data, err := io.ReadAll(r)
				assert.NoError(t, err)
				assert.Equal(t, jpegData, data)
				return "https://cdn/" + path, nil
			})
		svc.EXPECT().
			Upload(gomock.Any(), gomock.Any(), gomock.Any(), "image/png").
			Return("", errors.New("network"))

		body, ct := multipartBody(t,
			part{"front.jpg", "image/jpeg", jpegData},
			part{"notes.pdf", "application/pdf", []byte("%PDF-1.4")},
			part{"back.png", "image/png", pngData},
		)
		req := httptest.NewRequest(http.MethodPost, "/admin/uploads", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		setupUploadRouter(svc).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		out := w.Body.String()
		assert.Contains(t, out, `"url":"https://cdn/products/`)
		assert.Contains(t, out, "Please select an image file")
		assert.Contains(t, out, "Failed to upload image")
	})

	t.Run("declared type is not trusted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := storageMock.NewMockService(ctrl)
		svc.EXPECT().
			Upload(gomock.Any(), gomock.Any(), gomock.Any(), "image/png").
			Return("https://cdn/products/x.png", nil)

		body, ct := multipartBody(t,
			part{"page.png", "image/png", []byte("<html><script>alert(1)</script></html>")},
			part{"photo.jpg", "image/jpeg", pngData},
		)
		req := httptest.NewRequest(http.MethodPost, "/admin/uploads", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		setupUploadRouter(svc).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		out := w.Body.String()
		assert.Contains(t, out, `"filename":"page.png","error":"Please select an image file"`)
		assert.Contains(t, out, `"url":"https://cdn/products/x.png"`)
	})

	t.Run("too many files", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := storageMock.NewMockService(ctrl)

		parts := make([]part, 6)
		for i := range parts {
			parts[i] = part{"a.jpg", "image/jpeg", []byte("x")}
		}
		body, ct := multipartBody(t, parts...)
		req := httptest.NewRequest(http.MethodPost, "/admin/uploads", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		setupUploadRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Maximum 5 images allowed")
	})

	t.Run("not multipart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := storageMock.NewMockService(ctrl)

		w := httptest.NewRecorder()
		setupUploadRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/uploads", strings.NewReader("{}")))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
