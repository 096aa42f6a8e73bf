package storage

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"go-couture-api/internal/pkg/apperror"
	"go-couture-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
	Path     string `json:"path,omitempty"`
	Error    string `json:"error,omitempty"`
}

type Handler struct {
	service Service
	logger  *zap.Logger
	now     func() time.Time
}

func NewHandler(s Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("storage.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("storage.handler")
	}
	return &Handler{service: s, logger: l, now: time.Now}
}

// UploadImages accepts up to five "files" parts and uploads each one on its
// own. A rejected or failed file is reported in its result entry and does
// not affect the others.
func (h *Handler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_FORM", "Invalid multipart form", err.Error())
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_FORM", "No files provided", nil)
		return
	}
	if len(files) > MaxImagesPerProduct {
		response.Error(c, ErrTooManyImages.HTTPStatus, ErrTooManyImages.Code, ErrTooManyImages.Message, nil)
		return
	}

	results := make([]UploadResult, 0, len(files))
	for _, fh := range files {
		res := UploadResult{Filename: fh.Filename}
		contentType := fh.Header.Get("Content-Type")

		if err := ValidateImage(contentType, fh.Size); err != nil {
			res.Error = apperror.ToHTTP(err).Message
			results = append(results, res)
			continue
		}

		f, err := fh.Open()
		if err != nil {
			res.Error = "Failed to read file"
			results = append(results, res)
			continue
		}

		body, sniffed, err := sniffImage(f)
		if err != nil {
			_ = f.Close()
			res.Error = apperror.ToHTTP(err).Message
			results = append(results, res)
			continue
		}

		objectPath := NewObjectPath(fh.Filename, sniffed, h.now())
		url, err := h.service.Upload(c.Request.Context(), objectPath, body, sniffed)
		_ = f.Close()
		if err != nil {
			h.logger.Error("image upload failed", zap.String("filename", fh.Filename), zap.Error(err))
			res.Error = ErrUploadFailed.Message
			results = append(results, res)
			continue
		}

		res.URL = url
		res.Path = objectPath
		results = append(results, res)
	}

	response.Success(c, http.StatusOK, results, nil)
}

// sniffImage checks the leading bytes of r rather than the declared part type.
// The returned reader still yields the whole file.
func sniffImage(r io.Reader) (io.Reader, string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, "", ErrUploadFailed.Wrap(err)
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", ErrNotImage
	}
	return io.MultiReader(bytes.NewReader(head), r), contentType, nil
}
