package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go-couture-api/internal/pkg/apperror"
	"go-couture-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader = "Idempotency-Key"

	idempotencyLockTTL     = 30 * time.Second
	idempotencyResponseTTL = 24 * time.Hour
)

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response when a request repeats its
// Idempotency-Key. Concurrent duplicates get 409 while the first is running.
// When requireKey is false, requests without the header pass through.
func Idempotency(rdb *redis.Client, requireKey bool) gin.HandlerFunc {
	logger := zap.L().Named("middleware.idempotency")

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			if requireKey {
				response.Error(c, http.StatusBadRequest, "IDEMPOTENCY_KEY_REQUIRED", "Idempotency-Key header is required", nil)
				c.Abort()
				return
			}
			c.Next()
			return
		}

		scope := c.GetString(CtxUserID)
		base := "idempotency:" + scope + ":" + c.Request.Method + ":" + c.FullPath() + ":" + key
		respKey := base + ":resp"
		lockKey := base + ":lock"
		ctx := c.Request.Context()

		if raw, err := rdb.Get(ctx, respKey).Bytes(); err == nil {
			var cached cachedResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				c.Header("Idempotent-Replayed", "true")
				c.Data(cached.Status, cached.ContentType, cached.Body)
				c.Abort()
				return
			}
		} else if err != redis.Nil {
			logger.Error("idempotency lookup failed", zap.Error(err))
			response.Error(c, http.StatusServiceUnavailable, apperror.CodeUnavailable, "Idempotency store unavailable", nil)
			c.Abort()
			return
		}

		locked, err := rdb.SetNX(ctx, lockKey, "1", idempotencyLockTTL).Result()
		if err != nil {
			logger.Error("idempotency lock failed", zap.Error(err))
			response.Error(c, http.StatusServiceUnavailable, apperror.CodeUnavailable, "Idempotency store unavailable", nil)
			c.Abort()
			return
		}
		if !locked {
			response.Error(c, http.StatusConflict, "REQUEST_IN_PROGRESS", "A request with this Idempotency-Key is already in progress", nil)
			c.Abort()
			return
		}
		// The lock must be released even if the request context is gone.
		defer rdb.Del(context.Background(), lockKey)

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		status := rec.Status()
		if status >= http.StatusInternalServerError {
			return
		}

		payload, err := json.Marshal(cachedResponse{
			Status:      status,
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.buf.Bytes(),
		})
		if err != nil {
			return
		}
		if err := rdb.Set(context.Background(), respKey, payload, idempotencyResponseTTL).Err(); err != nil {
			logger.Warn("idempotency store failed", zap.Error(err))
		}
	}
}
