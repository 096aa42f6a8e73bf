package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"go-couture-api/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newIdempotentRouter(t *testing.T, requireKey bool, status int) (*gin.Engine, *int32, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	var calls int32
	r := setupTestRouter()
	r.POST("/things", middleware.Idempotency(rdb, requireKey), func(c *gin.Context) {
		n := atomic.AddInt32(&calls, 1)
		c.JSON(status, gin.H{"call": n})
	})
	return r, &calls, mr
}

func post(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/things", nil)
	if key != "" {
		req.Header.Set(middleware.IdempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	r, calls, _ := newIdempotentRouter(t, true, http.StatusCreated)

	first := post(r, "abc")
	second := post(r, "abc")

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))

	third := post(r, "other")
	assert.Equal(t, http.StatusCreated, third.Code)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestIdempotency_MissingKey(t *testing.T) {
	t.Run("required", func(t *testing.T) {
		r, calls, _ := newIdempotentRouter(t, true, http.StatusOK)
		w := post(r, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, int32(0), atomic.LoadInt32(calls))
	})

	t.Run("optional", func(t *testing.T) {
		r, calls, _ := newIdempotentRouter(t, false, http.StatusOK)
		post(r, "")
		post(r, "")
		assert.Equal(t, int32(2), atomic.LoadInt32(calls))
	})
}

func TestIdempotency_InProgress(t *testing.T) {
	r, calls, mr := newIdempotentRouter(t, true, http.StatusOK)
	assert.NoError(t, mr.Set("idempotency::POST:/things:busy:lock", "1"))

	w := post(r, "busy")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestIdempotency_ServerErrorNotCached(t *testing.T) {
	r, calls, _ := newIdempotentRouter(t, true, http.StatusInternalServerError)

	post(r, "retry")
	post(r, "retry")
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}
