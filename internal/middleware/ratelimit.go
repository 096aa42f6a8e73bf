package middleware

import (
	"net/http"
	"sync"
	"time"

	"go-couture-api/internal/pkg/apperror"
	"go-couture-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	rate      rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(r rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		entries: make(map[string]*limiterEntry),
		rate:    r,
		burst:   burst,
		now:     time.Now,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > limiterIdleTTL {
		for k, e := range rl.entries {
			if now.Sub(e.lastSeen) > limiterIdleTTL {
				delete(rl.entries, k)
			}
		}
		rl.lastSweep = now
	}

	e, ok := rl.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// RateLimitByIP limits each client IP to rps requests per second.
func RateLimitByIP(rps float64, burst int) gin.HandlerFunc {
	rl := NewRateLimiter(rate.Limit(rps), burst)
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			tooManyRequests(c)
			return
		}
		c.Next()
	}
}

// RateLimitByUser keys on the authenticated user and falls back to the
// client IP for anonymous callers.
func RateLimitByUser(rps float64, burst int) gin.HandlerFunc {
	rl := NewRateLimiter(rate.Limit(rps), burst)
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if uid := c.GetString(CtxUserID); uid != "" {
			key = "user:" + uid
		}
		if !rl.Allow(key) {
			tooManyRequests(c)
			return
		}
		c.Next()
	}
}

func tooManyRequests(c *gin.Context) {
	response.Error(c, http.StatusTooManyRequests, apperror.CodeTooManyRequests, "Rate limit exceeded", nil)
	c.Abort()
}
