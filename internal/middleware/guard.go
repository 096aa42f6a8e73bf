package middleware

import (
	"go-couture-api/internal/bootstrap"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

var AdminRoles = []string{"ADMIN", "SUPERADMIN"}

// Guard carries the shared dependencies route registrations need to build
// their middleware chains.
type Guard struct {
	JWTSecret string
	Redis     *redis.Client
	Audit     bootstrap.AuditLogger
}

func (g Guard) Authenticated() gin.HandlerFunc {
	return AuthMiddleware(g.JWTSecret)
}

// Admin returns the authentication and role checks for admin-only groups.
func (g Guard) Admin() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		AuthMiddleware(g.JWTSecret),
		RoleMiddleware(AdminRoles...),
	}
}

// Mutation wraps an admin write: rate limited, optionally idempotent, audited.
func (g Guard) Mutation(action string) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{RateLimitByUser(1, 3)}
	if g.Redis != nil {
		chain = append(chain, Idempotency(g.Redis, false))
	}
	if g.Audit != nil {
		chain = append(chain, Audit(g.Audit, action))
	}
	return chain
}

// Idempotent guards a public write that the client may retry. Without redis
// the chain is empty.
func (g Guard) Idempotent(requireKey bool) []gin.HandlerFunc {
	if g.Redis == nil {
		return nil
	}
	return []gin.HandlerFunc{Idempotency(g.Redis, requireKey)}
}
