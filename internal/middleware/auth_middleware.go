package middleware

import (
	"errors"
	"strings"

	autherrors "go-couture-api/internal/auth/errors"
	"go-couture-api/internal/auth/token"
	"go-couture-api/internal/pkg/apperror"
	"go-couture-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID = "user_id_validated"
	CtxRole   = "role"
)

// AuthMiddleware accepts the access token from the access_token cookie or an
// Authorization: Bearer header.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			abortWith(c, autherrors.ErrUnauthorized)
			return
		}

		claims, err := token.Parse(secret, raw, token.TypeAccess)
		if err != nil {
			errObj := autherrors.ErrInvalidToken
			if errors.Is(err, token.ErrExpired) {
				errObj = autherrors.ErrTokenExpired
			}
			abortWith(c, errObj)
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set("user_id", claims.UserID)
		c.Set(CtxRole, claims.Role)

		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(CtxRole)
		if !exists {
			abortWith(c, autherrors.ErrForbidden)
			return
		}

		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		abortWith(c, autherrors.ErrForbidden)
	}
}

func bearerToken(c *gin.Context) string {
	if raw, err := c.Cookie("access_token"); err == nil && raw != "" {
		return raw
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func abortWith(c *gin.Context, e *apperror.AppError) {
	response.Error(c, e.HTTPStatus, e.Code, e.Message, nil)
	c.Abort()
}
