package auth

import (
	"go-couture-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard middleware.Guard) {
	auth := r.Group("/auth")
	{
		// brute force protection: 1 request per 10s with a small burst
		auth.POST("/login",
			middleware.RateLimitByIP(0.1, 3),
			handler.Login,
		)

		auth.POST("/refresh",
			middleware.RateLimitByIP(0.5, 2),
			handler.Refresh,
		)

		authenticated := auth.Group("/")
		authenticated.Use(guard.Authenticated())
		{
			authenticated.GET("/me",
				middleware.RateLimitByUser(5, 10),
				handler.Me,
			)

			authenticated.POST("/logout",
				middleware.RateLimitByUser(1, 2),
				handler.Logout,
			)
		}
	}
}
