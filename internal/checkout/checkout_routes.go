package checkout

import (
	"go-couture-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard middleware.Guard) {
	checkout := r.Group("/checkout")
	checkout.Use(middleware.RateLimitByIP(2, 5))
	{
		checkout.POST("/payments", append(guard.Idempotent(false), handler.Initiate)...)
		checkout.POST("/confirmations", append(guard.Idempotent(true), handler.Confirm)...)
	}
}
