package product

import (
	"go-couture-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes mounts the bare-array catalog endpoint at /api/products.
func RegisterPublicRoutes(r gin.IRouter, handler *Handler) {
	r.GET("/api/products", middleware.RateLimitByIP(10, 20), handler.PublicList)
}

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard middleware.Guard) {
	products := r.Group("/products")
	{
		products.GET("", middleware.RateLimitByIP(10, 20), handler.List)
		products.GET("/:id", middleware.RateLimitByIP(5, 10), handler.GetByID)
	}

	admin := r.Group("/admin")
	admin.Use(guard.Admin()...)
	{
		admin.GET("/stats", middleware.RateLimitByUser(5, 10), handler.Stats)

		adminProducts := admin.Group("/products")
		adminProducts.GET("", middleware.RateLimitByUser(10, 20), handler.AdminList)
		adminProducts.GET("/:id", middleware.RateLimitByUser(10, 20), handler.GetByID)

		adminProducts.POST("", append(guard.Mutation("product.create"), handler.Create)...)
		adminProducts.PUT("/:id", append(guard.Mutation("product.update"), handler.Update)...)
		adminProducts.DELETE("/:id", append(guard.Mutation("product.delete"), handler.Delete)...)
	}
}
