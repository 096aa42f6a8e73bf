package storage

import (
	"go-couture-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard middleware.Guard) {
	uploads := r.Group("/admin/uploads")
	uploads.Use(guard.Admin()...)
	{
		uploads.POST("", append(guard.Mutation("image.upload"), handler.UploadImages)...)
	}
}
