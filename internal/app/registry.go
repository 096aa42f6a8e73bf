package app

import (
	"database/sql"
	"net/http"

	"go-couture-api/internal/auth"
	"go-couture-api/internal/bootstrap"
	"go-couture-api/internal/checkout"
	"go-couture-api/internal/config"
	"go-couture-api/internal/middleware"
	"go-couture-api/internal/midtrans"
	"go-couture-api/internal/outbox"
	"go-couture-api/internal/product"
	"go-couture-api/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type modules struct {
	cfg     *config.Config
	db      *sql.DB
	redis   *redis.Client
	storage storage.Service
	logger  *zap.Logger
	audit   bootstrap.AuditLogger
}

func registerModules(router *gin.Engine, m modules) {
	// --- Repositories ---
	authRepo := auth.NewRepository(m.db)
	productRepo := product.NewRepository(m.db)
	outboxRepo := outbox.NewRepository(m.db)

	// --- Services ---
	authService := auth.NewService(authRepo, auth.NewRedisTokenStore(m.redis), m.cfg.JWTSecret, m.logger)
	productService := product.NewService(m.db, productRepo, m.logger)
	checkoutService := checkout.NewService(
		productService,
		checkout.NewMidtransGateway(midtrans.NewService(m.cfg.Payment.MidtransServerKey, m.cfg.Payment.MidtransIsProduction)),
		outboxRepo,
		checkout.Settings{
			PublicKey:      m.cfg.Payment.PublicKey,
			WhatsAppNumber: m.cfg.WhatsAppNumber,
		},
		m.logger,
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, m.cfg.IsProduction(), m.logger)
	productHandler := product.NewHandler(productService, m.logger)
	uploadHandler := storage.NewHandler(m.storage, m.logger)
	checkoutHandler := checkout.NewHandler(checkoutService, m.logger)

	guard := middleware.Guard{
		JWTSecret: m.cfg.JWTSecret,
		Redis:     m.redis,
		Audit:     m.audit,
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Routes Registration ---
	product.RegisterPublicRoutes(router, productHandler)

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, guard)
		product.RegisterRoutes(api, productHandler, guard)
		storage.RegisterRoutes(api, uploadHandler, guard)
		checkout.RegisterRoutes(api, checkoutHandler, guard)
	}
}
