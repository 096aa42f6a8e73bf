package app

import (
	"context"
	"database/sql"
	"fmt"

	"go-couture-api/internal/bootstrap"
	"go-couture-api/internal/config"
	"go-couture-api/internal/shared/connection"
	"go-couture-api/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App owns the connections opened by BuildApp.
type App struct {
	DB    *sql.DB
	Redis *redis.Client
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func BuildApp(ctx context.Context, cfg *config.Config, router *gin.Engine, logger *zap.Logger, audit bootstrap.AuditLogger) (*App, error) {
	// 1. Setup Infrastructure
	db, err := connection.ConnectDBWithRetry(cfg.DBURL, 5)
	if err != nil {
		return nil, err
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	a := &App{DB: db, Redis: redisClient}

	// 2. Setup Third Party Services
	store, err := newStorage(ctx, cfg.Storage)
	if err != nil {
		a.Close()
		return nil, err
	}

	// 3. Register Modules & Routes
	registerModules(router, modules{
		cfg:     cfg,
		db:      db,
		redis:   redisClient,
		storage: store,
		logger:  logger,
		audit:   audit,
	})

	return a, nil
}

func newStorage(ctx context.Context, cfg config.StorageConfig) (storage.Service, error) {
	switch cfg.Driver {
	case "cloudinary":
		return storage.NewCloudinaryService(
			cfg.CloudinaryCloudName,
			cfg.CloudinaryAPIKey,
			cfg.CloudinaryAPISecret,
			cfg.Bucket,
		)
	case "s3":
		return storage.NewS3Service(ctx, storage.S3Config{
			Bucket:   cfg.Bucket,
			Region:   cfg.AWSRegion,
			Endpoint: cfg.AWSEndpoint,
		})
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
