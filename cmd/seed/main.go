// Command seed applies the schema and provisions the admin account from
// ADMIN_EMAIL and ADMIN_PASSWORD. Running it again resets the password. With
// -products it also fills an empty catalog with sample products.
package main

import (
	"context"
	"flag"
	"log"

	"go-couture-api/internal/auth"
	"go-couture-api/internal/bootstrap"
	"go-couture-api/internal/config"
	"go-couture-api/internal/product"
	"go-couture-api/internal/shared/connection"
	"go-couture-api/internal/shared/database"
	"go-couture-api/internal/shared/database/seed"

	"go.uber.org/zap"
)

func main() {
	withProducts := flag.Bool("products", false, "seed sample products into an empty catalog")
	skipMigrate := flag.Bool("skip-migrate", false, "do not apply the schema before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := bootstrap.NewLogger(cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logger.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	db, err := connection.ConnectDBWithRetry(cfg.DBURL, 5)
	if err != nil {
		logger.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()

	if !*skipMigrate {
		if err := database.Migrate(ctx, db, logger); err != nil {
			logger.Fatal("migration failed", zap.Error(err))
		}
	}

	// the seeder never issues tokens, so no revocation store is needed
	authService := auth.NewService(auth.NewRepository(db), nil, cfg.JWTSecret, logger)
	if err := seed.SeedAdmin(ctx, authService, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName, logger); err != nil {
		logger.Fatal("failed to seed admin", zap.Error(err))
	}

	if *withProducts {
		if err := seed.SeedProducts(ctx, product.NewRepository(db), logger); err != nil {
			logger.Fatal("failed to seed products", zap.Error(err))
		}
	}
	logger.Info("🌱 seed complete")
}
