package seed

import (
	"context"

	"go-couture-api/internal/auth"

	"go.uber.org/zap"
)

// AdminProvisioner is the part of the auth service the seeder needs.
type AdminProvisioner interface {
	EnsureAdmin(ctx context.Context, email, password, name string) (auth.AuthResponse, error)
}

func SeedAdmin(ctx context.Context, p AdminProvisioner, email, password, name string, logger *zap.Logger) error {
	admin, err := p.EnsureAdmin(ctx, email, password, name)
	if err != nil {
		return err
	}
	logger.Info("admin account ready", zap.String("email", admin.Email), zap.String("id", admin.ID))
	return nil
}
