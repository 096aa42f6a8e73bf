package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	autherrors "go-couture-api/internal/auth/errors"
	"go-couture-api/internal/auth/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo   Repository
	tokens TokenStore
	secret string
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, tokens TokenStore, secret string, logger ...*zap.Logger) *Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &Service{
		repo:   repo,
		tokens: tokens,
		secret: secret,
		logger: l,
		now:    time.Now,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Error("admin lookup failed", zap.Error(err))
		}
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Refresh trades a refresh token for a new pair. The old refresh token is
// revoked before the new pair is issued, so each one works once.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return TokenResponse{}, autherrors.ErrRefreshTokenRequired
	}

	claims, err := token.Parse(s.secret, refreshToken, token.TypeRefresh)
	if err != nil {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claimed, err := s.revoke(ctx, claims)
	if err != nil {
		s.logger.Error("refresh token revocation failed", zap.Error(err))
		return TokenResponse{}, autherrors.ErrAuthUnavailable.Wrap(err)
	}
	if !claimed {
		s.logger.Warn("revoked refresh token presented", zap.String("user_id", claims.UserID))
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}

	user, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if err != nil {
		s.logger.Error("admin lookup failed", zap.Error(err))
		return TokenResponse{}, autherrors.ErrAuthUnavailable.Wrap(err)
	}

	return s.issue(user)
}

// Logout revokes refreshToken. Tokens that are already unusable are ignored.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := token.Parse(s.secret, refreshToken, token.TypeRefresh)
	if err != nil {
		return nil
	}
	_, err = s.revoke(ctx, claims)
	return err
}

func (s *Service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := toAuthResponse(u)
	return &resp, nil
}

// EnsureAdmin creates or resets the admin account for email.
func (s *Service) EnsureAdmin(ctx context.Context, email, password, name string) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}
	if strings.TrimSpace(name) == "" {
		name = "Admin"
	}

	u, err := s.repo.Upsert(ctx, UpsertAdminParams{
		Email:    email,
		Name:     name,
		Password: string(hashed),
		Role:     RoleAdmin,
	})
	if err != nil {
		return AuthResponse{}, err
	}
	return toAuthResponse(u), nil
}

func (s *Service) revoke(ctx context.Context, claims *token.Claims) (bool, error) {
	ttl := token.RefreshTTL
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(s.now())
	}
	return s.tokens.Revoke(ctx, claims.ID, ttl)
}

func (s *Service) issue(u AdminUser) (TokenResponse, error) {
	now := s.now()

	access, accessClaims, err := token.Issue(s.secret, u.ID.String(), u.Role, token.TypeAccess, token.AccessTTL, now)
	if err != nil {
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refresh, _, err := token.Issue(s.secret, u.ID.String(), u.Role, token.TypeRefresh, token.RefreshTTL, now)
	if err != nil {
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return TokenResponse{
		User:         toAuthResponse(u),
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    accessClaims.ExpiresAt.Time,
	}, nil
}

func toAuthResponse(u AdminUser) AuthResponse {
	return AuthResponse{
		ID:    u.ID.String(),
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}
