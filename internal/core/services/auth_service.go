package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/docflow_app/internal/core/domain"
	portssvc "github.com/SscSPs/docflow_app/internal/core/ports/services"
	"github.com/SscSPs/docflow_app/internal/platform/config"
	"github.com/SscSPs/docflow_app/internal/utils"
)

// tokenService issues JWT access tokens.
type tokenService struct {
	BaseService
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	subject := utils.TokenSubject{
		UserID: user.UserID,
		RoleID: int64(user.RoleID),
		Name:   user.FullName(),
		Email:  user.Email,
	}
	accessToken, err := utils.GenerateJWT(subject, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.Int64("user_id", user.UserID))
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}
