package service

import (
	"context"

	"mood-server/internal/models"

	"github.com/google/uuid"
)

// AuthService covers account registration and token handling.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (*models.TokenDetails, error)
	Logout(ctx context.Context, userID uuid.UUID, accessUUID, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*models.TokenDetails, error)
	VerifyAccessToken(ctx context.Context, tokenString string) (*models.Claims, error)
	// AdminLogin checks the configured admin credentials and issues a ROLE_ADMIN token pair.
	AdminLogin(ctx context.Context, email, password string) (*models.TokenDetails, error)
}
