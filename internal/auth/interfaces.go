package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rideconnect/rideconnect-api/internal/user"
)

// TokenService defines the interface for token creation and validation
type TokenService interface {
	CreateToken(userID uuid.UUID, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// UserStore defines the identity store operations the auth layer depends on
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash, securityQuestion, securityAnswerHash string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}
