package auth

import (
	"context"

	"carrental/internal/domain"
	jwtsvc "carrental/internal/pkg/jwt"
)

// UserRepository defines the storage operations the auth flows need.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// tokenService is satisfied by internal/pkg/jwt.Service; the auth service
// holds two of them, one for access tokens and one for refresh tokens.
type tokenService interface {
	GenerateToken(userID int64, role string) (string, error)
	ValidateToken(token string) (*jwtsvc.Claims, error)
}
