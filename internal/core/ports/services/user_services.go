package services

import (
	"context"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/dto"
)

// UserSvcFacade defines user registration and password authentication. Token
// format and expiry are configuration; the rest of the system only consumes
// the authenticated user ID.
type UserSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	// Authenticate verifies the password and issues a signed bearer token.
	Authenticate(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
