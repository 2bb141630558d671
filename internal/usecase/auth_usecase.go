package usecase

import (
	"context"

	"accounts/internal/domain/entity"
)

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// AuthUsecase defines credential checks and bearer-token resolution.
type AuthUsecase interface {
	// ValidateUser checks the credentials and issues a session token.
	ValidateUser(ctx context.Context, input *LoginInput) (*entity.AuthSession, error)
	// Authenticate resolves a bearer token to the user it was issued for.
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}
