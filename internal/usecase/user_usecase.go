// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"accounts/internal/domain/entity"
	"accounts/internal/domain/repository"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateUserInput defines the data required to create a new user.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput carries a partial update. Nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

// IsEmpty reports whether the input changes nothing.
func (in *UpdateUserInput) IsEmpty() bool {
	return in == nil || (in.Name == nil && in.Email == nil && in.Password == nil)
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., GraphQL resolvers) will depend on.
type UserUsecase interface {
	ListUsers(ctx context.Context) ([]*entity.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindUser(ctx context.Context, filter repository.UserFilter) (*entity.User, error)
	CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
