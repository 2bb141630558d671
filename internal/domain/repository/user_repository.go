// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserFilter selects a user by any combination of fields.
// Set fields are combined with AND, nil fields are ignored.
type UserFilter struct {
	ID    *uuid.UUID
	Name  *string
	Email *string
}

// UserChanges lists the columns a partial update writes. Nil fields are left untouched.
type UserChanges struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// IsEmpty reports whether the update would not change any column.
func (c UserChanges) IsEmpty() bool {
	return c.Name == nil && c.Email == nil && c.PasswordHash == nil
}

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// Create persists a new user and fills in its generated ID and timestamps.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindOne retrieves the first user matching every set field of the filter.
	FindOne(ctx context.Context, filter UserFilter) (*entity.User, error)

	// FindAll retrieves every user ordered by creation time.
	FindAll(ctx context.Context) ([]*entity.User, error)

	// Update applies the changes to the user with the given ID and returns the number of affected rows.
	Update(ctx context.Context, id uuid.UUID, changes UserChanges) (int64, error)

	// Delete removes the user with the given ID and returns the number of affected rows.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
