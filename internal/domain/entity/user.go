// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can authenticate against the service.
type User struct {
	ID           uuid.UUID // Server-generated, immutable after creation.
	Name         string    // Display name.
	Email        string    // Login identifier, unique across users.
	PasswordHash string    // bcrypt hash; the plaintext is never stored.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
