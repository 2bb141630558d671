package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload of a session token. The subject holds the user ID.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into a user ID.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService defines the interface for issuing and verifying session tokens.
type TokenService interface {
	// IssueToken signs a time-limited token for the given user.
	IssueToken(userID uuid.UUID, username string) (string, error)

	// ValidateToken checks signature and expiry and returns the decoded claims.
	ValidateToken(tokenString string) (*Claims, error)

	// TokenDuration returns the configured lifetime of issued tokens.
	TokenDuration() time.Duration
}
