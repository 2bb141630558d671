package auth

import (
	"strings"
	"testing"

	"accounts/config"
	"accounts/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *bcryptHasher {
	return NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}}).(*bcryptHasher)
}

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("testvalid123")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "testvalid123", hash)
	assert.True(t, hasher.Check("testvalid123", hash))
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	hasher := newTestHasher()

	first, err := hasher.Hash("testvalid123")
	require.NoError(t, err)
	second, err := hasher.Hash("testvalid123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("testvalid123", first))
	assert.True(t, hasher.Check("testvalid123", second))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := newTestHasher()
	hash, err := hasher.Hash("testvalid123")
	require.NoError(t, err)

	assert.False(t, hasher.Check("wrongpassword", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check("testvalid123", "invalid_hash"))
}

func TestNewBcryptHasher_Cost(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		want int
	}{
		{name: "nil config", cfg: nil, want: bcrypt.DefaultCost},
		{name: "unset cost", cfg: &config.Config{}, want: bcrypt.DefaultCost},
		{name: "configured", cfg: &config.Config{Auth: &config.AuthConfig{BcryptCost: 12}}, want: 12},
		{name: "below minimum", cfg: &config.Config{Auth: &config.AuthConfig{BcryptCost: 1}}, want: bcrypt.MinCost},
		{name: "above maximum", cfg: &config.Config{Auth: &config.AuthConfig{BcryptCost: 99}}, want: bcrypt.MaxCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher := NewBcryptHasher(tt.cfg).(*bcryptHasher)
			assert.Equal(t, tt.want, hasher.cost)
		})
	}
}

func TestBcryptHasher_RejectsPasswordOverByteLimit(t *testing.T) {
	hasher := newTestHasher()

	_, err := hasher.Hash(strings.Repeat("a", service.MaxPasswordBytes+1))
	assert.ErrorIs(t, err, service.ErrPasswordTooLong)

	_, err = hasher.Hash(strings.Repeat("é", 37))
	assert.ErrorIs(t, err, service.ErrPasswordTooLong)

	hash, err := hasher.Hash(strings.Repeat("a", service.MaxPasswordBytes))
	require.NoError(t, err)
	assert.True(t, hasher.Check(strings.Repeat("a", service.MaxPasswordBytes), hash))
}
