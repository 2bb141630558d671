package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserChanges_IsEmpty(t *testing.T) {
	hash := "hash"

	assert.True(t, UserChanges{}.IsEmpty())
	assert.False(t, UserChanges{PasswordHash: &hash}.IsEmpty())
}
