package security

import (
	"testing"

	"renthub-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager(t *testing.T) {
	manager := NewTokenManager(testSecret, 60)

	t.Run("Round trip", func(t *testing.T) {
		token, err := manager.GenerateAccessToken("user-1", "u@test.com", domain.UserRoleVendor)
		assert.NoError(t, err)

		claims, err := manager.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "u@test.com", claims.Email)
		assert.Equal(t, domain.UserRoleVendor, claims.Role)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		token, err := manager.GenerateAccessToken("user-1", "u@test.com", domain.UserRoleCustomer)
		assert.NoError(t, err)

		other := NewTokenManager("another-secret-that-is-32-chars!", 60)
		_, err = other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired token", func(t *testing.T) {
		expired := NewTokenManager(testSecret, -1)
		token, err := expired.GenerateAccessToken("user-1", "u@test.com", domain.UserRoleCustomer)
		assert.NoError(t, err)

		_, err = manager.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Garbage token", func(t *testing.T) {
		_, err := manager.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2-but-longer")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter2-but-longer", hash)

	assert.True(t, CheckPassword(hash, "hunter2-but-longer"))
	assert.False(t, CheckPassword(hash, "wrong password"))
}
