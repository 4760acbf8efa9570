//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"shareit/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	svc := jwt.NewService("secret", time.Minute, time.Hour)
	userID := uuid.New()

	t.Run("access token round trip", func(t *testing.T) {
		token, err := svc.GenerateAccessToken(userID)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, jwt.TokenTypeAccess, claims.TokenType)
	})

	t.Run("refresh token carries refresh type", func(t *testing.T) {
		token, err := svc.GenerateRefreshToken(userID)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, jwt.TokenTypeRefresh, claims.TokenType)
	})

	t.Run("token signed with another key is rejected", func(t *testing.T) {
		other := jwt.NewService("other-secret", time.Minute, time.Hour)
		token, err := other.GenerateAccessToken(userID)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		short := jwt.NewService("secret", -time.Minute, time.Hour)
		token, err := short.GenerateAccessToken(userID)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
