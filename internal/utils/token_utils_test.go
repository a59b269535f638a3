package utils_test

import (
	"testing"
	"time"

	"github.com/bacaxnot/finance-sub000/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := utils.GenerateJWT("user-1", "secret", time.Minute, "finance-backend")
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(token, "secret", "finance-backend")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "finance-backend", claims.Issuer)
}

func TestParseAndValidateJWT_Rejects(t *testing.T) {
	valid, err := utils.GenerateJWT("user-1", "secret", time.Minute, "finance-backend")
	require.NoError(t, err)
	expired, err := utils.GenerateJWT("user-1", "secret", -time.Minute, "finance-backend")
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
		issuer string
		target error
	}{
		{name: "wrong secret", token: valid, secret: "other", issuer: "finance-backend", target: jwt.ErrTokenSignatureInvalid},
		{name: "wrong issuer", token: valid, secret: "secret", issuer: "someone-else", target: jwt.ErrTokenInvalidIssuer},
		{name: "expired", token: expired, secret: "secret", issuer: "finance-backend", target: jwt.ErrTokenExpired},
		{name: "garbage", token: "not-a-token", secret: "secret", target: jwt.ErrTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := utils.ParseAndValidateJWT(tt.token, tt.secret, tt.issuer)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}
