package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mintToken создает подписанный HS256 токен с заданным exp
func mintToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

// mintTokenNoExp создает токен без exp claim
func mintTokenNoExp(t *testing.T) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestTokenExpiry(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)

	expiry, err := TokenExpiry(mintToken(t, expiresAt))
	require.NoError(t, err)
	assert.Equal(t, expiresAt.Unix(), expiry.Unix())
}

func TestTokenExpiry_DecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "garbage",
			token: "not-a-jwt",
		},
		{
			name:  "two segments only",
			token: "aaaa.bbbb",
		},
		{
			name:  "invalid base64 payload",
			token: "aaaa.%%%%.cccc",
		},
		{
			name:  "empty",
			token: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TokenExpiry(tt.token)
			assert.ErrorIs(t, err, ErrTokenDecode)
		})
	}
}

func TestTokenExpiry_MissingExp(t *testing.T) {
	_, err := TokenExpiry(mintTokenNoExp(t))
	assert.ErrorIs(t, err, ErrTokenDecode)
}
