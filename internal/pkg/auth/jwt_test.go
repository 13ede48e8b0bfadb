package auth

import (
	"testing"
	"time"

	"github.com/Voidkillxx/FinalCaseStudy/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager(expiry time.Duration) *JWTManager {
	return NewJWTManager(&config.Config{
		App: config.AppConfig{Name: "storefront-test"},
		JWT: config.JWTConfig{
			Secret:      "0123456789abcdef0123456789abcdef",
			TokenExpiry: expiry,
		},
	})
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := testManager(time.Hour)

	token, err := m.GenerateSessionToken("sess-1")
	require.NoError(t, err)

	claims, err := m.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "session:sess-1", claims.Subject)
	assert.Equal(t, "storefront-test", claims.Issuer)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := testManager(time.Hour)

	expired, err := testManager(-time.Minute).GenerateSessionToken("sess-1")
	require.NoError(t, err)

	other := NewJWTManager(&config.Config{
		App: config.AppConfig{Name: "storefront-test"},
		JWT: config.JWTConfig{Secret: "ffffffffffffffffffffffffffffffff", TokenExpiry: time.Hour},
	})
	forged, err := other.GenerateSessionToken("sess-1")
	require.NoError(t, err)

	wrongType, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		SessionID: "sess-1",
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "storefront-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	tests := map[string]string{
		"expired":    expired,
		"forged":     forged,
		"wrong type": wrongType,
		"garbage":    "not-a-token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.ValidateSessionToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc", ExtractTokenFromHeader("Bearer abc"))
	assert.Equal(t, "abc", ExtractTokenFromHeader("bearer abc"))
	assert.Equal(t, "", ExtractTokenFromHeader("Basic abc"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
}
