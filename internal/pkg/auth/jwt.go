// internal/pkg/auth/jwt.go
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Voidkillxx/FinalCaseStudy/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

const tokenTypeSession = "session"

var ErrInvalidToken = errors.New("invalid session token")

// Claims identifies a storefront session. The backend's own bearer token is
// never placed in here; it stays server side in the session record.
type Claims struct {
	SessionID string `json:"sid"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTManager issues and validates session tokens
type JWTManager struct {
	secret []byte
	issuer string
	expiry time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{
		secret: []byte(cfg.JWT.Secret),
		issuer: cfg.App.Name,
		expiry: cfg.JWT.TokenExpiry,
	}
}

// Expiry is how long issued tokens stay valid
func (j *JWTManager) Expiry() time.Duration {
	return j.expiry
}

// GenerateSessionToken signs a token for the given session
func (j *JWTManager) GenerateSessionToken(sessionID string) (string, error) {
	now := time.Now().UTC()

	claims := &Claims{
		SessionID: sessionID,
		TokenType: tokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    j.issuer,
			Subject:   "session:" + sessionID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

// ValidateSessionToken parses a token and returns its claims
func (j *JWTManager) ValidateSessionToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithIssuer(j.issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenTypeSession {
		return nil, fmt.Errorf("%w: unexpected token type %q", ErrInvalidToken, claims.TokenType)
	}
	if claims.SessionID == "" {
		return nil, fmt.Errorf("%w: missing session id", ErrInvalidToken)
	}

	return claims, nil
}

// ExtractTokenFromHeader extracts JWT token from Authorization header
func ExtractTokenFromHeader(authHeader string) string {
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
