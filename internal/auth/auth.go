package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/safety-lms/internal"
)

// Claims represents JWT token claims. The subject is the profile id.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates bearer tokens.
type TokenGenerator interface {
	GenerateAccessToken(userID string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// UserResolver turns a token subject into the caller's authorization context.
type UserResolver interface {
	ResolveUserContext(ctx context.Context, userID string) internal.Result[internal.UserContext]
}

type JWTTokenGenerator struct {
	Secret         []byte
	Issuer         string
	AccessTokenTTL time.Duration
	now            func() time.Time
}

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
