package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/safety-lms/internal"
)

const DefaultIssuer = "safety-lms"

type Service struct {
	tokens TokenGenerator
	users  UserResolver
	logger *slog.Logger
}

func NewService(tokens TokenGenerator, users UserResolver, logger *slog.Logger) *Service {
	return &Service{
		tokens: tokens,
		users:  users,
		logger: logger,
	}
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &JWTTokenGenerator{
		Secret:         []byte(secret),
		Issuer:         DefaultIssuer,
		AccessTokenTTL: ttl,
		now:            time.Now,
	}
}

// Authenticate validates a bearer token and loads the authorization context of
// its subject. Every failure is reported as UNAUTHORIZED.
func (s *Service) Authenticate(ctx context.Context, token string) (*internal.UserContext, error) {
	if token == "" {
		return nil, internal.NewUnauthorizedError("missing authorization token")
	}

	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil, internal.NewUnauthorizedError("token expired")
		}
		return nil, internal.NewUnauthorizedError("invalid token")
	}

	res := s.users.ResolveUserContext(ctx, claims.UserID)
	if !res.Success {
		s.logger.Warn("token subject rejected", "user_id", claims.UserID, "code", res.Code)
		if res.Code == internal.ErrCodeDatabase {
			return nil, internal.NewDatabaseError("failed to load user", errors.New(res.Error))
		}
		return nil, internal.NewUnauthorizedError("user not found")
	}

	uc := res.Data
	return &uc, nil
}

// IssueToken signs an access token for userID.
func (s *Service) IssueToken(userID string) (string, error) {
	return s.tokens.GenerateAccessToken(userID)
}

// GenerateAccessToken creates a new access token
func (j *JWTTokenGenerator) GenerateAccessToken(userID string) (string, error) {
	now := j.clock()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer), jwt.WithTimeFunc(j.clock))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (j *JWTTokenGenerator) clock() time.Time {
	if j.now == nil {
		return time.Now()
	}
	return j.now()
}
