package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTClaims represents the identity carried by an access token.
type JWTClaims struct {
	UserID uuid.UUID
	Email  string
}

// TokenValidatorPort validates access tokens issued by the identity service.
type TokenValidatorPort interface {
	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(token string) (*JWTClaims, error)
}

// RateLimiterPort defines rate limiting operations.
type RateLimiterPort interface {
	// Allow checks if a request is allowed within rate limits.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// GetRemaining returns remaining requests in window.
	GetRemaining(ctx context.Context, key string, limit int, window time.Duration) (int, error)
}
