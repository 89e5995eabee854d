package ports

import (
	"context"
	"time"
)

// TokenDenylist records revoked token ids (jti) until their natural expiry.
// Logout revokes; the auth middleware checks on every request.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
