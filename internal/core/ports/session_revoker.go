package ports

import (
	"context"
	"time"
)

// SessionRevoker remembers session IDs that were logged out before expiry.
type SessionRevoker interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}
