package auth

import (
	"context"
	"time"
)

// Denylist records revoked token ids until the tokens would have expired anyway.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	// Purge drops entries that expired before now and reports how many were removed.
	Purge(ctx context.Context, now time.Time) (int, error)
}
