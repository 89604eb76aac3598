package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys so a retried mutation is not
// applied twice.
type IdempotencyStore interface {
	// Reserve marks a key as used with a TTL.
	// Returns true if the key was newly reserved, false if it was already used.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Seen checks whether a key has already been used
	Seen(ctx context.Context, key string) (bool, error)

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is how long a used key blocks replays. Default: 24 hours.
	TTL time.Duration

	// Enabled determines whether idempotency checking is enabled
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
