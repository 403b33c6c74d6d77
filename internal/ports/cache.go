package ports

import (
	"context"
	"time"
)

// RateLimitStore counts events per key inside a fixed window. It backs the
// per-email throttle on OTP issuance.
type RateLimitStore interface {
	// Increment bumps the counter for key, starting a new window when none
	// is active, and returns the count inside the current window.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}
