package shared

import (
	"context"
	"time"
)

// Locker serializes commands against a single aggregate instance.
// Acquire blocks until the key is held or the context is done; the returned
// release function must be called exactly once.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}
