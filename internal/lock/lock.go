// Package lock provides per-owner mutual exclusion for read-then-write
// sequences on grocery data.
package lock

import (
	"context"
	"errors"
)

// ErrTimeout is returned when a lock could not be acquired within the
// configured wait.
var ErrTimeout = errors.New("lock: timed out waiting for lock")

// Locker serialises work on a key. Acquire blocks until the key is free or
// ctx is done and returns the function releasing the lock.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}
