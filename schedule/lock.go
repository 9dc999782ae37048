/*
lock.go - Timeout-bounded mutual exclusion for write paths

PURPOSE:
  Every write path (create, batch-create, status update) holds a single
  named advisory lock for the duration of its read-check-write sequence.
  The lock is injectable so tests can substitute a fake with controllable
  timeout behavior, and so a deployment sharing the store across processes
  can plug in an external lock.

CONTRACT:
  - Acquire fails fast once the timeout elapses; it never blocks
    indefinitely. A timed-out caller has mutated nothing.
  - The lock is non-reentrant. A logical operation acquires it exactly
    once; batch processing runs against the already-held lock instead of
    reacquiring per item.
  - Among writers that acquire successfully, writes are totally ordered.
    No FIFO fairness is guaranteed beyond what the primitive provides.

SEE ALSO:
  - service.go: The only acquirer
*/
package schedule

import (
	"context"
	"sync"
	"time"
)

// Locker serializes write access to the record store.
type Locker interface {
	// Acquire blocks until the lock is held, the timeout elapses, or ctx is
	// canceled. On success it returns a release function that must be called
	// exactly once; calling it again is a no-op. On timeout it returns
	// ErrLockTimeout and the caller must not touch the store.
	Acquire(ctx context.Context, timeout time.Duration) (release func(), err error)
}

// =============================================================================
// TIMEOUT MUTEX - In-process Locker implementation
// =============================================================================

// TimeoutMutex is a single-process advisory lock built on a buffered
// channel, which gives Acquire a way to wait with a deadline that
// sync.Mutex does not.
type TimeoutMutex struct {
	slot chan struct{}
}

func NewTimeoutMutex() *TimeoutMutex {
	return &TimeoutMutex{slot: make(chan struct{}, 1)}
}

// Acquire implements Locker.
func (m *TimeoutMutex) Acquire(ctx context.Context, timeout time.Duration) (func(), error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case m.slot <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-m.slot }) }, nil
	case <-timer.C:
		return nil, ErrLockTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
