// Package flock wraps advisory whole-file locks: flock(2) on unix and
// LockFileEx on windows. The OS drops a lock when its holder exits.
package flock

import (
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	initialBackoff = 5 * time.Millisecond
	maxBackoff     = 50 * time.Millisecond
)

// ErrTimeout is returned by Lock when the file stays locked past the timeout
var ErrTimeout = errors.New("lock timeout")

// Lock takes an exclusive lock on f, polling with capped exponential backoff
// until timeout elapses.
func Lock(f *os.File, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	backoff := initialBackoff
	for {
		err := TryLock(f)
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w after %v: %v", ErrTimeout, timeout, err)
		}
		time.Sleep(backoff)
		backoff = min(backoff*2, maxBackoff)
	}
}

// TryLock, Unlock and ProcessAlive live in flock_unix.go and flock_windows.go
