//go:build unix

package flock

import (
	"os"
	"syscall"
)

// TryLock takes an exclusive lock on f without blocking. It fails if another
// process holds the lock.
func TryLock(f *os.File) error {
	return syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
}

// Unlock releases a lock taken by TryLock or Lock
func Unlock(f *os.File) error {
	return syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
}

// ProcessAlive reports whether pid names a running process
func ProcessAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// FindProcess always succeeds on unix; signal 0 probes for existence
	return process.Signal(syscall.Signal(0)) == nil
}
