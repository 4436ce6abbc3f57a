package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/marcus/p75/internal/flock"
)

const (
	lockFileName   = "p75.lock"
	defaultTimeout = 500 * time.Millisecond
)

// writeLocker serializes writers across processes sharing a data directory.
// The OS releases the lock if the holder dies.
type writeLocker struct {
	lockPath string
	lockFile *os.File
}

func newWriteLocker(baseDir string) *writeLocker {
	return &writeLocker{
		lockPath: filepath.Join(baseDir, lockFileName),
	}
}

// acquire takes the lock or gives up after timeout. The error names the
// current holder.
func (l *writeLocker) acquire(timeout time.Duration) error {
	f, err := os.OpenFile(l.lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	l.lockFile = f

	if err := flock.Lock(f, timeout); err != nil {
		holder := l.readHolder()
		l.lockFile.Close()
		l.lockFile = nil
		return fmt.Errorf("write %w\n  holder: %s\n  another p75 command may still be running", err, holder)
	}
	l.writeHolder()
	return nil
}

func (l *writeLocker) release() error {
	if l.lockFile == nil {
		return nil
	}
	l.lockFile.Truncate(0)
	flock.Unlock(l.lockFile)
	l.lockFile.Close()
	l.lockFile = nil
	return nil
}

func (l *writeLocker) writeHolder() {
	l.lockFile.Truncate(0)
	l.lockFile.Seek(0, 0)
	fmt.Fprintf(l.lockFile, "pid:%d\ncmd:%s\ntime:%s\n",
		os.Getpid(), filepath.Base(os.Args[0]), time.Now().Format(time.RFC3339))
	l.lockFile.Sync()
}

func (l *writeLocker) readHolder() string {
	data, err := os.ReadFile(l.lockPath)
	if err != nil {
		return "unknown"
	}

	fields := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if k, v, ok := strings.Cut(line, ":"); ok {
			fields[k] = v
		}
	}
	pid := fields["pid"]
	if pid == "" {
		return "unknown"
	}

	holder := fmt.Sprintf("pid:%s (%s) since %s", pid, fields["cmd"], fields["time"])
	if n, err := strconv.Atoi(pid); err == nil && !flock.ProcessAlive(n) {
		holder += " (STALE - process dead)"
	}
	return holder
}
