// SPDX-License-Identifier: MPL-2.0

//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package runtime

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"
)

// ProjectLock is an exclusive flock serializing environment setup between
// launcher processes working on the same project. The kernel releases it
// when the process exits, so an orphaned lock file is harmless.
type ProjectLock struct {
	file *os.File
}

// AcquireProjectLock blocks until the lock for root is held.
func AcquireProjectLock(root string) (*ProjectLock, error) {
	lockPath := lockFilePathWith(root, os.Getenv)

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", lockPath, err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return nil, fmt.Errorf("flock %s: %w", lockPath, err)
	}

	return &ProjectLock{file: f}, nil
}

// Release unlocks and closes the lock file. Subsequent calls are no-ops.
func (l *ProjectLock) Release() {
	if l == nil || l.file == nil {
		return
	}
	if err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		log.Debug("flock unlock failed", "error", err)
	}
	if err := l.file.Close(); err != nil {
		log.Debug("lock file close failed", "error", err)
	}
	l.file = nil
}
