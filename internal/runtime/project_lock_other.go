// SPDX-License-Identifier: MPL-2.0

//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package runtime

// ProjectLock is the stub for platforms without flock. Release is a no-op.
type ProjectLock struct{}

// AcquireProjectLock always returns ErrLockUnavailable on this platform.
func AcquireProjectLock(string) (*ProjectLock, error) {
	return nil, ErrLockUnavailable
}

// Release is a no-op.
func (l *ProjectLock) Release() {}
