// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
)

// ErrLockUnavailable is returned on platforms without flock. Callers proceed
// unlocked.
var ErrLockUnavailable = errors.New("project lock not available on this platform")

// lockFilePathWith returns the lock file for a project root. Lock files live
// in $XDG_RUNTIME_DIR (per-user tmpfs) with a fallback to os.TempDir(), named
// after a hash of the root so the project tree stays untouched.
func lockFilePathWith(root string, getenv func(string) string) string {
	dir := getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	sum := sha256.Sum256([]byte(filepath.Clean(root)))
	return filepath.Join(dir, "pylaunch-"+hex.EncodeToString(sum[:8])+".lock")
}
