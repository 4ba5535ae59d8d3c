// SPDX-License-Identifier: MPL-2.0

package platform

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// IsWindows reports whether goos names Windows.
func IsWindows(goos string) bool {
	return goos == Windows
}

// ExecutableSuffix returns the file suffix executables carry on goos.
func ExecutableSuffix(goos string) string {
	if IsWindows(goos) {
		return ".exe"
	}
	return ""
}
