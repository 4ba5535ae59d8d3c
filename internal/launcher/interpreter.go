// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"path/filepath"

	"github.com/pylaunch/pylaunch/pkg/platform"
)

// InterpreterPath returns where a virtual environment at envPath keeps its
// Python interpreter on goos.
func InterpreterPath(envPath, goos string) string {
	if platform.IsWindows(goos) {
		return filepath.Join(envPath, "Scripts", "python"+platform.ExecutableSuffix(goos))
	}
	return filepath.Join(envPath, "bin", "python")
}

// ResolveInterpreter returns the interpreter inside envPath, failing with
// *InterpreterMissingError when no regular file is there.
func (l *Launcher) ResolveInterpreter(envPath string) (string, error) {
	interpreter := InterpreterPath(envPath, l.goos)
	if !isRegularFile(interpreter) {
		return "", &InterpreterMissingError{Path: interpreter}
	}
	l.logger.Debug("interpreter", "path", interpreter)
	return interpreter, nil
}
