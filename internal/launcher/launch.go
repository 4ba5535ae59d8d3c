// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"

	"github.com/pylaunch/pylaunch/internal/runtime"
)

// LaunchEntry runs the entry script with interpreter, working directory root
// and the launcher's own console streams. It blocks until the child exits and
// returns the child's exit code.
func (l *Launcher) LaunchEntry(ctx context.Context, root, interpreter, entry string, args []string) (runtime.ExitCode, error) {
	cmd := l.entryCommand(root, interpreter, entry, args)
	l.logger.Info("launching", "entry", entry)
	l.logger.Debug("running", "cmd", cmd.String(), "dir", root)

	result := l.runner.Run(ctx, cmd)
	if !result.Started() {
		return result.ExitCode, &ChildLaunchError{Argv: cmd.Argv(), Err: result.Error}
	}
	if !result.Success() {
		return result.ExitCode, &ChildExitError{Code: result.ExitCode}
	}
	return result.ExitCode, nil
}

// entryCommand keeps entry's forward slashes on every platform; Python
// accepts them on Windows too.
func (l *Launcher) entryCommand(root, interpreter, entry string, args []string) runtime.Command {
	argv := append([]string{entry}, args...)
	return runtime.Command{
		Name:   interpreter,
		Args:   argv,
		Dir:    root,
		Stdin:  l.stdin,
		Stdout: l.stdout,
		Stderr: l.stderr,
	}
}
