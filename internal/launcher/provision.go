// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pylaunch/pylaunch/internal/runtime"
)

// EnsureEnv creates the project's virtual environment when it does not exist
// yet. Anything already present at the environment path counts as existing;
// its contents are not inspected. created reports whether the tool was run.
func (l *Launcher) EnsureEnv(ctx context.Context, root string) (created bool, err error) {
	envPath := l.EnvPath(root)

	exists, err := pathExists(envPath)
	if err != nil {
		return false, &EnvCheckError{Path: envPath, Err: err}
	}
	if exists {
		l.logger.Debug("virtual environment present", "path", envPath)
		return false, nil
	}

	cmd := l.venvCommand(root)
	l.logger.Info("creating virtual environment", "path", envPath)
	l.logger.Debug("running", "cmd", cmd.String(), "dir", root)

	if err := l.runTool(ctx, StageEnsureEnv, cmd); err != nil {
		return false, err
	}
	return true, nil
}

func (l *Launcher) venvCommand(root string) runtime.Command {
	return l.toolCommand(root, "venv", l.envDir)
}

// runTool runs a package-manager command and converts any failure into a
// *ToolError for stage.
func (l *Launcher) runTool(ctx context.Context, stage Stage, cmd runtime.Command) error {
	result := l.runner.Run(ctx, cmd)
	if !result.Started() {
		return &ToolError{Stage: stage, Argv: cmd.Argv(), ExitCode: result.ExitCode, Err: result.Error}
	}
	if !result.Success() {
		return &ToolError{Stage: stage, Argv: cmd.Argv(), ExitCode: result.ExitCode}
	}
	return nil
}

func pathExists(p string) (bool, error) {
	_, err := os.Lstat(p)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func joinRoot(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
