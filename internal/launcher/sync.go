// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"errors"

	"github.com/pylaunch/pylaunch/internal/manifest"
	"github.com/pylaunch/pylaunch/internal/runtime"
)

// Sync brings the environment in line with the project's declared
// dependencies. It runs on every launch, whether or not EnsureEnv just
// created the environment.
func (l *Launcher) Sync(ctx context.Context, root string) error {
	l.logProject(root)

	cmd := l.syncCommand(root)
	l.logger.Info("synchronizing dependencies")
	l.logger.Debug("running", "cmd", cmd.String(), "dir", root)

	return l.runTool(ctx, StageSync, cmd)
}

func (l *Launcher) syncCommand(root string) runtime.Command {
	return l.toolCommand(root, "sync")
}

// logProject reports what pyproject.toml declares. The manifest is optional;
// problems reading it are left for the tool to diagnose.
func (l *Launcher) logProject(root string) {
	project, err := manifest.Load(root)
	switch {
	case errors.Is(err, manifest.ErrManifestNotFound):
		l.logger.Warn("no pyproject.toml in project root", "dir", root)
	case err != nil:
		l.logger.Warn("could not read pyproject.toml", "err", err)
	default:
		l.logger.Info("project", "name", project.DisplayName(), "dependencies", len(project.Dependencies))
		if project.RequiresPython != "" {
			l.logger.Debug("python requirement", "requires-python", project.RequiresPython)
		}
	}
}
