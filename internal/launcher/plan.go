// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"

	"github.com/pylaunch/pylaunch/internal/manifest"
	"github.com/pylaunch/pylaunch/internal/runtime"
)

// Plan describes what Run would do from the current state of the project,
// without running anything.
type Plan struct {
	Root              Root
	EnvPath           string
	EnvExists         bool
	Interpreter       string
	InterpreterExists bool
	// Project is nil when pyproject.toml is missing or unreadable.
	Project *manifest.Project
	// Commands lists the invocations Run would make, in order.
	Commands []runtime.Command
}

// Plan locates the project root and reports the pipeline Run would execute
// with args. Only root location can fail.
func (l *Launcher) Plan(ctx context.Context, args []string) (Plan, error) {
	if err := ctx.Err(); err != nil {
		return Plan{}, err
	}

	root, err := l.locate()
	if err != nil {
		return Plan{}, &StageError{Stage: StageLocateRoot, Err: err}
	}

	p := Plan{
		Root:        root,
		EnvPath:     l.EnvPath(root.Dir),
		Interpreter: InterpreterPath(l.EnvPath(root.Dir), l.goos),
	}
	p.EnvExists, _ = pathExists(p.EnvPath)
	p.InterpreterExists = isRegularFile(p.Interpreter)
	if project, err := manifest.Load(root.Dir); err == nil {
		p.Project = project
	}

	if !p.EnvExists {
		p.Commands = append(p.Commands, l.venvCommand(root.Dir))
	}
	p.Commands = append(p.Commands,
		l.syncCommand(root.Dir),
		l.entryCommand(root.Dir, p.Interpreter, root.Entry, args),
	)
	return p, nil
}
