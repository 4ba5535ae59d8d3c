// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"errors"
	"io"
	"os"
	goruntime "runtime"

	"github.com/charmbracelet/log"

	"github.com/pylaunch/pylaunch/internal/runtime"
)

const (
	// DefaultTool is the package manager invoked for venv and sync.
	DefaultTool = "uv"
	// DefaultEnvDir is the environment directory name under the project root.
	DefaultEnvDir = ".venv"
)

type (
	// Options configures a Launcher. Zero values fall back to the defaults
	// used by the pylaunch binary.
	Options struct {
		Layout Layout
		// Tool is the package manager command line, program first.
		Tool []string
		// EnvDir is the environment directory name relative to the root.
		EnvDir string
		Runner runtime.Runner
		Logger *log.Logger

		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer

		// Executable reports the running executable's path (os.Executable).
		Executable func() (string, error)
		// GOOS selects the interpreter layout (runtime.GOOS).
		GOOS string
	}

	// Launcher runs the launch pipeline.
	Launcher struct {
		layout     Layout
		tool       []string
		envDir     string
		runner     runtime.Runner
		logger     *log.Logger
		stdin      io.Reader
		stdout     io.Writer
		stderr     io.Writer
		executable func() (string, error)
		goos       string
	}

	// Result summarizes a completed (or aborted) launch.
	Result struct {
		// Root is the located project root, empty if location failed.
		Root string
		// Entry is the entry script relative to Root.
		Entry string
		// EnvCreated reports whether this launch created the environment.
		EnvCreated bool
		// ExitCode is the entry script's exit status.
		ExitCode runtime.ExitCode
	}
)

// New creates a Launcher from opts.
func New(opts Options) *Launcher {
	l := &Launcher{
		layout:     opts.Layout.withDefaults(),
		tool:       opts.Tool,
		envDir:     opts.EnvDir,
		runner:     opts.Runner,
		logger:     opts.Logger,
		stdin:      opts.Stdin,
		stdout:     opts.Stdout,
		stderr:     opts.Stderr,
		executable: opts.Executable,
		goos:       opts.GOOS,
	}
	if len(l.tool) == 0 {
		l.tool = []string{DefaultTool}
	}
	if l.envDir == "" {
		l.envDir = DefaultEnvDir
	}
	if l.runner == nil {
		l.runner = runtime.NewNativeRunner()
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard)
	}
	if l.stdin == nil {
		l.stdin = os.Stdin
	}
	if l.stdout == nil {
		l.stdout = os.Stdout
	}
	if l.stderr == nil {
		l.stderr = os.Stderr
	}
	if l.executable == nil {
		l.executable = os.Executable
	}
	if l.goos == "" {
		l.goos = goruntime.GOOS
	}
	return l
}

// Run executes the pipeline. args are forwarded to the entry script.
// On failure the returned Result holds whatever was learned before the
// failing stage and the error is a *StageError.
func (l *Launcher) Run(ctx context.Context, args []string) (Result, error) {
	var res Result

	root, err := l.locate()
	if err != nil {
		return res, &StageError{Stage: StageLocateRoot, Err: err}
	}
	res.Root, res.Entry = root.Dir, root.Entry
	l.logger.Info("project root", "dir", root.Dir, "entry", root.Entry)

	unlock := l.lockProject(root.Dir)
	defer unlock()

	created, err := l.EnsureEnv(ctx, root.Dir)
	res.EnvCreated = created
	if err != nil {
		return res, &StageError{Stage: StageEnsureEnv, Err: err}
	}

	if err := l.Sync(ctx, root.Dir); err != nil {
		return res, &StageError{Stage: StageSync, Err: err}
	}
	// The application itself may run alongside other launches.
	unlock()

	interpreter, err := l.ResolveInterpreter(l.EnvPath(root.Dir))
	if err != nil {
		return res, &StageError{Stage: StageResolveInterpreter, Err: err}
	}

	code, err := l.LaunchEntry(ctx, root.Dir, interpreter, root.Entry, args)
	res.ExitCode = code
	if err != nil {
		return res, &StageError{Stage: StageLaunch, Err: err}
	}
	return res, nil
}

// EnvPath returns the environment directory for a project root.
func (l *Launcher) EnvPath(root string) string {
	return joinRoot(root, l.envDir)
}

func (l *Launcher) locate() (Root, error) {
	l.logger.Debug("searching for project root", "max_depth", l.layout.MaxDepth)
	return LocateRoot(l.executable, l.layout)
}

// lockProject serializes environment setup with other launchers of the same
// project. Failing to lock is not fatal. The returned func is idempotent.
func (l *Launcher) lockProject(root string) func() {
	lock, err := runtime.AcquireProjectLock(root)
	switch {
	case errors.Is(err, runtime.ErrLockUnavailable):
		return func() {}
	case err != nil:
		l.logger.Warn("could not lock project, continuing without", "err", err)
		return func() {}
	}
	return lock.Release
}

// toolCommand builds an invocation of the package manager in root.
func (l *Launcher) toolCommand(root string, args ...string) runtime.Command {
	argv := append(append([]string(nil), l.tool[1:]...), args...)
	return runtime.Command{
		Name:   l.tool[0],
		Args:   argv,
		Dir:    root,
		Stdin:  l.stdin,
		Stdout: l.stdout,
		Stderr: l.stderr,
	}
}
