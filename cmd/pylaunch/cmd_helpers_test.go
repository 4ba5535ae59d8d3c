// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	goruntime "runtime"
	"slices"
	"sync"
	"testing"

	"github.com/pylaunch/pylaunch/internal/launcher"
	"github.com/pylaunch/pylaunch/internal/runtime"
	"github.com/pylaunch/pylaunch/internal/testutil"
)

// recordingRunner records commands and creates the interpreter on "venv".
// Entry script runs exit with entryExit.
type recordingRunner struct {
	t         testing.TB
	mu        sync.Mutex
	argvs     [][]string
	entryExit runtime.ExitCode
	syncExit  runtime.ExitCode
}

func (r *recordingRunner) Run(_ context.Context, cmd runtime.Command) *runtime.Result {
	r.mu.Lock()
	r.argvs = append(r.argvs, cmd.Argv())
	r.mu.Unlock()

	switch {
	case slices.Contains(cmd.Args, "venv"):
		env := filepath.Join(cmd.Dir, cmd.Args[len(cmd.Args)-1])
		testutil.MustWriteFile(r.t, launcher.InterpreterPath(env, goruntime.GOOS), "", 0o755)
	case slices.Contains(cmd.Args, "sync"):
		return runtime.NewExitCodeResult(r.syncExit)
	default:
		return runtime.NewExitCodeResult(r.entryExit)
	}
	return runtime.NewSuccessResult()
}

type harness struct {
	project *testutil.Project
	runner  *recordingRunner
	stdout  bytes.Buffer
	stderr  bytes.Buffer
	app     *App
	cfgDir  string
}

// newHarness builds an App whose executable lives in the project root and
// whose user config directory is empty.
func newHarness(t *testing.T, opts ...testutil.ProjectOption) *harness {
	t.Helper()

	h := &harness{
		project: testutil.NewProject(t, opts...),
		cfgDir:  t.TempDir(),
	}
	h.runner = &recordingRunner{t: t}

	exe := filepath.Join(h.project.Root, "pylaunch")
	testutil.MustWriteFile(t, exe, "", 0o755)

	h.app = NewApp(Dependencies{
		Runner:     h.runner,
		Executable: func() (string, error) { return exe, nil },
		ConfigDir:  h.cfgDir,
		Stdin:      &bytes.Buffer{},
		Stdout:     &h.stdout,
		Stderr:     &h.stderr,
	})
	return h
}

func (h *harness) execute(args ...string) error {
	rootCmd := NewRootCommand(h.app)
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func (h *harness) writeUserConfig(t *testing.T, content string) {
	t.Helper()
	testutil.MustWriteFile(t, filepath.Join(h.cfgDir, "config.cue"), content, 0o644)
}
