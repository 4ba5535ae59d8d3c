// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/pylaunch/pylaunch/internal/runtime"
	"github.com/pylaunch/pylaunch/internal/testutil"
)

// fakeRunner records every command and answers through handle.
// Without a handle, "venv" invocations create the host interpreter inside
// the requested environment and every command succeeds.
type fakeRunner struct {
	mu     sync.Mutex
	calls  []runtime.Command
	handle func(t testing.TB, cmd runtime.Command) *runtime.Result
	t      testing.TB
}

func newFakeRunner(t testing.TB) *fakeRunner {
	return &fakeRunner{t: t}
}

func (r *fakeRunner) Run(_ context.Context, cmd runtime.Command) *runtime.Result {
	r.mu.Lock()
	r.calls = append(r.calls, cmd)
	r.mu.Unlock()

	if r.handle != nil {
		return r.handle(r.t, cmd)
	}
	return createVenvOnRequest(r.t, cmd)
}

func (r *fakeRunner) argvs() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]string, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c.Argv())
	}
	return out
}

func createVenvOnRequest(t testing.TB, cmd runtime.Command) *runtime.Result {
	if i := slices.Index(cmd.Args, "venv"); i >= 0 && i+1 < len(cmd.Args) {
		env := filepath.Join(cmd.Dir, cmd.Args[i+1])
		testutil.MustWriteFile(t, InterpreterPath(env, hostGOOS()), "", 0o755)
	}
	return runtime.NewSuccessResult()
}

// exitWith fails commands whose argv contains word with code.
func exitWith(word string, code runtime.ExitCode) func(testing.TB, runtime.Command) *runtime.Result {
	return func(t testing.TB, cmd runtime.Command) *runtime.Result {
		if slices.Contains(cmd.Argv(), word) {
			return runtime.NewExitCodeResult(code)
		}
		return createVenvOnRequest(t, cmd)
	}
}

// executableIn places a fake launcher binary in dir and returns an
// os.Executable stand-in reporting it.
func executableIn(t testing.TB, dir string) func() (string, error) {
	t.Helper()
	exe := filepath.Join(dir, "pylaunch")
	testutil.MustWriteFile(t, exe, "", 0o755)
	return func() (string, error) { return exe, nil }
}

func newTestLauncher(t testing.TB, exeDir string, runner runtime.Runner) *Launcher {
	t.Helper()
	return New(Options{
		Layout:     DefaultLayout(),
		Runner:     runner,
		Executable: executableIn(t, exeDir),
	})
}
