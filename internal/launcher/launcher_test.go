// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/pylaunch/pylaunch/internal/runtime"
	"github.com/pylaunch/pylaunch/internal/testutil"
)

func TestEnsureEnv_ExistingEnvRunsNothing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(t *testing.T, p *testutil.Project)
	}{
		{name: "directory", setup: func(t *testing.T, p *testutil.Project) {
			testutil.MustMkdirAll(t, p.Venv(), 0o755)
		}},
		{name: "regular file", setup: func(t *testing.T, p *testutil.Project) {
			testutil.MustWriteFile(t, p.Venv(), "not a venv", 0o644)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := testutil.NewProject(t)
			tt.setup(t, p)
			runner := newFakeRunner(t)

			created, err := New(Options{Runner: runner}).EnsureEnv(context.Background(), p.Root)
			if err != nil {
				t.Fatalf("EnsureEnv() error: %v", err)
			}
			if created {
				t.Error("created = true for an existing environment")
			}
			if len(runner.calls) != 0 {
				t.Errorf("expected no commands, got %v", runner.argvs())
			}
		})
	}
}

func TestEnsureEnv_UncheckableEnvRunsNothing(t *testing.T) {
	t.Parallel()

	if hostGOOS() == "windows" {
		t.Skip("a path below a regular file reports not-exist on Windows")
	}

	// A regular file as the root makes Lstat fail with ENOTDIR.
	notADir := filepath.Join(t.TempDir(), "file")
	testutil.MustWriteFile(t, notADir, "", 0o644)
	runner := newFakeRunner(t)

	created, err := New(Options{Runner: runner}).EnsureEnv(context.Background(), notADir)
	if created {
		t.Error("created should be false")
	}
	if !errors.Is(err, ErrProvisioningFailed) {
		t.Fatalf("expected ErrProvisioningFailed, got %v", err)
	}
	var checkErr *EnvCheckError
	if !errors.As(err, &checkErr) {
		t.Fatalf("expected *EnvCheckError, got %T", err)
	}
	if checkErr.Path != filepath.Join(notADir, ".venv") {
		t.Errorf("Path = %q", checkErr.Path)
	}
	var te *ToolError
	if errors.As(err, &te) || strings.Contains(err.Error(), "could not be started") {
		t.Errorf("the tool never ran, got %v", err)
	}
	if len(runner.calls) != 0 {
		t.Errorf("expected no commands, got %v", runner.argvs())
	}
}

func TestEnsureEnv_CreatesMissingEnv(t *testing.T) {
	t.Parallel()

	p := testutil.NewProject(t)
	runner := newFakeRunner(t)

	created, err := New(Options{Runner: runner}).EnsureEnv(context.Background(), p.Root)
	if err != nil {
		t.Fatalf("EnsureEnv() error: %v", err)
	}
	if !created {
		t.Error("created = false, want true")
	}
	if want := [][]string{{"uv", "venv", ".venv"}}; !reflect.DeepEqual(runner.argvs(), want) {
		t.Errorf("commands = %v, want %v", runner.argvs(), want)
	}
	if runner.calls[0].Dir != p.Root {
		t.Errorf("Dir = %q, want %q", runner.calls[0].Dir, p.Root)
	}
}

func TestEnsureEnv_Failures(t *testing.T) {
	t.Parallel()

	spawnErr := &exec.Error{Name: "uv", Err: exec.ErrNotFound}
	tests := []struct {
		name        string
		result      *runtime.Result
		wantStarted bool
		wantCode    runtime.ExitCode
	}{
		{name: "non-zero exit", result: runtime.NewExitCodeResult(2), wantStarted: true, wantCode: 2},
		{name: "tool not found", result: runtime.NewErrorResult(1, spawnErr), wantStarted: false, wantCode: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := testutil.NewProject(t)
			runner := newFakeRunner(t)
			runner.handle = func(testing.TB, runtime.Command) *runtime.Result { return tt.result }

			created, err := New(Options{Runner: runner}).EnsureEnv(context.Background(), p.Root)
			if created {
				t.Error("created should be false on failure")
			}
			if !errors.Is(err, ErrProvisioningFailed) {
				t.Fatalf("expected ErrProvisioningFailed, got %v", err)
			}
			var te *ToolError
			if !errors.As(err, &te) {
				t.Fatalf("expected *ToolError, got %T", err)
			}
			if te.Started() != tt.wantStarted || te.ExitCode != tt.wantCode {
				t.Errorf("ToolError = %+v", te)
			}
			if !tt.wantStarted && !errors.Is(err, exec.ErrNotFound) {
				t.Errorf("spawn error should be reachable, got %v", err)
			}
		})
	}
}

func TestSync_RunsOnce(t *testing.T) {
	t.Parallel()

	p := testutil.NewProject(t, testutil.WithVenv())
	runner := newFakeRunner(t)

	if err := New(Options{Runner: runner}).Sync(context.Background(), p.Root); err != nil {
		t.Fatalf("Sync() error: %v", err)
	}
	if want := [][]string{{"uv", "sync"}}; !reflect.DeepEqual(runner.argvs(), want) {
		t.Errorf("commands = %v, want %v", runner.argvs(), want)
	}
}

func TestSync_Failure(t *testing.T) {
	t.Parallel()

	p := testutil.NewProject(t, testutil.WithVenv())
	runner := newFakeRunner(t)
	runner.handle = exitWith("sync", 1)

	err := New(Options{Runner: runner}).Sync(context.Background(), p.Root)
	if !errors.Is(err, ErrSyncFailed) {
		t.Fatalf("expected ErrSyncFailed, got %v", err)
	}
	if errors.Is(err, ErrProvisioningFailed) {
		t.Error("sync failure must not match ErrProvisioningFailed")
	}
}

func TestRun_FreshProject(t *testing.T) {
	t.Parallel()

	p := testutil.NewProject(t)
	runner := newFakeRunner(t)
	l := newTestLauncher(t, p.Root, runner)

	res, err := l.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := [][]string{
		{"uv", "venv", ".venv"},
		{"uv", "sync"},
		{p.Interpreter(), "main.py"},
	}
	if !reflect.DeepEqual(runner.argvs(), want) {
		t.Errorf("commands = %v, want %v", runner.argvs(), want)
	}
	for _, c := range runner.calls {
		if c.Dir != p.Root {
			t.Errorf("%q ran in %q, want %q", c.String(), c.Dir, p.Root)
		}
	}
	if res.Root != p.Root || res.Entry != "main.py" || !res.EnvCreated || res.ExitCode != 0 {
		t.Errorf("Result = %+v", res)
	}
}

func TestRun_ExistingEnvSkipsCreation(t *testing.T) {
	t.Parallel()

	p := testutil.NewProject(t, testutil.WithVenv(), testutil.WithNestedEntry("game"))
	runner := newFakeRunner(t)
	l := newTestLauncher(t, p.Dir(t, "bin"), runner)

	res, err := l.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := [][]string{
		{"uv", "sync"},
		{p.Interpreter(), "game/main.py"},
	}
	if !reflect.DeepEqual(runner.argvs(), want) {
		t.Errorf("commands = %v, want %v", runner.argvs(), want)
	}
	if res.EnvCreated {
		t.Error("EnvCreated should be false")
	}
	if res.Entry != "game/main.py" {
		t.Errorf("Entry = %q", res.Entry)
	}
}

func TestRun_ForwardsArgsAndStreams(t *testing.T) {
	t.Parallel()

	p := testutil.NewProject(t, testutil.WithVenv())
	runner := newFakeRunner(t)
	var stdout, stderr bytes.Buffer
	stdin := strings.NewReader("")

	l := New(Options{
		Runner:     runner,
		Tool:       []string{"python", "-m", "uv"},
		Stdin:      stdin,
		Stdout:     &stdout,
		Stderr:     &stderr,
		Executable: executableIn(t, p.Root),
	})

	if _, err := l.Run(context.Background(), []string{"--level", "3"}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := [][]string{
		{"python", "-m", "uv", "sync"},
		{p.Interpreter(), "main.py", "--level", "3"},
	}
	if !reflect.DeepEqual(runner.argvs(), want) {
		t.Errorf("commands = %v, want %v", runner.argvs(), want)
	}
	for _, c := range runner.calls {
		if c.Stdin != stdin || c.Stdout != &stdout || c.Stderr != &stderr {
			t.Errorf("%q did not receive the launcher's streams", c.String())
		}
	}
}

func TestRun_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		venv      bool
		handle    func(testing.TB, runtime.Command) *runtime.Result
		wantStage Stage
		wantErr   error
		wantCalls int
	}{
		{
			name:      "provisioning fails",
			handle:    exitWith("venv", 1),
			wantStage: StageEnsureEnv,
			wantErr:   ErrProvisioningFailed,
			wantCalls: 1,
		},
		{
			name:      "sync fails",
			venv:      true,
			handle:    exitWith("sync", 2),
			wantStage: StageSync,
			wantErr:   ErrSyncFailed,
			wantCalls: 1,
		},
		{
			name: "venv created without interpreter",
			handle: func(testing.TB, runtime.Command) *runtime.Result {
				return runtime.NewSuccessResult()
			},
			wantStage: StageResolveInterpreter,
			wantErr:   ErrInterpreterMissing,
			wantCalls: 2,
		},
		{
			name: "entry cannot start",
			venv: true,
			handle: func(t testing.TB, cmd runtime.Command) *runtime.Result {
				if strings.HasSuffix(cmd.Name, "python") || strings.HasSuffix(cmd.Name, "python.exe") {
					return runtime.NewErrorResult(1, os.ErrPermission)
				}
				return createVenvOnRequest(t, cmd)
			},
			wantStage: StageLaunch,
			wantErr:   ErrChildLaunchFailed,
			wantCalls: 2,
		},
		{
			name:      "entry exits non-zero",
			venv:      true,
			handle:    exitWith("main.py", 1),
			wantStage: StageLaunch,
			wantErr:   ErrChildExitedWithError,
			wantCalls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var opts []testutil.ProjectOption
			if tt.venv {
				opts = append(opts, testutil.WithVenv())
			}
			p := testutil.NewProject(t, opts...)
			runner := newFakeRunner(t)
			runner.handle = tt.handle

			_, err := newTestLauncher(t, p.Root, runner).Run(context.Background(), nil)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			var se *StageError
			if !errors.As(err, &se) {
				t.Fatalf("expected *StageError, got %T", err)
			}
			if se.Stage != tt.wantStage {
				t.Errorf("Stage = %q, want %q", se.Stage, tt.wantStage)
			}
			if len(runner.calls) != tt.wantCalls {
				t.Errorf("expected %d commands, got %v", tt.wantCalls, runner.argvs())
			}
		})
	}
}

func TestRun_ChildExitCodeReported(t *testing.T) {
	t.Parallel()

	p := testutil.NewProject(t, testutil.WithVenv())
	runner := newFakeRunner(t)
	runner.handle = exitWith("main.py", 3)

	res, err := newTestLauncher(t, p.Root, runner).Run(context.Background(), nil)
	var ce *ChildExitError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ChildExitError, got %v", err)
	}
	if ce.Code != 3 || res.ExitCode != 3 {
		t.Errorf("exit code = %d / %d, want 3", ce.Code, res.ExitCode)
	}
}

func TestRun_RootNotFound(t *testing.T) {
	t.Parallel()

	runner := newFakeRunner(t)
	l := New(Options{
		Layout:     Layout{EntryScript: "pylaunch-no-such-entry.py", MaxDepth: 3},
		Runner:     runner,
		Executable: executableIn(t, t.TempDir()),
	})

	res, err := l.Run(context.Background(), nil)
	if !errors.Is(err, ErrRootNotFound) {
		t.Fatalf("expected ErrRootNotFound, got %v", err)
	}
	if res.Root != "" {
		t.Errorf("Root = %q, want empty", res.Root)
	}
	if len(runner.calls) != 0 {
		t.Errorf("no commands should run, got %v", runner.argvs())
	}
}

func TestRun_PathResolutionFailure(t *testing.T) {
	t.Parallel()

	runner := newFakeRunner(t)
	l := New(Options{
		Runner:     runner,
		Executable: func() (string, error) { return "", errors.New("unsupported platform") },
	})

	_, err := l.Run(context.Background(), nil)
	if !errors.Is(err, ErrPathResolution) {
		t.Fatalf("expected ErrPathResolution, got %v", err)
	}
	if len(runner.calls) != 0 {
		t.Errorf("no commands should run, got %v", runner.argvs())
	}
}

func TestRun_LogsStages(t *testing.T) {
	t.Parallel()

	p := testutil.NewProject(t, testutil.WithPyproject("[project]\nname = \"space-game\"\nversion = \"1.2\"\ndependencies = [\"pygame\"]\n"))
	var buf bytes.Buffer
	l := New(Options{
		Runner:     newFakeRunner(t),
		Logger:     log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}),
		Executable: executableIn(t, p.Root),
	})

	if _, err := l.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"project root", "creating virtual environment", "space-game 1.2", "synchronizing dependencies", "launching"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_MissingManifestOnlyWarns(t *testing.T) {
	t.Parallel()

	p := testutil.NewProject(t, testutil.WithVenv())
	var buf bytes.Buffer
	l := New(Options{
		Runner:     newFakeRunner(t),
		Logger:     log.New(&buf),
		Executable: executableIn(t, p.Root),
	})

	if _, err := l.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(buf.String(), "no pyproject.toml") {
		t.Errorf("expected a warning about the missing manifest:\n%s", buf.String())
	}
}

func TestPlan_RunsNothing(t *testing.T) {
	t.Parallel()

	p := testutil.NewProject(t, testutil.WithPyproject("[project]\nname = \"demo\"\n"))
	runner := newFakeRunner(t)
	l := newTestLauncher(t, p.Root, runner)

	plan, err := l.Plan(context.Background(), []string{"--fast"})
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("Plan must not run commands, got %v", runner.argvs())
	}

	if plan.Root.Dir != p.Root || plan.EnvExists || plan.InterpreterExists {
		t.Errorf("unexpected plan state: %+v", plan)
	}
	if plan.Project == nil || plan.Project.Name != "demo" {
		t.Errorf("Project = %+v", plan.Project)
	}

	var got [][]string
	for _, c := range plan.Commands {
		got = append(got, c.Argv())
	}
	want := [][]string{
		{"uv", "venv", ".venv"},
		{"uv", "sync"},
		{p.Interpreter(), "main.py", "--fast"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("commands = %v, want %v", got, want)
	}
	if _, err := os.Stat(p.Venv()); !os.IsNotExist(err) {
		t.Error("Plan must not create the environment")
	}
}

func TestPlan_ExistingEnv(t *testing.T) {
	t.Parallel()

	p := testutil.NewProject(t, testutil.WithVenv())
	plan, err := newTestLauncher(t, p.Root, newFakeRunner(t)).Plan(context.Background(), nil)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if !plan.EnvExists || !plan.InterpreterExists {
		t.Errorf("unexpected plan state: %+v", plan)
	}
	if len(plan.Commands) != 2 {
		t.Errorf("expected sync and launch only, got %d commands", len(plan.Commands))
	}
}
