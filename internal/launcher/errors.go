// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pylaunch/pylaunch/internal/runtime"
)

// Stage names one step of the launch pipeline.
type Stage string

const (
	StageLocateRoot         Stage = "locate project root"
	StageEnsureEnv          Stage = "create virtual environment"
	StageSync               Stage = "synchronize dependencies"
	StageResolveInterpreter Stage = "resolve interpreter"
	StageLaunch             Stage = "launch entry script"
)

var (
	// ErrPathResolution is returned when the launcher cannot determine its own location.
	ErrPathResolution = errors.New("cannot determine launcher location")
	// ErrRootNotFound is returned when no ancestor directory holds the entry script.
	ErrRootNotFound = errors.New("project root not found")
	// ErrProvisioningFailed is returned when the environment creation command fails.
	ErrProvisioningFailed = errors.New("virtual environment creation failed")
	// ErrSyncFailed is returned when the dependency sync command fails.
	ErrSyncFailed = errors.New("dependency synchronization failed")
	// ErrInterpreterMissing is returned when the environment has no interpreter.
	ErrInterpreterMissing = errors.New("interpreter missing")
	// ErrChildLaunchFailed is returned when the entry script's process cannot be started.
	ErrChildLaunchFailed = errors.New("failed to start entry script")
	// ErrChildExitedWithError is returned when the entry script exits non-zero.
	ErrChildExitedWithError = errors.New("entry script exited with an error")
)

type (
	// StageError wraps the error that aborted the pipeline with the stage it came from.
	StageError struct {
		Stage Stage
		Err   error
	}

	// PathResolutionError wraps the failure to resolve the executable path.
	PathResolutionError struct {
		Err error
	}

	// RootNotFoundError records where the search for a project root started
	// and how many directories it examined.
	RootNotFoundError struct {
		Start    string
		Examined int
		Layout   Layout
	}

	// ToolError describes a failed package-manager invocation.
	// Err is set when the tool could not be started at all; otherwise the
	// tool ran and exited with ExitCode.
	ToolError struct {
		Stage    Stage
		Argv     []string
		ExitCode runtime.ExitCode
		Err      error
	}

	// EnvCheckError reports that the environment path could not be inspected,
	// so the tool was never run.
	EnvCheckError struct {
		Path string
		Err  error
	}

	// InterpreterMissingError names the interpreter path that was expected.
	InterpreterMissingError struct {
		Path string
	}

	// ChildLaunchError wraps the failure to start the entry script's process.
	ChildLaunchError struct {
		Argv []string
		Err  error
	}

	// ChildExitError carries the non-zero exit code of the entry script.
	ChildExitError struct {
		Code runtime.ExitCode
	}
)

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func (e *PathResolutionError) Error() string {
	return fmt.Sprintf("%s: %v", ErrPathResolution, e.Err)
}

func (e *PathResolutionError) Unwrap() []error { return []error{ErrPathResolution, e.Err} }

func (e *RootNotFoundError) Error() string {
	return fmt.Sprintf("%s: no %s found within %d directories above %s",
		ErrRootNotFound, strings.Join(e.Layout.candidates(), " or "), e.Examined, e.Start)
}

func (e *RootNotFoundError) Unwrap() error { return ErrRootNotFound }

func (e *ToolError) Error() string {
	cmdline := strings.Join(e.Argv, " ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %q could not be started: %v", e.sentinel(), cmdline, e.Err)
	}
	return fmt.Sprintf("%s: %q exited with code %d", e.sentinel(), cmdline, e.ExitCode)
}

// Unwrap exposes the stage sentinel and, when present, the spawn error.
func (e *ToolError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.sentinel(), e.Err}
	}
	return []error{e.sentinel()}
}

// Started reports whether the tool ran at all.
func (e *ToolError) Started() bool { return e.Err == nil }

func (e *ToolError) sentinel() error {
	if e.Stage == StageEnsureEnv {
		return ErrProvisioningFailed
	}
	return ErrSyncFailed
}

func (e *EnvCheckError) Error() string {
	return fmt.Sprintf("%s: cannot check %s: %v", ErrProvisioningFailed, e.Path, e.Err)
}

func (e *EnvCheckError) Unwrap() []error { return []error{ErrProvisioningFailed, e.Err} }

func (e *InterpreterMissingError) Error() string {
	return fmt.Sprintf("%s: %s does not exist", ErrInterpreterMissing, e.Path)
}

func (e *InterpreterMissingError) Unwrap() error { return ErrInterpreterMissing }

func (e *ChildLaunchError) Error() string {
	return fmt.Sprintf("%s: %v", ErrChildLaunchFailed, e.Err)
}

func (e *ChildLaunchError) Unwrap() []error { return []error{ErrChildLaunchFailed, e.Err} }

func (e *ChildExitError) Error() string {
	return fmt.Sprintf("%s: exit code %d", ErrChildExitedWithError, e.Code)
}

func (e *ChildExitError) Unwrap() error { return ErrChildExitedWithError }
