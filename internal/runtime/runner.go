// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
)

type (
	// Command is a single child process invocation.
	Command struct {
		// Name is the program to run. Bare names are resolved through PATH.
		Name string
		// Args are the arguments passed after Name.
		Args []string
		// Dir is the working directory. Empty means the launcher's own.
		Dir string
		// Env replaces the inherited environment when non-nil.
		Env []string
		// Stdin, Stdout and Stderr are handed to the child as-is.
		// Nil streams are connected to the null device.
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Runner runs a Command to completion.
	Runner interface {
		Run(ctx context.Context, cmd Command) *Result
	}

	// NativeRunner runs commands as host processes via os/exec.
	NativeRunner struct{}
)

// NewNativeRunner creates a runner backed by os/exec.
func NewNativeRunner() *NativeRunner {
	return &NativeRunner{}
}

// Argv returns the full argument vector, program name first.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// String renders the command line for logs and diagnostics.
func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// Run starts the command, waits for it to exit and classifies the outcome.
// The child inherits the launcher's environment unless Command.Env is set.
func (r *NativeRunner) Run(ctx context.Context, c Command) *Result {
	if c.Name == "" {
		return NewErrorResult(1, errors.New("no program to run"))
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	return extractExitCode(cmd.Run())
}

// extractExitCode determines the Result from a command execution error.
func extractExitCode(err error) *Result {
	if err == nil {
		return NewSuccessResult()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// Killed by a signal reports -1; surface it as a plain failure.
		code := ExitCode(exitErr.ExitCode())
		if code.Validate() != nil {
			code = 1
		}
		return NewExitCodeResult(code)
	}

	// Not started: missing binary, permission denied, bad working directory.
	return NewErrorResult(1, err)
}
