// SPDX-License-Identifier: MPL-2.0

package runtime

// Result describes how a child process ended.
type Result struct {
	// ExitCode is the child's exit status. It is 1 when the child could not be started.
	ExitCode ExitCode
	// Error is set only when the child could not be started or waited on.
	// A child that ran and exited non-zero leaves Error nil.
	Error error
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than spawn failures.
func NewExitCodeResult(code ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Started reports whether the child process was started at all.
func (r *Result) Started() bool { return r.Error == nil }

// Success reports whether the child started and exited with status 0.
func (r *Result) Success() bool { return r.Error == nil && r.ExitCode.IsSuccess() }
