// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/pylaunch/pylaunch/internal/issue"
	"github.com/pylaunch/pylaunch/internal/launcher"
	"github.com/pylaunch/pylaunch/internal/runtime"
)

// classifyLaunchError maps a pipeline failure to an issue catalog ID.
func classifyLaunchError(err error) issue.Id {
	toolFailed := errors.Is(err, launcher.ErrProvisioningFailed) || errors.Is(err, launcher.ErrSyncFailed)

	switch {
	case toolFailed && errors.Is(err, exec.ErrNotFound):
		return issue.ToolNotFoundId
	case errors.Is(err, os.ErrPermission):
		return issue.PermissionDeniedId
	case errors.Is(err, launcher.ErrPathResolution):
		return issue.ExecutableNotResolvedId
	case errors.Is(err, launcher.ErrRootNotFound):
		return issue.ProjectRootNotFoundId
	case errors.Is(err, launcher.ErrProvisioningFailed):
		return issue.EnvCreationFailedId
	case errors.Is(err, launcher.ErrSyncFailed):
		return issue.DependencySyncFailedId
	case errors.Is(err, launcher.ErrInterpreterMissing):
		return issue.InterpreterMissingId
	case errors.Is(err, launcher.ErrChildLaunchFailed):
		return issue.EntryLaunchFailedId
	case errors.Is(err, launcher.ErrChildExitedWithError):
		return issue.EntryExitedWithErrorId
	default:
		return 0
	}
}

// launchSuggestions returns follow-up hints for a classified failure.
func launchSuggestions(id issue.Id, tool string) []string {
	switch id {
	case issue.ToolNotFoundId:
		return []string{
			fmt.Sprintf("Install %s or put it on PATH", tool),
			"Set the tool key in the pylaunch configuration to its full path",
		}
	case issue.ProjectRootNotFoundId:
		return []string{"Place the pylaunch executable inside the project directory, or below it"}
	case issue.EnvCreationFailedId:
		return []string{"Check that a Python interpreter is available to " + tool}
	case issue.DependencySyncFailedId:
		return []string{"Review the output above; pyproject.toml may be invalid or a package unavailable"}
	case issue.InterpreterMissingId:
		return []string{"Delete the virtual environment directory so it is created again on the next launch"}
	case issue.PermissionDeniedId:
		return []string{"Check the permissions of the project directory and the virtual environment"}
	default:
		return nil
	}
}

// launchServiceError wraps a pipeline failure for rendering. The diagnostic
// names the failed stage; suggestions and the error chain are shown in
// verbose mode only.
func launchServiceError(err error, tool string, verbose bool) *ServiceError {
	id := classifyLaunchError(err)

	ctx := issue.NewErrorContext().WithSuggestions(launchSuggestions(id, tool)...)
	var stageErr *launcher.StageError
	if errors.As(err, &stageErr) {
		ctx = ctx.WithOperation(string(stageErr.Stage)).Wrap(stageErr.Err)
	} else {
		ctx = ctx.WithOperation("launch").Wrap(err)
	}
	ae := ctx.Build()

	msg := ae.Error()
	if verbose {
		msg = ae.Format(true)
	}
	return newServiceError(ae, id, fmt.Sprintf("%s %s\n", ErrorStyle.Render("Error:"), msg))
}

// exitCodeFor returns the process exit code for a pipeline failure.
func exitCodeFor(err error, propagate bool) runtime.ExitCode {
	var childErr *launcher.ChildExitError
	if propagate && errors.As(err, &childErr) {
		return childErr.Code
	}
	return 1
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
