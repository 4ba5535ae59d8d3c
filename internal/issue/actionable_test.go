// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "locate project root"},
			expected: "failed to locate project root",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "create virtual environment",
				Resource:  "/srv/app/.venv",
			},
			expected: "failed to create virtual environment: /srv/app/.venv",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "synchronize dependencies",
				Resource:  "/srv/app",
				Cause:     errors.New("exit status 2"),
			},
			expected: "failed to synchronize dependencies: /srv/app: exit status 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying error")
	err := NewErrorContext().WithOperation("launch application").Wrap(cause).BuildError()

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause through ActionableError")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	root := errors.New("exit status 1")
	err := NewErrorContext().
		WithOperation("synchronize dependencies").
		WithResource("/srv/app").
		WithSuggestion("Run 'uv sync' yourself").
		WithSuggestions("Check pyproject.toml", "Delete .venv").
		Wrap(fmt.Errorf("uv sync: %w", root)).
		Build()

	plain := err.Format(false)
	for _, want := range []string{"failed to synchronize dependencies", "• Run 'uv sync' yourself", "• Delete .venv"} {
		if !strings.Contains(plain, want) {
			t.Errorf("Format(false) missing %q:\n%s", want, plain)
		}
	}
	if strings.Contains(plain, "Error chain:") {
		t.Error("Format(false) should not include the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "2. exit status 1") {
		t.Errorf("Format(true) should list the full chain:\n%s", verbose)
	}
	if !err.HasSuggestions() {
		t.Error("HasSuggestions() = false, want true")
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation should return a nil interface")
	}
}
