// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"runtime"
	"testing"
)

const entrySource = "print('hello')\n"

type (
	// Project is a fake Python project laid out in a temporary directory.
	Project struct {
		// Root is the absolute project root (symlinks resolved).
		Root string
		// Entry is the entry script path relative to Root, with forward slashes.
		Entry string
	}

	// ProjectOption customizes NewProject.
	ProjectOption func(*projectOptions)

	projectOptions struct {
		subdir    string
		pyproject string
		venv      bool
	}
)

// WithNestedEntry places the entry script at <subdir>/main.py instead of main.py.
func WithNestedEntry(subdir string) ProjectOption {
	return func(o *projectOptions) { o.subdir = subdir }
}

// WithPyproject writes the given pyproject.toml content into the root.
func WithPyproject(content string) ProjectOption {
	return func(o *projectOptions) { o.pyproject = content }
}

// WithVenv pre-creates the .venv directory with an interpreter file for the
// host platform.
func WithVenv() ProjectOption {
	return func(o *projectOptions) { o.venv = true }
}

// NewProject creates a project tree under t.TempDir().
func NewProject(t testing.TB, opts ...ProjectOption) *Project {
	t.Helper()

	var o projectOptions
	for _, opt := range opts {
		opt(&o)
	}

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}

	p := &Project{Root: root, Entry: "main.py"}
	if o.subdir != "" {
		p.Entry = o.subdir + "/main.py"
	}
	MustWriteFile(t, filepath.Join(root, filepath.FromSlash(p.Entry)), entrySource, 0o644)

	if o.pyproject != "" {
		MustWriteFile(t, filepath.Join(root, "pyproject.toml"), o.pyproject, 0o644)
	}
	if o.venv {
		MustWriteFile(t, p.Interpreter(), "", 0o755)
	}

	return p
}

// Dir returns the absolute path of a directory inside the project, creating it.
func (p *Project) Dir(t testing.TB, rel string) string {
	t.Helper()
	dir := filepath.Join(p.Root, filepath.FromSlash(rel))
	MustMkdirAll(t, dir, 0o755)
	return dir
}

// Venv returns the default environment directory of the project.
func (p *Project) Venv() string {
	return filepath.Join(p.Root, ".venv")
}

// Interpreter returns the host platform's interpreter path inside Venv.
func (p *Project) Interpreter() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(p.Venv(), "Scripts", "python.exe")
	}
	return filepath.Join(p.Venv(), "bin", "python")
}
