// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"os"
	"path"
	"path/filepath"
)

const (
	// DefaultEntryScript is the entry script file name.
	DefaultEntryScript = "main.py"
	// DefaultEntrySubdir is the subdirectory checked for the nested layout.
	DefaultEntrySubdir = "game"
	// DefaultMaxDepth is how many directories the root search examines,
	// counting the executable's own directory.
	DefaultMaxDepth = 8
)

type (
	// Layout describes what makes a directory a project root.
	Layout struct {
		// EntryScript is the file name of the entry script.
		EntryScript string
		// EntrySubdir enables the nested layout <dir>/<EntrySubdir>/<EntryScript>.
		// Empty disables it.
		EntrySubdir string
		// MaxDepth bounds the number of directories examined.
		MaxDepth int
	}

	// Root is a located project.
	Root struct {
		// Dir is the absolute project root.
		Dir string
		// Entry is the entry script relative to Dir, using forward slashes.
		Entry string
	}
)

// DefaultLayout returns the layout searched when nothing is configured.
func DefaultLayout() Layout {
	return Layout{
		EntryScript: DefaultEntryScript,
		EntrySubdir: DefaultEntrySubdir,
		MaxDepth:    DefaultMaxDepth,
	}
}

// EntryPath returns the absolute path of the entry script.
func (r Root) EntryPath() string {
	return filepath.Join(r.Dir, filepath.FromSlash(r.Entry))
}

// LocateRoot finds the project root above the executable reported by
// executable (os.Executable when nil).
func LocateRoot(executable func() (string, error), layout Layout) (Root, error) {
	if executable == nil {
		executable = os.Executable
	}
	start, err := ExecutableDir(executable)
	if err != nil {
		return Root{}, err
	}
	return FindRoot(start, layout)
}

// ExecutableDir resolves the directory holding the executable reported by
// executable, following symlinks so a linked launcher searches from its target.
func ExecutableDir(executable func() (string, error)) (string, error) {
	exe, err := executable()
	if err != nil {
		return "", &PathResolutionError{Err: err}
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", &PathResolutionError{Err: err}
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", &PathResolutionError{Err: err}
	}
	return filepath.Dir(abs), nil
}

// FindRoot walks from start towards the filesystem root and returns the first
// directory holding the entry script. At each level the flat layout wins over
// the nested one. The walk examines at most layout.MaxDepth directories.
func FindRoot(start string, layout Layout) (Root, error) {
	layout = layout.withDefaults()

	dir, err := filepath.Abs(start)
	if err != nil {
		return Root{}, &PathResolutionError{Err: err}
	}

	examined := 0
	for examined < layout.MaxDepth {
		examined++
		for _, rel := range layout.candidates() {
			if isRegularFile(filepath.Join(dir, filepath.FromSlash(rel))) {
				return Root{Dir: dir, Entry: rel}, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return Root{}, &RootNotFoundError{Start: start, Examined: examined, Layout: layout}
}

// candidates lists the entry paths checked in each directory, in priority order.
func (l Layout) candidates() []string {
	if l.EntrySubdir == "" {
		return []string{l.EntryScript}
	}
	return []string{l.EntryScript, path.Join(l.EntrySubdir, l.EntryScript)}
}

func (l Layout) withDefaults() Layout {
	if l.EntryScript == "" {
		l.EntryScript = DefaultEntryScript
	}
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultMaxDepth
	}
	return l
}

func isRegularFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
