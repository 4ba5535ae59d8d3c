// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the manifest file name looked up in a project root.
const FileName = "pyproject.toml"

// maxManifestSize bounds how much of a pyproject.toml is read.
const maxManifestSize int64 = 1 << 20

// ErrManifestNotFound is returned when the project root has no pyproject.toml.
var ErrManifestNotFound = errors.New("pyproject.toml not found")

type (
	// Project holds the [project] table of a pyproject.toml.
	Project struct {
		Name           string   `toml:"name"`
		Version        string   `toml:"version"`
		RequiresPython string   `toml:"requires-python"`
		Dependencies   []string `toml:"dependencies"`

		// Path is the file the project was read from.
		Path string `toml:"-"`
	}

	// ParseError reports a pyproject.toml that could not be decoded.
	ParseError struct {
		Path string
		Err  error
	}

	document struct {
		Project *Project `toml:"project"`
	}
)

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads <root>/pyproject.toml. A file without a [project] table yields
// an empty Project rather than an error, as uv accepts such workspaces.
func Load(root string) (*Project, error) {
	path := filepath.Join(root, FileName)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrManifestNotFound, root)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() > maxManifestSize {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("file size %d bytes exceeds maximum %d bytes", info.Size(), maxManifestSize)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	p.Path = path
	return p, nil
}

// Parse decodes pyproject.toml content.
func Parse(data []byte) (*Project, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		var de *toml.DecodeError
		if errors.As(err, &de) {
			row, col := de.Position()
			return nil, fmt.Errorf("line %d, column %d: %s", row, col, de.Error())
		}
		return nil, err
	}
	if doc.Project == nil {
		return &Project{}, nil
	}
	return doc.Project, nil
}

// DisplayName returns "name version", falling back to "unnamed project".
func (p *Project) DisplayName() string {
	switch {
	case p.Name == "":
		return "unnamed project"
	case p.Version == "":
		return p.Name
	default:
		return p.Name + " " + p.Version
	}
}
