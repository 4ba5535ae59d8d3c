// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pylaunch/pylaunch/internal/launcher"

	"mvdan.cc/sh/v3/shell"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// MaxSearchDepth caps search.max_depth.
	MaxSearchDepth = 64
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidToolCommand is returned when the tool command line cannot be split
	// into at least one word.
	ErrInvalidToolCommand = errors.New("invalid tool command")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Tool is the package manager command line ("uv" by default).
		Tool string `json:"tool" mapstructure:"tool"`
		// EnvDir is the virtual environment directory name under the project root.
		EnvDir string `json:"env_dir" mapstructure:"env_dir"`
		// Entry configures where the entry script is looked for.
		Entry EntryConfig `json:"entry" mapstructure:"entry"`
		// Search configures the project root search.
		Search SearchConfig `json:"search" mapstructure:"search"`
		// Exit configures how the application's exit status is reported.
		Exit ExitConfig `json:"exit" mapstructure:"exit"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// EntryConfig names the entry script and the nested layout subdirectory.
	EntryConfig struct {
		Script string `json:"script" mapstructure:"script"`
		Subdir string `json:"subdir" mapstructure:"subdir"`
	}

	// SearchConfig bounds the upward root search.
	SearchConfig struct {
		MaxDepth int `json:"max_depth" mapstructure:"max_depth"`
	}

	// ExitConfig controls exit status propagation.
	ExitConfig struct {
		// PropagateCode makes the launcher exit with the application's own
		// status instead of a generic 1.
		PropagateCode bool `json:"propagate_code" mapstructure:"propagate_code"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging and full error chains
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the built-in configuration. Launch defaults come
// from the launcher package.
func DefaultConfig() *Config {
	layout := launcher.DefaultLayout()
	return &Config{
		Tool:   launcher.DefaultTool,
		EnvDir: launcher.DefaultEnvDir,
		Entry: EntryConfig{
			Script: layout.EntryScript,
			Subdir: layout.EntrySubdir,
		},
		Search: SearchConfig{MaxDepth: layout.MaxDepth},
		Exit:   ExitConfig{PropagateCode: true},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// ToolArgv splits the tool command line into words using POSIX shell rules,
// expanding environment variables such as $HOME.
func (c *Config) ToolArgv() ([]string, error) {
	fields, err := shell.Fields(c.Tool, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidToolCommand, c.Tool, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %q expands to nothing", ErrInvalidToolCommand, c.Tool)
	}
	return fields, nil
}

// Validate checks every field and returns an *InvalidConfigError listing all
// problems, or nil.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.ToolArgv(); err != nil {
		errs = append(errs, err)
	}
	if err := validateRelativeName("env_dir", c.EnvDir); err != nil {
		errs = append(errs, err)
	}
	if err := validateRelativeName("entry.script", c.Entry.Script); err != nil {
		errs = append(errs, err)
	}
	if c.Entry.Subdir != "" {
		if err := validateRelativeName("entry.subdir", c.Entry.Subdir); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Search.MaxDepth < 1 || c.Search.MaxDepth > MaxSearchDepth {
		errs = append(errs, fmt.Errorf("search.max_depth: %d is outside 1-%d", c.Search.MaxDepth, MaxSearchDepth))
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// validateRelativeName requires a single, non-empty path element.
func validateRelativeName(field, value string) error {
	switch {
	case strings.TrimSpace(value) == "":
		return fmt.Errorf("%s: must not be empty", field)
	case filepath.IsAbs(value) || strings.ContainsAny(value, `/\`):
		return fmt.Errorf("%s: %q must be a plain name, not a path", field, value)
	case value == "." || value == "..":
		return fmt.Errorf("%s: %q is not allowed", field, value)
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, fe := range e.FieldErrors {
		msgs = append(msgs, fe.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Validate returns an error if the ColorScheme is not one of the known values.
func (cs ColorScheme) Validate() error {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: cs}
	}
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme so callers can use errors.Is for programmatic detection.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }
