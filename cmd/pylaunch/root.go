// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags holds the values of the global flags for one command tree.
type rootFlags struct {
	verbose bool
	cfgFile string
	dryRun  bool
}

// NewRootCommand builds the pylaunch command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "pylaunch [-- args...]",
		Short: "Bootstrap and run the Python project shipped with this launcher",
		Long: TitleStyle.Render("pylaunch") + SubtitleStyle.Render(" - bootstrap and run a uv-managed Python project") + `

pylaunch finds the project it ships with by walking up from its own
location until it sees main.py (or game/main.py). It then creates the
.venv environment with 'uv venv' if needed, runs 'uv sync', and starts
the entry script with the environment's interpreter.

Arguments after '--' are passed to the entry script.

` + SubtitleStyle.Render("Examples:") + `
  pylaunch                   Launch the project
  pylaunch -- --level 3      Launch and pass arguments to main.py
  pylaunch --dry-run         Show what would run
  pylaunch config show       Show the current configuration`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(cmd, app, flags, args)
		},
	}

	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.cfgFile, "config", "", "config file (default is <user config dir>/pylaunch/config.cue)")
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the launch plan without running anything")
	// Everything after the first positional argument belongs to the entry script.
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.AddCommand(newConfigCommand(app, flags))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the pylaunch CLI. It is called by main.main().
//
// No interrupt handler is installed: Ctrl-C reaches the foreground child
// directly and the launcher waits for it to exit.
func Execute() {
	rootCmd := NewRootCommand(NewApp(Dependencies{}))

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithErrorHandler(handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// handleError prints errors that commands did not render themselves.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
