// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pylaunch/pylaunch/internal/config"
	"github.com/pylaunch/pylaunch/internal/issue"
	"github.com/pylaunch/pylaunch/internal/launcher"
)

// runLaunch loads the configuration, then runs (or plans) the launch pipeline.
func runLaunch(cmd *cobra.Command, app *App, flags *rootFlags, args []string) error {
	ctx := cmd.Context()
	stderr := cmd.ErrOrStderr()

	cfg, err := app.loadConfig(cmd, flags)
	switch {
	case err != nil && flags.cfgFile != "":
		renderServiceError(stderr, configServiceError(err, flags.verbose), string(config.ColorSchemeAuto), flags.verbose)
		return &ExitError{Code: 1, Err: err}
	case err != nil:
		// A discovered file must not keep the application from starting.
		fmt.Fprintln(stderr, WarningStyle.Render("Warning:")+" "+
			strings.TrimRight(formatErrorForDisplay(err, flags.verbose), "\n")+", using defaults")
		cfg = config.DefaultConfig()
	}

	verbose := flags.verbose || cfg.UI.Verbose
	tool, err := cfg.ToolArgv()
	if err != nil {
		renderServiceError(stderr, configServiceError(err, verbose), string(cfg.UI.ColorScheme), verbose)
		return &ExitError{Code: 1, Err: err}
	}

	logger := newLogger(stderr, verbose)
	l := launcher.New(launcher.Options{
		Layout: launcher.Layout{
			EntryScript: cfg.Entry.Script,
			EntrySubdir: cfg.Entry.Subdir,
			MaxDepth:    cfg.Search.MaxDepth,
		},
		Tool:       tool,
		EnvDir:     cfg.EnvDir,
		Runner:     app.Runner,
		Logger:     logger,
		Stdin:      app.stdin,
		Stdout:     app.stdout,
		Stderr:     app.stderr,
		Executable: app.Executable,
	})

	if flags.dryRun {
		plan, err := l.Plan(ctx, args)
		if err != nil {
			renderServiceError(stderr, launchServiceError(err, tool[0], verbose), string(cfg.UI.ColorScheme), verbose)
			return &ExitError{Code: 1, Err: err}
		}
		renderDryRun(cmd.OutOrStdout(), plan)
		return nil
	}

	res, err := l.Run(ctx, args)
	if err != nil {
		renderServiceError(stderr, launchServiceError(err, tool[0], verbose), string(cfg.UI.ColorScheme), verbose)
		return &ExitError{Code: exitCodeFor(err, cfg.Exit.PropagateCode), Err: err}
	}

	logger.Debug("entry script finished", "exit_code", res.ExitCode, "env_created", res.EnvCreated)
	return nil
}

// loadConfig resolves the configuration for this invocation.
func (app *App) loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	return app.Config.Load(cmd.Context(), app.loadOptions(flags))
}

func configServiceError(err error, verbose bool) *ServiceError {
	return newServiceError(err, issue.ConfigLoadFailedId,
		ErrorStyle.Render("Error:")+" "+strings.TrimRight(formatErrorForDisplay(err, verbose), "\n")+"\n")
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}
