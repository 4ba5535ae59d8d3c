// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pylaunch/pylaunch/internal/config"
	"github.com/pylaunch/pylaunch/internal/launcher"
)

// newConfigCommand creates the `pylaunch config` command tree.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pylaunch configuration",
		Long: `Manage pylaunch configuration.

The first configuration file found is used:
  1. the file given with --config
  2. the user config file:
     - Linux: ~/.config/pylaunch/config.cue
     - macOS: ~/Library/Application Support/pylaunch/config.cue
     - Windows: %APPDATA%\pylaunch\config.cue
  3. pylaunch.cue next to the pylaunch executable

Without any file, built-in defaults apply.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			path, _ := config.ResolvePath(app.loadOptions(flags))
			showConfig(cmd.OutOrStdout(), cfg, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show which configuration file is used",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd.OutOrStdout(), app, flags)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig(app.configDir)
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration file at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

// loadOptions builds the provider options for this invocation. A pylaunch.cue
// next to the executable is only considered when the executable resolves.
func (app *App) loadOptions(flags *rootFlags) config.LoadOptions {
	opts := config.LoadOptions{
		ConfigFilePath: flags.cfgFile,
		ConfigDirPath:  app.configDir,
	}
	if exeDir, err := launcher.ExecutableDir(app.Executable); err == nil {
		opts.ExecutableDir = exeDir
	}
	return opts
}

func showConfig(w io.Writer, cfg *config.Config, path string) {
	keyStyle := KeyStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if path != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("tool"), valueStyle.Render(cfg.Tool))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("env_dir"), valueStyle.Render(cfg.EnvDir))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("entry"))
	fmt.Fprintf(w, "  script: %s\n", valueStyle.Render(cfg.Entry.Script))
	if cfg.Entry.Subdir != "" {
		fmt.Fprintf(w, "  subdir: %s\n", valueStyle.Render(cfg.Entry.Subdir))
	} else {
		fmt.Fprintf(w, "  subdir: %s\n", SubtitleStyle.Render("(nested layout disabled)"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("search"))
	fmt.Fprintf(w, "  max_depth: %s\n", valueStyle.Render(fmt.Sprint(cfg.Search.MaxDepth)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("exit"))
	fmt.Fprintf(w, "  propagate_code: %s\n", valueStyle.Render(fmt.Sprint(cfg.Exit.PropagateCode)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprint(cfg.UI.Verbose)))
}

func showConfigPath(w io.Writer, app *App, flags *rootFlags) error {
	opts := app.loadOptions(flags)

	cfgDir := app.configDir
	if cfgDir == "" {
		dir, err := config.ConfigDir()
		if err != nil {
			return err
		}
		cfgDir = dir
	}

	path, err := config.ResolvePath(opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Config directory: %s\n", cfgDir)
	if path == "" {
		fmt.Fprintf(w, "Config file: %s\n", SubtitleStyle.Render("(none, using defaults)"))
	} else {
		fmt.Fprintf(w, "Config file: %s\n", path)
	}
	return nil
}
