// SPDX-License-Identifier: MPL-2.0

// Package config handles pylaunch configuration using Viper.
//
// Configuration is optional. Defaults are registered with Viper first, then a
// CUE file is validated against the embedded #Config schema and merged on top.
// The file is looked up in this order:
//
//  1. an explicit path (the --config flag), which must exist
//  2. config.cue in the user configuration directory (see ConfigDir)
//  3. pylaunch.cue next to the launcher executable
//
// When none exists the defaults apply, which reproduce the classic layout:
// uv as the tool, .venv as the environment, main.py or game/main.py as the
// entry script, searched up to 8 directories above the executable.
package config
