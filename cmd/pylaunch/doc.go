// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the pylaunch command line interface.
//
// The root command runs the launch pipeline from internal/launcher; the
// config subcommands inspect and initialize the CUE configuration file.
package cmd
