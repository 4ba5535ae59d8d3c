// SPDX-License-Identifier: MPL-2.0

// Package launcher bootstraps a Python project that ships next to the
// pylaunch executable.
//
// A launch runs four stages strictly in order, and the first failure aborts
// the rest:
//
//  1. Root location: walk up from the executable's directory looking for the
//     entry script (main.py, or game/main.py).
//  2. Environment provisioning: create <root>/.venv with "uv venv" when absent.
//  3. Dependency synchronization: run "uv sync" in the root on every launch.
//  4. Process launch: run the environment's interpreter on the entry script
//     with the console passed straight through.
//
// Every error returned by Launcher.Run is a *StageError naming the stage that
// failed. The sentinel errors in this package are reachable through it with
// errors.Is.
package launcher
