// SPDX-License-Identifier: MPL-2.0

// Package runtime spawns child processes for pylaunch and reports how they ended.
//
// A Runner executes a Command synchronously: it starts the process, blocks until
// it exits, and returns a Result. The console is passed through untouched; the
// Command's Stdin, Stdout and Stderr are handed directly to the child so nothing
// is buffered or captured along the way.
//
// Result distinguishes two failure shapes that callers treat differently:
//   - the process could not be started at all (Result.Error is set), e.g. the
//     tool is missing from PATH or the binary is not executable;
//   - the process ran and exited with a non-zero ExitCode (Result.Error is nil).
//
// ProjectLock serializes environment setup between launcher processes that
// work on the same project root.
package runtime
