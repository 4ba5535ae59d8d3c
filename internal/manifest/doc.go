// SPDX-License-Identifier: MPL-2.0

// Package manifest reads the metadata a Python project declares in its
// pyproject.toml. The launcher never resolves dependencies itself; the
// manifest is informational and only feeds logging and dry-run plans.
package manifest
