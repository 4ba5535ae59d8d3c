// SPDX-License-Identifier: MPL-2.0

// Package platform centralizes operating-system names and the small
// platform-dependent decisions built on them.
package platform
