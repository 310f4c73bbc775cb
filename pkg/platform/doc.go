// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// This package centralizes the runtime.GOOS string literals used when
// resolving platform-specific paths, such as the configuration directory.
package platform
