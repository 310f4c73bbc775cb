// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with YAML as the file format.
//
// Configuration is loaded from ~/.config/arxmlmerge/config.yaml (or XDG equivalent on Linux,
// ~/Library/Application Support/arxmlmerge/config.yaml on macOS, %APPDATA%\arxmlmerge\config.yaml
// on Windows). The package provides type-safe configuration access and covers the default
// merge strategy, validation depth, rule files, report formats, and UI settings.
//
// Enum-valued fields are validated after decoding so an unknown strategy or depth fails
// loading with a clear error instead of surfacing later in the merge pipeline.
package config
