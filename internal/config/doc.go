// Package config defines configuration for the upstream CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (UPSTREAM_ prefix)
//   - YAML configuration file
//
// Precedence is flags over environment over file over defaults; the CLI
// applies it by loading the file, layering LoadFromEnv, then Merge with the
// flag values.
package config
