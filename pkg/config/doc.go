// Package config handles configuration management for scpkg.
// It layers embedded defaults, runtime path defaults, TOML or YAML config
// files, and SCPKG_* environment variables into a single Config.
package config
