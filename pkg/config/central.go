package config

import (
	"strings"
)

// Install holds install-related configuration
type Install struct {
	// Prefix is the root directory package content is copied into
	Prefix string `koanf:"prefix"`
}

// Database holds database-related configuration
type Database struct {
	// Path is the package database file
	Path string `koanf:"path"`
}

// Cache holds cache-related configuration
type Cache struct {
	// Dir holds per-install extraction scratch directories
	Dir string `koanf:"dir"`
}

// Security holds security-related configuration
type Security struct {
	// ProtectedPaths defines destination prefixes that install never writes
	// under. This is a courtesy guard against obviously destructive package
	// content, not a security boundary.
	ProtectedPaths []string `koanf:"protected_paths"`
}

// Logging holds logging-related configuration
type Logging struct {
	// Level is the log file level: warn, info, debug, or trace
	Level string `koanf:"level"`
}

// Config is the main configuration structure
type Config struct {
	Install  Install  `koanf:"install"`
	Database Database `koanf:"database"`
	Cache    Cache    `koanf:"cache"`
	Security Security `koanf:"security"`
	Logging  Logging  `koanf:"logging"`

	// protectedSet is derived from Security.ProtectedPaths for lookups
	protectedSet map[string]bool
}

// Default returns the default configuration
func Default() *Config {
	// Load the actual defaults from the embedded file
	cfg, err := LoadConfiguration(nil)
	if err != nil {
		// Fallback to minimal config if loading fails
		return &Config{
			Security: Security{
				ProtectedPaths: fallbackProtectedPaths(),
			},
			Logging: Logging{Level: "warn"},
		}
	}
	return cfg
}

// fallbackProtectedPaths mirrors the embedded defaults for the case where
// the embedded file cannot be parsed
func fallbackProtectedPaths() []string {
	return []string{
		"/bin", "/boot", "/dev", "/etc", "/lib",
		"/proc", "/run", "/sbin", "/sys", "/var/lib/scpkg",
	}
}

// buildProtectedSet indexes the protected paths for IsProtectedPath
func (c *Config) buildProtectedSet() {
	c.protectedSet = make(map[string]bool, len(c.Security.ProtectedPaths))
	for _, p := range c.Security.ProtectedPaths {
		if p == "" {
			continue
		}
		c.protectedSet[strings.TrimSuffix(p, "/")] = true
	}
}

// IsProtectedPath checks if a destination falls under a protected prefix
func (c *Config) IsProtectedPath(path string) bool {
	if c.protectedSet == nil {
		c.buildProtectedSet()
	}

	// Direct match
	if c.protectedSet[path] {
		return true
	}

	// Check if path is under a protected directory
	for protectedPath := range c.protectedSet {
		if strings.HasPrefix(path, protectedPath+"/") {
			return true
		}
	}

	return false
}
