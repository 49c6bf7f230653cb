// Package paths provides centralized path handling for scpkg.
//
// This package resolves every location scpkg reads or writes. It handles:
//
//   - Install prefix selection (system-wide vs per-user)
//   - Package database and cache directory locations
//   - Configuration file candidates
//   - Path normalization and ~ expansion
//
// # Modes
//
// Running as root, or with SCPKG_SYSTEM=1, selects the system-wide layout:
//
//   - Prefix: /usr/local
//   - Database: /var/lib/scpkg/packages.json
//   - Cache: /var/cache/scpkg
//   - Config: /etc/scpkg
//
// Any other user gets XDG Base Directory locations instead:
//
//   - Prefix: ~/.local
//   - Database: $XDG_STATE_HOME/scpkg/packages.json
//   - Cache: $XDG_CACHE_HOME/scpkg
//   - Config: $XDG_CONFIG_HOME/scpkg
//
// # Environment Variables
//
// The package respects the following environment variables:
//
//   - SCPKG_PREFIX: Override the install prefix
//   - SCPKG_DB: Override the package database file
//   - SCPKG_CACHE_DIR: Override the extraction scratch directory
//   - SCPKG_CONFIG_DIR: Override the configuration directory
//   - SCPKG_SYSTEM: Force the system-wide layout without root
//
// # Usage
//
//	import "github.com/scarlettos/scpkg/pkg/paths"
//
//	p, err := paths.New("")  // Resolve from environment and mode
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	prefix := p.InstallPrefix()   // /usr/local or /home/user/.local
//	db := p.DatabasePath()        // /var/lib/scpkg/packages.json
//	cache := p.CacheDir()         // /var/cache/scpkg
package paths
