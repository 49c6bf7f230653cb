// Package paths provides centralized path handling for scpkg.
// It resolves the install prefix, database location, and cache directory
// for system installs, and falls back to XDG Base Directory locations
// when running as a regular user.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/scarlettos/scpkg/pkg/errors"
	"github.com/scarlettos/scpkg/pkg/types"
)

// Environment variable names
const (
	// EnvInstallPrefix overrides the directory package content is copied into
	EnvInstallPrefix = "SCPKG_PREFIX"

	// EnvDatabasePath overrides the package database file location
	EnvDatabasePath = "SCPKG_DB"

	// EnvCacheDir overrides the extraction scratch directory
	EnvCacheDir = "SCPKG_CACHE_DIR"

	// EnvConfigDir overrides the directory searched for scpkg.toml
	EnvConfigDir = "SCPKG_CONFIG_DIR"

	// EnvSystemMode forces system-wide paths even without root
	EnvSystemMode = "SCPKG_SYSTEM"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// System-wide locations, used when running as root or with SCPKG_SYSTEM set.
// These match the paths the OS images bake into their scpkg databases, so
// they are not user-configurable beyond the environment overrides above.
const (
	SystemInstallPrefix = "/usr/local"
	SystemDatabasePath  = "/var/lib/scpkg/packages.json"
	SystemCacheDir      = "/var/cache/scpkg"
	SystemConfigDir     = "/etc/scpkg"
	SystemStateDir      = "/var/lib/scpkg"
)

// Default directory and file names
const (
	// ScpkgDirName is the directory name for scpkg-specific files
	ScpkgDirName = "scpkg"

	// DatabaseFileName is the name of the package database file
	DatabaseFileName = "packages.json"

	// ConfigFileName is the name of the configuration file
	ConfigFileName = "scpkg.toml"

	// LogFileName is the name of the log file
	LogFileName = "scpkg.log"
)

// Paths provides centralized path management for scpkg
type Paths interface {
	types.Pather

	// SystemMode reports whether system-wide locations are in use
	SystemMode() bool

	// UsedFallback reports whether user-mode locations were chosen
	// implicitly, so the CLI can mention it once
	UsedFallback() bool

	// ConfigFileCandidates returns the config files to try, in load order
	ConfigFileCandidates() []string

	// LogFilePath returns the path of the log file
	LogFilePath() string

	// NormalizePath expands ~, makes the path absolute, and cleans it
	NormalizePath(path string) (string, error)
}

// paths provides centralized path management for scpkg
type paths struct {
	// installPrefix is the root directory package content is copied into
	installPrefix string

	// databasePath is the package database file
	databasePath string

	// cacheDir holds per-install extraction scratch directories
	cacheDir string

	// configDir is the primary directory searched for scpkg.toml
	configDir string

	// stateDir holds the log file and other runtime state
	stateDir string

	// systemMode is true when system-wide locations are in use
	systemMode bool

	// usedFallback is true when user-mode paths were chosen implicitly
	usedFallback bool
}

// New creates a new Paths instance. If installPrefix is empty it is taken
// from SCPKG_PREFIX, then from the mode default: /usr/local when running as
// root (or with SCPKG_SYSTEM set), ~/.local otherwise.
func New(installPrefix string) (Paths, error) {
	p := &paths{}
	p.systemMode = detectSystemMode()

	// Install prefix: argument, then environment, then mode default
	explicitPrefix := true
	if installPrefix == "" {
		installPrefix = os.Getenv(EnvInstallPrefix)
	}
	if installPrefix == "" {
		explicitPrefix = false
		if p.systemMode {
			installPrefix = SystemInstallPrefix
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to determine home directory")
			}
			installPrefix = filepath.Join(home, ".local")
		}
	}

	absPrefix, err := filepath.Abs(expandHome(installPrefix))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for install prefix")
	}
	p.installPrefix = absPrefix

	explicitDB := p.setupDatabasePath()
	p.setupCacheDir()
	p.setupConfigDir()
	p.setupStateDir()

	// Only warn when nothing was asked for explicitly and we silently
	// switched to per-user locations.
	p.usedFallback = !p.systemMode && !explicitPrefix && !explicitDB

	return p, nil
}

// detectSystemMode decides between system-wide and per-user locations
func detectSystemMode() bool {
	if mode := os.Getenv(EnvSystemMode); mode != "" {
		return mode == "1" || strings.EqualFold(mode, "true")
	}
	return os.Geteuid() == 0
}

// setupDatabasePath resolves the database file location and reports whether
// it was set explicitly via the environment
func (p *paths) setupDatabasePath() bool {
	if dbPath := os.Getenv(EnvDatabasePath); dbPath != "" {
		p.databasePath = expandHome(dbPath)
		return true
	}
	if p.systemMode {
		p.databasePath = SystemDatabasePath
	} else {
		p.databasePath = filepath.Join(stateHome(), ScpkgDirName, DatabaseFileName)
	}
	return false
}

// setupCacheDir resolves the extraction scratch directory
func (p *paths) setupCacheDir() {
	if cacheDir := os.Getenv(EnvCacheDir); cacheDir != "" {
		p.cacheDir = expandHome(cacheDir)
		return
	}
	if p.systemMode {
		p.cacheDir = SystemCacheDir
	} else {
		p.cacheDir = filepath.Join(xdg.CacheHome, ScpkgDirName)
	}
}

// setupConfigDir resolves the primary configuration directory
func (p *paths) setupConfigDir() {
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.configDir = expandHome(configDir)
		return
	}
	if p.systemMode {
		p.configDir = SystemConfigDir
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, ScpkgDirName)
	}
}

// setupStateDir resolves the state directory. The xdg package does not
// expose StateHome, so XDG_STATE_HOME is checked manually.
func (p *paths) setupStateDir() {
	if p.systemMode {
		p.stateDir = SystemStateDir
		return
	}
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.stateDir = filepath.Join(stateDir, ScpkgDirName)
		return
	}
	homeDir, _ := os.UserHomeDir()
	p.stateDir = filepath.Join(homeDir, ".local", "state", ScpkgDirName)
}

// stateHome returns the base state directory for user mode
func stateHome() string {
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		return stateDir
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".local", "state")
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// InstallPrefix returns the root directory package content is copied into
func (p *paths) InstallPrefix() string {
	return p.installPrefix
}

// DatabasePath returns the package database file location
func (p *paths) DatabasePath() string {
	return p.databasePath
}

// CacheDir returns the extraction scratch directory
func (p *paths) CacheDir() string {
	return p.cacheDir
}

// ConfigDir returns the primary configuration directory
func (p *paths) ConfigDir() string {
	return p.configDir
}

// StateDir returns the directory for logs and runtime state
func (p *paths) StateDir() string {
	return p.stateDir
}

// SystemMode reports whether system-wide locations are in use
func (p *paths) SystemMode() bool {
	return p.systemMode
}

// UsedFallback reports whether user-mode locations were chosen implicitly
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

// ConfigFileCandidates returns the configuration files to try, in load
// order. Later files override earlier ones. The system file is always a
// candidate so user-mode runs still honor machine-wide settings.
func (p *paths) ConfigFileCandidates() []string {
	candidates := []string{filepath.Join(SystemConfigDir, ConfigFileName)}
	if p.configDir != SystemConfigDir {
		candidates = append(candidates, filepath.Join(p.configDir, ConfigFileName))
	}
	return candidates
}

// LogFilePath returns the path of the log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	// Expand home directory
	expanded := expandHome(path)

	// Make absolute
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	// Clean the path
	return filepath.Clean(abs), nil
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}
