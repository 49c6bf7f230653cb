package types

import (
	"io/fs"
	"time"
)

// FS is the filesystem interface required for scpkg operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Removal operations
	Remove(name string) error
	RemoveAll(path string) error

	// Metadata operations
	Chmod(name string, mode fs.FileMode) error
	Chtimes(name string, atime, mtime time.Time) error

	// Optional operations - implementations should check for support
	// For testing, Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}

// Pather provides paths for scpkg operations
type Pather interface {
	// InstallPrefix returns the root directory package content is copied into
	InstallPrefix() string

	// DatabasePath returns the path of the package database file
	DatabasePath() string

	// CacheDir returns the directory used for extraction scratch space
	CacheDir() string

	// ConfigDir returns the directory searched for scpkg.toml
	ConfigDir() string

	// StateDir returns the directory used for logs and runtime state
	StateDir() string
}
