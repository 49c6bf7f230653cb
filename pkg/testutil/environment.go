// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate isolated test environments with proper dependencies

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/scarlettos/scpkg/pkg/config"
	"github.com/scarlettos/scpkg/pkg/database"
	"github.com/scarlettos/scpkg/pkg/filesystem"
	"github.com/scarlettos/scpkg/pkg/paths"
	"github.com/scarlettos/scpkg/pkg/types"
)

// TestEnvironment provides a complete sandboxed environment: a private
// install prefix, database, cache and config directory, all under a temp
// directory that the test framework cleans up. Environment variables are
// pointed into the sandbox so code that resolves its own paths lands
// here too.
type TestEnvironment struct {
	// Sandbox layout
	Prefix       string
	DatabasePath string
	CacheDir     string
	ConfigDir    string
	HomeDir      string
	SourcesDir   string

	// Resolved dependencies, ready to inject into command options
	FS     types.FS
	Paths  paths.Paths
	Config *config.Config
	Store  *database.Store

	t *testing.T
}

// NewTestEnvironment creates a sandboxed environment for one test.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	tempDir := t.TempDir()
	env := &TestEnvironment{
		Prefix:       filepath.Join(tempDir, "prefix"),
		DatabasePath: filepath.Join(tempDir, "state", "packages.json"),
		CacheDir:     filepath.Join(tempDir, "cache"),
		ConfigDir:    filepath.Join(tempDir, "config"),
		HomeDir:      filepath.Join(tempDir, "home"),
		SourcesDir:   filepath.Join(tempDir, "sources"),
		t:            t,
	}

	// Route every path the code resolves on its own into the sandbox.
	// SCPKG_SYSTEM=0 keeps tests in user mode even when run as root.
	t.Setenv("HOME", env.HomeDir)
	t.Setenv("XDG_STATE_HOME", filepath.Join(env.HomeDir, ".local", "state"))
	t.Setenv(paths.EnvSystemMode, "0")
	t.Setenv(paths.EnvInstallPrefix, env.Prefix)
	t.Setenv(paths.EnvDatabasePath, env.DatabasePath)
	t.Setenv(paths.EnvCacheDir, env.CacheDir)
	t.Setenv(paths.EnvConfigDir, env.ConfigDir)

	env.FS = filesystem.NewOS()
	for _, dir := range []string{env.Prefix, env.CacheDir, env.HomeDir, env.SourcesDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	p, err := paths.New("")
	if err != nil {
		t.Fatalf("Failed to create paths: %v", err)
	}
	env.Paths = p

	cfg, err := config.LoadConfiguration(p)
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
	env.Config = cfg

	env.Store = database.New(env.FS, cfg.Database.Path)
	return env
}

// InstalledPath returns the absolute path rel would be installed at.
func (env *TestEnvironment) InstalledPath(rel string) string {
	return filepath.Join(env.Prefix, rel)
}

// ReadDatabase loads the database fresh from disk.
func (env *TestEnvironment) ReadDatabase() *database.Document {
	env.t.Helper()
	doc, warnings := env.Store.Load()
	for _, w := range warnings {
		env.t.Logf("database warning: %s (%s)", w.Message, w.Code)
	}
	return doc
}

// WriteDatabaseFile puts raw content at the database path, creating parent
// directories. Tests use it to seed hand-built or deliberately broken
// database files.
func (env *TestEnvironment) WriteDatabaseFile(content string) {
	env.t.Helper()
	if err := env.FS.MkdirAll(filepath.Dir(env.DatabasePath), 0755); err != nil {
		env.t.Fatalf("Failed to create database directory: %v", err)
	}
	if err := env.FS.WriteFile(env.DatabasePath, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write database file: %v", err)
	}
}

// ProtectPath adds a path to the protected list for this environment.
// The config is rebuilt so the protected-path lookup picks it up.
func (env *TestEnvironment) ProtectPath(path string) {
	env.t.Helper()
	env.Config = &config.Config{
		Install:  env.Config.Install,
		Database: env.Config.Database,
		Cache:    env.Config.Cache,
		Logging:  env.Config.Logging,
		Security: config.Security{
			ProtectedPaths: append(env.Config.Security.ProtectedPaths, path),
		},
	}
}
