package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvInstallPrefix, "")
	t.Setenv(EnvDatabasePath, "")
	t.Setenv(EnvCacheDir, "")
	t.Setenv(EnvConfigDir, "")
	t.Setenv(EnvSystemMode, "")
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		envSetup map[string]string
		validate func(t *testing.T, p Paths)
	}{
		{
			name:   "explicit install prefix",
			prefix: "/tmp/scpkg-prefix",
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/tmp/scpkg-prefix", p.InstallPrefix())
				assert.False(t, p.UsedFallback(), "explicit prefix is not a fallback")
			},
		},
		{
			name: "prefix from environment",
			envSetup: map[string]string{
				EnvInstallPrefix: "/env/prefix",
			},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/env/prefix", p.InstallPrefix())
				assert.False(t, p.UsedFallback())
			},
		},
		{
			name:   "expand tilde in explicit prefix",
			prefix: "~/pkgs",
			validate: func(t *testing.T, p Paths) {
				homeDir, _ := os.UserHomeDir()
				assert.Equal(t, filepath.Join(homeDir, "pkgs"), p.InstallPrefix())
			},
		},
		{
			name: "forced system mode",
			envSetup: map[string]string{
				EnvSystemMode: "1",
			},
			validate: func(t *testing.T, p Paths) {
				assert.True(t, p.SystemMode())
				assert.Equal(t, SystemInstallPrefix, p.InstallPrefix())
				assert.Equal(t, SystemDatabasePath, p.DatabasePath())
				assert.Equal(t, SystemCacheDir, p.CacheDir())
				assert.False(t, p.UsedFallback(), "system mode is never a fallback")
			},
		},
		{
			name: "database and cache overrides",
			envSetup: map[string]string{
				EnvDatabasePath: "/custom/db.json",
				EnvCacheDir:     "/custom/cache",
			},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/custom/db.json", p.DatabasePath())
				assert.Equal(t, "/custom/cache", p.CacheDir())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.envSetup {
				t.Setenv(k, v)
			}

			p, err := New(tt.prefix)
			require.NoError(t, err, "New() should not fail")
			tt.validate(t, p)
		})
	}
}

func TestUserModeFallback(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("user-mode fallback requires a non-root user")
	}
	clearEnv(t)

	p, err := New("")
	require.NoError(t, err)

	assert.False(t, p.SystemMode())
	assert.True(t, p.UsedFallback(), "implicit user-mode paths should be flagged")

	homeDir, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(homeDir, ".local"), p.InstallPrefix())
	assert.Contains(t, p.DatabasePath(), filepath.Join(ScpkgDirName, DatabaseFileName))
}

func TestStateDirRespectsXDGStateHome(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("state dir test requires a non-root user")
	}
	clearEnv(t)
	t.Setenv("XDG_STATE_HOME", "/custom/state")

	p, err := New("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/custom/state", ScpkgDirName), p.StateDir())
	assert.Equal(t, filepath.Join("/custom/state", ScpkgDirName, LogFileName), p.LogFilePath())
	assert.Equal(t, filepath.Join("/custom/state", ScpkgDirName, DatabaseFileName), p.DatabasePath())
}

func TestConfigFileCandidates(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigDir, "/custom/config")

	p, err := New("/tmp/prefix")
	require.NoError(t, err)

	candidates := p.ConfigFileCandidates()
	require.Len(t, candidates, 2, "system file plus user file")
	assert.Equal(t, filepath.Join(SystemConfigDir, ConfigFileName), candidates[0])
	assert.Equal(t, filepath.Join("/custom/config", ConfigFileName), candidates[1])
}

func TestConfigFileCandidatesSystemMode(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSystemMode, "true")

	p, err := New("")
	require.NoError(t, err)

	candidates := p.ConfigFileCandidates()
	require.Len(t, candidates, 1, "system mode should not list the file twice")
	assert.Equal(t, filepath.Join(SystemConfigDir, ConfigFileName), candidates[0])
}

func TestNormalizePath(t *testing.T) {
	clearEnv(t)
	p, err := New("/tmp/prefix")
	require.NoError(t, err)

	t.Run("cleans redundant separators", func(t *testing.T) {
		got, err := p.NormalizePath("/usr//local/./bin")
		require.NoError(t, err)
		assert.Equal(t, "/usr/local/bin", got)
	})

	t.Run("expands home", func(t *testing.T) {
		homeDir, _ := os.UserHomeDir()
		got, err := p.NormalizePath("~/bin")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(homeDir, "bin"), got)
	})

	t.Run("rejects empty path", func(t *testing.T) {
		_, err := p.NormalizePath("")
		assert.Error(t, err)
	})
}

func TestExpandHome(t *testing.T) {
	homeDir, _ := os.UserHomeDir()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare tilde", "~", homeDir},
		{"tilde with path", "~/x/y", filepath.Join(homeDir, "x", "y")},
		{"no tilde", "/usr/local", "/usr/local"},
		{"tilde user untouched", "~other/x", "~other/x"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}
