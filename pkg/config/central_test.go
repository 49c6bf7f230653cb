package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsProtectedPath(t *testing.T) {
	cfg := &Config{
		Security: Security{
			ProtectedPaths: []string{"/etc", "/boot", "/var/lib/scpkg/"},
		},
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"direct match", "/etc", true},
		{"file under protected dir", "/etc/passwd", true},
		{"nested under protected dir", "/etc/ssh/sshd_config", true},
		{"trailing slash entry normalized", "/var/lib/scpkg/packages.json", true},
		{"unprotected prefix", "/usr/local/bin/tool", false},
		{"shared name prefix is not a match", "/etcetera/file", false},
		{"root is not protected", "/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.IsProtectedPath(tt.path), "path %s", tt.path)
		})
	}
}

func TestIsProtectedPathEmptyConfig(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.IsProtectedPath("/etc/passwd"), "no protected paths configured")
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotEmpty(t, cfg.Security.ProtectedPaths, "defaults should carry protected paths")
	assert.True(t, cfg.IsProtectedPath("/etc/passwd"), "/etc should be protected by default")
	assert.True(t, cfg.IsProtectedPath("/boot/vmlinuz"), "/boot should be protected by default")
	assert.True(t, cfg.IsProtectedPath("/var/lib/scpkg/packages.json"), "the database dir should be protected by default")
	assert.False(t, cfg.IsProtectedPath("/usr/local/bin/tool"), "the default prefix must not be protected")
	assert.Equal(t, "warn", cfg.Logging.Level)
}
