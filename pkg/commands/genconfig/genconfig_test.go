package genconfig

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarlettos/scpkg/pkg/paths"
	"github.com/scarlettos/scpkg/pkg/testutil"
)

func TestGenConfig(t *testing.T) {
	t.Run("output only", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)

		result, err := GenConfig(GenConfigOptions{
			Write:      false,
			FileSystem: env.FS,
			Paths:      env.Paths,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.ConfigContent)
		assert.Contains(t, result.ConfigContent, "[install]")
		assert.Contains(t, result.ConfigContent, "[security]")
		assert.Contains(t, result.ConfigContent, "[logging]")
		assert.Empty(t, result.FilesWritten)

		// Every value line must be commented out so the generated file
		// changes nothing until the user uncomments it
		for _, line := range strings.Split(result.ConfigContent, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") ||
				(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")) {
				continue
			}
			assert.Fail(t, "Found uncommented configuration line", "Line: %s", line)
		}

		assert.Contains(t, result.ConfigContent, "# protected_paths = [")
		assert.Contains(t, result.ConfigContent, "# level = \"warn\"")

		// Nothing lands on disk without Write
		_, statErr := env.FS.Stat(filepath.Join(env.ConfigDir, paths.ConfigFileName))
		assert.Error(t, statErr)
	})

	t.Run("write config file", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)

		result, err := GenConfig(GenConfigOptions{
			Write:      true,
			FileSystem: env.FS,
			Paths:      env.Paths,
		})

		require.NoError(t, err)
		require.Len(t, result.FilesWritten, 1)
		target := filepath.Join(env.ConfigDir, paths.ConfigFileName)
		assert.Equal(t, target, result.FilesWritten[0])

		content, err := env.FS.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, result.ConfigContent, string(content))
	})

	t.Run("write keeps existing file", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		target := filepath.Join(env.ConfigDir, paths.ConfigFileName)
		require.NoError(t, env.FS.MkdirAll(env.ConfigDir, 0755))
		require.NoError(t, env.FS.WriteFile(target, []byte("# mine\n"), 0644))

		result, err := GenConfig(GenConfigOptions{
			Write:      true,
			FileSystem: env.FS,
			Paths:      env.Paths,
		})

		require.NoError(t, err)
		assert.Empty(t, result.FilesWritten)

		content, err := env.FS.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "# mine\n", string(content), "an edited config is never overwritten")
	})
}
