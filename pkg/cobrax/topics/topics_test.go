package topics

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTopic(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestTopicManager_ScanTopics(t *testing.T) {
	topicsDir := t.TempDir()
	writeTopic(t, topicsDir, "dry-run.txt", "Information about dry-run mode")
	writeTopic(t, topicsDir, "manifests.md", "# Manifests\n\nHow package manifests work")
	writeTopic(t, topicsDir, "config.txxt", "Configuration Guide\n==================")
	writeTopic(t, topicsDir, "ignore.json", "This should be ignored")

	t.Run("default extensions", func(t *testing.T) {
		tm := New(topicsDir)
		require.NoError(t, tm.scanTopics())

		tests := []struct {
			name     string
			expected bool
			content  string
		}{
			{"dry-run", true, "Information about dry-run mode"},
			{"manifests", true, "# Manifests\n\nHow package manifests work"},
			{"config", false, ""}, // .txxt not in defaults
			{"ignore", false, ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				topic, exists := tm.GetTopic(tt.name)
				assert.Equal(t, tt.expected, exists)
				if exists {
					assert.Equal(t, tt.content, topic.Content)
				}
			})
		}
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(topicsDir, Options{
			Extensions: []string{".txt", ".md", ".txxt"},
		})
		require.NoError(t, tm.scanTopics())

		topic, exists := tm.GetTopic("config")
		require.True(t, exists)
		assert.Equal(t, "Configuration Guide\n==================", topic.Content)
	})
}

func TestTopicManager_ScanMissingDirectory(t *testing.T) {
	tm := New(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.NoError(t, tm.scanTopics(), "a missing topics dir means no topics, not an error")
	assert.Empty(t, tm.ListTopics())
}

func TestTopicManager_GetTopic(t *testing.T) {
	topicsDir := t.TempDir()
	writeTopic(t, topicsDir, "option-dry-run.txt", "Dry run help")
	writeTopic(t, topicsDir, "option-verbose.txt", "Verbose help")
	writeTopic(t, topicsDir, "manifests.txt", "Manifest help")

	tm := New(topicsDir)
	require.NoError(t, tm.scanTopics())

	tests := []struct {
		input    string
		expected string
		exists   bool
	}{
		{"manifests", "manifests", true},
		{"option-dry-run", "option-dry-run", true},
		// Flag-style lookups find option- prefixed files
		{"dry-run", "option-dry-run", true},
		{"--dry-run", "option-dry-run", true},
		{"-dry-run", "option-dry-run", true},
		{"verbose", "option-verbose", true},
		{"--verbose", "option-verbose", true},
		{"-v", "", false},
		{"nonexistent", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, exists := tm.GetTopic(tt.input)
			assert.Equal(t, tt.exists, exists)
			if exists {
				assert.Equal(t, tt.expected, topic.Name)
			}
		})
	}
}

func TestTopicManager_ListTopics(t *testing.T) {
	topicsDir := t.TempDir()
	names := []string{"manifests", "database", "dry-run", "config"}
	for _, name := range names {
		writeTopic(t, topicsDir, name+".txt", "Help for "+name)
	}

	tm := New(topicsDir)
	require.NoError(t, tm.scanTopics())

	list := tm.ListTopics()
	assert.Len(t, list, len(names))
	for _, expected := range names {
		assert.Contains(t, list, expected)
	}
}

func TestInitializeWithOptions(t *testing.T) {
	topicsDir := t.TempDir()
	writeTopic(t, topicsDir, "manifests.txt", "All about manifests\n")

	rootCmd := &cobra.Command{Use: "testapp"}
	require.NoError(t, InitializeWithOptions(rootCmd, topicsDir, Options{}))

	// The custom help command replaces cobra's default
	helpCmd, _, err := rootCmd.Find([]string{"help"})
	require.NoError(t, err)
	assert.Equal(t, "help", helpCmd.Name())

	// --help on a topic name renders the topic
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"help"})
	assert.NoError(t, rootCmd.Execute())
}

func TestPlainRenderer(t *testing.T) {
	r := &PlainRenderer{}
	assert.Equal(t, "unchanged", r.Render("unchanged", ".txt"))
	assert.Equal(t, "# md", r.Render("# md", ".md"))
}

func TestGlamourRendererPassesThroughNonMarkdown(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))
}
