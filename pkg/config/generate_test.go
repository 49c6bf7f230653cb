package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	assert.Contains(t, content, "[install]", "section headers stay uncommented")
	assert.Contains(t, content, "[security]")
	assert.Contains(t, content, `# protected_paths = [`, "value lines get commented out")

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			continue
		}
		t.Errorf("generated config has an active value line: %q", line)
	}
}

func TestCommentOutConfigValues(t *testing.T) {
	in := "# a comment\n\n[section]\nkey = \"value\"\n"
	got := commentOutConfigValues(in)

	assert.Contains(t, got, "# a comment", "existing comments preserved")
	assert.Contains(t, got, "[section]", "headers preserved")
	assert.Contains(t, got, `# key = "value"`, "assignments commented")
	assert.NotContains(t, got, "\nkey =", "no active assignments remain")
}
