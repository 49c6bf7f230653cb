package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/scarlettos/scpkg/pkg/types"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temp dir for log file
			tempDir := t.TempDir()
			t.Setenv("XDG_STATE_HOME", tempDir)

			SetupLogger(tt.verbosity)

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("SetupLogger(%d) set level to %v, want %v",
					tt.verbosity, zerolog.GlobalLevel(), tt.wantLevel)
			}

			// Check that log file was created
			logPath := filepath.Join(tempDir, "scpkg", "scpkg.log")
			if _, err := os.Stat(logPath); os.IsNotExist(err) {
				t.Errorf("Log file was not created at %s", logPath)
			}
		})
	}
}

func TestGetLogFilePath(t *testing.T) {
	tests := []struct {
		name         string
		xdgState     string
		wantContains string
	}{
		{
			name:         "with XDG_STATE_HOME",
			xdgState:     "/custom/state",
			wantContains: "/custom/state/scpkg/scpkg.log",
		},
		{
			name:         "without XDG_STATE_HOME",
			xdgState:     "",
			wantContains: ".local/state/scpkg/scpkg.log",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.xdgState != "" {
				t.Setenv("XDG_STATE_HOME", tt.xdgState)
			}

			got := getLogFilePath()
			if !strings.Contains(got, tt.wantContains) {
				t.Errorf("getLogFilePath() = %s, want to contain %s", got, tt.wantContains)
			}
		})
	}
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)

	logger := GetLogger("database")
	logger.Info().Msg("loaded")

	output := buf.String()
	if !strings.Contains(output, `"component":"database"`) {
		t.Errorf("GetLogger output missing component field: %s", output)
	}
}

func TestLogWarnings(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)

	logger := GetLogger("commands.install")
	LogWarnings(logger, []types.Warning{
		{Code: "MANIFEST_PARSE", Message: "manifest.json is malformed, using archive name"},
		{Code: "PROTECTED_PATH", Message: "skipping protected path", Path: "/etc/passwd"},
	})

	output := buf.String()
	if !strings.Contains(output, "MANIFEST_PARSE") {
		t.Errorf("LogWarnings output missing first code: %s", output)
	}
	if !strings.Contains(output, "PROTECTED_PATH") {
		t.Errorf("LogWarnings output missing second code: %s", output)
	}
	if !strings.Contains(output, "/etc/passwd") {
		t.Errorf("LogWarnings output missing path field: %s", output)
	}
	if !strings.Contains(output, `"level":"warn"`) {
		t.Errorf("LogWarnings should log at warn level: %s", output)
	}
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)

	logger := GetLogger("archive")
	done := LogOperationStart(logger, "extract")
	done()

	output := buf.String()
	if !strings.Contains(output, "Operation started") {
		t.Errorf("missing start event: %s", output)
	}
	if !strings.Contains(output, "Operation completed") {
		t.Errorf("missing completion event: %s", output)
	}
	if !strings.Contains(output, "duration") {
		t.Errorf("completion event should carry duration: %s", output)
	}
}
