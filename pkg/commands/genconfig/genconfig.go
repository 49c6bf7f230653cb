package genconfig

import (
	"fmt"
	"path/filepath"

	"github.com/scarlettos/scpkg/pkg/commands/internal/cmdenv"
	"github.com/scarlettos/scpkg/pkg/config"
	"github.com/scarlettos/scpkg/pkg/logging"
	"github.com/scarlettos/scpkg/pkg/paths"
	"github.com/scarlettos/scpkg/pkg/types"
)

// GenConfigOptions holds options for the gen-config command
type GenConfigOptions struct {
	// Write saves the generated file into the config directory instead
	// of only returning its content
	Write bool

	// FileSystem allows injecting a filesystem for testing
	FileSystem types.FS

	// Paths allows injecting a path layout for testing
	Paths paths.Paths
}

// GenConfig outputs or writes the default configuration
func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	env, err := cmdenv.Resolve(opts.FileSystem, opts.Paths, nil, nil)
	if err != nil {
		return nil, err
	}

	result := &types.GenConfigResult{
		ConfigContent: config.GenerateConfigContent(),
		FilesWritten:  []string{},
	}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	targetPath := filepath.Join(env.Paths.ConfigDir(), paths.ConfigFileName)

	if err := env.FS.MkdirAll(env.Paths.ConfigDir(), 0755); err != nil {
		return result, fmt.Errorf("failed to create directory %s: %w", env.Paths.ConfigDir(), err)
	}

	// Never clobber a config the user already edited
	if _, err := env.FS.Stat(targetPath); err == nil {
		logger.Warn().Str("path", targetPath).Msg("Config file already exists, skipping")
		return result, nil
	}

	if err := env.FS.WriteFile(targetPath, []byte(result.ConfigContent), 0644); err != nil {
		return result, fmt.Errorf("failed to write config to %s: %w", targetPath, err)
	}

	logger.Info().Str("path", targetPath).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, targetPath)
	return result, nil
}
