package list

import (
	"github.com/scarlettos/scpkg/pkg/commands/internal/cmdenv"
	"github.com/scarlettos/scpkg/pkg/config"
	"github.com/scarlettos/scpkg/pkg/database"
	"github.com/scarlettos/scpkg/pkg/logging"
	"github.com/scarlettos/scpkg/pkg/paths"
	"github.com/scarlettos/scpkg/pkg/types"
)

// ListOptions defines the options for the List command.
type ListOptions struct {
	// FileSystem allows injecting a filesystem for testing
	FileSystem types.FS

	// Paths allows injecting a path layout for testing
	Paths paths.Paths

	// Config allows injecting configuration for testing
	Config *config.Config

	// Store allows injecting a database store for testing
	Store *database.Store
}

// List returns every installed package in the order they were installed.
func List(opts ListOptions) (*types.ListResult, error) {
	log := logging.GetLogger("commands.list")
	log.Debug().Str("command", "List").Msg("Executing command")

	env, err := cmdenv.Resolve(opts.FileSystem, opts.Paths, opts.Config, opts.Store)
	if err != nil {
		return nil, err
	}

	doc, warnings := env.Store.Load()
	result := &types.ListResult{
		Packages: doc.Records(),
		Warnings: warnings,
	}

	log.Info().Str("command", "List").Int("packageCount", len(result.Packages)).Msg("Command finished")
	return result, nil
}
