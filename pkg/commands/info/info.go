package info

import (
	"github.com/scarlettos/scpkg/pkg/commands/internal/cmdenv"
	"github.com/scarlettos/scpkg/pkg/config"
	"github.com/scarlettos/scpkg/pkg/database"
	"github.com/scarlettos/scpkg/pkg/errors"
	"github.com/scarlettos/scpkg/pkg/logging"
	"github.com/scarlettos/scpkg/pkg/paths"
	"github.com/scarlettos/scpkg/pkg/types"
)

// InfoOptions defines the options for the Info command.
type InfoOptions struct {
	// PackageName is the installed package to describe
	PackageName string

	// FileSystem allows injecting a filesystem for testing
	FileSystem types.FS

	// Paths allows injecting a path layout for testing
	Paths paths.Paths

	// Config allows injecting configuration for testing
	Config *config.Config

	// Store allows injecting a database store for testing
	Store *database.Store
}

// Info returns the database record of one installed package, including
// its full file list.
func Info(opts InfoOptions) (*types.InfoResult, error) {
	log := logging.GetLogger("commands.info")
	log.Debug().Str("command", "Info").Str("package", opts.PackageName).Msg("Executing command")

	env, err := cmdenv.Resolve(opts.FileSystem, opts.Paths, opts.Config, opts.Store)
	if err != nil {
		return nil, err
	}

	doc, warnings := env.Store.Load()
	record, ok := doc.Get(opts.PackageName)
	if !ok {
		return nil, errors.Newf(errors.ErrNotInstalled,
			"package %s is not installed", opts.PackageName)
	}

	return &types.InfoResult{Package: record, Warnings: warnings}, nil
}
