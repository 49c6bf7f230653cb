// Package install implements the install command: extract a package
// archive into a scratch directory, resolve its manifest, copy its
// content under the install prefix and record the result in the package
// database.
//
// The database is only written after every content file is in place, so
// a failed install never changes what the database says is installed.
// Files a failed install already copied are left on disk; the scratch
// directory is removed no matter how the command exits.
package install

import (
	"context"
	"os"
	"time"

	"github.com/scarlettos/scpkg/pkg/archive"
	"github.com/scarlettos/scpkg/pkg/commands/internal/cmdenv"
	"github.com/scarlettos/scpkg/pkg/config"
	"github.com/scarlettos/scpkg/pkg/database"
	"github.com/scarlettos/scpkg/pkg/errors"
	"github.com/scarlettos/scpkg/pkg/installer"
	"github.com/scarlettos/scpkg/pkg/logging"
	"github.com/scarlettos/scpkg/pkg/manifest"
	"github.com/scarlettos/scpkg/pkg/paths"
	"github.com/scarlettos/scpkg/pkg/types"
)

// InstallOptions holds options for the install command.
type InstallOptions struct {
	// SourcePath is the archive file or package directory to install
	SourcePath string

	// DryRun reports what would be installed without changing anything
	DryRun bool

	// FileSystem allows injecting a filesystem for testing
	FileSystem types.FS

	// Paths allows injecting a path layout for testing
	Paths paths.Paths

	// Config allows injecting configuration for testing
	Config *config.Config

	// Store allows injecting a database store for testing
	Store *database.Store
}

// Install installs a package from a local archive or directory.
func Install(opts InstallOptions) (*types.InstallResult, error) {
	logger := logging.GetLogger("commands.install")
	logger.Info().
		Str("source", opts.SourcePath).
		Bool("dryRun", opts.DryRun).
		Msg("Installing package")

	env, err := cmdenv.Resolve(opts.FileSystem, opts.Paths, opts.Config, opts.Store)
	if err != nil {
		return nil, err
	}

	// The source has to exist before any state changes
	if _, err := env.FS.Stat(opts.SourcePath); err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceNotFound,
			"package source not found: %s", opts.SourcePath)
	}

	result := &types.InstallResult{
		State:     types.StateExtracting,
		DryRun:    opts.DryRun,
		Timestamp: time.Now(),
	}

	if err := env.FS.MkdirAll(env.Paths.CacheDir(), 0755); err != nil {
		result.State = types.StateFailed
		result.FailedAt = types.StateExtracting
		return result, errors.Wrapf(err, errors.ErrInstallFailed,
			"failed to create cache directory %s", env.Paths.CacheDir())
	}

	scratchDir, err := os.MkdirTemp(env.Paths.CacheDir(), "extract-*")
	if err != nil {
		result.State = types.StateFailed
		result.FailedAt = types.StateExtracting
		return result, errors.Wrapf(err, errors.ErrInstallFailed,
			"failed to create scratch directory")
	}

	// The scratch tree goes away on every exit path
	cleanup := func() {
		if err := env.FS.RemoveAll(scratchDir); err != nil {
			logger.Warn().Err(err).Str("dir", scratchDir).Msg("Could not remove scratch directory")
		}
	}
	defer cleanup()

	if err := archive.Extract(opts.SourcePath, scratchDir); err != nil {
		result.State = types.StateFailed
		result.FailedAt = types.StateExtracting
		return result, err
	}

	result.State = types.StateResolvingManifest
	resolution := manifest.Resolve(env.FS, scratchDir, archive.FallbackName(opts.SourcePath))
	result.ManifestFile = resolution.File
	result.Warnings = append(result.Warnings, resolution.Warnings...)

	result.State = types.StateInstallingContent
	inst := installer.New(&installer.Options{
		FS:     env.FS,
		Config: env.Config,
		DryRun: opts.DryRun,
	})
	content, err := inst.InstallContent(context.Background(), resolution.Manifest.Name, scratchDir)
	if content != nil {
		result.InstalledFiles = content.InstalledFiles
		result.SkippedPaths = content.SkippedPaths
		result.Warnings = append(result.Warnings, content.Warnings...)
	}
	if err != nil {
		result.State = types.StateFailed
		result.FailedAt = types.StateInstallingContent
		return result, err
	}

	record := types.NewPackageRecord(resolution.Manifest, result.InstalledFiles, result.Timestamp)
	result.Package = *record

	if opts.DryRun {
		result.State = types.StateSuccess
		logger.Info().
			Str("package", record.Name).
			Int("fileCount", len(result.InstalledFiles)).
			Msg("Dry run complete, nothing was changed")
		return result, nil
	}

	result.State = types.StateUpdatingDatabase
	doc, warnings := env.Store.Load()
	result.Warnings = append(result.Warnings, warnings...)

	previous, replaced := doc.Set(*record)
	if replaced {
		if orphans := orphanedFiles(previous.InstalledFiles, record.InstalledFiles); len(orphans) > 0 {
			logger.Debug().
				Str("package", record.Name).
				Str("previousVersion", previous.Version).
				Strs("orphans", orphans).
				Msg("Files from the previous install are no longer owned by this package")
		}
	}

	if err := env.Store.Save(doc); err != nil {
		result.State = types.StateFailed
		result.FailedAt = types.StateUpdatingDatabase
		return result, errors.Wrapf(err, errors.ErrDatabaseSave,
			"failed to record install of %s", record.Name)
	}

	result.State = types.StateCleanup
	cleanup()

	result.State = types.StateSuccess
	logger.Info().
		Str("package", record.Name).
		Str("version", record.Version).
		Int("fileCount", len(result.InstalledFiles)).
		Msg("Package installed")
	return result, nil
}

// orphanedFiles lists paths the previous install placed that the new
// file set no longer contains. They stay on disk; a reinstall only takes
// ownership of what it actually wrote.
func orphanedFiles(previous, current []string) []string {
	owned := make(map[string]bool, len(current))
	for _, path := range current {
		owned[path] = true
	}
	var orphans []string
	for _, path := range previous {
		if !owned[path] {
			orphans = append(orphans, path)
		}
	}
	return orphans
}
