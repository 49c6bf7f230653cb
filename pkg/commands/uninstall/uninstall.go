// Package uninstall implements the uninstall command. File removal is
// best effort: a file someone already deleted counts as done, and a file
// that cannot be removed becomes a warning instead of aborting the run.
// The database record is deleted and persisted regardless, so a package
// never stays half-registered.
package uninstall

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/scarlettos/scpkg/pkg/commands/internal/cmdenv"
	"github.com/scarlettos/scpkg/pkg/config"
	"github.com/scarlettos/scpkg/pkg/database"
	"github.com/scarlettos/scpkg/pkg/errors"
	"github.com/scarlettos/scpkg/pkg/logging"
	"github.com/scarlettos/scpkg/pkg/paths"
	"github.com/scarlettos/scpkg/pkg/types"
)

// UninstallOptions holds options for the uninstall command.
type UninstallOptions struct {
	// PackageName is the installed package to remove
	PackageName string

	// DryRun reports what would be removed without changing anything
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

// Uninstall removes an installed package's files and its database record.
func Uninstall(opts UninstallOptions) (*types.UninstallResult, error) {
	logger := logging.GetLogger("commands.uninstall")
	logger.Info().
		Str("package", opts.PackageName).
		Bool("dryRun", opts.DryRun).
		Msg("Uninstalling package")

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

	result := &types.UninstallResult{
		Package:   record,
		Warnings:  warnings,
		DryRun:    opts.DryRun,
		Timestamp: time.Now(),
	}

	for _, path := range record.InstalledFiles {
		result.Removals = append(result.Removals, removeFile(env.FS, logger, path, opts.DryRun))
	}

	for _, failed := range result.FailedRemovals() {
		result.Warnings = append(result.Warnings, types.Warning{
			Code:    string(errors.ErrFileRemoval),
			Message: "could not remove file: " + failed.Reason,
			Path:    failed.Path,
		})
	}

	if opts.DryRun {
		logger.Info().
			Str("package", record.Name).
			Int("fileCount", len(record.InstalledFiles)).
			Msg("Dry run complete, nothing was changed")
		return result, nil
	}

	pruneEmptyParents(env.FS, logger, record.InstalledFiles, env.Config.Install.Prefix)

	// The record goes away even when some files resisted removal
	doc.Delete(record.Name)
	if err := env.Store.Save(doc); err != nil {
		return result, errors.Wrapf(err, errors.ErrDatabaseSave,
			"failed to record removal of %s", record.Name)
	}

	logger.Info().
		Str("package", record.Name).
		Int("removed", result.RemovedCount()).
		Int("failed", len(result.FailedRemovals())).
		Msg("Package uninstalled")
	return result, nil
}

// removeFile removes one installed file. A path that is already gone is
// a success, not an error.
func removeFile(fs types.FS, logger zerolog.Logger, path string, dryRun bool) types.RemovalResult {
	if _, err := fs.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("File already absent")
			return types.RemovalResult{Path: path, Outcome: types.RemovalAlreadyAbsent}
		}
		logger.Warn().Err(err).Str("path", path).Msg("Could not check file")
		return types.RemovalResult{Path: path, Outcome: types.RemovalFailed, Reason: err.Error()}
	}

	if dryRun {
		return types.RemovalResult{Path: path, Outcome: types.RemovalRemoved}
	}

	if err := fs.Remove(path); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Could not remove file")
		return types.RemovalResult{Path: path, Outcome: types.RemovalFailed, Reason: err.Error()}
	}
	return types.RemovalResult{Path: path, Outcome: types.RemovalRemoved}
}

// pruneEmptyParents removes directories the uninstall emptied, walking
// up from each removed file until it reaches the prefix or a directory
// that still has contents. Failures are silent; shared directories stop
// the climb naturally by not being empty.
func pruneEmptyParents(fs types.FS, logger zerolog.Logger, files []string, prefix string) {
	prefix = strings.TrimSuffix(prefix, "/")
	stopped := make(map[string]bool)

	for i := len(files) - 1; i >= 0; i-- {
		dir := filepath.Dir(files[i])
		for dir != prefix && dir != "/" && dir != "." &&
			strings.HasPrefix(dir, prefix+string(os.PathSeparator)) {
			if stopped[dir] {
				break
			}
			if err := fs.Remove(dir); err != nil {
				stopped[dir] = true
				break
			}
			logger.Debug().Str("dir", dir).Msg("Removed empty directory")
			dir = filepath.Dir(dir)
		}
	}
}
