// Package installer copies extracted package content into the install
// prefix. It plans one copy per regular file, runs the whole batch as a
// synthfs pipeline, then fixes up permissions and modification times so
// installed files match what the archive carried.
//
// Rollback is deliberately disabled: when a copy fails mid-batch, files
// already placed stay where they are and the caller decides what the
// failure means for the package database.
package installer

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"

	"github.com/scarlettos/scpkg/pkg/config"
	"github.com/scarlettos/scpkg/pkg/errors"
	"github.com/scarlettos/scpkg/pkg/logging"
	"github.com/scarlettos/scpkg/pkg/manifest"
	"github.com/scarlettos/scpkg/pkg/types"
)

// ContentDirName is the subdirectory of an extracted package that holds
// the files to install. When absent, the extracted root itself is the
// content root.
const ContentDirName = "content"

// Options configures an Installer.
type Options struct {
	// FS handles metadata operations and existence checks
	FS types.FS

	// Config supplies the install prefix and protected paths.
	// Defaults when nil.
	Config *config.Config

	// DryRun plans the install without touching the filesystem
	DryRun bool
}

// Installer places package content under the install prefix.
type Installer struct {
	logger     zerolog.Logger
	fs         types.FS
	filesystem filesystem.FullFileSystem
	config     *config.Config
	prefix     string
	dryRun     bool
}

// Result describes what a content installation did.
type Result struct {
	// InstalledFiles holds absolute destination paths in the order the
	// files were placed
	InstalledFiles []string

	// SkippedPaths holds destinations refused because they sit under a
	// protected path
	SkippedPaths []string

	// Warnings collects protected-path skips and metadata fixup problems
	Warnings []types.Warning
}

// fileCopy is one planned file placement
type fileCopy struct {
	source string
	dest   string
}

// New creates an Installer.
func New(opts *Options) *Installer {
	// PathAwareFileSystem lets the pipeline work on absolute paths
	osfs := filesystem.NewOSFileSystem("/")
	pathAwareFS := synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths()

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	return &Installer{
		logger:     logging.GetLogger("installer"),
		fs:         opts.FS,
		filesystem: pathAwareFS,
		config:     cfg,
		prefix:     cfg.Install.Prefix,
		dryRun:     opts.DryRun,
	}
}

// InstallContent copies the content of an extracted package tree into the
// install prefix. Every regular file is placed at the prefix under its
// path relative to the content root. Root-level manifest files never
// count as content, and destinations under a protected path are skipped
// with a warning rather than written.
//
// On a mid-batch failure the returned result still lists the files that
// made it to disk before the failure.
func (inst *Installer) InstallContent(ctx context.Context, pkgName, extractedDir string) (*Result, error) {
	contentRoot := inst.contentRoot(extractedDir)

	plan, result, err := inst.planContent(contentRoot, contentRoot == extractedDir)
	if err != nil {
		return result, err
	}

	inst.logger.Info().
		Str("package", pkgName).
		Str("contentRoot", contentRoot).
		Int("fileCount", len(plan)).
		Int("skipped", len(result.SkippedPaths)).
		Bool("dryRun", inst.dryRun).
		Msg("Installing package content")

	if inst.dryRun {
		for _, c := range plan {
			result.InstalledFiles = append(result.InstalledFiles, c.dest)
		}
		return result, nil
	}

	if len(plan) == 0 {
		return result, nil
	}

	return inst.execute(ctx, pkgName, plan, result)
}

// contentRoot returns extractedDir/content when that directory exists,
// otherwise extractedDir itself.
func (inst *Installer) contentRoot(extractedDir string) string {
	candidate := filepath.Join(extractedDir, ContentDirName)
	if info, err := inst.fs.Stat(candidate); err == nil && info.IsDir() {
		inst.logger.Debug().Str("contentRoot", candidate).Msg("Using content subdirectory")
		return candidate
	}
	return extractedDir
}

// planContent walks the content root and decides the destination of every
// regular file. skipManifests is set when the content root doubles as the
// extracted root, where manifest files are metadata rather than content.
func (inst *Installer) planContent(contentRoot string, skipManifests bool) ([]fileCopy, *Result, error) {
	result := &Result{}
	var plan []fileCopy

	walkErr := filepath.WalkDir(contentRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			inst.logger.Debug().Str("path", path).Msg("Skipping non-regular content entry")
			return nil
		}

		rel, err := filepath.Rel(contentRoot, path)
		if err != nil {
			return err
		}
		if skipManifests && filepath.Dir(rel) == "." && manifest.IsManifestFile(rel) {
			return nil
		}

		dest := filepath.Join(inst.prefix, rel)
		if inst.config.IsProtectedPath(dest) {
			inst.logger.Warn().Str("path", dest).Msg("Refusing to write to protected path")
			result.SkippedPaths = append(result.SkippedPaths, dest)
			result.Warnings = append(result.Warnings, types.Warning{
				Code:    string(errors.ErrProtectedPath),
				Message: "destination is under a protected path, file skipped",
				Path:    dest,
			})
			return nil
		}

		plan = append(plan, fileCopy{source: path, dest: dest})
		return nil
	})
	if walkErr != nil {
		return nil, result, errors.Wrapf(walkErr, errors.ErrInstallFailed,
			"failed to read package content at %s", contentRoot)
	}

	return plan, result, nil
}

// execute runs the planned copies as one synthfs pipeline and then fixes
// up file metadata.
func (inst *Installer) execute(ctx context.Context, pkgName string, plan []fileCopy, result *Result) (*Result, error) {
	sfs := synthfs.New()

	ops := []synthfs.Operation{}
	copyIDs := make([]synthfs.OperationID, len(plan))
	seenDirs := make(map[string]bool)

	for i, c := range plan {
		destDir := filepath.Dir(c.dest)
		if destDir != "." && destDir != "/" && !seenDirs[destDir] {
			seenDirs[destDir] = true
			if _, err := inst.fs.Stat(destDir); err != nil {
				dirID := fmt.Sprintf("mkdir_%s_%s_%d", pkgName, filepath.Base(destDir), i)
				ops = append(ops, sfs.CreateDirWithID(dirID, destDir, 0755))
			}
		}

		// Reinstalls overwrite whatever a previous version left behind
		if _, err := inst.fs.Stat(c.dest); err == nil {
			_ = inst.fs.Remove(c.dest)
		}

		copyID := fmt.Sprintf("copy_%s_%s_%d", pkgName, filepath.Base(c.dest), i)
		copyIDs[i] = synthfs.OperationID(copyID)
		ops = append(ops, sfs.CopyWithID(copyID, c.source, c.dest))
	}

	// Partial results must survive a failure, so rollback stays off
	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = false

	inst.logger.Debug().
		Int("operationCount", len(ops)).
		Msg("Executing copy pipeline")

	runResult, runErr := synthfs.RunWithOptions(ctx, inst.filesystem, options, ops...)

	succeeded := make(map[synthfs.OperationID]bool)
	if runResult != nil {
		for _, opResult := range runResult.GetOperations() {
			if r, ok := opResult.(synthfs.OperationResult); ok && r.Status == synthfs.StatusSuccess {
				succeeded[r.OperationID] = true
			}
		}
	}

	for i, c := range plan {
		if !succeeded[copyIDs[i]] {
			continue
		}
		result.InstalledFiles = append(result.InstalledFiles, c.dest)
		inst.preserveMetadata(c, result)
	}

	if runErr != nil {
		return result, errors.Wrapf(runErr, errors.ErrInstallFailed,
			"failed to install content for %s", pkgName)
	}

	inst.logger.Info().
		Str("package", pkgName).
		Int("installed", len(result.InstalledFiles)).
		Msg("Package content installed")
	return result, nil
}

// preserveMetadata carries the source file's permission bits and
// modification time over to the installed copy. A miss here degrades the
// install rather than failing it.
func (inst *Installer) preserveMetadata(c fileCopy, result *Result) {
	info, err := inst.fs.Stat(c.source)
	if err != nil {
		inst.metadataWarning(c.dest, err, result)
		return
	}
	if err := inst.fs.Chmod(c.dest, info.Mode().Perm()); err != nil {
		inst.metadataWarning(c.dest, err, result)
		return
	}
	modTime := info.ModTime()
	if modTime.IsZero() {
		modTime = time.Now()
	}
	if err := inst.fs.Chtimes(c.dest, modTime, modTime); err != nil {
		inst.metadataWarning(c.dest, err, result)
	}
}

func (inst *Installer) metadataWarning(dest string, err error, result *Result) {
	inst.logger.Warn().Err(err).Str("path", dest).Msg("Could not preserve file metadata")
	result.Warnings = append(result.Warnings, types.Warning{
		Code:    string(errors.ErrFileAccess),
		Message: "installed file kept default metadata: " + err.Error(),
		Path:    dest,
	})
}
