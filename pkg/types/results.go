package types

import "time"

// Warning is a non-fatal condition surfaced by a command. Warnings are
// reported alongside results and never change the exit status.
type Warning struct {
	// Code is the stable warning code (MANIFEST_PARSE, PROTECTED_PATH, ...)
	Code string `json:"code"`

	// Message is the human-readable description
	Message string `json:"message"`

	// Path names the file the warning is about, when there is one
	Path string `json:"path,omitempty"`
}

// InstallState tracks the phase an install operation is in. The sequence is
// Extracting, ResolvingManifest, InstallingContent, UpdatingDatabase, Cleanup,
// ending in Success or Failed.
type InstallState string

const (
	StateExtracting        InstallState = "extracting"
	StateResolvingManifest InstallState = "resolving-manifest"
	StateInstallingContent InstallState = "installing-content"
	StateUpdatingDatabase  InstallState = "updating-database"
	StateCleanup           InstallState = "cleanup"
	StateSuccess           InstallState = "success"
	StateFailed            InstallState = "failed"
)

// InstallResult holds the result of the 'install' command.
type InstallResult struct {
	// Package is the record written to the database. On dry runs it is the
	// record that would have been written.
	Package PackageRecord `json:"package"`

	// ManifestFile is the manifest filename found at the extracted root,
	// empty when the manifest was synthesized from the archive name.
	ManifestFile string `json:"manifest_file,omitempty"`

	// InstalledFiles are the absolute destination paths, in install order
	InstalledFiles []string `json:"installed_files"`

	// SkippedPaths are destinations refused by the protected-path check
	SkippedPaths []string `json:"skipped_paths,omitempty"`

	// Warnings collected during the operation
	Warnings []Warning `json:"warnings,omitempty"`

	// State is the terminal state, StateSuccess or StateFailed
	State InstallState `json:"state"`

	// FailedAt is the phase a failed install stopped in
	FailedAt InstallState `json:"failed_at,omitempty"`

	DryRun    bool      `json:"dry_run"`
	Timestamp time.Time `json:"timestamp"`
}

// RemovalOutcome classifies what happened to one file during uninstall.
type RemovalOutcome string

const (
	// RemovalRemoved - the file existed and was deleted
	RemovalRemoved RemovalOutcome = "removed"

	// RemovalAlreadyAbsent - the file was already gone, which counts as success
	RemovalAlreadyAbsent RemovalOutcome = "already-absent"

	// RemovalFailed - the file exists but could not be deleted
	RemovalFailed RemovalOutcome = "failed"
)

// RemovalResult is the outcome for a single tracked file.
type RemovalResult struct {
	Path    string         `json:"path"`
	Outcome RemovalOutcome `json:"outcome"`

	// Reason is set when Outcome is RemovalFailed
	Reason string `json:"reason,omitempty"`
}

// UninstallResult holds the result of the 'uninstall' command.
type UninstallResult struct {
	// Package is the record that was removed from the database
	Package PackageRecord `json:"package"`

	// Removals holds the per-file outcomes, in the record's file order
	Removals []RemovalResult `json:"removals"`

	// Warnings collected during the operation
	Warnings []Warning `json:"warnings,omitempty"`

	DryRun    bool      `json:"dry_run"`
	Timestamp time.Time `json:"timestamp"`
}

// RemovedCount reports how many files were actually deleted.
func (r *UninstallResult) RemovedCount() int {
	n := 0
	for _, rem := range r.Removals {
		if rem.Outcome == RemovalRemoved {
			n++
		}
	}
	return n
}

// FailedRemovals returns the removals that could not be completed.
func (r *UninstallResult) FailedRemovals() []RemovalResult {
	var failed []RemovalResult
	for _, rem := range r.Removals {
		if rem.Outcome == RemovalFailed {
			failed = append(failed, rem)
		}
	}
	return failed
}

// ListResult holds the result of the 'list' command. Packages appear in
// database insertion order.
type ListResult struct {
	Packages []PackageRecord `json:"packages"`
	Warnings []Warning       `json:"warnings,omitempty"`
}

// SearchResult holds the result of the 'search' command.
type SearchResult struct {
	Query    string          `json:"query"`
	Fuzzy    bool            `json:"fuzzy"`
	Packages []PackageRecord `json:"packages"`
	Warnings []Warning       `json:"warnings,omitempty"`
}

// InfoResult holds the result of the 'info' command.
type InfoResult struct {
	Package  PackageRecord `json:"package"`
	Warnings []Warning     `json:"warnings,omitempty"`
}

// GenConfigResult holds the result of the 'gen-config' command.
type GenConfigResult struct {
	ConfigContent string   `json:"config_content"`
	FilesWritten  []string `json:"files_written"`
}
