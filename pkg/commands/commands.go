// Package commands provides high-level command implementations for scpkg.
//
// This package contains the command orchestration layer that coordinates
// between the CLI interface and the packaging machinery.
//
// Each command is implemented in its own subdirectory:
//   - install/   - Install command
//   - uninstall/ - Uninstall command
//   - list/      - List command
//   - search/    - Search command
//   - info/      - Info command
//   - genconfig/ - GenConfig command
//   - internal/  - Shared command environment resolution
//
// This file serves as the main entry point and re-exports all command
// functions so callers only need one import.
package commands

import (
	"github.com/scarlettos/scpkg/pkg/commands/genconfig"
	"github.com/scarlettos/scpkg/pkg/commands/info"
	"github.com/scarlettos/scpkg/pkg/commands/install"
	"github.com/scarlettos/scpkg/pkg/commands/list"
	"github.com/scarlettos/scpkg/pkg/commands/search"
	"github.com/scarlettos/scpkg/pkg/commands/uninstall"
	"github.com/scarlettos/scpkg/pkg/types"
)

// Install installs a package from a local archive or directory.
type InstallOptions = install.InstallOptions

func Install(opts InstallOptions) (*types.InstallResult, error) {
	return install.Install(opts)
}

// Uninstall removes an installed package's files and database record.
type UninstallOptions = uninstall.UninstallOptions

func Uninstall(opts UninstallOptions) (*types.UninstallResult, error) {
	return uninstall.Uninstall(opts)
}

// List returns every installed package in install order.
type ListOptions = list.ListOptions

func List(opts ListOptions) (*types.ListResult, error) {
	return list.List(opts)
}

// Search finds installed packages matching a query.
type SearchOptions = search.SearchOptions

func Search(opts SearchOptions) (*types.SearchResult, error) {
	return search.Search(opts)
}

// Info returns the record of one installed package.
type InfoOptions = info.InfoOptions

func Info(opts InfoOptions) (*types.InfoResult, error) {
	return info.Info(opts)
}

// GenConfig outputs or writes the default configuration.
type GenConfigOptions = genconfig.GenConfigOptions

func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}
