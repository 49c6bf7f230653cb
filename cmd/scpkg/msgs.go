package scpkg

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A local package manager"
	MsgInstallShort    = "Install a package from an archive or directory"
	MsgUninstallShort  = "Remove an installed package"
	MsgListShort       = "List installed packages"
	MsgListLong        = "List displays every installed package in the order it was installed."
	MsgSearchShort     = "Search installed packages"
	MsgInfoShort       = "Show details of an installed package"
	MsgInfoLong        = "Info prints the database record of one installed package, including every file it owns."
	MsgGenConfigShort  = "Print the default configuration"
	MsgGenConfigLong   = "Gen-config prints the default configuration as a commented TOML file. With --write the file is saved into the config directory, unless a config file already exists there."
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"

	// Error messages
	MsgErrInitPaths = "failed to initialize paths: %w"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagFormat  = "Output format (auto, term, text, json)"
	MsgFlagFuzzy   = "Match the query loosely instead of as a substring"
	MsgFlagWrite   = "Write the config file instead of printing it"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimSpace(msgInstallExampleRaw)

	//go:embed msgs/uninstall-long.txt
	msgUninstallLongRaw string
	MsgUninstallLong    = strings.TrimSpace(msgUninstallLongRaw)

	//go:embed msgs/uninstall-example.txt
	msgUninstallExampleRaw string
	MsgUninstallExample    = strings.TrimSpace(msgUninstallExampleRaw)

	//go:embed msgs/list-example.txt
	msgListExampleRaw string
	MsgListExample    = strings.TrimSpace(msgListExampleRaw)

	//go:embed msgs/search-long.txt
	msgSearchLongRaw string
	MsgSearchLong    = strings.TrimSpace(msgSearchLongRaw)

	//go:embed msgs/search-example.txt
	msgSearchExampleRaw string
	MsgSearchExample    = strings.TrimSpace(msgSearchExampleRaw)

	//go:embed msgs/info-example.txt
	msgInfoExampleRaw string
	MsgInfoExample    = strings.TrimSpace(msgInfoExampleRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
