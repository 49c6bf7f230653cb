package scpkg

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/scarlettos/scpkg/internal/version"
	"github.com/scarlettos/scpkg/pkg/cobrax/topics"
	"github.com/scarlettos/scpkg/pkg/commands"
	"github.com/scarlettos/scpkg/pkg/logging"
	"github.com/scarlettos/scpkg/pkg/paths"
	"github.com/scarlettos/scpkg/pkg/ui"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var (
		verbosity int
		dryRun    bool
		format    string
	)

	rootCmd := &cobra.Command{
		Use:     "scpkg",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand was provided. Show help but return an
			// error to flag the incorrect usage.
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&format, "format", "auto", MsgFlagFormat)

	// Disable automatic help command (we'll use our custom one from topics)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Add all commands
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newUninstallCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Initialize topic-based help system
	// Try to find help topics relative to the executable location
	exe, err := os.Executable()
	if err == nil {
		possiblePaths := []string{
			filepath.Join(filepath.Dir(exe), "topics"),                             // Same directory as binary (production)
			filepath.Join(filepath.Dir(exe), "..", "..", "cmd", "scpkg", "topics"), // Development
			"cmd/scpkg/topics", // Current directory fallback
		}

		for _, helpPath := range possiblePaths {
			if _, err := os.Stat(helpPath); err == nil {
				opts := topics.Options{
					Extensions: []string{".txt", ".md"},
					// Always use Glamour renderer for markdown files
					Renderer: topics.NewGlamourRenderer(),
				}

				if err := topics.InitializeWithOptions(rootCmd, helpPath, opts); err == nil {
					break
				}
			}
		}
	}

	return rootCmd
}

// newRenderer builds the output renderer from the persistent --format flag.
func newRenderer(cmd *cobra.Command) (ui.Renderer, error) {
	formatFlag, _ := cmd.Root().PersistentFlags().GetString("format")
	format, err := ui.ParseFormat(formatFlag)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// initPaths initializes the paths instance and shows a notice when the
// per-user locations were picked implicitly
func initPaths() (paths.Paths, error) {
	p, err := paths.New("")
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	if p.UsedFallback() {
		fmt.Fprintf(os.Stderr, MsgFallbackWarning+"\n", p.InstallPrefix())
	}

	return p, nil
}

// installedPackagesCompletion provides shell completion for installed
// package names.
func installedPackagesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	p, err := initPaths()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	result, err := commands.List(commands.ListOptions{Paths: p})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, pkg := range result.Packages {
		taken := false
		for _, arg := range args {
			if arg == pkg.Name {
				taken = true
				break
			}
		}
		if !taken {
			names = append(names, pkg.Name)
		}
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "install <archive-or-directory>",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}
			p, err := initPaths()
			if err != nil {
				return err
			}

			// Get dry-run flag value (it's a persistent flag)
			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			log.Info().
				Str("source", args[0]).
				Str("prefix", p.InstallPrefix()).
				Bool("dry_run", dryRun).
				Msg("Installing package")

			result, err := commands.Install(commands.InstallOptions{
				SourcePath: args[0],
				DryRun:     dryRun,
				Paths:      p,
			})
			if err != nil {
				return err
			}

			return renderer.RenderResult(result)
		},
	}
}

func newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "uninstall <package>",
		Aliases:           []string{"remove"},
		Short:             MsgUninstallShort,
		Long:              MsgUninstallLong,
		Example:           MsgUninstallExample,
		Args:              cobra.ExactArgs(1),
		GroupID:           "core",
		ValidArgsFunction: installedPackagesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}
			p, err := initPaths()
			if err != nil {
				return err
			}

			// Get dry-run flag value (it's a persistent flag)
			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			log.Info().
				Str("package", args[0]).
				Bool("dry_run", dryRun).
				Msg("Uninstalling package")

			result, err := commands.Uninstall(commands.UninstallOptions{
				PackageName: args[0],
				DryRun:      dryRun,
				Paths:       p,
			})
			if err != nil {
				return err
			}

			return renderer.RenderResult(result)
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		Example: MsgListExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}
			p, err := initPaths()
			if err != nil {
				return err
			}

			result, err := commands.List(commands.ListOptions{Paths: p})
			if err != nil {
				return err
			}

			return renderer.RenderResult(result)
		},
	}
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search <query>",
		Short:   MsgSearchShort,
		Long:    MsgSearchLong,
		Example: MsgSearchExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}
			p, err := initPaths()
			if err != nil {
				return err
			}
			fuzzy, _ := cmd.Flags().GetBool("fuzzy")

			result, err := commands.Search(commands.SearchOptions{
				Query: args[0],
				Fuzzy: fuzzy,
				Paths: p,
			})
			if err != nil {
				return err
			}

			return renderer.RenderResult(result)
		},
	}

	cmd.Flags().Bool("fuzzy", false, MsgFlagFuzzy)

	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "info <package>",
		Short:             MsgInfoShort,
		Long:              MsgInfoLong,
		Example:           MsgInfoExample,
		Args:              cobra.ExactArgs(1),
		GroupID:           "core",
		ValidArgsFunction: installedPackagesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}
			p, err := initPaths()
			if err != nil {
				return err
			}

			result, err := commands.Info(commands.InfoOptions{
				PackageName: args[0],
				Paths:       p,
			})
			if err != nil {
				return err
			}

			return renderer.RenderResult(result)
		},
	}
}

func newGenConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}
			p, err := initPaths()
			if err != nil {
				return err
			}
			write, _ := cmd.Flags().GetBool("write")

			result, err := commands.GenConfig(commands.GenConfigOptions{
				Write: write,
				Paths: p,
			})
			if err != nil {
				return err
			}

			return renderer.RenderResult(result)
		},
	}

	cmd.Flags().BoolP("write", "w", false, MsgFlagWrite)

	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Find the help command and execute it with "topics" argument
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
