package dotlink

import (
	"fmt"
	"os"
	"slices"

	"github.com/arthur-debert/dotlink/internal/version"
	"github.com/arthur-debert/dotlink/pkg/commands"
	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/inventory"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/style"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbosity    int
	root         string
	configPath   string
	autodetect   bool
	noAutodetect bool
	dryRun       bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "dotlink",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			style.ConfigureOutput(os.Stdout)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help but still fail
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&g.root, "root", "", MsgFlagRoot)
	pf.StringVar(&g.configPath, "config", "", MsgFlagConfig)
	pf.BoolVar(&g.autodetect, "autodetect", true, MsgFlagAutodetect)
	pf.BoolVar(&g.noAutodetect, "no-autodetect", false, MsgFlagNoAutodetect)
	pf.BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newListCmd(g))
	rootCmd.AddCommand(newInstallCmd(g))
	rootCmd.AddCommand(newRemoveCmd(g))
	rootCmd.AddCommand(newStatusCmd(g))
	rootCmd.AddCommand(newExplainCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// loadConfig builds the run configuration from the global flags and warns
// when the dotfiles root fell back to the working directory.
func (g *globalOptions) loadConfig(cmd *cobra.Command) (*config.RunConfig, error) {
	overrides := config.Overrides{DotfilesRoot: g.root}
	if cmd.Flags().Changed("autodetect") {
		overrides.Autodetect = config.Bool(g.autodetect)
	}
	if g.noAutodetect {
		overrides.Autodetect = config.Bool(false)
	}

	cfg, err := config.Load(config.Options{
		Overrides:      overrides,
		UserConfigPath: g.configPath,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	if cfg.RootFromFallback {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning, cfg.DotfilesRoot)
	}
	return cfg, nil
}

// componentNamesCompletion provides shell completion for component names.
// The inventory is left empty: only the names are needed.
func (g *globalOptions) componentNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.Load(config.Options{
		Overrides:      config.Overrides{DotfilesRoot: g.root},
		UserConfigPath: g.configPath,
	})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	result, err := commands.ListComponents(commands.ListComponentsOptions{
		Options: commands.Options{
			Config:    cfg,
			Inventory: inventory.NewStaticProvider(),
		},
	})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, c := range result.Components {
		if !slices.Contains(args, c.Name) {
			names = append(names, c.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func newListCmd(g *globalOptions) *cobra.Command {
	var (
		summary bool
		format  string
	)

	cmd := &cobra.Command{
		Use:               "list [components...]",
		Short:             MsgListShort,
		Long:              MsgListLong,
		Example:           MsgListExample,
		GroupID:           "core",
		ValidArgsFunction: g.componentNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}

			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}

			log.Info().
				Str("dotfiles_root", cfg.DotfilesRoot).
				Bool("autodetect", cfg.Autodetect).
				Msg("Listing components")

			result, err := commands.ListComponents(commands.ListComponentsOptions{
				Options: commands.Options{
					Config:         cfg,
					ComponentNames: args,
				},
			})
			if err != nil {
				return fmt.Errorf(MsgErrListComponents, err)
			}

			return writeList(cmd.OutOrStdout(), style.NewTerminalRenderer(cfg.HomeDir), result, f, summary)
		},
	}

	cmd.Flags().BoolVarP(&summary, "summary", "s", false, MsgFlagSummary)
	cmd.Flags().StringVarP(&format, "format", "f", string(formatText), MsgFlagFormat)
	return cmd
}

// runFunc is one of the commands package's linking operations.
type runFunc func(commands.RunOptions) (*types.RunReport, error)

// runCmdSpec describes one linking command.
type runCmdSpec struct {
	use, short, long, example string
	errFormat                 string
	run                       runFunc

	// strict makes reported conflicts and configuration errors fail the
	// command.
	strict bool
}

func newRunCmd(g *globalOptions, spec runCmdSpec) *cobra.Command {
	return &cobra.Command{
		Use:               spec.use,
		Short:             spec.short,
		Long:              spec.long,
		Example:           spec.example,
		GroupID:           "core",
		ValidArgsFunction: g.componentNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}

			log.Info().
				Str("command", cmd.Name()).
				Str("dotfiles_root", cfg.DotfilesRoot).
				Bool("dry_run", g.dryRun).
				Msg("Running")

			report, err := spec.run(commands.RunOptions{
				Options: commands.Options{
					Config:         cfg,
					ComponentNames: args,
				},
				DryRun: g.dryRun,
			})
			if err != nil {
				return fmt.Errorf(spec.errFormat, err)
			}

			renderer := style.NewTerminalRenderer(cfg.HomeDir)
			fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderReport(report, g.verbosity > 0))

			if spec.strict && report.HasErrors() {
				return &problemsError{conflicts: report.Conflicts(), configErrors: report.ConfigErrors()}
			}
			return nil
		},
	}
}

func newInstallCmd(g *globalOptions) *cobra.Command {
	return newRunCmd(g, runCmdSpec{
		use:       "install [components...]",
		short:     MsgInstallShort,
		long:      MsgInstallLong,
		example:   MsgInstallExample,
		errFormat: MsgErrInstall,
		run:       commands.InstallComponents,
		strict:    true,
	})
}

func newRemoveCmd(g *globalOptions) *cobra.Command {
	return newRunCmd(g, runCmdSpec{
		use:       "remove [components...]",
		short:     MsgRemoveShort,
		long:      MsgRemoveLong,
		example:   MsgRemoveExample,
		errFormat: MsgErrRemove,
		run:       commands.RemoveComponents,
		strict:    true,
	})
}

func newStatusCmd(g *globalOptions) *cobra.Command {
	return newRunCmd(g, runCmdSpec{
		use:       "status [components...]",
		short:     MsgStatusShort,
		long:      MsgStatusLong,
		example:   MsgStatusExample,
		errFormat: MsgErrStatus,
		run:       commands.StatusComponents,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
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
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// problemsError fails a run that completed but reported conflicts or
// configuration errors. The report itself has already been printed.
type problemsError struct {
	conflicts    int
	configErrors int
}

func (e *problemsError) Error() string {
	return fmt.Sprintf(MsgErrProblems, e.conflicts, e.configErrors)
}
