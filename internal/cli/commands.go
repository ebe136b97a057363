package cli

import (
	"embed"
	"fmt"
	"io"
	"io/fs"

	"github.com/arthur-debert/akabei/internal/version"
	"github.com/arthur-debert/akabei/pkg/cobrax/topics"
	"github.com/arthur-debert/akabei/pkg/config"
	"github.com/arthur-debert/akabei/pkg/core"
	"github.com/arthur-debert/akabei/pkg/display"
	"github.com/arthur-debert/akabei/pkg/executor"
	"github.com/arthur-debert/akabei/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicFiles embed.FS

// runFlags select what the root command reconciles
type runFlags struct {
	install []string
	remove  []string
	apply   bool
	dryRun  bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	global := &globalFlags{}
	run := &runFlags{}

	rootCmd := &cobra.Command{
		Use:     "akabei [--install NAME...] [--remove NAME...] [--apply | --dry-run]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(cmd, global, run)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&global.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&global.configFile, "config", "", MsgFlagConfig)
	pf.StringVar(&global.manifests, "manifests", "", MsgFlagManifests)
	pf.StringVar(&global.state, "state", "", MsgFlagState)
	pf.StringVarP(&global.output, "output", "o", "", MsgFlagOutput)

	// Run flags
	f := rootCmd.Flags()
	f.StringSliceVarP(&run.install, "install", "i", nil, MsgFlagInstall)
	f.StringSliceVarP(&run.remove, "remove", "r", nil, MsgFlagRemove)
	f.BoolVar(&run.apply, "apply", false, MsgFlagApply)
	f.BoolVar(&run.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.MarkFlagsMutuallyExclusive("apply", "dry-run")

	_ = rootCmd.RegisterFlagCompletionFunc("install", packageNamesCompletion(global, false))
	_ = rootCmd.RegisterFlagCompletionFunc("remove", packageNamesCompletion(global, true))
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return config.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newListCmd(global))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Topic-based help system
	if sub, err := fs.Sub(topicFiles, "topics"); err == nil {
		opts := topics.Options{
			Extensions: []string{".md", ".txt"},
			Renderer:   topics.NewGlamourRenderer(),
		}
		if _, err := topics.InitializeWithOptions(rootCmd, sub, opts); err != nil {
			log.Debug().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

func runReconcile(cmd *cobra.Command, global *globalFlags, run *runFlags) error {
	s, err := global.prepare()
	if err != nil {
		return err
	}
	logger := logging.GetLogger("cli.reconcile")

	install := union(s.config.Packages.Install, run.install)
	remove := union(s.config.Packages.Remove, run.remove)
	dryRun := !run.apply

	logger.Info().
		Strs("install", install).
		Strs("remove", remove).
		Bool("dry_run", dryRun).
		Str("manifests", s.paths.ManifestRoot()).
		Msg("Reconciling")

	// Hook output must not interleave with a JSON document
	var hookOut io.Writer = cmd.OutOrStdout()
	if s.format == display.FormatJSON {
		hookOut = cmd.ErrOrStderr()
	}

	result, err := core.Reconcile(cmd.Context(), core.Options{
		Paths:         s.paths,
		Install:       install,
		Remove:        remove,
		DryRun:        dryRun,
		ManifestNames: s.config.Manifests.Names,
		Runner: &executor.ExecRunner{
			Stdin:  cmd.InOrStdin(),
			Stdout: hookOut,
			Stderr: cmd.ErrOrStderr(),
		},
		Lock: true,
	})

	renderer := display.NewRenderer(cmd.OutOrStdout(), s.format)
	if err != nil {
		// Show how far an apply got before it stopped
		if result != nil && result.Report != nil && s.format != display.FormatJSON {
			if rerr := renderer.RenderResult(result); rerr != nil {
				logger.Warn().Err(rerr).Msg("Failed to render partial result")
			}
		}
		return err
	}
	return renderer.RenderResult(result)
}

func newListCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Long:  MsgListLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := global.prepare()
			if err != nil {
				return err
			}

			log.Info().Str("manifests", s.paths.ManifestRoot()).Msg("Listing packages")

			infos, err := core.List(core.Options{
				Paths:         s.paths,
				ManifestNames: s.config.Manifests.Names,
			})
			if err != nil {
				return err
			}
			return display.NewRenderer(cmd.OutOrStdout(), s.format).RenderList(infos)
		},
	}
}

// packageNamesCompletion completes package names. Removal candidates are
// the installed packages, install candidates every available one.
func packageNamesCompletion(global *globalFlags, installed bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		s, err := global.prepare()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		infos, err := core.List(core.Options{
			Paths:         s.paths,
			ManifestNames: s.config.Manifests.Names,
		})
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		var names []string
		for _, info := range infos {
			if (installed && info.Installed) || (!installed && info.Available) {
				names = append(names, info.Name)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
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
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// PrintError renders err on the command's error stream, as JSON when
// --output json was requested.
func PrintError(cmd *cobra.Command, err error) {
	format := display.FormatAuto
	if output, _ := cmd.PersistentFlags().GetString("output"); output != "" {
		if parsed, perr := display.ParseFormat(output); perr == nil {
			format = parsed
		}
	}
	if rerr := display.NewRenderer(cmd.ErrOrStderr(), format).RenderError(err); rerr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}
}
