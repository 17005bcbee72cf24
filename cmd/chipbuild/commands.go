// Package chipbuild wires the command-line interface: one cobra command per
// build operation, configuration and checkout discovery shared across them,
// and a topic-based help system for the longer documentation.
package chipbuild

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/chipbuild/chipbuild/internal/version"
	"github.com/chipbuild/chipbuild/pkg/artifacts"
	"github.com/chipbuild/chipbuild/pkg/builder"
	"github.com/chipbuild/chipbuild/pkg/cobrax/topics"
	"github.com/chipbuild/chipbuild/pkg/config"
	"github.com/chipbuild/chipbuild/pkg/environ"
	"github.com/chipbuild/chipbuild/pkg/errors"
	"github.com/chipbuild/chipbuild/pkg/logging"
	"github.com/chipbuild/chipbuild/pkg/output"
	"github.com/chipbuild/chipbuild/pkg/paths"
	"github.com/chipbuild/chipbuild/pkg/runner"
	"github.com/chipbuild/chipbuild/pkg/targets"
)

//go:embed topics
var topicDocs embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var (
		verbosity int
		dryRun    bool
		rootDir   string
		outDir    string
	)

	rootCmd := &cobra.Command{
		Use:     "chipbuild",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			// Show help but return an error to indicate incorrect usage
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
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", MsgFlagRoot)
	rootCmd.PersistentFlags().StringVar(&outDir, "out", "", MsgFlagOut)

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
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newGenCmd())
	rootCmd.AddCommand(newOutputsCmd())
	rootCmd.AddCommand(newTargetsCmd())
	rootCmd.AddCommand(newGenconfigCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	// Initialize topic-based help system from the embedded docs
	if docsFS, err := fs.Sub(topicDocs, "topics"); err == nil {
		opts := topics.Options{
			// Always use Glamour renderer for markdown files
			Renderer: topics.NewGlamourRenderer(),
		}
		_ = topics.InitializeWithOptions(rootCmd, docsFS, opts)
	}

	return rootCmd
}

// initPaths resolves the checkout location and loads the configuration.
// The --root flag wins; otherwise discovery runs (CHIP_ROOT, git root), the
// config file's source_root is consulted, and the current directory is the
// last resort, with a warning.
func initPaths(cmd *cobra.Command) (paths.Paths, *config.Config, error) {
	rootFlag, _ := cmd.Root().PersistentFlags().GetString("root")
	outFlag, _ := cmd.Root().PersistentFlags().GetString("out")

	p, err := paths.New(rootFlag)
	if err != nil {
		return nil, nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	// Flags become the top configuration layer, so the resolved Config
	// reflects what this run actually uses
	overrides := map[string]interface{}{}
	if rootFlag != "" {
		overrides["source_root"] = rootFlag
	}
	if outFlag != "" {
		overrides["output_dir"] = outFlag
	}

	cfg, err := config.LoadWithOverrides(p, overrides)
	if err != nil {
		return nil, nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	// The config file can still name the checkout when neither the flag nor
	// the environment did
	if rootFlag == "" && p.UsedFallback() && cfg.SourceRoot != "" {
		p, err = paths.New(cfg.SourceRoot)
		if err != nil {
			return nil, nil, fmt.Errorf(MsgErrInitPaths, err)
		}
	}

	if p.UsedFallback() {
		fmt.Fprintf(os.Stderr, MsgFallbackWarning+"\n", p.SourceRoot())
	}

	// The config file can raise the logging baseline above what -v flags asked for
	verbosity, _ := cmd.Root().PersistentFlags().GetCount("verbose")
	if cfg.Verbosity > verbosity {
		logging.SetupLogger(cfg.Verbosity)
	}

	return p, cfg, nil
}

// outputPrefix resolves the directory build outputs nest under to an
// absolute path. The --out flag already sits in cfg as the top layer.
func outputPrefix(p paths.Paths, cfg *config.Config) (string, error) {
	return p.NormalizePath(cfg.OutputDir)
}

// buildOptions assembles the target construction options for the build and
// gen commands. In dry-run mode the runner prints a replayable script and
// opens it with the working-directory header.
func buildOptions(cmd *cobra.Command, p paths.Paths, cfg *config.Config) (targets.Options, error) {
	prefix, err := outputPrefix(p, cfg)
	if err != nil {
		return targets.Options{}, err
	}

	dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

	var run runner.Runner
	if dryRun {
		pr := runner.NewPrintRunner(cmd.OutOrStdout())
		if err := pr.Start(p.SourceRoot()); err != nil {
			return targets.Options{}, err
		}
		run = pr
	} else {
		run = runner.NewShellRunner(false)
	}

	return targets.Options{
		Root:      p.SourceRoot(),
		OutPrefix: prefix,
		Runner:    run,
		Env:       environ.FromOS(),
	}, nil
}

// targetNamesCompletion provides shell completion for target names
func targetNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Filter out already specified targets
	var available []string
	for _, name := range targets.Names() {
		found := false
		for _, arg := range args {
			if arg == name {
				found = true
				break
			}
		}
		if !found {
			available = append(available, name)
		}
	}

	return available, cobra.ShellCompDirectiveNoFileComp
}

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "build [targets...]",
		Short:             MsgBuildShort,
		Long:              MsgBuildLong,
		Example:           MsgBuildExample,
		GroupID:           "core",
		ValidArgsFunction: targetNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, cfg, err := initPaths(cmd)
			if err != nil {
				return err
			}

			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			copyTo, _ := cmd.Flags().GetString("copy-artifacts-to")
			if copyTo == "" {
				copyTo = cfg.CopyArtifactsTo
			}
			archiveTo, _ := cmd.Flags().GetString("create-archives")
			if archiveTo == "" {
				archiveTo = cfg.CreateArchivesTo
			}

			opts, err := buildOptions(cmd, p, cfg)
			if err != nil {
				return err
			}

			builders, err := targets.NewBuilders(args, opts)
			if err != nil {
				return fmt.Errorf(MsgErrResolveTargets, err)
			}

			log.Info().
				Str("source_root", p.SourceRoot()).
				Int("targets", len(builders)).
				Bool("dry_run", dryRun).
				Msg("Building targets")

			var results []output.BuildResult
			failed := 0
			for _, b := range builders {
				if !dryRun {
					fmt.Fprintln(cmd.OutOrStdout(), formatBold("==> "+b.Identifier()))
				}

				start := time.Now()
				buildErr := builder.Run(b)
				if buildErr == nil && !dryRun {
					buildErr = collectArtifacts(p, b, copyTo, archiveTo)
				}
				if buildErr != nil {
					failed++
				}

				results = append(results, output.BuildResult{
					Target:   b.Identifier(),
					Err:      buildErr,
					Duration: time.Since(start),
				})
			}

			if dryRun {
				// The replay script is the output; surface only errors
				for _, r := range results {
					if r.Err != nil {
						return r.Err
					}
				}
				return nil
			}

			renderer := output.NewRenderer(cmd.OutOrStdout(), output.FormatAuto)
			if err := renderer.RenderSummary(results); err != nil {
				return err
			}

			if failed > 0 {
				return errors.Newf(errors.ErrCommandFailed, "%d of %d targets failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().String("copy-artifacts-to", "", MsgFlagCopyTo)
	cmd.Flags().String("create-archives", "", MsgFlagArchiveTo)

	return cmd
}

// collectArtifacts copies and archives a built target's artifacts as
// configured. Empty destinations disable the respective step.
func collectArtifacts(p paths.Paths, b builder.Builder, copyTo, archiveTo string) error {
	if copyTo != "" {
		dir, err := p.NormalizePath(copyTo)
		if err != nil {
			return err
		}
		if _, err := artifacts.Copy(b, dir); err != nil {
			return err
		}
	}

	if archiveTo != "" {
		dir, err := p.NormalizePath(archiveTo)
		if err != nil {
			return err
		}
		if _, err := artifacts.Archive(b, dir); err != nil {
			return err
		}
	}

	return nil
}

func newGenCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "gen [targets...]",
		Short:             MsgGenShort,
		Long:              MsgGenLong,
		Example:           MsgGenExample,
		GroupID:           "core",
		ValidArgsFunction: targetNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, cfg, err := initPaths(cmd)
			if err != nil {
				return err
			}

			opts, err := buildOptions(cmd, p, cfg)
			if err != nil {
				return err
			}

			builders, err := targets.NewBuilders(args, opts)
			if err != nil {
				return fmt.Errorf(MsgErrResolveTargets, err)
			}

			log.Info().
				Str("source_root", p.SourceRoot()).
				Int("targets", len(builders)).
				Msg("Generating build configuration")

			for _, b := range builders {
				if err := b.Generate(); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func newOutputsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "outputs <target>",
		Short:             MsgOutputsShort,
		Long:              MsgOutputsLong,
		Example:           MsgOutputsExample,
		Args:              cobra.ExactArgs(1),
		GroupID:           "core",
		ValidArgsFunction: targetNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatName, _ := cmd.Flags().GetString("format")
			format, err := output.ParseFormat(formatName)
			if err != nil {
				return err
			}

			p, cfg, err := initPaths(cmd)
			if err != nil {
				return err
			}

			prefix, err := outputPrefix(p, cfg)
			if err != nil {
				return err
			}

			// Outputs is a pure path computation; the runner is never invoked
			b, err := targets.NewBuilder(args[0], targets.Options{
				Root:      p.SourceRoot(),
				OutPrefix: prefix,
				Runner:    runner.NewShellRunner(false),
				Env:       environ.FromOS(),
			})
			if err != nil {
				return fmt.Errorf(MsgErrResolveTargets, err)
			}

			outputs, err := b.Outputs()
			if err != nil {
				return err
			}

			renderer := output.NewRenderer(cmd.OutOrStdout(), format)
			return renderer.RenderArtifacts(b.Identifier(), outputs)
		},
	}

	cmd.Flags().StringP("format", "f", "auto", MsgFlagFormat)

	return cmd
}

func newTargetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "targets",
		Short:   MsgTargetsShort,
		Long:    MsgTargetsLong,
		Example: MsgTargetsExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatName, _ := cmd.Flags().GetString("format")
			format, err := output.ParseFormat(formatName)
			if err != nil {
				return err
			}

			renderer := output.NewRenderer(cmd.OutOrStdout(), format)
			return renderer.RenderTargets(targets.Names())
		},
	}

	cmd.Flags().StringP("format", "f", "auto", MsgFlagFormat)

	return cmd
}

func newGenconfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenconfigShort,
		Long:    MsgGenconfigLong,
		Example: MsgGenconfigExample,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := config.GenerateConfigContent()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}
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

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "chipbuild version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
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

func newManCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		Long:    MsgManLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create man page directory %s", dir)
			}

			header := &doc.GenManHeader{
				Title:   "CHIPBUILD",
				Section: "1",
				Source:  "chipbuild " + version.Version,
				Manual:  "chipbuild manual",
			}
			return doc.GenManTree(cmd.Root(), header, dir)
		},
	}

	cmd.Flags().String("dir", ".", MsgFlagManDir)

	return cmd
}
