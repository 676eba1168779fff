// Command modgen generates block models, item models, blockstates, loot tables and
// crafting recipes for a mod.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cpcf/modgen/config"
	"github.com/cpcf/modgen/engine"
	"github.com/cpcf/modgen/generator"
	"github.com/cpcf/modgen/write"
)

var (
	configPath      string
	modName         string
	outputRoot      string
	overwrite       bool
	strict          bool
	workers         int
	failureMode     string
	verbose         bool
	dryRun          bool
	manifest        bool
	trailingNewline bool
	directWrites    bool

	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "modgen",
	Short: "Generate JSON assets for a mod",
	Long: `modgen writes block models, item models, blockstates, loot tables and crafting
recipes from a base name. Existing files are never replaced unless --overwrite is set.

The output root is the mod's assets directory; loot tables and recipes go to the
sibling data directory. It defaults to $MODGEN_OUTPUT, then the working directory.`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "project file (.yaml, .yml or .toml)")
	flags.StringVarP(&modName, "mod", "m", "", "mod namespace")
	flags.StringVarP(&outputRoot, "out", "o", "", "assets directory to write into")
	flags.BoolVar(&overwrite, "overwrite", false, "replace existing files")
	flags.BoolVar(&strict, "strict", false, "reject recipes whose key does not match the grid")
	flags.IntVarP(&workers, "workers", "w", 1, "files written concurrently")
	flags.StringVar(&failureMode, "failure-mode", "", "fail_fast, fail_at_end or best_effort")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log every file")
	flags.BoolVar(&dryRun, "dry-run", false, "print what would be written without writing")
	flags.BoolVar(&manifest, "manifest", false, "record generated files for clean")
	flags.BoolVar(&trailingNewline, "trailing-newline", false, "end every file with a newline")
	flags.BoolVar(&directWrites, "direct-writes", false, "write files in place instead of staging them (no hard links needed)")

	rootCmd.AddCommand(
		buildingCmd,
		toolsCmd,
		armourCmd,
		blockCmd,
		itemCmd,
		recipesCmd,
		runCmd,
		patternCmd,
		cleanCmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadProject merges the project file, if any, with the flags set on the command
// line. Flags win.
func loadProject(cmd *cobra.Command, requireMod bool) (*config.Project, error) {
	project := &config.Project{}
	if configPath != "" {
		if err := config.Load(configPath, project); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("mod") {
		project.Mod = modName
	}
	if flags.Changed("out") {
		project.OutputRoot = outputRoot
	}
	if flags.Changed("overwrite") {
		project.Overwrite = overwrite
	}
	if flags.Changed("strict") {
		project.StrictRecipes = strict
	}
	if flags.Changed("workers") {
		project.Concurrency = workers
	}
	if flags.Changed("failure-mode") {
		project.FailureMode = failureMode
	}
	if flags.Changed("manifest") {
		project.Manifest = manifest
	}
	if flags.Changed("trailing-newline") {
		project.TrailingNewline = trailingNewline
	}
	if flags.Changed("direct-writes") {
		project.DirectWrites = directWrites
	}
	if verbose {
		project.LogLevel = "debug"
	}

	if requireMod && project.Mod == "" {
		return nil, errors.New("no mod namespace: pass --mod or set mod in the project file")
	}

	level, err := config.ParseLogLevel(project.LogLevel)
	if project.LogLevel == "" || err != nil {
		level = slog.LevelWarn
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return project, nil
}

type session struct {
	gen     *generator.Generator
	project *config.Project
	dry     *write.DryRunWriter
}

func newSession(cmd *cobra.Command) (*session, error) {
	project, err := loadProject(cmd, true)
	if err != nil {
		return nil, err
	}

	opts := generator.Options{
		Mod:             project.Mod,
		OutputRoot:      project.ResolveOutputRoot(),
		Logger:          logger,
		Overwrite:       project.Overwrite,
		Strict:          project.StrictRecipes,
		Concurrency:     project.Concurrency,
		FailureMode:     project.FailureMode,
		Manifest:        project.Manifest,
		TrailingNewline: project.TrailingNewline,
		DirectWrites:    project.DirectWrites,
	}

	s := &session{project: project}
	if dryRun {
		s.dry = write.NewDryRunWriter()
		opts.Writer = s.dry
		opts.Manifest = false
		opts.Logger = logger.With("dry_run", true)
	}

	s.gen, err = generator.New(opts)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *session) finish(cmd *cobra.Command, report *engine.Report, err error) error {
	out := cmd.OutOrStdout()

	if report != nil {
		if s.dry != nil {
			for _, change := range s.dry.Changes() {
				fmt.Fprintf(out, "%-6s %s (%d bytes)\n", change.Action, change.Path, change.Size)
			}
		} else if verbose {
			for _, path := range report.Written {
				fmt.Fprintf(out, "wrote   %s\n", path)
			}
			for _, path := range report.Skipped {
				fmt.Fprintf(out, "skipped %s\n", path)
			}
		}
		fmt.Fprintln(out, report.String())
	}

	return err
}
