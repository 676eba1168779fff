package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cpcf/modgen/engine"
	"github.com/cpcf/modgen/generator"
	"github.com/cpcf/modgen/recipe"
	"github.com/cpcf/modgen/state"
)

// generate wraps one generator call as a cobra RunE.
func generate(fn func(ctx context.Context, g *generator.Generator, args []string) (*engine.Report, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		report, err := fn(cmd.Context(), s.gen, args)
		return s.finish(cmd, report, err)
	}
}

var buildingCmd = &cobra.Command{
	Use:   "building NAME",
	Short: "Generate the wooden building set made from NAME",
	Example: `  modgen building oak --mod theancientglades
  # button, door, fence, fence_gate, leaves, log, planks, pressure_plate,
  # sapling, slab, stairs, stripped_log, stripped_wood, trapdoor, wood`,
	Args: cobra.ExactArgs(1),
	RunE: generate(func(ctx context.Context, g *generator.Generator, args []string) (*engine.Report, error) {
		return g.BuildingSet(ctx, args[0])
	}),
}

var toolsCmd = &cobra.Command{
	Use:   "tools NAME",
	Short: "Generate handheld item models for NAME_axe, _hoe, _pickaxe, _shovel and _sword",
	Args:  cobra.ExactArgs(1),
	RunE: generate(func(ctx context.Context, g *generator.Generator, args []string) (*engine.Report, error) {
		return g.ItemSet(ctx, args[0])
	}),
}

var armourCmd = &cobra.Command{
	Use:     "armour NAME",
	Aliases: []string{"armor"},
	Short:   "Generate item models for NAME_boots, _chestplate, _helmet and _leggings",
	Args:    cobra.ExactArgs(1),
	RunE: generate(func(ctx context.Context, g *generator.Generator, args []string) (*engine.Report, error) {
		return g.ArmourSet(ctx, args[0])
	}),
}

var blockCmd = &cobra.Command{
	Use:   "block KIND NAME",
	Short: "Generate a single block kind, e.g. block fence_gate oak or block cube marble",
	Args:  cobra.ExactArgs(2),
	RunE: generate(func(ctx context.Context, g *generator.Generator, args []string) (*engine.Report, error) {
		kind, err := generator.ParseBlockKind(args[0])
		if err != nil {
			return nil, err
		}
		return g.Block(ctx, kind, args[1])
	}),
}

var itemCmd = &cobra.Command{
	Use:   "item PARENT NAME",
	Short: "Generate one item model extending item/PARENT",
	Args:  cobra.ExactArgs(2),
	RunE: generate(func(ctx context.Context, g *generator.Generator, args []string) (*engine.Report, error) {
		return g.Item(ctx, args[0], args[1])
	}),
}

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Generate crafting recipes",
	Long: `Generate crafting recipes. MATERIAL is an item name; prefix it with # to use
an item tag, e.g. "#c:ingots/ruby".`,
}

var recipesBuildingCmd = &cobra.Command{
	Use:   "building NAME",
	Short: "Recipes for the building set made from NAME",
	Args:  cobra.ExactArgs(1),
	RunE: generate(func(ctx context.Context, g *generator.Generator, args []string) (*engine.Report, error) {
		return g.BuildingSetRecipes(ctx, args[0])
	}),
}

var recipesToolsCmd = &cobra.Command{
	Use:   "tools NAME MATERIAL",
	Short: "Recipes for the five tools made from MATERIAL",
	Args:  cobra.ExactArgs(2),
	RunE: generate(func(ctx context.Context, g *generator.Generator, args []string) (*engine.Report, error) {
		return g.ToolSetRecipes(ctx, args[0], args[1])
	}),
}

var recipesArmourCmd = &cobra.Command{
	Use:     "armour NAME MATERIAL",
	Aliases: []string{"armor"},
	Short:   "Recipes for the four armour pieces made from MATERIAL",
	Args:    cobra.ExactArgs(2),
	RunE: generate(func(ctx context.Context, g *generator.Generator, args []string) (*engine.Report, error) {
		return g.ArmourSetRecipes(ctx, args[0], args[1])
	}),
}

var recipesWallCmd = &cobra.Command{
	Use:   "wall NAME MATERIAL",
	Short: "Recipe for NAME_wall made from MATERIAL",
	Args:  cobra.ExactArgs(2),
	RunE: generate(func(ctx context.Context, g *generator.Generator, args []string) (*engine.Report, error) {
		return g.WallRecipe(ctx, args[0], args[1])
	}),
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every job listed in the project file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configPath == "" {
			return fmt.Errorf("run needs a project file, pass --config")
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		report, err := s.gen.RunJobs(cmd.Context(), s.project.Jobs)
		return s.finish(cmd, report, err)
	},
}

var patternCmd = &cobra.Command{
	Use:   "pattern KIND",
	Short: "Print the crafting grid rows for a craftable kind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := recipe.ParseCraftable(args[0])
		if err != nil {
			return err
		}
		p, err := recipe.PatternFor(kind)
		if err != nil {
			return err
		}
		for _, row := range p.Rows() {
			fmt.Fprintf(cmd.OutOrStdout(), "%q\n", row)
		}
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated files that were not edited since generation",
	Long: `Remove every file recorded in the manifest whose content is unchanged. Files
edited by hand are kept. With --dry-run nothing is removed.`,
	Example: `  modgen clean --out src/main/resources/assets --ignore '*_door*.json'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := loadProject(cmd, false)
		if err != nil {
			return err
		}

		mode := state.CleanupModeAuto
		if dryRun {
			mode = state.CleanupModeReport
		}

		mm := state.NewManifestManager(project.ResolveOutputRoot())
		summary, err := state.NewCleaner(mm,
			state.WithCleanupMode(mode),
			state.WithIgnorePatterns(cleanIgnore),
			state.WithCleanupLogger(logger),
		).Clean()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, result := range summary.Results {
			if result.Error != "" {
				fmt.Fprintf(out, "%-6s %s: %s\n", result.Action, result.Path, result.Error)
				continue
			}
			fmt.Fprintf(out, "%-6s %s\n", result.Action, result.Path)
		}
		fmt.Fprintf(out, "%d removed, %d kept, %d errors (%s)\n",
			summary.FilesDeleted, summary.FilesKept, summary.Errors, summary.Mode)
		if summary.Errors > 0 {
			return fmt.Errorf("clean finished with %d errors", summary.Errors)
		}
		return nil
	},
}

var cleanIgnore []string

func init() {
	cleanCmd.Flags().StringSliceVar(&cleanIgnore, "ignore", nil, "keep entries matching this pattern (repeatable)")
	recipesCmd.AddCommand(recipesBuildingCmd, recipesToolsCmd, recipesArmourCmd, recipesWallCmd)
}
