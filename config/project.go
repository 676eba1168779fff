package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/cpcf/modgen/engine"
)

// OutputEnv names the environment variable consulted when a project leaves
// output_root empty.
const OutputEnv = "MODGEN_OUTPUT"

// Job kinds accepted in a project file.
const (
	JobBuilding        = "building"
	JobTools           = "tools"
	JobArmour          = "armour"
	JobBlock           = "block"
	JobItem            = "item"
	JobBuildingRecipes = "building_recipes"
	JobToolRecipes     = "tool_recipes"
	JobArmourRecipes   = "armour_recipes"
	JobWallRecipe      = "wall_recipe"
)

type Project struct {
	Mod             string `yaml:"mod" toml:"mod"`
	OutputRoot      string `yaml:"output_root" toml:"output_root"`
	Overwrite       bool   `yaml:"overwrite" toml:"overwrite"`
	StrictRecipes   bool   `yaml:"strict_recipes" toml:"strict_recipes"`
	FailureMode     string `yaml:"failure_mode" toml:"failure_mode"`
	Concurrency     int    `yaml:"concurrency" toml:"concurrency"`
	Manifest        bool   `yaml:"manifest" toml:"manifest"`
	TrailingNewline bool   `yaml:"trailing_newline" toml:"trailing_newline"`
	DirectWrites    bool   `yaml:"direct_writes" toml:"direct_writes"`
	LogLevel        string `yaml:"log_level" toml:"log_level"`
	Jobs            []Job  `yaml:"jobs" toml:"jobs"`
}

// Job is one generator call. Material is used by the recipe kinds, Block by
// "block" jobs and Parent by "item" jobs.
type Job struct {
	Kind     string `yaml:"kind" toml:"kind"`
	Name     string `yaml:"name" toml:"name"`
	Material string `yaml:"material" toml:"material"`
	Block    string `yaml:"block" toml:"block"`
	Parent   string `yaml:"parent" toml:"parent"`
}

func (p *Project) Validate() error {
	var errs []error

	if p.Mod == "" {
		errs = append(errs, errors.New("mod is required"))
	}
	if p.FailureMode != "" {
		if _, err := engine.ParseFailureMode(p.FailureMode); err != nil {
			errs = append(errs, err)
		}
	}
	if p.LogLevel != "" {
		if _, err := ParseLogLevel(p.LogLevel); err != nil {
			errs = append(errs, err)
		}
	}
	if p.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must not be negative, got %d", p.Concurrency))
	}
	for i, job := range p.Jobs {
		if err := job.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("jobs[%d]: %w", i, err))
		}
	}

	return errors.Join(errs...)
}

func (j Job) Validate() error {
	if j.Name == "" {
		return fmt.Errorf("%s job needs a name", j.Kind)
	}

	switch j.Kind {
	case JobBuilding, JobTools, JobArmour, JobBuildingRecipes:
		return nil
	case JobToolRecipes, JobArmourRecipes, JobWallRecipe:
		if j.Material == "" {
			return fmt.Errorf("%s job %q needs a material", j.Kind, j.Name)
		}
		return nil
	case JobBlock:
		if j.Block == "" {
			return fmt.Errorf("block job %q needs a block kind", j.Name)
		}
		return nil
	case JobItem:
		if j.Parent == "" {
			return fmt.Errorf("item job %q needs a parent model", j.Name)
		}
		return nil
	default:
		return fmt.Errorf("unknown job kind %q", j.Kind)
	}
}

// ResolveOutputRoot returns output_root, else $MODGEN_OUTPUT, else ".".
func (p *Project) ResolveOutputRoot() string {
	if p.OutputRoot != "" {
		return p.OutputRoot
	}
	if env := os.Getenv(OutputEnv); env != "" {
		return env
	}
	return "."
}

func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
