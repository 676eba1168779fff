package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/cpcf/modgen/config"
	"github.com/cpcf/modgen/engine"
)

// PlanJob builds the plan for one project job.
func (g *Generator) PlanJob(job config.Job) (*engine.Plan, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}

	switch job.Kind {
	case config.JobBuilding:
		return g.PlanBuildingSet(job.Name)
	case config.JobTools:
		return g.PlanItemSet(job.Name)
	case config.JobArmour:
		return g.PlanArmourSet(job.Name)
	case config.JobItem:
		return g.PlanItem(job.Parent, job.Name)
	case config.JobBlock:
		kind, err := ParseBlockKind(job.Block)
		if err != nil {
			return nil, err
		}
		return g.PlanBlock(kind, job.Name)
	case config.JobBuildingRecipes:
		return g.PlanBuildingSetRecipes(job.Name)
	case config.JobToolRecipes:
		return g.PlanToolSetRecipes(job.Name, job.Material)
	case config.JobArmourRecipes:
		return g.PlanArmourSetRecipes(job.Name, job.Material)
	case config.JobWallRecipe:
		return g.PlanWallRecipe(job.Name, job.Material)
	default:
		return nil, fmt.Errorf("unknown job kind %q", job.Kind)
	}
}

// RunJobs executes jobs in order and merges their reports. Under fail_fast the
// first failing job ends the run; otherwise every job runs and the errors are joined.
func (g *Generator) RunJobs(ctx context.Context, jobs []config.Job) (*engine.Report, error) {
	total := &engine.Report{}
	var errs []error

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		g.logger.Debug("running job", "index", i, "kind", job.Kind, "name", job.Name)

		plan, err := g.PlanJob(job)
		if err == nil {
			var report *engine.Report
			report, err = g.Execute(ctx, plan)
			total.Merge(report)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("job %d (%s %s): %w", i, job.Kind, job.Name, err))
			if g.failMode == engine.FailFast {
				break
			}
		}
	}

	return total, errors.Join(errs...)
}
