package generator

import (
	"context"
	"errors"

	"github.com/cpcf/modgen/assets"
	"github.com/cpcf/modgen/engine"
)

var (
	toolSuffixes   = []string{"axe", "hoe", "pickaxe", "shovel", "sword"}
	armourSuffixes = []string{"boots", "chestplate", "helmet", "leggings"}
)

// BuildingSet generates every wooden building block made from name.
func (g *Generator) BuildingSet(ctx context.Context, name string) (*engine.Report, error) {
	plan, err := g.PlanBuildingSet(name)
	return g.run(ctx, plan, err)
}

func (g *Generator) PlanBuildingSet(name string) (*engine.Plan, error) {
	plan := engine.NewPlan()
	for _, kind := range BlockKinds() {
		if kind == Cube {
			continue
		}
		if err := g.addBlock(plan, kind, name); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// ItemSet generates handheld item models for the five tools made from name.
func (g *Generator) ItemSet(ctx context.Context, name string) (*engine.Report, error) {
	plan, err := g.PlanItemSet(name)
	return g.run(ctx, plan, err)
}

func (g *Generator) PlanItemSet(name string) (*engine.Plan, error) {
	return g.planItems("handheld", name, toolSuffixes)
}

// ArmourSet generates item models for the four armour pieces made from name.
func (g *Generator) ArmourSet(ctx context.Context, name string) (*engine.Report, error) {
	plan, err := g.PlanArmourSet(name)
	return g.run(ctx, plan, err)
}

func (g *Generator) PlanArmourSet(name string) (*engine.Plan, error) {
	return g.planItems("generated", name, armourSuffixes)
}

// Item generates one item model extending the vanilla item/<parent> model.
func (g *Generator) Item(ctx context.Context, parent, name string) (*engine.Report, error) {
	plan, err := g.PlanItem(parent, name)
	return g.run(ctx, plan, err)
}

func (g *Generator) PlanItem(parent, name string) (*engine.Plan, error) {
	if parent == "" {
		return nil, errors.New("item parent is required")
	}
	if name == "" {
		return nil, errors.New("item name is required")
	}

	plan := engine.NewPlan()
	plan.Add(assets.ItemFlat, g.layout.ItemModel(name), assets.Data{Mod: g.layout.Mod, Name: name, Parent: parent})
	return plan, nil
}

func (g *Generator) planItems(parent, name string, suffixes []string) (*engine.Plan, error) {
	if name == "" {
		return nil, errors.New("set name is required")
	}

	plan := engine.NewPlan()
	for _, suffix := range suffixes {
		item, err := g.PlanItem(parent, name+"_"+suffix)
		if err != nil {
			return nil, err
		}
		plan.Append(item)
	}
	return plan, nil
}
