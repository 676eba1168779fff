package generator

import (
	"context"
	"errors"

	"github.com/cpcf/modgen/assets"
	"github.com/cpcf/modgen/engine"
	"github.com/cpcf/modgen/recipe"
)

const stick = "minecraft:stick"

// shapedRecipe is one catalog grid filled in for a concrete result. The recipe
// file is named after the result unless file is set.
type shapedRecipe struct {
	file   string
	kind   recipe.Craftable
	group  string
	key    []recipe.Ingredient
	result recipe.Ingredient
}

func (g *Generator) addShaped(plan *engine.Plan, r shapedRecipe) error {
	p, err := recipe.PatternFor(r.kind)
	if err != nil {
		return err
	}

	doc, err := g.recipes.ShapedGroup(r.group, p, r.key, r.result)
	if err != nil {
		return err
	}

	file := r.file
	if file == "" {
		file = r.result.Name
	}
	plan.Add(assets.RecipeShaped, g.layout.Recipe(file), doc)
	return nil
}

func (g *Generator) addShapeless(plan *engine.Plan, group string, in, result recipe.Ingredient) {
	doc := g.recipes.ShapelessGroup(group, in, result)
	plan.Add(assets.RecipeShapeless, g.layout.Recipe(result.Name), doc)
}

// BuildingSetRecipes writes the crafting recipes of every building block made
// from name, with the planks, log and stripped log of the set as inputs.
func (g *Generator) BuildingSetRecipes(ctx context.Context, name string) (*engine.Report, error) {
	plan, err := g.PlanBuildingSetRecipes(name)
	return g.run(ctx, plan, err)
}

func (g *Generator) PlanBuildingSetRecipes(name string) (*engine.Plan, error) {
	if name == "" {
		return nil, errors.New("set name is required")
	}

	planks := Planks.FullName(name)
	log := Log.FullName(name)
	strippedLog := StrippedLog.FullName(name)

	sym := recipe.WithSymbol
	count := recipe.WithCount

	recipes := []shapedRecipe{
		{
			kind:   recipe.Door,
			group:  "wooden_door",
			key:    []recipe.Ingredient{recipe.NewItem(planks, sym('#'))},
			result: recipe.NewItem(Door.FullName(name), count(3)),
		},
		{
			kind:   recipe.Fence,
			group:  "wooden_fence",
			key:    []recipe.Ingredient{recipe.NewItem(planks, sym('W')), recipe.NewItem(stick, sym('#'))},
			result: recipe.NewItem(Fence.FullName(name), count(3)),
		},
		{
			kind:   recipe.FenceGate,
			group:  "wooden_fence_gate",
			key:    []recipe.Ingredient{recipe.NewItem(stick, sym('#')), recipe.NewItem(planks, sym('W'))},
			result: recipe.NewItem(FenceGate.FullName(name)),
		},
		{
			kind:   recipe.PressurePlate,
			group:  "wooden_pressure_plate",
			key:    []recipe.Ingredient{recipe.NewItem(planks, sym('#'))},
			result: recipe.NewItem(PressurePlate.FullName(name)),
		},
		{
			kind:   recipe.Slab,
			group:  "wooden_slab",
			key:    []recipe.Ingredient{recipe.NewItem(planks, sym('#'))},
			result: recipe.NewItem(Slab.FullName(name), count(6)),
		},
		{
			kind:   recipe.Stairs,
			group:  "wooden_stairs",
			key:    []recipe.Ingredient{recipe.NewItem(planks, sym('#'))},
			result: recipe.NewItem(Stairs.FullName(name), count(4)),
		},
		{
			kind:   recipe.Trapdoor,
			group:  "wooden_trapdoor",
			key:    []recipe.Ingredient{recipe.NewItem(planks, sym('#'))},
			result: recipe.NewItem(Trapdoor.FullName(name), count(2)),
		},
		{
			kind:   recipe.Wood,
			group:  "bark",
			key:    []recipe.Ingredient{recipe.NewItem(log, sym('#'))},
			result: recipe.NewItem(Wood.FullName(name), count(3)),
		},
		{
			kind:   recipe.StrippedWood,
			group:  "bark",
			key:    []recipe.Ingredient{recipe.NewItem(strippedLog, sym('#'))},
			result: recipe.NewItem(StrippedWood.FullName(name), count(3)),
		},
		{
			file:   "stick_from_" + planks,
			kind:   recipe.Stick,
			group:  "sticks",
			key:    []recipe.Ingredient{recipe.NewItem(planks, sym('#'))},
			result: recipe.NewItem(stick, count(4)),
		},
	}

	plan := engine.NewPlan()
	for _, r := range recipes {
		if err := g.addShaped(plan, r); err != nil {
			return nil, err
		}
	}

	g.addShapeless(plan, "planks", recipe.NewItem(log), recipe.NewItem(planks, count(4)))
	g.addShapeless(plan, "wooden_button", recipe.NewItem(planks), recipe.NewItem(Button.FullName(name)))

	return plan, nil
}

// ToolSetRecipes writes the five tool recipes for name. A material starting with
// '#' is used as an item tag.
func (g *Generator) ToolSetRecipes(ctx context.Context, name, material string) (*engine.Report, error) {
	plan, err := g.PlanToolSetRecipes(name, material)
	return g.run(ctx, plan, err)
}

func (g *Generator) PlanToolSetRecipes(name, material string) (*engine.Plan, error) {
	return g.planGear(name, material, map[string]recipe.Craftable{
		"axe":     recipe.Axe,
		"hoe":     recipe.Hoe,
		"pickaxe": recipe.Pickaxe,
		"shovel":  recipe.Shovel,
		"sword":   recipe.Sword,
	}, toolSuffixes, true)
}

// ArmourSetRecipes writes the four armour recipes for name.
func (g *Generator) ArmourSetRecipes(ctx context.Context, name, material string) (*engine.Report, error) {
	plan, err := g.PlanArmourSetRecipes(name, material)
	return g.run(ctx, plan, err)
}

func (g *Generator) PlanArmourSetRecipes(name, material string) (*engine.Plan, error) {
	return g.planGear(name, material, map[string]recipe.Craftable{
		"boots":      recipe.Boots,
		"chestplate": recipe.Chestplate,
		"helmet":     recipe.Helmet,
		"leggings":   recipe.Leggings,
	}, armourSuffixes, false)
}

func (g *Generator) planGear(name, material string, kinds map[string]recipe.Craftable, suffixes []string, handle bool) (*engine.Plan, error) {
	if name == "" || material == "" {
		return nil, errors.New("set name and material are required")
	}

	key := []recipe.Ingredient{recipe.ParseMaterial(material, recipe.WithSymbol('X'))}
	if handle {
		key = append(key, recipe.NewItem(stick, recipe.WithSymbol('#')))
	}

	plan := engine.NewPlan()
	for _, suffix := range suffixes {
		err := g.addShaped(plan, shapedRecipe{
			kind:   kinds[suffix],
			key:    key,
			result: recipe.NewItem(name + "_" + suffix),
		})
		if err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// WallRecipe writes the recipe for six <name>_wall blocks.
func (g *Generator) WallRecipe(ctx context.Context, name, material string) (*engine.Report, error) {
	plan, err := g.PlanWallRecipe(name, material)
	return g.run(ctx, plan, err)
}

func (g *Generator) PlanWallRecipe(name, material string) (*engine.Plan, error) {
	if name == "" || material == "" {
		return nil, errors.New("wall name and material are required")
	}

	plan := engine.NewPlan()
	err := g.addShaped(plan, shapedRecipe{
		kind:   recipe.Wall,
		key:    []recipe.Ingredient{recipe.ParseMaterial(material, recipe.WithSymbol('#'))},
		result: recipe.NewItem(name+"_wall", recipe.WithCount(6)),
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}
