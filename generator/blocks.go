package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cpcf/modgen/assets"
	"github.com/cpcf/modgen/engine"
)

var ErrUnknownBlockKind = errors.New("unknown block kind")

// BlockKind selects the asset family generated for a block.
type BlockKind int

const (
	Button BlockKind = iota
	Door
	Fence
	FenceGate
	Leaves
	Log
	Planks
	PressurePlate
	Sapling
	Slab
	Stairs
	StrippedLog
	StrippedWood
	Trapdoor
	Wood
	// Cube is a plain full block named exactly as given.
	Cube

	blockKindCount
)

var blockKindNames = [blockKindCount]string{
	Button:        "button",
	Door:          "door",
	Fence:         "fence",
	FenceGate:     "fence_gate",
	Leaves:        "leaves",
	Log:           "log",
	Planks:        "planks",
	PressurePlate: "pressure_plate",
	Sapling:       "sapling",
	Slab:          "slab",
	Stairs:        "stairs",
	StrippedLog:   "stripped_log",
	StrippedWood:  "stripped_wood",
	Trapdoor:      "trapdoor",
	Wood:          "wood",
	Cube:          "cube",
}

func (k BlockKind) String() string {
	if k < 0 || k >= blockKindCount {
		return fmt.Sprintf("BlockKind(%d)", int(k))
	}
	return blockKindNames[k]
}

// ParseBlockKind maps a snake_case name such as "fence_gate" to its kind,
// ignoring case and surrounding space.
func ParseBlockKind(s string) (BlockKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range blockKindNames {
		if name == s {
			return BlockKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBlockKind, s)
}

// BlockKinds lists every kind, the building set in generation order followed by Cube.
func BlockKinds() []BlockKind {
	kinds := make([]BlockKind, blockKindCount)
	for i := range kinds {
		kinds[i] = BlockKind(i)
	}
	return kinds
}

// FullName is the registry name of the block kind made from base, e.g. oak_fence_gate.
func (k BlockKind) FullName(base string) string {
	switch k {
	case Cube:
		return base
	case StrippedLog:
		return "stripped_" + base + "_log"
	case StrippedWood:
		return "stripped_" + base + "_wood"
	default:
		return base + "_" + k.String()
	}
}

func (g *Generator) Block(ctx context.Context, kind BlockKind, name string) (*engine.Report, error) {
	plan, err := g.PlanBlock(kind, name)
	return g.run(ctx, plan, err)
}

func (g *Generator) PlanBlock(kind BlockKind, name string) (*engine.Plan, error) {
	plan := engine.NewPlan()
	if err := g.addBlock(plan, kind, name); err != nil {
		return nil, err
	}
	return plan, nil
}

func (g *Generator) addBlock(plan *engine.Plan, kind BlockKind, base string) error {
	if base == "" {
		return errors.New("block name is required")
	}

	full := kind.FullName(base)
	l := g.layout

	model := func(tmpl, suffix, name string) {
		plan.Add(tmpl, l.BlockModel(full+suffix), g.data(name))
	}
	blockItem := func(parent string) {
		plan.Add(assets.ItemBlock, l.ItemModel(full), g.data(parent))
	}
	flatItem := func(parent string) {
		plan.Add(assets.ItemFlat, l.ItemModel(full), assets.Data{Mod: l.Mod, Name: full, Parent: parent})
	}
	blockstate := func(tmpl, name string) {
		plan.Add(tmpl, l.Blockstate(full), g.data(name))
	}

	switch kind {
	case Button:
		model(assets.BlockButton, "", base)
		model(assets.BlockButtonPressed, "_pressed", base)
		model(assets.BlockButtonInventory, "_inventory", base)
		blockItem(full + "_inventory")
		blockstate(assets.StateButton, base)

	case Door:
		model(assets.BlockDoorTop, "_top", full)
		model(assets.BlockDoorTopHinge, "_top_hinge", full)
		model(assets.BlockDoorBottom, "_bottom", full)
		model(assets.BlockDoorBottomHinge, "_bottom_hinge", full)
		flatItem("generated")
		blockstate(assets.StateDoor, base)

	case Fence:
		model(assets.BlockFencePost, "_post", base)
		model(assets.BlockFenceSide, "_side", base)
		model(assets.BlockFenceInventory, "_inventory", base)
		blockItem(full + "_inventory")
		blockstate(assets.StateFence, base)

	case FenceGate:
		model(assets.BlockFenceGate, "", base)
		model(assets.BlockFenceGateOpen, "_open", base)
		model(assets.BlockFenceGateWall, "_wall", base)
		model(assets.BlockFenceGateWallOpen, "_wall_open", base)
		blockItem(full)
		blockstate(assets.StateFenceGate, base)

	case Log:
		model(assets.BlockCubeColumn, "", full)
		model(assets.BlockCubeColumnHorizontal, "_horizontal", full)
		blockItem(full)
		blockstate(assets.StateLog, base)

	case StrippedLog:
		model(assets.BlockCubeColumn, "", full)
		model(assets.BlockCubeColumnHorizontal, "_horizontal", full)
		blockItem(full)
		blockstate(assets.StateLog, "stripped_"+base)

	case PressurePlate:
		model(assets.BlockPressurePlateUp, "", base)
		model(assets.BlockPressurePlateDown, "_down", base)
		blockItem(full)
		blockstate(assets.StatePressurePlate, base)

	case Sapling:
		model(assets.BlockCross, "", full)
		flatItem("generated")
		blockstate(assets.StateCube, full)

	case Slab:
		model(assets.BlockSlab, "", base)
		model(assets.BlockSlabTop, "_top", base)
		blockItem(full)
		blockstate(assets.StateSlab, base)

	case Stairs:
		model(assets.BlockStairs, "", base)
		model(assets.BlockInnerStairs, "_inner", base)
		model(assets.BlockOuterStairs, "_outer", base)
		blockItem(full)
		blockstate(assets.StateStairs, base)

	case Trapdoor:
		model(assets.BlockTrapdoorBottom, "_bottom", full)
		model(assets.BlockTrapdoorTop, "_top", full)
		model(assets.BlockTrapdoorOpen, "_open", full)
		blockItem(full + "_bottom")
		blockstate(assets.StateTrapdoor, base)

	case Leaves, Planks, StrippedWood, Wood, Cube:
		model(assets.BlockCubeAll, "", full)
		blockItem(full)
		blockstate(assets.StateCube, full)

	default:
		return fmt.Errorf("%w: %d", ErrUnknownBlockKind, int(kind))
	}

	plan.Add(assets.LootTableBlock, l.LootTable(full), g.data(full))
	return nil
}
