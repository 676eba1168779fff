// Package assets embeds the template catalog: one JSON template per document kind
// (block model, item model, blockstate, loot table, recipe).
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/cpcf/modgen/render"
)

//go:embed templates
var embedded embed.FS

// FS returns the catalog rooted at the templates directory.
func FS() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Data is what block, item, blockstate and loot table templates are filled with.
type Data struct {
	// Mod is the namespace the assets belong to.
	Mod string
	// Name is the resource name substituted into the template. Depending on the
	// template this is the base material ("oak") or the full name ("oak_door").
	Name string
	// Parent is the vanilla item model an item extends, e.g. "handheld".
	Parent string
}

// Block models.
const (
	BlockCubeAll              = "block/cube_all.json.tmpl"
	BlockCubeColumn           = "block/cube_column.json.tmpl"
	BlockCubeColumnHorizontal = "block/cube_column_horizontal.json.tmpl"
	BlockCross                = "block/cross.json.tmpl"
	BlockButton               = "block/button.json.tmpl"
	BlockButtonPressed        = "block/button_pressed.json.tmpl"
	BlockButtonInventory      = "block/button_inventory.json.tmpl"
	BlockDoorTop              = "block/door_top.json.tmpl"
	BlockDoorTopHinge         = "block/door_top_hinge.json.tmpl"
	BlockDoorBottom           = "block/door_bottom.json.tmpl"
	BlockDoorBottomHinge      = "block/door_bottom_hinge.json.tmpl"
	BlockFencePost            = "block/fence_post.json.tmpl"
	BlockFenceSide            = "block/fence_side.json.tmpl"
	BlockFenceInventory       = "block/fence_inventory.json.tmpl"
	BlockFenceGate            = "block/fence_gate.json.tmpl"
	BlockFenceGateOpen        = "block/fence_gate_open.json.tmpl"
	BlockFenceGateWall        = "block/fence_gate_wall.json.tmpl"
	BlockFenceGateWallOpen    = "block/fence_gate_wall_open.json.tmpl"
	BlockPressurePlateUp      = "block/pressure_plate_up.json.tmpl"
	BlockPressurePlateDown    = "block/pressure_plate_down.json.tmpl"
	BlockSlab                 = "block/slab.json.tmpl"
	BlockSlabTop              = "block/slab_top.json.tmpl"
	BlockStairs               = "block/stairs.json.tmpl"
	BlockInnerStairs          = "block/inner_stairs.json.tmpl"
	BlockOuterStairs          = "block/outer_stairs.json.tmpl"
	BlockTrapdoorBottom       = "block/trapdoor_bottom.json.tmpl"
	BlockTrapdoorTop          = "block/trapdoor_top.json.tmpl"
	BlockTrapdoorOpen         = "block/trapdoor_open.json.tmpl"
)

// Item models.
const (
	ItemBlock = "item/block_item.json.tmpl"
	ItemFlat  = "item/item.json.tmpl"
)

// Blockstates.
const (
	StateCube          = "blockstate/cube.json.tmpl"
	StateButton        = "blockstate/button.json.tmpl"
	StateDoor          = "blockstate/door.json.tmpl"
	StateFence         = "blockstate/fence.json.tmpl"
	StateFenceGate     = "blockstate/fence_gate.json.tmpl"
	StateLog           = "blockstate/log.json.tmpl"
	StatePressurePlate = "blockstate/pressure_plate.json.tmpl"
	StateSlab          = "blockstate/slab.json.tmpl"
	StateStairs        = "blockstate/stairs.json.tmpl"
	StateTrapdoor      = "blockstate/trapdoor.json.tmpl"
)

const (
	LootTableBlock = "loot_table/block.json.tmpl"

	RecipeShaped    = "recipe/shaped.json.tmpl"
	RecipeShapeless = "recipe/shapeless.json.tmpl"
)

// Verify parses every template in fsys with the catalog's functions and reports
// all failures at once.
func Verify(fsys fs.FS) error {
	var errs []error
	count := 0

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
			return nil
		}

		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			return nil
		}
		if _, err := template.New(path).Funcs(render.FuncMap()).Parse(string(content)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
		count++
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk template catalog: %w", err)
	}
	if count == 0 {
		return errors.New("template catalog is empty")
	}

	return errors.Join(errs...)
}
