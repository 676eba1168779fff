package recipe

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCraftable is returned for a craftable kind outside the catalog.
var ErrUnknownCraftable = errors.New("unknown craftable item")

// Craftable enumerates the items with a fixed shaped-recipe grid.
type Craftable int

const (
	Axe Craftable = iota
	Boots
	Chestplate
	Door
	Fence
	FenceGate
	Helmet
	Hoe
	Leggings
	Pickaxe
	PressurePlate
	Shovel
	Slab
	Stairs
	Stick
	StrippedWood
	Sword
	Trapdoor
	Wall
	Wood

	craftableCount
)

var craftableNames = [craftableCount]string{
	Axe:           "axe",
	Boots:         "boots",
	Chestplate:    "chestplate",
	Door:          "door",
	Fence:         "fence",
	FenceGate:     "fence_gate",
	Helmet:        "helmet",
	Hoe:           "hoe",
	Leggings:      "leggings",
	Pickaxe:       "pickaxe",
	PressurePlate: "pressure_plate",
	Shovel:        "shovel",
	Slab:          "slab",
	Stairs:        "stairs",
	Stick:         "stick",
	StrippedWood:  "stripped_wood",
	Sword:         "sword",
	Trapdoor:      "trapdoor",
	Wall:          "wall",
	Wood:          "wood",
}

func (c Craftable) String() string {
	if c < 0 || c >= craftableCount {
		return fmt.Sprintf("craftable(%d)", int(c))
	}
	return craftableNames[c]
}

// Craftables returns every kind in the catalog in declaration order.
func Craftables() []Craftable {
	all := make([]Craftable, 0, craftableCount)
	for c := Craftable(0); c < craftableCount; c++ {
		all = append(all, c)
	}
	return all
}

// ParseCraftable maps a snake_case name such as "fence_gate" to its kind.
func ParseCraftable(name string) (Craftable, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range craftableNames {
		if n == name {
			return Craftable(c), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCraftable, name)
}

var (
	__ = Empty
	sp = Sym(' ')
	hh = Sym('#')
	xx = Sym('X')
	ww = Sym('W')
)

// shaped is never written after package initialisation.
var shaped = map[Craftable]Pattern{
	Axe:           {__, xx, xx, __, xx, hh, __, sp, hh},
	Boots:         {sp, sp, sp, xx, sp, xx, xx, sp, xx},
	Chestplate:    {xx, __, xx, xx, xx, xx, xx, xx, xx},
	Door:          {__, hh, hh, __, hh, hh, __, hh, hh},
	Fence:         {ww, hh, ww, ww, hh, ww, __, __, __},
	FenceGate:     {hh, ww, hh, hh, ww, hh, __, __, __},
	Helmet:        {xx, xx, xx, xx, sp, xx, sp, sp, sp},
	Hoe:           {__, xx, xx, __, sp, hh, __, sp, hh},
	Leggings:      {xx, xx, xx, xx, sp, xx, xx, sp, xx},
	Pickaxe:       {xx, xx, xx, sp, hh, sp, sp, hh, sp},
	PressurePlate: {__, hh, hh, __, __, __, __, __, __},
	Shovel:        {__, xx, __, __, hh, __, __, hh, __},
	Slab:          {hh, hh, hh, __, __, __, __, __, __},
	Stairs:        {hh, sp, sp, hh, hh, sp, hh, hh, hh},
	Stick:         {hh, __, __, hh, __, __, __, __, __},
	StrippedWood:  {hh, hh, __, hh, hh, __, __, __, __},
	Sword:         {__, xx, __, __, xx, __, __, hh, __},
	Trapdoor:      {hh, hh, hh, hh, hh, hh, __, __, __},
	Wall:          {hh, hh, hh, hh, hh, hh, __, __, __},
	Wood:          {__, hh, hh, __, hh, hh, __, __, __},
}

func init() {
	for _, c := range Craftables() {
		if _, ok := shaped[c]; !ok {
			panic(fmt.Sprintf("recipe: no pattern registered for %s", c))
		}
	}
}

// PatternFor returns the crafting grid for kind. The result is a copy.
func PatternFor(kind Craftable) (Pattern, error) {
	p, ok := shaped[kind]
	if !ok {
		return Pattern{}, fmt.Errorf("%w: %s", ErrUnknownCraftable, kind)
	}
	return p, nil
}
