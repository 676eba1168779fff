package generator

import "path/filepath"

// Layout derives output paths relative to the output root, which is the mod's
// assets directory. Loot tables and recipes live in the sibling data tree.
type Layout struct {
	Mod string
}

func (l Layout) BlockModel(name string) string {
	return filepath.Join(l.Mod, "models", "block", name+".json")
}

func (l Layout) ItemModel(name string) string {
	return filepath.Join(l.Mod, "models", "item", name+".json")
}

func (l Layout) Blockstate(name string) string {
	return filepath.Join(l.Mod, "blockstates", name+".json")
}

func (l Layout) LootTable(name string) string {
	return filepath.Join("..", "data", l.Mod, "loot_tables", "blocks", name+".json")
}

func (l Layout) Recipe(name string) string {
	return filepath.Join("..", "data", l.Mod, "recipes", name+".json")
}
