// Package recipe holds the crafting-recipe side of the generator: ingredient values,
// the fixed catalog of 3x3 crafting grids and the renderers that turn them into the
// documents consumed by the recipe templates.
package recipe

import "strings"

// Kind selects whether an ingredient names a single item or an item tag.
type Kind int

const (
	Item Kind = iota
	Tag
)

// String returns the JSON field name used for the kind.
func (k Kind) String() string {
	if k == Tag {
		return "tag"
	}
	return "item"
}

// Ingredient describes one recipe input or output. Symbol is only meaningful for
// shaped recipes, where it labels the key entry; it is zero otherwise.
type Ingredient struct {
	Symbol rune
	Name   string
	Count  int
	Kind   Kind
}

type IngredientOption func(*Ingredient)

// WithSymbol sets the grid symbol the ingredient is keyed under.
func WithSymbol(symbol rune) IngredientOption {
	return func(in *Ingredient) {
		in.Symbol = symbol
	}
}

// WithCount sets the stack count. Counts below one are treated as one.
func WithCount(count int) IngredientOption {
	return func(in *Ingredient) {
		in.Count = count
	}
}

// NewItem returns an item ingredient with a blank symbol and a count of one.
func NewItem(name string, opts ...IngredientOption) Ingredient {
	return newIngredient(name, Item, opts)
}

// NewTag returns a tag ingredient with a blank symbol and a count of one.
func NewTag(name string, opts ...IngredientOption) Ingredient {
	return newIngredient(name, Tag, opts)
}

// ParseMaterial builds an ingredient from the material notation used on the command
// line and in project files: a leading '#' marks a tag.
func ParseMaterial(material string, opts ...IngredientOption) Ingredient {
	if name, ok := strings.CutPrefix(material, "#"); ok {
		return NewTag(name, opts...)
	}
	return NewItem(material, opts...)
}

func newIngredient(name string, kind Kind, opts []IngredientOption) Ingredient {
	in := Ingredient{
		Name:  name,
		Count: 1,
		Kind:  kind,
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}

// Amount returns the stack count, never less than one.
func (in Ingredient) Amount() int {
	if in.Count < 1 {
		return 1
	}
	return in.Count
}

// Namespaced qualifies name with namespace unless it already carries one.
func Namespaced(namespace, name string) string {
	if namespace == "" || strings.Contains(name, ":") {
		return name
	}
	return namespace + ":" + name
}
