package recipe

import (
	"fmt"
	"log/slog"
)

// Entry is one rendered "field: name" pair, e.g. {"item": "mod:oak_planks"}.
type Entry struct {
	Field string
	Name  string
	Count int
}

// KeyEntry binds a grid symbol to the ingredient it stands for.
type KeyEntry struct {
	Symbol string
	Entry
}

// Shaped is the data behind a shaped crafting-recipe document.
type Shaped struct {
	Group   string
	Pattern []string
	Key     []KeyEntry
	Result  Entry
}

// Shapeless is the data behind a shapeless crafting-recipe document.
type Shapeless struct {
	Group       string
	Ingredients []Entry
	Result      Entry
}

// Validator inspects a grid and its key before rendering. Returning an error aborts
// the render.
type Validator func(p Pattern, key []Ingredient) error

// Renderer turns catalog patterns and ingredients into recipe documents. The zero
// value renders permissively without a namespace.
type Renderer struct {
	// Namespace qualifies ingredient and result names that have none.
	Namespace string
	// Validate, when set, runs before every shaped render.
	Validate Validator
	Logger   *slog.Logger
}

func NewRenderer(namespace string, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		Namespace: namespace,
		Logger:    logger,
	}
}

// Shaped renders a shaped recipe without a group.
func (r *Renderer) Shaped(p Pattern, key []Ingredient, result Ingredient) (Shaped, error) {
	return r.ShapedGroup("", p, key, result)
}

// ShapedGroup renders a shaped recipe. Key entries keep the caller's order and are
// not deduplicated, but each needs a symbol. The result is always rendered as an item.
func (r *Renderer) ShapedGroup(group string, p Pattern, key []Ingredient, result Ingredient) (Shaped, error) {
	for _, in := range key {
		if in.Symbol == 0 {
			return Shaped{}, fmt.Errorf("invalid recipe for %s: %w: %s", result.Name, ErrNoSymbol, in.Name)
		}
	}

	if r.Validate != nil {
		if err := r.Validate(p, key); err != nil {
			return Shaped{}, fmt.Errorf("invalid recipe for %s: %w", result.Name, err)
		}
	} else {
		r.warnDuplicates(key, result)
	}

	doc := Shaped{
		Group:   group,
		Pattern: p.Rows(),
		Key:     make([]KeyEntry, 0, len(key)),
		Result: Entry{
			Field: Item.String(),
			Name:  Namespaced(r.Namespace, result.Name),
			Count: result.Amount(),
		},
	}
	for _, in := range key {
		doc.Key = append(doc.Key, KeyEntry{
			Symbol: string(in.Symbol),
			Entry: Entry{
				Field: in.Kind.String(),
				Name:  Namespaced(r.Namespace, in.Name),
				Count: in.Amount(),
			},
		})
	}
	return doc, nil
}

// Shapeless renders a single-ingredient shapeless recipe without a group.
func (r *Renderer) Shapeless(in, result Ingredient) Shapeless {
	return r.ShapelessGroup("", in, result)
}

func (r *Renderer) ShapelessGroup(group string, in, result Ingredient) Shapeless {
	return Shapeless{
		Group:       group,
		Ingredients: []Entry{r.entry(in)},
		Result:      r.entry(result),
	}
}

func (r *Renderer) entry(in Ingredient) Entry {
	return Entry{
		Field: in.Kind.String(),
		Name:  Namespaced(r.Namespace, in.Name),
		Count: in.Amount(),
	}
}

func (r *Renderer) warnDuplicates(key []Ingredient, result Ingredient) {
	if r.Logger == nil {
		return
	}
	seen := make(map[rune]bool, len(key))
	for _, in := range key {
		if seen[in.Symbol] {
			r.Logger.Warn("duplicate recipe key symbol", "symbol", string(in.Symbol), "result", result.Name)
		}
		seen[in.Symbol] = true
	}
}
