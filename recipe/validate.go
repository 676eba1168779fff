package recipe

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrMissingKey   = errors.New("grid symbol has no key entry")
	ErrUnusedKey    = errors.New("key symbol is not used in the grid")
	ErrDuplicateKey = errors.New("key symbol is defined more than once")
	ErrNoSymbol     = errors.New("key ingredient has no grid symbol")
)

// Strict requires the key to define every grid symbol exactly once and nothing
// else. Spaces in the grid are unused slots and need no key entry.
func Strict(p Pattern, key []Ingredient) error {
	var errs []error

	grid := p.Symbols()
	defined := make(map[rune]int, len(key))
	for _, in := range key {
		defined[in.Symbol]++
	}

	for _, s := range grid {
		if defined[s] == 0 {
			errs = append(errs, fmt.Errorf("%w: %q", ErrMissingKey, s))
		}
	}

	seen := make(map[rune]bool, len(key))
	for _, in := range key {
		if seen[in.Symbol] {
			continue
		}
		seen[in.Symbol] = true
		if defined[in.Symbol] > 1 {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateKey, in.Symbol))
		}
		if !slices.Contains(grid, in.Symbol) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnusedKey, in.Symbol))
		}
	}

	return errors.Join(errs...)
}
