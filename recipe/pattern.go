package recipe

import "strings"

// Cell is one slot of a crafting grid: either a symbol or empty. A space is a
// symbol like any other and is kept in the rendered rows.
type Cell struct {
	symbol rune
	filled bool
}

// Empty is the cell that contributes nothing to a rendered row.
var Empty = Cell{}

// Sym returns a cell holding symbol.
func Sym(symbol rune) Cell {
	return Cell{symbol: symbol, filled: true}
}

// IsEmpty reports whether the cell is the empty variant.
func (c Cell) IsEmpty() bool {
	return !c.filled
}

// Symbol returns the cell's symbol and whether it has one.
func (c Cell) Symbol() (rune, bool) {
	return c.symbol, c.filled
}

// Pattern is a 3x3 crafting grid in row-major order.
type Pattern [9]Cell

// Rows renders the grid into the rows of a shaped recipe. Rows made only of empty
// cells are dropped, and empty cells inside a kept row are dropped too, so
// [A, Empty, B] becomes "AB".
func (p Pattern) Rows() []string {
	rows := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		row := p[3*i : 3*i+3]
		if row[0].IsEmpty() && row[1].IsEmpty() && row[2].IsEmpty() {
			continue
		}

		var b strings.Builder
		for _, c := range row {
			if c.filled {
				b.WriteRune(c.symbol)
			}
		}
		rows = append(rows, b.String())
	}
	return rows
}

// Symbols returns the distinct symbols placed in the grid, in first-seen order.
// Spaces are skipped since they mark an unused slot in a shaped recipe.
func (p Pattern) Symbols() []rune {
	var symbols []rune
	seen := make(map[rune]bool)
	for _, c := range p {
		if !c.filled || c.symbol == ' ' || seen[c.symbol] {
			continue
		}
		seen[c.symbol] = true
		symbols = append(symbols, c.symbol)
	}
	return symbols
}

// String draws the grid with '.' for empty cells, one line per row.
func (p Pattern) String() string {
	var b strings.Builder
	for i, c := range p {
		if i > 0 && i%3 == 0 {
			b.WriteByte('\n')
		}
		if c.filled {
			b.WriteRune(c.symbol)
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}
