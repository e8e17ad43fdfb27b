package factor

import (
	"math/big"

	"screenruler/unit"
)

// DefaultPixelsPerInch is the reference pixel density: 96 px make one inch.
const DefaultPixelsPerInch = 96

// Default returns the built-in table: the six screen ruler units and the
// five authored factors that connect them.
func Default() *Table {
	t := NewTable()

	for _, u := range unit.Builtin {
		t.Declare(u, u.Label(), defaultTicks[u]...)
	}

	return t.
		Add(unit.Pixel, unit.Inch, big.NewRat(1, DefaultPixelsPerInch)).
		Add(unit.Inch, unit.Point, big.NewRat(72, 1)).
		Add(unit.Inch, unit.Millimeter, big.NewRat(254, 10)).
		Add(unit.Point, unit.Em, big.NewRat(1, 12)).
		Add(unit.Inch, unit.Pica, big.NewRat(6, 1))
}

var defaultTicks = map[unit.Unit][]*big.Rat{
	unit.Pixel:      {big.NewRat(50, 1), big.NewRat(25, 1), big.NewRat(5, 1)},
	unit.Point:      {big.NewRat(50, 1), big.NewRat(10, 1), big.NewRat(5, 1)},
	unit.Em:         {big.NewRat(5, 1), big.NewRat(1, 1), big.NewRat(1, 2)},
	unit.Inch:       {big.NewRat(1, 1), big.NewRat(1, 2), big.NewRat(1, 10)},
	unit.Millimeter: {big.NewRat(10, 1), big.NewRat(5, 1), big.NewRat(1, 1)},
	unit.Pica:       {big.NewRat(6, 1), big.NewRat(3, 1), big.NewRat(1, 1)},
}
