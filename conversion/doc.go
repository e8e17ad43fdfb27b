// Package conversion builds and serves the complete conversion table.
//
// Build runs closure construction once: it checks the authored factor
// table, copies every authored factor, derives a factor for every other
// ordered pair of units by searching the factor graph, and puts identity on
// the diagonal. The resulting Table is immutable and safe for concurrent
// use.
//
//	tbl, err := conversion.Build(factor.Default())
//	if err != nil {
//		// the factor table is broken; nothing is convertible
//	}
//	v, err := tbl.Convert(big.NewRat(96, 1), unit.Pixel, unit.Inch) // 1
package conversion
