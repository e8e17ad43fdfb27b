package factor

import (
	"math/big"
	"slices"

	"screenruler/unit"
)

// Edge is one authored conversion: multiplying a quantity in From by
// Factor gives the equivalent quantity in To.
type Edge struct {
	From   unit.Unit
	To     unit.Unit
	Factor *big.Rat
}

// Inverse returns the edge read backwards, with the reciprocal factor.
func (e Edge) Inverse() Edge {
	return Edge{From: e.To, To: e.From, Factor: new(big.Rat).Inv(e.Factor)}
}

// Declaration describes a unit known to a Table.
type Declaration struct {
	Unit  unit.Unit
	Label string
	// Ticks are the ruler tick steps for this unit, coarsest first. Optional.
	Ticks []*big.Rat
}

// Table is an ordered set of unit declarations and authored edges.
// Order matters: closure construction visits units and edges in the
// order they were added.
type Table struct {
	decls []Declaration
	index map[unit.Unit]int
	edges []Edge
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{index: make(map[unit.Unit]int)}
}

// Declare adds u to the table. Declaring a unit again keeps its position
// and replaces its label and ticks.
func (t *Table) Declare(u unit.Unit, label string, ticks ...*big.Rat) *Table {
	if label == "" {
		label = u.Label()
	}

	d := Declaration{Unit: u, Label: label, Ticks: copyRats(ticks)}

	if i, ok := t.index[u]; ok {
		t.decls[i] = d
		return t
	}

	t.index[u] = len(t.decls)
	t.decls = append(t.decls, d)

	return t
}

// Add appends the edge from -> to with factor f. Units not yet declared
// are declared with their default label.
func (t *Table) Add(from, to unit.Unit, f *big.Rat) *Table {
	for _, u := range []unit.Unit{from, to} {
		if _, ok := t.index[u]; !ok {
			t.Declare(u, "")
		}
	}

	var fc *big.Rat
	if f != nil {
		fc = new(big.Rat).Set(f)
	}

	t.edges = append(t.edges, Edge{From: from, To: to, Factor: fc})

	return t
}

// Units returns the declared units in declaration order.
func (t *Table) Units() []unit.Unit {
	res := make([]unit.Unit, len(t.decls))
	for i, d := range t.decls {
		res[i] = d.Unit
	}

	return res
}

// Declarations returns a copy of the unit declarations.
func (t *Table) Declarations() []Declaration {
	res := make([]Declaration, len(t.decls))
	for i, d := range t.decls {
		res[i] = Declaration{Unit: d.Unit, Label: d.Label, Ticks: copyRats(d.Ticks)}
	}

	return res
}

// Lookup returns the declaration of u.
func (t *Table) Lookup(u unit.Unit) (Declaration, bool) {
	i, ok := t.index[u]
	if !ok {
		return Declaration{}, false
	}

	d := t.decls[i]

	return Declaration{Unit: d.Unit, Label: d.Label, Ticks: copyRats(d.Ticks)}, true
}

// Edges returns a copy of the authored edges in insertion order.
func (t *Table) Edges() []Edge {
	res := make([]Edge, len(t.edges))
	for i, e := range t.edges {
		res[i] = Edge{From: e.From, To: e.To, Factor: copyRat(e.Factor)}
	}

	return res
}

// Direct returns the factor of the first authored edge from -> to.
func (t *Table) Direct(from, to unit.Unit) (*big.Rat, bool) {
	i := slices.IndexFunc(t.edges, func(e Edge) bool {
		return e.From == from && e.To == to
	})
	if i < 0 {
		return nil, false
	}

	return copyRat(t.edges[i].Factor), true
}

// Len returns the number of declared units.
func (t *Table) Len() int {
	return len(t.decls)
}

func copyRat(r *big.Rat) *big.Rat {
	if r == nil {
		return nil
	}

	return new(big.Rat).Set(r)
}

func copyRats(rs []*big.Rat) []*big.Rat {
	if len(rs) == 0 {
		return nil
	}

	res := make([]*big.Rat, len(rs))
	for i, r := range rs {
		res[i] = copyRat(r)
	}

	return res
}
