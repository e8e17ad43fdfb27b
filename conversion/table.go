package conversion

import (
	"math"
	"math/big"

	"k8s.io/klog/v2"

	"screenruler/factor"
	"screenruler/internal/graph"
	"screenruler/internal/match"
	"screenruler/unit"
)

const (
	derivationAuthored = "authored"
	derivationIdentity = "identity"
)

// Table holds an exact factor for every ordered pair of units.
// A Table never changes after Build returns it.
type Table struct {
	units    []unit.Unit
	labels   []string
	index    map[unit.Unit]int
	factors  [][]*big.Rat
	paths    [][]string
	observer Observer
}

// Build runs closure construction over the authored factors of t.
//
// Authored pairs keep their factor. Every other pair a != b gets the
// product of the factors along the path graph.FindPath returns, and every
// unit converts to itself with factor 1. If t fails validation or any pair
// cannot be connected, Build returns a *ConfigurationError and no table.
func Build(t *factor.Table, opts ...Option) (*Table, error) {
	o := options{observer: nopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}

	diags := factor.Validate(t)
	if diags.HasErrors() {
		return nil, &ConfigurationError{Err: diags.Error()}
	}

	for _, w := range diags.Warnings {
		klog.V(2).InfoS("Factor table warning", "code", w.Code, "message", w.Message)
	}

	decls := t.Declarations()
	n := len(decls)

	tbl := &Table{
		units:    make([]unit.Unit, n),
		labels:   make([]string, n),
		index:    make(map[unit.Unit]int, n),
		factors:  make([][]*big.Rat, n),
		paths:    make([][]string, n),
		observer: o.observer,
	}

	for i, d := range decls {
		tbl.units[i] = d.Unit
		tbl.labels[i] = d.Label
		tbl.index[d.Unit] = i
		tbl.factors[i] = make([]*big.Rat, n)
		tbl.paths[i] = make([]string, n)
	}

	g := graph.New(t.Edges())
	derived := 0

	for i, a := range tbl.units {
		for j, b := range tbl.units {
			if i == j {
				continue
			}

			if f, ok := t.Direct(a, b); ok {
				tbl.factors[i][j] = f
				tbl.paths[i][j] = derivationAuthored

				continue
			}

			p, err := g.FindPath(a, b)
			if err != nil {
				return nil, &ConfigurationError{From: a, To: b, Err: err}
			}

			tbl.factors[i][j] = graph.Compose(p)
			tbl.paths[i][j] = p.String()
			derived++

			o.observer.ObserveDerived(a, b, len(p))
			klog.V(4).InfoS("Derived conversion", "from", a, "to", b,
				"path", tbl.paths[i][j], "factor", tbl.factors[i][j].RatString())
		}
	}

	for i := range tbl.units {
		tbl.factors[i][i] = big.NewRat(1, 1)
		tbl.paths[i][i] = derivationIdentity
	}

	klog.V(2).InfoS("Conversion table built", "units", n, "authored", n*(n-1)-derived, "derived", derived)

	return tbl, nil
}

// Default builds the table of the built-in units.
func Default(opts ...Option) (*Table, error) {
	return Build(factor.Default(), opts...)
}

// Convert returns v expressed in unit to, given v in unit from.
// v is not modified.
func (t *Table) Convert(v *big.Rat, from, to unit.Unit) (*big.Rat, error) {
	if v == nil {
		return nil, ErrNilValue
	}

	i, j, err := t.pair(from, to)
	if err != nil {
		return nil, err
	}

	t.observer.ObserveConversion(from, to)

	return new(big.Rat).Mul(v, t.factors[i][j]), nil
}

// ConvertFloat converts the exact value of x and rounds the result to the
// nearest float64 once.
func (t *Table) ConvertFloat(x float64, from, to unit.Unit) (float64, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, ErrNotFinite
	}

	res, err := t.Convert(new(big.Rat).SetFloat64(x), from, to)
	if err != nil {
		return 0, err
	}

	f, _ := res.Float64()

	return f, nil
}

// Factor returns the multiplier converting from one unit to another.
func (t *Table) Factor(from, to unit.Unit) (*big.Rat, error) {
	i, j, err := t.pair(from, to)
	if err != nil {
		return nil, err
	}

	return new(big.Rat).Set(t.factors[i][j]), nil
}

// Path describes how the factor of a pair was obtained: "authored",
// "identity", or the derivation path such as "px -> in (x1/96) -> pt (x72)".
func (t *Table) Path(from, to unit.Unit) (string, error) {
	i, j, err := t.pair(from, to)
	if err != nil {
		return "", err
	}

	return t.paths[i][j], nil
}

// Units returns the known units in declaration order.
func (t *Table) Units() []unit.Unit {
	return append([]unit.Unit(nil), t.units...)
}

// Has reports whether u is a known unit.
func (t *Table) Has(u unit.Unit) bool {
	_, ok := t.index[u]
	return ok
}

// Label returns the display label of u.
func (t *Table) Label(u unit.Unit) (string, error) {
	i, ok := t.index[u]
	if !ok {
		return "", unknownUnit(u, t.names())
	}

	return t.labels[i], nil
}

// Len returns the number of known units.
func (t *Table) Len() int {
	return len(t.units)
}

func (t *Table) pair(from, to unit.Unit) (int, int, error) {
	i, ok := t.index[from]
	if !ok {
		return 0, 0, unknownUnit(from, t.names())
	}

	j, ok := t.index[to]
	if !ok {
		return 0, 0, unknownUnit(to, t.names())
	}

	return i, j, nil
}

func (t *Table) names() []match.Name {
	res := make([]match.Name, len(t.units))
	for i, u := range t.units {
		res[i] = match.Name{Unit: u, Label: t.labels[i]}
	}

	return res
}
