package factor

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"screenruler/internal/diagnostic"
	"screenruler/unit"
)

// Validate checks a table before closure construction.
//
// Errors make the table unusable: malformed unit tokens, edges from a unit
// to itself, non-positive factors, and pairs authored with contradicting
// factors (including A->B and B->A that are not exact inverses).
// Disconnected units are only a warning here; closure construction reports
// the first pair it cannot connect.
func Validate(t *Table) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if t == nil {
		res.AddError("table_is_nil", "factor table is nil", "", "")
		return res
	}

	for _, d := range t.decls {
		if !d.Unit.IsValid() {
			res.AddError("invalid_unit", fmt.Sprintf("invalid unit token %q", string(d.Unit)), "", string(d.Unit))
		}
	}

	seen := make(map[string]*big.Rat)
	used := make(map[unit.Unit]struct{})

	for _, e := range t.edges {
		pair := diagnostic.PairKey(e.From, e.To)
		used[e.From] = struct{}{}
		used[e.To] = struct{}{}

		if e.From == e.To {
			res.AddError("self_edge", "edge from a unit to itself", pair, string(e.From))
			continue
		}

		if e.Factor == nil || e.Factor.Sign() <= 0 {
			res.AddError("nonpositive_factor", fmt.Sprintf("factor must be positive, got %s", ratString(e.Factor)), pair, "")
			continue
		}

		if prev, ok := seen[pair]; ok {
			if prev.Cmp(e.Factor) == 0 {
				res.AddWarning("duplicate_factor", "pair is authored more than once", pair, "")
			} else {
				res.AddError("conflicting_factor",
					fmt.Sprintf("pair is authored as both %s and %s", prev.RatString(), e.Factor.RatString()), pair, "")
			}

			continue
		}

		if back, ok := seen[diagnostic.PairKey(e.To, e.From)]; ok {
			product := new(big.Rat).Mul(back, e.Factor)
			if product.Cmp(big.NewRat(1, 1)) != 0 {
				res.AddError("conflicting_factor",
					fmt.Sprintf("factor %s is not the inverse of the reverse edge factor %s", e.Factor.RatString(), back.RatString()),
					pair, "")
			}
		}

		seen[pair] = e.Factor
	}

	for _, d := range t.decls {
		if _, ok := used[d.Unit]; !ok && len(t.decls) > 1 {
			res.AddInfo("unused_unit", "unit is declared but no factor mentions it", "", string(d.Unit))
		}
	}

	if groups := Components(t); len(groups) > 1 {
		parts := make([]string, len(groups))
		for i, g := range groups {
			parts[i] = "{" + joinUnits(g) + "}"
		}

		res.AddWarning("disconnected_units",
			fmt.Sprintf("units form %d unconnected groups: %s", len(groups), strings.Join(parts, " ")), "", "")
	}

	return res
}

// Components partitions the declared units into groups connected through
// authored edges, ignoring edge direction. Groups and their members follow
// declaration order.
func Components(t *Table) [][]unit.Unit {
	g := simple.NewUndirectedGraph()
	for i := range t.decls {
		g.AddNode(simple.Node(i))
	}

	for _, e := range t.edges {
		if e.From == e.To {
			continue
		}

		g.SetEdge(g.NewEdge(simple.Node(t.index[e.From]), simple.Node(t.index[e.To])))
	}

	var groups [][]int

	for _, cc := range topo.ConnectedComponents(g) {
		ids := make([]int, len(cc))
		for i, n := range cc {
			ids[i] = int(n.ID())
		}

		slices.Sort(ids)
		groups = append(groups, ids)
	}

	slices.SortFunc(groups, func(a, b []int) int { return a[0] - b[0] })

	res := make([][]unit.Unit, len(groups))
	for i, ids := range groups {
		for _, id := range ids {
			res[i] = append(res[i], t.decls[id].Unit)
		}
	}

	return res
}

func joinUnits(us []unit.Unit) string {
	s := make([]string, len(us))
	for i, u := range us {
		s[i] = string(u)
	}

	return strings.Join(s, ", ")
}

func ratString(r *big.Rat) string {
	if r == nil {
		return "<nil>"
	}

	return r.RatString()
}
