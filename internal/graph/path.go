package graph

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"screenruler/factor"
	"screenruler/unit"
)

// ErrNoPath is returned when two units are not connected by authored edges.
var ErrNoPath = errors.New("graph: no path between units")

// Step is one move of a path: from From to To over an authored Edge.
// For Forward steps Edge runs From->To, for Reverse steps To->From.
type Step struct {
	Direction Direction
	From      unit.Unit
	To        unit.Unit
	Edge      factor.Edge
}

// Factor returns the multiplier this step contributes.
// The edge factor must be non-zero.
func (s Step) Factor() *big.Rat {
	if s.Direction == Reverse {
		return new(big.Rat).Inv(s.Edge.Factor)
	}

	return new(big.Rat).Set(s.Edge.Factor)
}

// Path is a sequence of steps, each starting where the previous one ended.
type Path []Step

// Units returns the units visited by the path, endpoints included.
func (p Path) Units() []unit.Unit {
	if len(p) == 0 {
		return nil
	}

	res := make([]unit.Unit, 0, len(p)+1)
	res = append(res, p[0].From)

	for _, s := range p {
		res = append(res, s.To)
	}

	return res
}

// String renders the path as "px -> in (x1/96) -> pt (x72)".
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(string(p[0].From))

	for _, s := range p {
		fmt.Fprintf(&b, " -> %s (x%s)", s.To, s.Factor().RatString())
	}

	return b.String()
}

// Graph is the traversal view of a list of authored edges.
type Graph struct {
	edges []factor.Edge
	out   map[unit.Unit][]int // edges leaving a unit, insertion order
	in    map[unit.Unit][]int // edges entering a unit, insertion order
}

// New builds the graph view of edges. Edges are used in the given order.
func New(edges []factor.Edge) *Graph {
	g := &Graph{
		edges: edges,
		out:   make(map[unit.Unit][]int),
		in:    make(map[unit.Unit][]int),
	}

	for i, e := range edges {
		g.out[e.From] = append(g.out[e.From], i)
		g.in[e.To] = append(g.in[e.To], i)
	}

	return g
}

// FindPath searches depth first for a path from one unit to another.
//
// At every unit the search first checks for an edge to the target (forward
// before reverse). Otherwise it tries the edges leaving the unit, then the
// edges entering it, each in insertion order, and returns the first path
// found. Units already on the current path are not entered again. The path
// is not necessarily the shortest one.
//
// The path from a unit to itself is empty.
func (g *Graph) FindPath(from, to unit.Unit) (Path, error) {
	if from == to {
		return Path{}, nil
	}

	p, ok := g.search(from, to, nil, make(map[unit.Unit]struct{}))
	if !ok {
		return nil, fmt.Errorf("%w: %s -> %s", ErrNoPath, from, to)
	}

	return p, nil
}

func (g *Graph) search(cur, target unit.Unit, path Path, onPath map[unit.Unit]struct{}) (Path, bool) {
	if _, ok := onPath[cur]; ok {
		return nil, false
	}

	if s, ok := g.direct(cur, target); ok {
		res := make(Path, 0, len(path)+1)
		res = append(res, path...)

		return append(res, s), true
	}

	onPath[cur] = struct{}{}
	defer delete(onPath, cur)

	for _, i := range g.out[cur] {
		e := g.edges[i]

		p, ok := g.search(e.To, target, append(path, Step{Direction: Forward, From: cur, To: e.To, Edge: e}), onPath)
		if ok {
			return p, true
		}
	}

	for _, i := range g.in[cur] {
		e := g.edges[i]

		p, ok := g.search(e.From, target, append(path, Step{Direction: Reverse, From: cur, To: e.From, Edge: e}), onPath)
		if ok {
			return p, true
		}
	}

	return nil, false
}

// direct returns the single step joining cur and target, if any.
func (g *Graph) direct(cur, target unit.Unit) (Step, bool) {
	for _, i := range g.out[cur] {
		if e := g.edges[i]; e.To == target {
			return Step{Direction: Forward, From: cur, To: target, Edge: e}, true
		}
	}

	for _, i := range g.in[cur] {
		if e := g.edges[i]; e.From == target {
			return Step{Direction: Reverse, From: cur, To: target, Edge: e}, true
		}
	}

	return Step{}, false
}
