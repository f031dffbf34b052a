package roads

import (
	"fmt"

	"github.com/wozhendeai/generative-town/pkg/catalog"
	"github.com/wozhendeai/generative-town/pkg/geo"
	"github.com/wozhendeai/generative-town/pkg/grid"
)

// Result reports what one placement invocation did. A path that could
// not fully resolve is still a success at this level: the unresolved
// cells are listed and everything else was placed.
type Result struct {
	Route      []geo.Point      `json:"route"`
	Placed     int              `json:"placed"`
	Upgraded   int              `json:"upgraded"`
	Skipped    int              `json:"skipped,omitempty"`
	Unresolved []UnresolvedCell `json:"unresolved,omitempty"`
}

// UnresolvedCell is a route cell whose required direction set has no
// catalog entry.
type UnresolvedCell struct {
	Pos    geo.Point `json:"pos"`
	Wanted []string  `json:"wanted"`
	Reason string    `json:"reason"`
}

// Options tunes a placement invocation.
type Options struct {
	// SkipExisting leaves cells that already hold road tiles alone
	// instead of overwriting them. Used by network repair, which only
	// fills gaps; skipped cells can still gain connectivity through
	// neighbor upgrades.
	SkipExisting bool
}

// PlacePath lays a corridor of connected road tiles along the
// Manhattan route between from and to. For each route cell it unions
// the directions implied by the route with those implied by adjacent
// road tiles that point back at it, resolves the exact-match tile, and
// writes it; neighbors in the union's directions are then upgraded so
// a straight road grows into a junction when a branch lands on it.
//
// Cells whose direction set has no catalog entry are reported in the
// result and skipped; the rest of the route still goes down. Policy
// checks (tile budget, connection gating) belong to the caller; see
// Session.
func PlacePath(g *grid.Grid, from, to geo.Point) (*Result, error) {
	return PlacePathOpts(g, from, to, Options{})
}

// PlacePathOpts is PlacePath with explicit options.
func PlacePathOpts(g *grid.Grid, from, to geo.Point, opts Options) (*Result, error) {
	if !g.InBounds(from) {
		return nil, fmt.Errorf("%w: from %s outside %dx%d", grid.ErrOutOfBounds, from, g.Width(), g.Height())
	}
	if !g.InBounds(to) {
		return nil, fmt.Errorf("%w: to %s outside %dx%d", grid.ErrOutOfBounds, to, g.Width(), g.Height())
	}

	cat := g.Catalog()
	route := BuildRoute(from, to)
	res := &Result{Route: route}

	for i, p := range route {
		if opts.SkipExisting && g.RoadAt(p) {
			res.Skipped++
			continue
		}

		want := routeDirs(route, i).Union(reciprocalDirs(g, p))
		if want == 0 {
			// Isolated single-tile placement: default to a straight
			// east-west connector.
			want = geo.NewDirSet(geo.East, geo.West)
		}

		ref, ok := cat.FindExactMatch(want)
		if !ok {
			res.Unresolved = append(res.Unresolved, UnresolvedCell{
				Pos:    p,
				Wanted: want.Names(),
				Reason: fmt.Sprintf("no road tile connects %s", want),
			})
			continue
		}

		if err := g.SetRef(p, ref, catalog.LayerGround); err != nil {
			return nil, err
		}
		res.Placed++

		for _, d := range want.Directions() {
			if upgradeNeighbor(g, p, d) {
				res.Upgraded++
			}
		}
	}
	return res, nil
}

// routeDirs returns the directions from route[i] toward its immediate
// predecessor and successor: two for interior cells, one for the
// endpoints of a multi-cell route, none for a one-cell route.
func routeDirs(route []geo.Point, i int) geo.DirSet {
	var set geo.DirSet
	if i > 0 {
		if d, ok := route[i].Toward(route[i-1]); ok {
			set = set.Add(d)
		}
	}
	if i < len(route)-1 {
		if d, ok := route[i].Toward(route[i+1]); ok {
			set = set.Add(d)
		}
	}
	return set
}

// reciprocalDirs returns the directions toward adjacent road tiles
// whose own connects-set points back at p: the neighbor to the north
// counts iff it connects south.
func reciprocalDirs(g *grid.Grid, p geo.Point) geo.DirSet {
	cat := g.Catalog()
	var set geo.DirSet
	for _, d := range geo.Directions {
		q := p.Step(d)
		ref, ok := g.RefAt(q, catalog.LayerGround)
		if !ok || !cat.Tile(ref).Road() {
			continue
		}
		if cat.DirSet(ref).Has(d.Opposite()) {
			set = set.Add(d)
		}
	}
	return set
}

// upgradeNeighbor widens the road tile one step from p in direction d
// by the direction pointing back at p. Reports whether a new tile was
// written; an already-satisfied or unresolvable upgrade changes
// nothing.
func upgradeNeighbor(g *grid.Grid, p geo.Point, d geo.Direction) bool {
	q := p.Step(d)
	ref, ok := g.RefAt(q, catalog.LayerGround)
	if !ok {
		return false
	}
	cat := g.Catalog()
	if !cat.Tile(ref).Road() {
		return false
	}
	upgraded, ok := cat.Upgrade(ref, d.Opposite())
	if !ok {
		return false
	}
	if err := g.SetRef(q, upgraded, catalog.LayerGround); err != nil {
		return false
	}
	return true
}
