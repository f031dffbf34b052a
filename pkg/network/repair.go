package network

import (
	"github.com/wozhendeai/generative-town/pkg/geo"
	"github.com/wozhendeai/generative-town/pkg/grid"
	"github.com/wozhendeai/generative-town/pkg/roads"
)

// RepairResult summarizes one repair pass over a fragmented network.
// Repair is best effort: Success reports the final connectivity, which
// may still be false when a bridge could not be resolved against the
// catalog.
type RepairResult struct {
	Success       bool                   `json:"success"`
	IslandsBefore int                    `json:"islands_before"`
	Bridges       []Bridge               `json:"bridges,omitempty"`
	TilesPlaced   int                    `json:"tiles_placed"`
	TilesUpgraded int                    `json:"tiles_upgraded"`
	Unresolved    []roads.UnresolvedCell `json:"unresolved,omitempty"`
	Final         *Report                `json:"final"`
}

// Bridge records a single island-to-island bridging attempt.
type Bridge struct {
	From   geo.Point `json:"from"`
	To     geo.Point `json:"to"`
	Placed int       `json:"placed"`
}

// Repair reconnects a fragmented road network. Islands are paired in
// report order and each consecutive pair is bridged along a route
// between their closest tiles. Existing road tiles on the route are
// never overwritten, though their connectivity may widen when a bridge
// joins them. A final Validate confirms the outcome.
func Repair(g *grid.Grid) *RepairResult {
	before := Validate(g)
	res := &RepairResult{IslandsBefore: before.IslandCount}
	if before.Connected {
		res.Success = true
		res.Final = before
		return res
	}

	opts := roads.Options{SkipExisting: true}
	for i := 1; i < len(before.Islands); i++ {
		from, to := closestPair(before.Islands[i-1], before.Islands[i])
		placed, err := roads.PlacePathOpts(g, from, to, opts)
		if err != nil {
			// Bridge endpoints sit on road tiles already in
			// bounds, so placement cannot fail here; guard anyway.
			continue
		}
		res.Bridges = append(res.Bridges, Bridge{From: from, To: to, Placed: placed.Placed})
		res.TilesPlaced += placed.Placed
		res.TilesUpgraded += placed.Upgraded
		res.Unresolved = append(res.Unresolved, placed.Unresolved...)
	}

	res.Final = Validate(g)
	res.Success = res.Final.Connected
	return res
}

// closestPair returns the tile from each island minimizing Manhattan
// distance. Ties keep the first pair found in island tile order.
func closestPair(a, b Island) (geo.Point, geo.Point) {
	bestFrom, bestTo := a.Tiles[0], b.Tiles[0]
	best := bestFrom.Manhattan(bestTo)
	for _, p := range a.Tiles {
		for _, q := range b.Tiles {
			if d := p.Manhattan(q); d < best {
				best = d
				bestFrom, bestTo = p, q
			}
		}
	}
	return bestFrom, bestTo
}
