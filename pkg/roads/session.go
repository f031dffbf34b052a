package roads

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/wozhendeai/generative-town/pkg/geo"
	"github.com/wozhendeai/generative-town/pkg/grid"
)

// ErrBudgetExceeded is returned when a route is longer than the
// session's per-invocation tile budget.
var ErrBudgetExceeded = errors.New("roads: route exceeds the path tile budget")

// ErrDisconnected is returned when a road network already exists and
// neither endpoint of the requested path is on or adjacent to it. The
// grid is untouched.
var ErrDisconnected = errors.New("roads: path does not touch the existing road network")

// DefaultMaxPathTiles is the per-invocation route budget for new sessions.
const DefaultMaxPathTiles = 64

// Session carries the placement policy state for one generation run:
// the per-invocation tile budget and the connection gate that applies
// once the grid has any road at all. Policy lives here, outside the
// placer, so direct PlacePath calls (repair bridging, tests) stay
// unconstrained.
type Session struct {
	ID                string `json:"id"`
	MaxPathTiles      int    `json:"max_path_tiles"`
	RequireConnection bool   `json:"require_connection"`
	PathsPlaced       int    `json:"paths_placed"`
	TilesPlaced       int    `json:"tiles_placed"`
	TilesUpgraded     int    `json:"tiles_upgraded"`
}

// NewSession creates a session with the default budget and the
// connection gate enabled.
func NewSession() *Session {
	return &Session{
		ID:                uuid.NewString(),
		MaxPathTiles:      DefaultMaxPathTiles,
		RequireConnection: true,
	}
}

// CheckBudget rejects routes longer than the session budget. A budget
// of zero or less means unlimited.
func (s *Session) CheckBudget(route []geo.Point) error {
	if s.MaxPathTiles > 0 && len(route) > s.MaxPathTiles {
		return fmt.Errorf("%w: %d cells, budget %d", ErrBudgetExceeded, len(route), s.MaxPathTiles)
	}
	return nil
}

// CheckConnected enforces the connection gate: once any road tile
// exists, a new path is accepted only when at least one endpoint sits
// on or 4-adjacent to an existing road tile. An empty network accepts
// anything (the first path has nothing to connect to).
func (s *Session) CheckConnected(g *grid.Grid, from, to geo.Point) error {
	if !s.RequireConnection {
		return nil
	}
	if !g.HasRoads() {
		return nil
	}
	if touchesRoad(g, from) || touchesRoad(g, to) {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrDisconnected, from, to)
}

func touchesRoad(g *grid.Grid, p geo.Point) bool {
	if g.RoadAt(p) {
		return true
	}
	for _, q := range p.Neighbors4() {
		if g.RoadAt(q) {
			return true
		}
	}
	return false
}

// Place runs the full policy-checked placement: endpoint bounds, then
// budget, then the connection gate, then the placer. Rejections happen
// before any cell is written. Successful results are accumulated into
// the session counters.
func (s *Session) Place(g *grid.Grid, from, to geo.Point) (*Result, error) {
	if !g.InBounds(from) {
		return nil, fmt.Errorf("%w: from %s outside %dx%d", grid.ErrOutOfBounds, from, g.Width(), g.Height())
	}
	if !g.InBounds(to) {
		return nil, fmt.Errorf("%w: to %s outside %dx%d", grid.ErrOutOfBounds, to, g.Width(), g.Height())
	}
	if err := s.CheckBudget(BuildRoute(from, to)); err != nil {
		return nil, err
	}
	if err := s.CheckConnected(g, from, to); err != nil {
		return nil, err
	}

	res, err := PlacePath(g, from, to)
	if err != nil {
		return nil, err
	}
	s.PathsPlaced++
	s.TilesPlaced += res.Placed
	s.TilesUpgraded += res.Upgraded
	return res, nil
}
