package validation

import (
	"fmt"

	"github.com/wozhendeai/generative-town/pkg/catalog"
	"github.com/wozhendeai/generative-town/pkg/geo"
)

// ValidateCatalog performs structural validation on a parsed catalog
// file, before interning. Loading is permissive (unknown enum values
// pass through, duplicate ids resolve first-wins); this pass is the
// strict gate entrypoints run before trusting a catalog.
func ValidateCatalog(f *catalog.File) *Report {
	r := NewReport()

	validateFile(f, r)
	validateTiles(f, r)
	validateRoadSet(f, r)

	return r
}

func validateFile(f *catalog.File, r *Report) {
	if f.TileSize < 1 {
		r.AddError(Result{
			Level:       LevelCatalog,
			Message:     fmt.Sprintf("tile_size must be at least 1, got %d", f.TileSize),
			Path:        "tile_size",
			ActualValue: f.TileSize,
			Expected:    ">= 1",
		})
	}
	if len(f.Tiles) == 0 {
		r.AddError(Result{
			Level:    LevelCatalog,
			Message:  "catalog defines no tiles",
			Path:     "tiles",
			Expected: "at least 1 tile",
		})
	}
}

func validateTiles(f *catalog.File, r *Report) {
	seen := make(map[string]int, len(f.Tiles))

	for i, tile := range f.Tiles {
		path := fmt.Sprintf("tiles[%d]", i)

		if tile.ID == "" {
			r.AddError(Result{
				Level:    LevelCatalog,
				Message:  fmt.Sprintf("%s has an empty id", path),
				Path:     path + ".id",
				Expected: "non-empty string",
			})
		} else if first, dup := seen[tile.ID]; dup {
			r.AddError(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("duplicate tile id %q (first defined at tiles[%d]); lookups resolve to the first definition", tile.ID, first),
				Path:        path + ".id",
				ActualValue: tile.ID,
			})
		} else {
			seen[tile.ID] = i
		}

		if !validCategory(tile.Category) {
			r.AddError(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("%s (%s): unknown category %q", path, tile.ID, tile.Category),
				Path:        path + ".category",
				ActualValue: string(tile.Category),
				Suggestions: categoryNames(),
			})
		}
		if !validLayer(tile.Placement.Layer) {
			r.AddError(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("%s (%s): unknown layer %q", path, tile.ID, tile.Placement.Layer),
				Path:        path + ".placement.layer",
				ActualValue: string(tile.Placement.Layer),
				Suggestions: layerNames(),
			})
		}
		if tile.Footprint.W < 1 || tile.Footprint.H < 1 {
			r.AddError(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("%s (%s): footprint must be at least 1x1, got %dx%d", path, tile.ID, tile.Footprint.W, tile.Footprint.H),
				Path:        path + ".footprint",
				ActualValue: fmt.Sprintf("%dx%d", tile.Footprint.W, tile.Footprint.H),
				Expected:    ">= 1x1",
			})
		}
		if tile.Atlas.Col < 0 || tile.Atlas.Row < 0 {
			r.AddError(Result{
				Level:    LevelCatalog,
				Message:  fmt.Sprintf("%s (%s): atlas position must be non-negative, got col=%d row=%d", path, tile.ID, tile.Atlas.Col, tile.Atlas.Row),
				Path:     path + ".atlas",
				Expected: "col >= 0, row >= 0",
			})
		}

		validateConnectivity(i, tile, r)
	}
}

// Arity rules per connectivity type. A path runs straight through, so
// its two directions must be opposite; a corner turns, so they must
// not be.
func validateConnectivity(i int, tile catalog.TileDefinition, r *Report) {
	path := fmt.Sprintf("tiles[%d].connectivity", i)
	conn := tile.Connectivity

	if !validConnType(conn.Type) {
		r.AddError(Result{
			Level:       LevelCatalog,
			Message:     fmt.Sprintf("tiles[%d] (%s): unknown connectivity type %q", i, tile.ID, conn.Type),
			Path:        path + ".type",
			ActualValue: string(conn.Type),
			Suggestions: connTypeNames(),
		})
		return
	}

	set := geo.DirSet(0)
	for j, name := range conn.Connects {
		d, err := geo.ParseDirection(name)
		if err != nil {
			r.AddError(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("tiles[%d] (%s): %v", i, tile.ID, err),
				Path:        fmt.Sprintf("%s.connects[%d]", path, j),
				ActualValue: name,
				Suggestions: []string{"north", "south", "east", "west"},
			})
			return
		}
		if set.Has(d) {
			r.AddWarning(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("tiles[%d] (%s): direction %q listed twice", i, tile.ID, name),
				Path:        fmt.Sprintf("%s.connects[%d]", path, j),
				ActualValue: name,
			})
		}
		set = set.Add(d)
	}

	fail := func(expected string) {
		r.AddError(Result{
			Level:       LevelCatalog,
			Message:     fmt.Sprintf("tiles[%d] (%s): connectivity type %q requires %s, got %d directions", i, tile.ID, conn.Type, expected, set.Count()),
			Path:        path + ".connects",
			ActualValue: conn.Connects,
			Expected:    expected,
		})
	}

	switch conn.Type {
	case catalog.ConnNone, catalog.ConnEdge:
		if set.Count() != 0 {
			fail("no directions")
		}
	case catalog.ConnPath:
		if set.Count() != 2 {
			fail("exactly 2 opposite directions")
		} else if ds := set.Directions(); ds[0].Opposite() != ds[1] {
			fail("exactly 2 opposite directions")
		}
	case catalog.ConnCorner:
		if set.Count() != 2 {
			fail("exactly 2 adjacent directions")
		} else if ds := set.Directions(); ds[0].Opposite() == ds[1] {
			fail("exactly 2 adjacent directions")
		}
	case catalog.ConnIntersection:
		if set.Count() < 3 {
			fail("3 or 4 directions")
		}
	case catalog.ConnCap:
		if set.Count() != 1 {
			fail("exactly 1 direction")
		}
	}

	if conn.Type.Road() {
		if tile.Category != catalog.CategoryGround || tile.Placement.Layer != catalog.LayerGround {
			r.AddError(Result{
				Level:   LevelCatalog,
				Message: fmt.Sprintf("tiles[%d] (%s): road connectivity requires a ground-category, ground-layer tile", i, tile.ID),
				Path:    fmt.Sprintf("tiles[%d]", i),
			})
		}
		if tile.Footprint.W != 1 || tile.Footprint.H != 1 {
			r.AddError(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("tiles[%d] (%s): road tiles must have a 1x1 footprint", i, tile.ID),
				Path:        fmt.Sprintf("tiles[%d].footprint", i),
				ActualValue: fmt.Sprintf("%dx%d", tile.Footprint.W, tile.Footprint.H),
				Expected:    "1x1",
			})
		}
		if !tile.Placement.Walkable {
			r.AddWarning(Result{
				Level:   LevelCatalog,
				Message: fmt.Sprintf("tiles[%d] (%s): road tile is not walkable", i, tile.ID),
				Path:    fmt.Sprintf("tiles[%d].placement.walkable", i),
			})
		}
	}
}

// validateRoadSet checks the road tiles as a set: the matcher resolves
// by exact direction-set equality with first match winning, so shadowed
// duplicates and a missing east-west straight both degrade placement.
func validateRoadSet(f *catalog.File, r *Report) {
	firstBySet := make(map[geo.DirSet]string)
	roads := 0
	hasEastWest := false

	for i, tile := range f.Tiles {
		if !tile.Road() {
			continue
		}
		roads++

		set, err := geo.ParseDirSet(tile.Connectivity.Connects)
		if err != nil {
			continue
		}
		if first, ok := firstBySet[set]; ok {
			r.AddWarning(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("tiles[%d] (%s): connects {%s} already provided by %q; this tile is unreachable by direction matching", i, tile.ID, set, first),
				Path:        fmt.Sprintf("tiles[%d].connectivity.connects", i),
				ActualValue: tile.Connectivity.Connects,
			})
		} else {
			firstBySet[set] = tile.ID
		}
		if set == geo.NewDirSet(geo.East, geo.West) {
			hasEastWest = true
		}
	}

	if roads == 0 {
		r.AddInfo(Result{
			Level:   LevelCatalog,
			Message: "catalog has no road tiles; path placement will leave every cell unresolved",
			Path:    "tiles",
		})
		return
	}
	if !hasEastWest {
		r.AddWarning(Result{
			Level:    LevelCatalog,
			Message:  "no road tile connects exactly east+west; isolated path cells fall back to that set and will be unresolved",
			Path:     "tiles",
			Expected: "one path tile with connects [east, west]",
		})
	}
	r.AddInfo(Result{
		Level:   LevelCatalog,
		Message: fmt.Sprintf("%d road tiles across %d distinct direction sets", roads, len(firstBySet)),
		Path:    "tiles",
	})
}

func validCategory(c catalog.Category) bool {
	for _, v := range catalog.Categories {
		if c == v {
			return true
		}
	}
	return false
}

func validLayer(l catalog.Layer) bool {
	for _, v := range catalog.Layers {
		if l == v {
			return true
		}
	}
	return false
}

func validConnType(t catalog.ConnType) bool {
	for _, v := range catalog.ConnTypes {
		if t == v {
			return true
		}
	}
	return false
}

func categoryNames() []string {
	out := make([]string, len(catalog.Categories))
	for i, c := range catalog.Categories {
		out[i] = string(c)
	}
	return out
}

func layerNames() []string {
	out := make([]string, len(catalog.Layers))
	for i, l := range catalog.Layers {
		out[i] = string(l)
	}
	return out
}

func connTypeNames() []string {
	out := make([]string, len(catalog.ConnTypes))
	for i, t := range catalog.ConnTypes {
		out[i] = string(t)
	}
	return out
}
