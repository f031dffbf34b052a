package catalog

import (
	"errors"
	"testing"

	"github.com/wozhendeai/generative-town/pkg/geo"
)

func TestLoadProject(t *testing.T) {
	c, err := LoadProject("testdata")
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	if c.TileSize() != 16 {
		t.Errorf("tile_size = %d, want 16", c.TileSize())
	}
	if c.Theme() != "riverside hamlet" {
		t.Errorf("theme = %q, want %q", c.Theme(), "riverside hamlet")
	}
	if c.Len() != 23 {
		t.Errorf("tile count = %d, want 23", c.Len())
	}

	ref, ok := c.Lookup("road_ew")
	if !ok {
		t.Fatal("missing road_ew")
	}
	def := c.Tile(ref)
	if def.Category != CategoryGround {
		t.Errorf("category = %q, want ground", def.Category)
	}
	if def.Connectivity.Type != ConnPath {
		t.Errorf("connectivity type = %q, want path", def.Connectivity.Type)
	}
	if c.DirSet(ref) != geo.NewDirSet(geo.East, geo.West) {
		t.Errorf("interned set = %s, want {east,west}", c.DirSet(ref))
	}
	if !def.Road() {
		t.Error("road_ew should be a road tile")
	}

	// Catalog order is preserved: grass is the first entry.
	if c.Tiles()[0].ID != "grass" {
		t.Errorf("first entry = %q, want grass", c.Tiles()[0].ID)
	}

	// Object-layer building keeps its footprint and anchor.
	cRef, ok := c.Lookup("cottage")
	if !ok {
		t.Fatal("missing cottage")
	}
	cottage := c.Tile(cRef)
	if cottage.Footprint.W != 2 || cottage.Footprint.H != 2 {
		t.Errorf("cottage footprint = %dx%d, want 2x2", cottage.Footprint.W, cottage.Footprint.H)
	}
	if cottage.Placement.Layer != LayerObject {
		t.Errorf("cottage layer = %q, want object", cottage.Placement.Layer)
	}
	if cottage.Road() {
		t.Error("cottage should not be a road tile")
	}
}

func TestLoadProjectMissing(t *testing.T) {
	_, err := LoadProject("/nonexistent/path")
	if err == nil {
		t.Error("expected error for missing project directory")
	}
}

func TestNewRejectsBadDirection(t *testing.T) {
	f := &File{
		TileSize: 16,
		Tiles: []TileDefinition{{
			ID:           "bad",
			Category:     CategoryGround,
			Footprint:    Footprint{W: 1, H: 1},
			Placement:    Placement{Layer: LayerGround},
			Connectivity: Connectivity{Type: ConnPath, Connects: []string{"east", "sideways"}},
		}},
	}
	if _, err := New(f); err == nil {
		t.Error("expected error for unparseable direction name")
	}
}

func TestDuplicateIDFirstWins(t *testing.T) {
	f := &File{
		TileSize: 16,
		Tiles: []TileDefinition{
			{ID: "twin", Category: CategoryGround, Footprint: Footprint{W: 1, H: 1},
				Placement: Placement{Layer: LayerGround}, Atlas: AtlasPos{Col: 0, Row: 0}},
			{ID: "twin", Category: CategoryProp, Footprint: Footprint{W: 1, H: 1},
				Placement: Placement{Layer: LayerObject}, Atlas: AtlasPos{Col: 1, Row: 0}},
		},
	}
	c, err := New(f)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ref, ok := c.Lookup("twin")
	if !ok {
		t.Fatal("missing twin")
	}
	if c.Tile(ref).Category != CategoryGround {
		t.Error("duplicate id should resolve to the earliest entry")
	}
}

func TestResolveUnknownTile(t *testing.T) {
	c, err := LoadProject("testdata")
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	_, err = c.Resolve("road")
	if err == nil {
		t.Fatal("expected error for unknown id")
	}
	var unknown *UnknownTileError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownTileError, got %T", err)
	}
	if unknown.ID != "road" {
		t.Errorf("error id = %q, want road", unknown.ID)
	}
	if len(unknown.Suggestions) == 0 {
		t.Error("expected suggestions for a near-miss id")
	}
	for _, s := range unknown.Suggestions {
		if _, ok := c.Lookup(s); !ok {
			t.Errorf("suggestion %q is not a catalog id", s)
		}
	}
}

func TestSuggestEditDistance(t *testing.T) {
	c, err := LoadProject("testdata")
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	got := c.Suggest("gras")
	if len(got) == 0 || got[0] != "grass" {
		t.Errorf("Suggest(gras) = %v, want grass first", got)
	}
}
