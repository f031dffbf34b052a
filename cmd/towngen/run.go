package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/wozhendeai/generative-town/internal/server"
	"github.com/wozhendeai/generative-town/internal/store"
	"github.com/wozhendeai/generative-town/internal/telemetry"
	"github.com/wozhendeai/generative-town/internal/ui"
	"github.com/wozhendeai/generative-town/pkg/analytics"
	"github.com/wozhendeai/generative-town/pkg/catalog"
	"github.com/wozhendeai/generative-town/pkg/geo"
	"github.com/wozhendeai/generative-town/pkg/grid"
	"github.com/wozhendeai/generative-town/pkg/network"
	"github.com/wozhendeai/generative-town/pkg/render"
	"github.com/wozhendeai/generative-town/pkg/roads"
	"github.com/wozhendeai/generative-town/pkg/validation"
)

// A project directory bundles catalog.yaml and atlas.png as inputs;
// map.json and maps.json are written next to them.
const (
	atlasFile = "atlas.png"
	mapFile   = "map.json"
	storeFile = "maps.json"
)

// loadAndValidate loads the project catalog file and runs schema
// validation. The catalog is interned only when the report is clean.
func loadAndValidate(projectPath string) (*catalog.Catalog, *validation.Report, error) {
	f, err := catalog.LoadFile(filepath.Join(projectPath, catalog.ProjectCatalogFile))
	if err != nil {
		return nil, nil, fmt.Errorf("loading catalog: %w", err)
	}
	report := validation.ValidateCatalog(f)
	if !report.Valid {
		return nil, report, nil
	}
	cat, err := catalog.New(f)
	if err != nil {
		return nil, nil, fmt.Errorf("interning catalog: %w", err)
	}
	return cat, report, nil
}

// loadProject is loadAndValidate for commands that refuse to run
// against an invalid catalog.
func loadProject(projectPath string) (*catalog.Catalog, *validation.Report, error) {
	cat, report, err := loadAndValidate(projectPath)
	if err != nil {
		return nil, nil, err
	}
	if !report.Valid {
		printValidationReport(report)
		return nil, nil, fmt.Errorf("catalog has validation errors")
	}
	return cat, report, nil
}

func loadMap(cat *catalog.Catalog, projectPath string) (*grid.Grid, error) {
	path := filepath.Join(projectPath, mapFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no saved map at %s (run generate first): %w", path, err)
		}
		return nil, fmt.Errorf("reading map: %w", err)
	}

	var snap grid.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing map: %w", err)
	}
	g, err := grid.Restore(cat, &snap)
	if err != nil {
		return nil, fmt.Errorf("restoring map: %w", err)
	}
	return g, nil
}

func saveMap(g *grid.Grid, projectPath string) error {
	data, err := json.MarshalIndent(g.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding map: %w", err)
	}
	if err := os.WriteFile(filepath.Join(projectPath, mapFile), data, 0644); err != nil {
		return fmt.Errorf("writing map: %w", err)
	}
	return nil
}

func parsePoint(s string) (geo.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geo.Point{}, fmt.Errorf("expected x,y coordinates, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return geo.Point{}, fmt.Errorf("bad x coordinate in %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return geo.Point{}, fmt.Errorf("bad y coordinate in %q: %w", s, err)
	}
	return geo.Pt(x, y), nil
}

func runValidate(projectPath string) error {
	_, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runGenerate(projectPath string, width, height int) error {
	cat, _, err := loadProject(projectPath)
	if err != nil {
		return err
	}
	if width < 12 || height < 10 {
		return fmt.Errorf("demo map needs at least 12x10 tiles, got %dx%d", width, height)
	}

	g, err := grid.New(cat, width, height)
	if err != nil {
		return err
	}

	// Ground fill with the first plain walkable ground tile.
	base, ok := baseGroundTile(cat)
	if !ok {
		return fmt.Errorf("catalog has no plain walkable ground tile to fill with")
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if err := g.SetTile(geo.Pt(x, y), base, catalog.LayerGround); err != nil {
				return err
			}
		}
	}

	// Road ring two tiles in from the border, plus a spur from the top
	// edge toward the center. Segments chain, so the connection gate
	// holds throughout.
	sess := roads.NewSession()
	sess.MaxPathTiles = 0
	left, top := 2, 2
	right, bottom := width-3, height-3
	segments := []struct{ from, to geo.Point }{
		{geo.Pt(left, top), geo.Pt(right, top)},
		{geo.Pt(right, top), geo.Pt(right, bottom)},
		{geo.Pt(right, bottom), geo.Pt(left, bottom)},
		{geo.Pt(left, bottom), geo.Pt(left, top)},
		{geo.Pt(width/2, top), geo.Pt(width/2, height/2)},
	}
	for _, seg := range segments {
		if _, err := sess.Place(g, seg.from, seg.to); err != nil {
			return fmt.Errorf("placing demo roads: %w", err)
		}
	}

	// A building and a prop so the object layer has something on it.
	if err := placeFirstOfCategory(g, cat, catalog.CategoryBuilding, geo.Pt(left+2, top+2)); err != nil {
		return err
	}
	if err := placeFirstOfCategory(g, cat, catalog.CategoryProp, geo.Pt(right-2, bottom-2)); err != nil {
		return err
	}

	if err := saveMap(g, projectPath); err != nil {
		return err
	}

	return printJSON(map[string]any{
		"map":     filepath.Join(projectPath, mapFile),
		"stats":   analytics.Collect(g),
		"network": network.Validate(g),
	})
}

// baseGroundTile picks the fill tile for generated maps: the first
// catalog entry that is plain walkable ground.
func baseGroundTile(cat *catalog.Catalog) (string, bool) {
	for _, def := range cat.Tiles() {
		if def.Category == catalog.CategoryGround && !def.Road() && def.Placement.Walkable {
			return def.ID, true
		}
	}
	return "", false
}

// placeFirstOfCategory places the first catalog tile of the category
// at the given point. Catalogs without the category are fine; the
// demo map just stays plainer.
func placeFirstOfCategory(g *grid.Grid, cat *catalog.Catalog, c catalog.Category, at geo.Point) error {
	for _, def := range cat.Tiles() {
		if def.Category == c {
			return g.SetTile(at, def.ID, def.Placement.Layer)
		}
	}
	return nil
}

func runPlace(projectPath, fromStr, toStr string) error {
	cat, _, err := loadProject(projectPath)
	if err != nil {
		return err
	}
	from, err := parsePoint(fromStr)
	if err != nil {
		return err
	}
	to, err := parsePoint(toStr)
	if err != nil {
		return err
	}

	g, err := loadMap(cat, projectPath)
	if err != nil {
		return err
	}

	sess := roads.NewSession()
	res, err := sess.Place(g, from, to)
	if err != nil {
		return err
	}
	if err := saveMap(g, projectPath); err != nil {
		return err
	}
	return printJSON(res)
}

func runNetwork(projectPath string) error {
	cat, _, err := loadProject(projectPath)
	if err != nil {
		return err
	}
	g, err := loadMap(cat, projectPath)
	if err != nil {
		return err
	}

	report := network.Validate(g)
	if err := printJSON(report); err != nil {
		return err
	}
	if !report.Connected {
		os.Exit(1)
	}
	return nil
}

func runRepair(projectPath string) error {
	cat, _, err := loadProject(projectPath)
	if err != nil {
		return err
	}
	g, err := loadMap(cat, projectPath)
	if err != nil {
		return err
	}

	res := network.Repair(g)
	if err := saveMap(g, projectPath); err != nil {
		return err
	}
	if err := printJSON(res); err != nil {
		return err
	}
	if !res.Success {
		os.Exit(1)
	}
	return nil
}

func runRender(projectPath, out string, scale int, format, background string) error {
	cat, _, err := loadProject(projectPath)
	if err != nil {
		return err
	}
	g, err := loadMap(cat, projectPath)
	if err != nil {
		return err
	}
	atlas, err := render.LoadAtlas(filepath.Join(projectPath, atlasFile), cat.TileSize())
	if err != nil {
		return fmt.Errorf("loading atlas: %w", err)
	}

	opts := render.DefaultOptions()
	opts.Scale = scale
	opts.Format = render.Format(format)
	opts.Background = background

	res, err := render.Render(g, atlas, opts)
	if err != nil {
		return err
	}
	if out == "" {
		out = filepath.Join(projectPath, "map."+format)
	}
	if err := render.WriteFile(out, res.Image, opts.Format); err != nil {
		return err
	}

	return printJSON(map[string]any{
		"written":           out,
		"width":             res.Width,
		"height":            res.Height,
		"ground_tiles":      res.GroundTiles,
		"object_tiles":      res.ObjectTiles,
		"sprites_extracted": res.SpritesExtracted,
	})
}

func runDump(projectPath string) error {
	cat, _, err := loadProject(projectPath)
	if err != nil {
		return err
	}
	g, err := loadMap(cat, projectPath)
	if err != nil {
		return err
	}

	fmt.Printf("ground:\n%s\nobject:\n%s", g.Dump(catalog.LayerGround), g.Dump(catalog.LayerObject))
	return nil
}

func runStats(projectPath string) error {
	cat, _, err := loadProject(projectPath)
	if err != nil {
		return err
	}
	g, err := loadMap(cat, projectPath)
	if err != nil {
		return err
	}
	return printJSON(analytics.Collect(g))
}

func runView(projectPath string) error {
	cat, _, err := loadProject(projectPath)
	if err != nil {
		return err
	}
	g, err := loadMap(cat, projectPath)
	if err != nil {
		return err
	}

	viewer, err := ui.NewViewer(g)
	if err != nil {
		return err
	}
	return viewer.Run()
}

func runServe(projectPath string, port, width, height int) error {
	// .env may carry OTLP exporter settings; absence is fine.
	if err := godotenv.Load(); err != nil {
		log.Printf("note: .env file not loaded: %v", err)
	}

	ctx := context.Background()
	tracer := telemetry.NoopTracer()
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("telemetry setup failed: %v; continuing without it", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("telemetry shutdown: %v", err)
				}
			}()
			tracer = telemetry.Tracer("server")
		}
	}

	cat, report, err := loadProject(projectPath)
	if err != nil {
		return err
	}

	g, err := loadMap(cat, projectPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		g, err = grid.New(cat, width, height)
		if err != nil {
			return err
		}
		log.Printf("no saved map; starting with a fresh %dx%d grid", width, height)
	}

	var atlas *render.Atlas
	atlasPath := filepath.Join(projectPath, atlasFile)
	if _, err := os.Stat(atlasPath); err == nil {
		atlas, err = render.LoadAtlas(atlasPath, cat.TileSize())
		if err != nil {
			return fmt.Errorf("loading atlas: %w", err)
		}
	} else {
		log.Printf("no %s in project; render endpoint disabled", atlasFile)
	}

	storage, err := store.NewJSONStore(filepath.Join(projectPath, storeFile))
	if err != nil {
		return fmt.Errorf("opening map store: %w", err)
	}
	defer storage.Close()

	srv := server.New(server.Config{
		Port:          port,
		Catalog:       cat,
		CatalogReport: report,
		Grid:          g,
		Atlas:         atlas,
		Storage:       storage,
		Tracer:        tracer,
	})
	return srv.Start()
}
