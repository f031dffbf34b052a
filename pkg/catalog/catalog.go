package catalog

import (
	"fmt"
	"strings"

	"github.com/wozhendeai/generative-town/pkg/geo"
)

// Ref is a typed handle to a catalog entry, valid for the lifetime of
// the Catalog that produced it. Algorithms operate on refs; string ids
// are resolved once at the boundary.
type Ref int

// Catalog is an interned, read-only tile catalog. Entry order is
// preserved from the source file: connectivity ties break on the
// first entry, deterministically.
type Catalog struct {
	tileSize int
	theme    string
	tiles    []TileDefinition
	byID     map[string]Ref
	connects []geo.DirSet
}

// New interns a parsed catalog file. Direction names must parse;
// everything else is accepted here and judged by schema validation.
// With duplicate ids the earliest entry wins lookup, matching the
// first-match rule used everywhere else.
func New(f *File) (*Catalog, error) {
	c := &Catalog{
		tileSize: f.TileSize,
		theme:    f.Theme,
		tiles:    f.Tiles,
		byID:     make(map[string]Ref, len(f.Tiles)),
		connects: make([]geo.DirSet, len(f.Tiles)),
	}
	for i, def := range f.Tiles {
		set, err := geo.ParseDirSet(def.Connectivity.Connects)
		if err != nil {
			return nil, fmt.Errorf("tile %q: %w", def.ID, err)
		}
		c.connects[i] = set
		// Connects is never null in the serialized contract.
		if def.Connectivity.Connects == nil {
			c.tiles[i].Connectivity.Connects = []string{}
		}
		if _, exists := c.byID[def.ID]; !exists {
			c.byID[def.ID] = Ref(i)
		}
	}
	return c, nil
}

// TileSize returns the source atlas resolution in pixels per grid cell.
func (c *Catalog) TileSize() int { return c.tileSize }

// Theme returns the catalog's theme line, if any.
func (c *Catalog) Theme() string { return c.theme }

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.tiles) }

// Tiles returns the entries in catalog order. The slice is shared;
// callers must not modify it.
func (c *Catalog) Tiles() []TileDefinition { return c.tiles }

// Tile returns the definition behind a ref.
func (c *Catalog) Tile(ref Ref) TileDefinition { return c.tiles[ref] }

// DirSet returns the interned connectivity direction set for a ref.
func (c *Catalog) DirSet(ref Ref) geo.DirSet { return c.connects[ref] }

// Lookup resolves a tile id to its ref.
func (c *Catalog) Lookup(id string) (Ref, bool) {
	ref, ok := c.byID[id]
	return ref, ok
}

// Resolve resolves a tile id, returning an UnknownTileError with
// nearby ids when it is absent.
func (c *Catalog) Resolve(id string) (Ref, error) {
	if ref, ok := c.byID[id]; ok {
		return ref, nil
	}
	return 0, &UnknownTileError{ID: id, Suggestions: c.Suggest(id)}
}

// Suggest returns up to three catalog ids close to the given id, in
// catalog order. Substring hits rank before edit-distance hits.
func (c *Catalog) Suggest(id string) []string {
	const limit = 3
	needle := strings.ToLower(id)

	var out []string
	for _, d := range c.tiles {
		if len(out) >= limit {
			return out
		}
		if strings.Contains(strings.ToLower(d.ID), needle) || strings.Contains(needle, strings.ToLower(d.ID)) {
			out = append(out, d.ID)
		}
	}
	for _, d := range c.tiles {
		if len(out) >= limit {
			return out
		}
		if contains(out, d.ID) {
			continue
		}
		if editDistance(needle, strings.ToLower(d.ID)) <= 2 {
			out = append(out, d.ID)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// editDistance is the Levenshtein distance between a and b, two rows only.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// UnknownTileError reports an id with no catalog entry.
type UnknownTileError struct {
	ID          string
	Suggestions []string
}

func (e *UnknownTileError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("catalog: unknown tile id %q", e.ID)
	}
	return fmt.Sprintf("catalog: unknown tile id %q (close matches: %s)",
		e.ID, strings.Join(e.Suggestions, ", "))
}
