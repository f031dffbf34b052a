package catalog

import "github.com/wozhendeai/generative-town/pkg/geo"

// FindExactMatch returns the first road tile (ground category,
// network-forming connectivity type) whose direction set equals
// required exactly: same cardinality, same members. The scan runs in
// catalog order, so definitions sharing a descriptor resolve to the
// earliest entry. A miss is an expected, recoverable outcome.
func (c *Catalog) FindExactMatch(required geo.DirSet) (Ref, bool) {
	for i := range c.tiles {
		if !c.tiles[i].Road() {
			continue
		}
		if c.connects[i] == required {
			return Ref(i), true
		}
	}
	return 0, false
}

// Upgrade resolves the tile for current's direction set extended by
// dir. Returns false when the direction is already present (nothing
// to do) or when no catalog entry matches the widened set.
func (c *Catalog) Upgrade(current Ref, dir geo.Direction) (Ref, bool) {
	have := c.connects[current]
	want := have.Add(dir)
	if want == have {
		return 0, false
	}
	return c.FindExactMatch(want)
}
