package catalog

// Category classifies what a tile represents on the map.
type Category string

const (
	CategoryGround   Category = "ground"
	CategoryBuilding Category = "building"
	CategoryProp     Category = "prop"
	CategoryWall     Category = "wall"
	CategoryMarker   Category = "marker"
)

// Categories lists all valid categories.
var Categories = []Category{
	CategoryGround, CategoryBuilding, CategoryProp, CategoryWall, CategoryMarker,
}

// Layer identifies which grid layer a tile is placed on.
type Layer string

const (
	LayerGround Layer = "ground"
	LayerObject Layer = "object"
)

// Layers lists both grid layers in compositing order (ground first).
var Layers = []Layer{LayerGround, LayerObject}

// ConnType classifies how a tile joins a directional network.
type ConnType string

const (
	ConnNone         ConnType = "none"
	ConnPath         ConnType = "path"
	ConnEdge         ConnType = "edge"
	ConnCorner       ConnType = "corner"
	ConnIntersection ConnType = "intersection"
	ConnCap          ConnType = "cap"
)

// ConnTypes lists all valid connectivity types.
var ConnTypes = []ConnType{
	ConnNone, ConnPath, ConnEdge, ConnCorner, ConnIntersection, ConnCap,
}

// Road reports whether the connectivity type participates in the road
// network (path, corner, intersection, cap).
func (t ConnType) Road() bool {
	switch t {
	case ConnPath, ConnCorner, ConnIntersection, ConnCap:
		return true
	}
	return false
}

// Footprint is the width x height, in grid cells, that a placement occupies.
type Footprint struct {
	W int `yaml:"w" json:"w"`
	H int `yaml:"h" json:"h"`
}

// Placement is a tile's placement policy.
type Placement struct {
	Layer    Layer  `yaml:"layer" json:"layer"`
	Walkable bool   `yaml:"walkable" json:"walkable"`
	Anchor   string `yaml:"anchor,omitempty" json:"anchor,omitempty"`
}

// Connectivity describes the directional network behavior of a tile.
// Connects holds lowercase direction names as written in the catalog
// file; the Catalog interns them into a bitmask at load time.
type Connectivity struct {
	Type     ConnType `yaml:"type" json:"type"`
	Connects []string `yaml:"connects" json:"connects"`
}

// AtlasPos locates a tile in the source atlas, in tile units.
type AtlasPos struct {
	Col int `yaml:"col" json:"col"`
	Row int `yaml:"row" json:"row"`
}

// TileDefinition is a single catalog entry. Name and Description are
// authored upstream and treated as opaque here.
type TileDefinition struct {
	ID           string       `yaml:"id" json:"id"`
	Name         string       `yaml:"name,omitempty" json:"name,omitempty"`
	Description  string       `yaml:"description,omitempty" json:"description,omitempty"`
	Category     Category     `yaml:"category" json:"category"`
	Footprint    Footprint    `yaml:"footprint" json:"footprint"`
	Placement    Placement    `yaml:"placement" json:"placement"`
	Connectivity Connectivity `yaml:"connectivity" json:"connectivity"`
	Atlas        AtlasPos     `yaml:"atlas" json:"atlas"`
}

// Road reports whether this definition is a road tile: ground category
// with a network-forming connectivity type.
func (d TileDefinition) Road() bool {
	return d.Category == CategoryGround && d.Connectivity.Type.Road()
}

// File is the on-disk catalog document.
type File struct {
	TileSize int              `yaml:"tile_size" json:"tile_size"`
	Theme    string           `yaml:"theme,omitempty" json:"theme,omitempty"`
	Tiles    []TileDefinition `yaml:"tiles" json:"tiles"`
}
