package geo

// Rect is an inclusive, axis-aligned bounding box over grid cells.
type Rect struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// RectAt returns the degenerate box covering only p.
func RectAt(p Point) Rect {
	return Rect{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
}

// Extend returns the smallest box covering both r and p.
func (r Rect) Extend(p Point) Rect {
	if p.X < r.MinX {
		r.MinX = p.X
	}
	if p.X > r.MaxX {
		r.MaxX = p.X
	}
	if p.Y < r.MinY {
		r.MinY = p.Y
	}
	if p.Y > r.MaxY {
		r.MaxY = p.Y
	}
	return r
}

// Width returns the number of columns the box spans.
func (r Rect) Width() int {
	return r.MaxX - r.MinX + 1
}

// Height returns the number of rows the box spans.
func (r Rect) Height() int {
	return r.MaxY - r.MinY + 1
}

// Contains reports whether p lies inside the box.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}
