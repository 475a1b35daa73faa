// Package geom provides the integer rectangle primitives the layout engine
// and spatial navigator build on. Coordinates are virtual-screen pixels.
package geom

// Rect is an integer pixel rectangle in virtual-screen coordinates.
type Rect struct {
	X, Y, W, H int
}

// CenterX returns the integer horizontal midpoint.
func (r Rect) CenterX() int { return r.X + r.W/2 }

// CenterY returns the integer vertical midpoint.
func (r Rect) CenterY() int { return r.Y + r.H/2 }

// Right returns the x coordinate just past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the y coordinate just past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// VerticalOverlap returns the length of vertical overlap between r and o,
// zero when they do not overlap on the y axis.
func (r Rect) VerticalOverlap(o Rect) int {
	ov := min(r.Bottom(), o.Bottom()) - max(r.Y, o.Y)
	if ov < 0 {
		return 0
	}
	return ov
}

// HorizontalOverlap returns the length of horizontal overlap between r and o.
func (r Rect) HorizontalOverlap(o Rect) int {
	ov := min(r.Right(), o.Right()) - max(r.X, o.X)
	if ov < 0 {
		return 0
	}
	return ov
}

// Inset shrinks the rectangle by n on every side, clamping each dimension
// to at least 1.
func (r Rect) Inset(n int) Rect {
	out := Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
	if out.W < 1 {
		out.W = 1
	}
	if out.H < 1 {
		out.H = 1
	}
	return out
}

// Contains reports whether o lies entirely within r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Overlaps reports whether r and o share any pixel area.
func (r Rect) Overlaps(o Rect) bool {
	return r.HorizontalOverlap(o) > 0 && r.VerticalOverlap(o) > 0
}
