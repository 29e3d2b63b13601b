package model

import "math"

// Point represents a 2D point in page space (origin top-left, y grows down).
type Point struct {
	X, Y float64
}

// Rect represents an axis-aligned rectangle in page space.
type Rect struct {
	X      float64 `json:"x"` // Left
	Y      float64 `json:"y"` // Top
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a rectangle from its top-left corner and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFromCorners creates a rectangle from two opposite corners.
func RectFromCorners(x1, y1, x2, y2 float64) Rect {
	x := math.Min(x1, x2)
	y := math.Min(y1, y2)
	return Rect{X: x, Y: y, Width: math.Abs(x2 - x1), Height: math.Abs(y2 - y1)}
}

// Left returns the left edge X coordinate.
func (r Rect) Left() float64 { return r.X }

// Right returns the right edge X coordinate.
func (r Rect) Right() float64 { return r.X + r.Width }

// Top returns the top edge Y coordinate.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the bottom edge Y coordinate.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// IsEmpty returns true if the rectangle has no positive area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects reports whether two rectangles share positive-area overlap.
// Edge-touching and degenerate rectangles do not intersect.
func (r Rect) Intersects(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	if r.Left() >= other.Right() || r.Right() <= other.Left() {
		return false
	}
	if r.Top() >= other.Bottom() || r.Bottom() <= other.Top() {
		return false
	}
	return true
}

// Intersection returns the overlapping region of two rectangles.
// If the rectangles do not overlap the result is empty.
func (r Rect) Intersection(other Rect) Rect {
	x1 := math.Max(r.Left(), other.Left())
	y1 := math.Max(r.Top(), other.Top())
	x2 := math.Min(r.Right(), other.Right())
	y2 := math.Min(r.Bottom(), other.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return RectFromCorners(x1, y1, x2, y2)
}

// IoU computes the intersection-over-union of two rectangles.
// Returns 0 unless the rectangles share positive-area overlap.
func (r Rect) IoU(other Rect) float64 {
	dx := math.Min(r.Right(), other.Right()) - math.Max(r.Left(), other.Left())
	dy := math.Min(r.Bottom(), other.Bottom()) - math.Max(r.Top(), other.Top())
	if dx <= 0 || dy <= 0 {
		return 0
	}
	inter := dx * dy
	union := r.Area() + other.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// coverageRatio is the fraction of a rectangle's own area that must be
// covered by another rectangle for ContainedIn to hold.
const coverageRatio = 0.3

// ContainedIn reports whether r is contained in other. This is a coverage
// test, not strict geometric containment: it holds when the rectangles
// overlap and more than 30% of r's area lies inside other, so a rectangle
// mostly inside a larger one qualifies even if a sliver pokes out. The
// relation is not symmetric.
func (r Rect) ContainedIn(other Rect) bool {
	if r.Area() <= 0 {
		return false
	}
	return r.IoU(other) > 0 && r.Intersection(other).Area()/r.Area() > coverageRatio
}
