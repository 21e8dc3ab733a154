package layout

import "math"

// Point is a position in layout units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) scale(k float64) Point { return Point{p.X * k, p.Y * k} }
func (p Point) norm() float64 { return math.Hypot(p.X, p.Y) }

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 { return p.sub(q).norm() }

// BoundingBox is the axis-aligned rectangle containing all points.
type BoundingBox struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Bounds returns the bounding box of pts. The box of no points is zero.
func Bounds(pts []Point) BoundingBox {
	if len(pts) == 0 {
		return BoundingBox{}
	}
	b := BoundingBox{MinX: pts[0].X, MaxX: pts[0].X, MinY: pts[0].Y, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// Width returns the horizontal extent.
func (b BoundingBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// Area returns Width × Height.
func (b BoundingBox) Area() float64 { return b.Width() * b.Height() }

// Pad grows the box by p on every side.
func (b BoundingBox) Pad(p float64) BoundingBox {
	return BoundingBox{MinX: b.MinX - p, MinY: b.MinY - p, MaxX: b.MaxX + p, MaxY: b.MaxY + p}
}

// Center returns the middle of the box.
func (b BoundingBox) Center() Point {
	return Point{(b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2}
}
