package geo

import (
	"math"

	"github.com/jakecoffman/cp"
)

// ShapeKind identifies a panel outline. The set is closed: every consumer
// switches exhaustively over these four values.
type ShapeKind int

const (
	Rectangle ShapeKind = iota
	Triangle
	RightTriangle
	Polygon
)

func (k ShapeKind) String() string {
	switch k {
	case Rectangle:
		return "rectangle"
	case Triangle:
		return "triangle"
	case RightTriangle:
		return "right-triangle"
	case Polygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// degenerateArea is the area below which a shape is treated as zero-area:
// it never matches a hit-test and never acts as a snap target.
const degenerateArea = 1e-9

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// NormalizeDegrees wraps an angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// RotateAbout rotates p around pivot by deg degrees (screen orientation:
// positive is clockwise with Y growing downward).
func RotateAbout(p, pivot cp.Vector, deg float64) cp.Vector {
	if deg == 0 {
		return p
	}
	rad := Radians(deg)
	rot := cp.Vector{X: math.Cos(rad), Y: math.Sin(rad)}
	return pivot.Add(p.Sub(pivot).Rotate(rot))
}

// RectVertices returns the four corners of a width x length box whose
// unrotated top-left sits at pos, rotated by deg around the box center.
// Order: NW, NE, SE, SW.
func RectVertices(pos cp.Vector, w, l, deg float64) []cp.Vector {
	c := cp.Vector{X: pos.X + w/2, Y: pos.Y + l/2}
	verts := []cp.Vector{
		pos,
		{X: pos.X + w, Y: pos.Y},
		{X: pos.X + w, Y: pos.Y + l},
		{X: pos.X, Y: pos.Y + l},
	}
	for i, v := range verts {
		verts[i] = RotateAbout(v, c, deg)
	}
	return verts
}

// TriangleVertices returns an isoceles triangle inscribed in the box at pos:
// apex at the top-center, base along the bottom edge. Rotated around the box
// center like RectVertices.
func TriangleVertices(pos cp.Vector, w, l, deg float64) []cp.Vector {
	c := cp.Vector{X: pos.X + w/2, Y: pos.Y + l/2}
	verts := []cp.Vector{
		{X: pos.X + w/2, Y: pos.Y},
		{X: pos.X + w, Y: pos.Y + l},
		{X: pos.X, Y: pos.Y + l},
	}
	for i, v := range verts {
		verts[i] = RotateAbout(v, c, deg)
	}
	return verts
}

// RightTriangleVertices returns a right triangle with the right angle at the
// box's bottom-left corner, rotated around the box center.
func RightTriangleVertices(pos cp.Vector, w, l, deg float64) []cp.Vector {
	c := cp.Vector{X: pos.X + w/2, Y: pos.Y + l/2}
	verts := []cp.Vector{
		pos,
		{X: pos.X + w, Y: pos.Y + l},
		{X: pos.X, Y: pos.Y + l},
	}
	for i, v := range verts {
		verts[i] = RotateAbout(v, c, deg)
	}
	return verts
}

// BoundsOf returns the axis-aligned bounding box of verts. L/B hold the
// minimum X/Y and R/T the maximum (screen orientation, Y down).
func BoundsOf(verts []cp.Vector) cp.BB {
	if len(verts) == 0 {
		return cp.BB{}
	}
	bb := cp.BB{L: verts[0].X, B: verts[0].Y, R: verts[0].X, T: verts[0].Y}
	for _, v := range verts[1:] {
		bb.L = math.Min(bb.L, v.X)
		bb.B = math.Min(bb.B, v.Y)
		bb.R = math.Max(bb.R, v.X)
		bb.T = math.Max(bb.T, v.Y)
	}
	return bb
}

// PolygonArea returns the absolute shoelace area of the ring.
func PolygonArea(verts []cp.Vector) float64 {
	if len(verts) < 3 {
		return 0
	}
	sum := 0.0
	for i, a := range verts {
		b := verts[(i+1)%len(verts)]
		sum += a.Cross(b)
	}
	return math.Abs(sum) / 2
}
