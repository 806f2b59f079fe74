// Package panel holds the canonical panel entities and the Store that owns
// them. Every geometry mutation funnels through Store.Update, which clamps
// to the site container and the minimum panel size before committing, so
// invariants hold before any observer sees new state.
package panel

import (
	"github.com/jakecoffman/cp"

	"panelcad/geo"
)

// MinSize is the smallest width/length (feet) a panel may reach.
const MinSize = 1.0

// Site describes the container all panels must stay inside.
type Site struct {
	Width       float64
	Height      float64
	GridSize    float64
	SnapEnabled bool
	Units       string
}

// Panel is a placed geosynthetic panel in world coordinates (feet).
// Position is the top-left of the unrotated bounding box; Rotation is in
// degrees [0,360) around the shape center. For polygons, Corners (relative
// to Position) are authoritative and Width/Length mirror their extents.
type Panel struct {
	ID          string
	RollNumber  string
	PanelNumber string
	Shape       geo.ShapeKind
	Position    cp.Vector
	Width       float64
	Length      float64
	Rotation    float64
	Corners     []cp.Vector
}

// Center returns the rotation pivot: the center of the bounding box.
func (p *Panel) Center() cp.Vector {
	return cp.Vector{X: p.Position.X + p.Width/2, Y: p.Position.Y + p.Length/2}
}

// Vertices returns the world-space outline, rotated about the center.
func (p *Panel) Vertices() []cp.Vector {
	switch p.Shape {
	case geo.Triangle:
		return geo.TriangleVertices(p.Position, p.Width, p.Length, p.Rotation)
	case geo.RightTriangle:
		return geo.RightTriangleVertices(p.Position, p.Width, p.Length, p.Rotation)
	case geo.Polygon:
		c := p.Center()
		verts := make([]cp.Vector, len(p.Corners))
		for i, rel := range p.Corners {
			verts[i] = geo.RotateAbout(p.Position.Add(rel), c, p.Rotation)
		}
		return verts
	default:
		return geo.RectVertices(p.Position, p.Width, p.Length, p.Rotation)
	}
}

// Bounds returns the axis-aligned bounding box of the current outline.
func (p *Panel) Bounds() cp.BB {
	return geo.BoundsOf(p.Vertices())
}

// Degenerate reports whether the panel has (near) zero area. Degenerate
// panels never match hit-tests and are skipped as snap targets.
func (p *Panel) Degenerate() bool {
	return geo.PolygonArea(p.Vertices()) == 0
}

// Contains runs the shape-specific point-in-shape test.
func (p *Panel) Contains(pt cp.Vector) bool {
	switch p.Shape {
	case geo.Rectangle:
		return geo.PointInRect(pt, p.Position, p.Width, p.Length, p.Rotation)
	case geo.Triangle, geo.RightTriangle:
		v := p.Vertices()
		if len(v) != 3 {
			return false
		}
		return geo.PointInTriangle(pt, v[0], v[1], v[2])
	case geo.Polygon:
		return geo.PointInPolygon(pt, p.Vertices())
	default:
		return false
	}
}
