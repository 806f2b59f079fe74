package geo

import "github.com/jakecoffman/cp"

// PointInRect tests p against the width x length box at pos rotated by deg
// around its center: unrotate the query point, then an axis-aligned check.
func PointInRect(p, pos cp.Vector, w, l, deg float64) bool {
	if w <= 0 || l <= 0 {
		return false
	}
	c := cp.Vector{X: pos.X + w/2, Y: pos.Y + l/2}
	q := RotateAbout(p, c, -deg)
	return q.X >= pos.X && q.X <= pos.X+w && q.Y >= pos.Y && q.Y <= pos.Y+l
}

// Barycentric expresses p in the triangle a,b,c. ok is false for degenerate
// (near zero-area) triangles, which must never report containment.
func Barycentric(p, a, b, c cp.Vector) (u, v, w float64, ok bool) {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := p.Sub(a)
	den := v0.Cross(v1)
	if den > -2*degenerateArea && den < 2*degenerateArea {
		return 0, 0, 0, false
	}
	v = v2.Cross(v1) / den
	w = v0.Cross(v2) / den
	u = 1 - v - w
	return u, v, w, true
}

// PointInTriangle reports whether p lies inside (or on the boundary of) the
// triangle a,b,c using barycentric weights.
func PointInTriangle(p, a, b, c cp.Vector) bool {
	u, v, w, ok := Barycentric(p, a, b, c)
	if !ok {
		return false
	}
	const eps = 1e-12
	return u >= -eps && v >= -eps && w >= -eps
}

// PointInPolygon ray-casts p against the closed ring verts. Degenerate rings
// (fewer than 3 points or near-zero area) never match.
func PointInPolygon(p cp.Vector, verts []cp.Vector) bool {
	if len(verts) < 3 || PolygonArea(verts) < degenerateArea {
		return false
	}
	inside := false
	j := len(verts) - 1
	for i := 0; i < len(verts); i++ {
		vi, vj := verts[i], verts[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			x := (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
