// Package snap aligns dragged geometry to the site grid and to the edges of
// neighboring panels. Grid snapping and edge snapping are evaluated per axis;
// an edge match overrides the grid-snapped coordinate on that axis only.
package snap

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Grid rounds v to the nearest multiple of size. A non-positive size
// disables snapping. Snapping an already snapped value is a no-op.
func Grid(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	return math.Round(v/size) * size
}

// GridPoint snaps both axes of p to the grid.
func GridPoint(p cp.Vector, size float64) cp.Vector {
	return cp.Vector{X: Grid(p.X, size), Y: Grid(p.Y, size)}
}

// Edges compares the moving bounding box against every anchor box and
// returns the translation that aligns the closest pair of edges within
// threshold, horizontal and vertical independently. snapX/snapY report
// whether that axis matched; the corresponding delta is zero otherwise.
func Edges(moving cp.BB, anchors []cp.BB, threshold float64) (dx, dy float64, snapX, snapY bool) {
	if threshold <= 0 {
		return 0, 0, false, false
	}
	bestX := threshold
	bestY := threshold
	for _, a := range anchors {
		// Left/right edge pairs on the X axis.
		for _, d := range []float64{a.L - moving.L, a.R - moving.L, a.L - moving.R, a.R - moving.R} {
			if abs := math.Abs(d); abs <= bestX {
				bestX = abs
				dx = d
				snapX = true
			}
		}
		// Top/bottom edge pairs on the Y axis.
		for _, d := range []float64{a.B - moving.B, a.T - moving.B, a.B - moving.T, a.T - moving.T} {
			if abs := math.Abs(d); abs <= bestY {
				bestY = abs
				dy = d
				snapY = true
			}
		}
	}
	if !snapX {
		dx = 0
	}
	if !snapY {
		dy = 0
	}
	return dx, dy, snapX, snapY
}
