// Package viewport maps between world coordinates (feet) and screen pixels
// through a scale plus pan-offset transform.
package viewport

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	MinZoom  = 0.25
	MaxZoom  = 8.0
	ZoomStep = 1.1
)

// Viewport is the scale+pan mapping: screen = world*Scale + Pan.
type Viewport struct {
	Scale float64
	Pan   cp.Vector
}

func New() *Viewport {
	return &Viewport{Scale: 1}
}

// ToWorld converts a screen point to world coordinates.
func (v *Viewport) ToWorld(p cp.Vector) cp.Vector {
	if v.Scale == 0 {
		v.Scale = 1
	}
	return cp.Vector{X: (p.X - v.Pan.X) / v.Scale, Y: (p.Y - v.Pan.Y) / v.Scale}
}

// ToScreen converts a world point to screen coordinates.
func (v *Viewport) ToScreen(p cp.Vector) cp.Vector {
	return cp.Vector{X: p.X*v.Scale + v.Pan.X, Y: p.Y*v.Scale + v.Pan.Y}
}

// ZoomIn steps the scale up by ZoomStep, clamped to MaxZoom.
func (v *Viewport) ZoomIn() {
	v.SetScale(v.Scale * ZoomStep)
}

// ZoomOut steps the scale down by ZoomStep, clamped to MinZoom.
func (v *Viewport) ZoomOut() {
	v.SetScale(v.Scale / ZoomStep)
}

// SetScale clamps silently; out-of-range zoom requests are not errors.
func (v *Viewport) SetScale(s float64) {
	if s < MinZoom {
		s = MinZoom
	}
	if s > MaxZoom {
		s = MaxZoom
	}
	v.Scale = s
}

// ZoomAt scales by factor while keeping the world point under the given
// screen position stationary (wheel zoom centered on the cursor).
func (v *Viewport) ZoomAt(screen cp.Vector, factor float64) {
	old := v.Scale
	v.SetScale(v.Scale * factor)
	if v.Scale == old {
		return
	}
	world := cp.Vector{X: (screen.X - v.Pan.X) / old, Y: (screen.Y - v.Pan.Y) / old}
	v.Pan.X = screen.X - world.X*v.Scale
	v.Pan.Y = screen.Y - world.Y*v.Scale
}

// Reset restores the identity transform.
func (v *Viewport) Reset() {
	v.Scale = 1
	v.Pan = cp.Vector{}
}

// FitToContent sets scale and pan so that bb plus padding (world units)
// fills and centers in a viewW x viewH pixel view.
func (v *Viewport) FitToContent(bb cp.BB, viewW, viewH, padding float64) {
	w := bb.R - bb.L + 2*padding
	h := bb.T - bb.B + 2*padding
	if w <= 0 || h <= 0 || viewW <= 0 || viewH <= 0 {
		return
	}
	v.SetScale(math.Min(viewW/w, viewH/h))
	cx := (bb.L + bb.R) / 2
	cy := (bb.B + bb.T) / 2
	v.Pan.X = viewW/2 - cx*v.Scale
	v.Pan.Y = viewH/2 - cy*v.Scale
}
