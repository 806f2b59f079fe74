package viewport

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func almostEqual(a, b cp.Vector) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		scale float64
		pan   cp.Vector
	}{
		{"identity", 1, cp.Vector{}},
		{"zoomed", 2.5, cp.Vector{X: 100, Y: -40}},
		{"min_zoom", MinZoom, cp.Vector{X: -3, Y: 7}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := &Viewport{Scale: c.scale, Pan: c.pan}
			world := cp.Vector{X: 123.4, Y: -56.7}
			if got := v.ToWorld(v.ToScreen(world)); !almostEqual(got, world) {
				t.Fatalf("expected %v, got %v", world, got)
			}
		})
	}
}

func TestZoomClamp(t *testing.T) {
	t.Run("zoom_in_stops_at_max", func(t *testing.T) {
		v := New()
		for i := 0; i < 100; i++ {
			v.ZoomIn()
		}
		if v.Scale != MaxZoom {
			t.Fatalf("expected %v, got %v", MaxZoom, v.Scale)
		}
	})

	t.Run("zoom_out_stops_at_min", func(t *testing.T) {
		v := New()
		for i := 0; i < 100; i++ {
			v.ZoomOut()
		}
		if v.Scale != MinZoom {
			t.Fatalf("expected %v, got %v", MinZoom, v.Scale)
		}
	})

	t.Run("set_scale_silent", func(t *testing.T) {
		v := New()
		v.SetScale(1000)
		if v.Scale != MaxZoom {
			t.Fatalf("expected %v, got %v", MaxZoom, v.Scale)
		}
		v.SetScale(0.001)
		if v.Scale != MinZoom {
			t.Fatalf("expected %v, got %v", MinZoom, v.Scale)
		}
	})
}

func TestZoomAtKeepsCursorFixed(t *testing.T) {
	v := &Viewport{Scale: 1, Pan: cp.Vector{X: 20, Y: 30}}
	cursor := cp.Vector{X: 400, Y: 300}
	before := v.ToWorld(cursor)

	v.ZoomAt(cursor, ZoomStep)
	after := v.ToWorld(cursor)
	if !almostEqual(before, after) {
		t.Fatalf("world point under cursor moved: %v -> %v", before, after)
	}

	v.ZoomAt(cursor, 1/ZoomStep)
	if got := v.ToWorld(cursor); !almostEqual(before, got) {
		t.Fatalf("world point under cursor moved: %v -> %v", before, got)
	}
}

func TestZoomAtClampedNoop(t *testing.T) {
	v := &Viewport{Scale: MaxZoom, Pan: cp.Vector{X: 5, Y: 5}}
	v.ZoomAt(cp.Vector{X: 100, Y: 100}, ZoomStep)
	if v.Scale != MaxZoom || !almostEqual(v.Pan, cp.Vector{X: 5, Y: 5}) {
		t.Fatalf("clamped zoom must not move the pan, got scale %v pan %v", v.Scale, v.Pan)
	}
}

func TestReset(t *testing.T) {
	v := &Viewport{Scale: 3, Pan: cp.Vector{X: 9, Y: 9}}
	v.Reset()
	if v.Scale != 1 || v.Pan != (cp.Vector{}) {
		t.Fatalf("expected identity, got scale %v pan %v", v.Scale, v.Pan)
	}
}

func TestFitToContent(t *testing.T) {
	t.Run("centers_and_contains", func(t *testing.T) {
		v := New()
		bb := cp.BB{L: 0, B: 0, R: 400, T: 200}
		v.FitToContent(bb, 800, 600, 0)

		// Content center lands on the view center.
		c := v.ToScreen(cp.Vector{X: 200, Y: 100})
		if !almostEqual(c, cp.Vector{X: 400, Y: 300}) {
			t.Fatalf("content center at %v", c)
		}

		// All corners inside the view.
		for _, p := range []cp.Vector{{X: 0, Y: 0}, {X: 400, Y: 0}, {X: 0, Y: 200}, {X: 400, Y: 200}} {
			s := v.ToScreen(p)
			if s.X < -1e-9 || s.Y < -1e-9 || s.X > 800+1e-9 || s.Y > 600+1e-9 {
				t.Fatalf("corner %v maps outside the view: %v", p, s)
			}
		}
	})

	t.Run("empty_view_ignored", func(t *testing.T) {
		v := New()
		v.FitToContent(cp.BB{L: 0, B: 0, R: 100, T: 100}, 0, 0, 10)
		if v.Scale != 1 {
			t.Fatalf("expected untouched viewport, got scale %v", v.Scale)
		}
	})
}
