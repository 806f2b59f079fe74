package snap

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestGrid(t *testing.T) {
	cases := []struct {
		name string
		v    float64
		size float64
		want float64
	}{
		{"rounds_down", 2.4, 5, 0},
		{"rounds_up", 2.6, 5, 5},
		{"exact_multiple", 15, 5, 15},
		{"negative", -2.6, 5, -5},
		{"disabled_zero_size", 7.3, 0, 7.3},
		{"disabled_negative_size", 7.3, -1, 7.3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Grid(c.v, c.size)
			if math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
			// Snapping is idempotent.
			if again := Grid(got, c.size); again != got {
				t.Fatalf("not idempotent: %v then %v", got, again)
			}
		})
	}
}

func TestGridPoint(t *testing.T) {
	got := GridPoint(cp.Vector{X: 12.4, Y: 17.6}, 5)
	want := cp.Vector{X: 10, Y: 20}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestEdges(t *testing.T) {
	anchor := cp.BB{L: 150, B: 0, R: 250, T: 50}

	cases := []struct {
		name   string
		moving cp.BB
		thresh float64
		wantDX float64
		wantDY float64
		snapX  bool
		snapY  bool
	}{
		{
			// Right edge at 149.9, anchor left edge at 150: pull right by 0.1.
			name:   "right_to_left_within_threshold",
			moving: cp.BB{L: 134.9, B: 60, R: 149.9, T: 160},
			thresh: 0.2,
			wantDX: 0.1,
			snapX:  true,
		},
		{
			name:   "beyond_threshold_no_snap",
			moving: cp.BB{L: 134, B: 60, R: 149, T: 160},
			thresh: 0.2,
		},
		{
			name:   "left_to_left_align",
			moving: cp.BB{L: 150.3, B: 200, R: 170.3, T: 220},
			thresh: 0.5,
			wantDX: -0.3,
			snapX:  true,
		},
		{
			name:   "top_to_bottom_y_axis",
			moving: cp.BB{L: 300, B: 50.4, R: 320, T: 70.4},
			thresh: 0.5,
			wantDY: -0.4,
			snapY:  true,
		},
		{
			name:   "both_axes_independent",
			moving: cp.BB{L: 150.2, B: 49.8, R: 170.2, T: 69.8},
			thresh: 0.5,
			wantDX: -0.2,
			wantDY: 0.2,
			snapX:  true,
			snapY:  true,
		},
		{
			name:   "zero_threshold_disables",
			moving: cp.BB{L: 150, B: 0, R: 250, T: 50},
			thresh: 0,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dx, dy, sx, sy := Edges(c.moving, []cp.BB{anchor}, c.thresh)
			if sx != c.snapX || sy != c.snapY {
				t.Fatalf("expected snap (%v,%v), got (%v,%v)", c.snapX, c.snapY, sx, sy)
			}
			if math.Abs(dx-c.wantDX) > 1e-9 || math.Abs(dy-c.wantDY) > 1e-9 {
				t.Fatalf("expected delta (%v,%v), got (%v,%v)", c.wantDX, c.wantDY, dx, dy)
			}
		})
	}

	t.Run("closest_anchor_wins", func(t *testing.T) {
		moving := cp.BB{L: 99.5, B: 0, R: 119.5, T: 20}
		anchors := []cp.BB{
			{L: 98, B: 100, R: 118, T: 120},
			{L: 100, B: 100, R: 120, T: 120},
		}
		dx, _, sx, _ := Edges(moving, anchors, 2)
		if !sx {
			t.Fatal("expected an X snap")
		}
		if math.Abs(dx-0.5) > 1e-9 {
			t.Fatalf("expected delta 0.5 to the nearer edge, got %v", dx)
		}
	})

	t.Run("no_anchors", func(t *testing.T) {
		_, _, sx, sy := Edges(cp.BB{L: 0, B: 0, R: 10, T: 10}, nil, 1)
		if sx || sy {
			t.Fatal("expected no snap without anchors")
		}
	})
}
