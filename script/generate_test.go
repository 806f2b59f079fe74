package script

import (
	"strings"
	"testing"

	"panelcad/panel"
)

func testSite() panel.Site {
	return panel.Site{Width: 400, Height: 400, GridSize: 5, SnapEnabled: true}
}

func TestGenerate(t *testing.T) {
	t.Run("rectangle_batch", func(t *testing.T) {
		src := []byte(`
out := []
for i := 0; i < 3; i++ {
    out = append(out, {
        roll: "R-" + string(100 + i),
        panel: "P-" + string(i),
        width: 15,
        length: 100
    })
}
panels = out
`)
		specs, err := Generate(src, testSite())
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if len(specs) != 3 {
			t.Fatalf("expected 3 specs, got %d", len(specs))
		}
		r, ok := specs[0].(panel.RectangleSpec)
		if !ok {
			t.Fatalf("expected RectangleSpec, got %T", specs[0])
		}
		if r.RollNumber != "R-100" || r.Width != 15 || r.Length != 100 {
			t.Fatalf("spec: %+v", r)
		}
	})

	t.Run("site_variables_visible", func(t *testing.T) {
		src := []byte(`
panels = [{roll: "R", panel: "P", width: site_width / 4, length: grid_size * 2}]
`)
		specs, err := Generate(src, testSite())
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		r := specs[0].(panel.RectangleSpec)
		if r.Width != 100 || r.Length != 10 {
			t.Fatalf("spec: %+v", r)
		}
	})

	t.Run("shapes", func(t *testing.T) {
		src := []byte(`
panels = [
    {roll: "R", panel: "1", shape: "triangle", width: 10, length: 10},
    {roll: "R", panel: "2", shape: "right-triangle", width: 10, length: 10},
    {roll: "R", panel: "3", shape: "polygon", corners: [[0, 0], [40, 0], [20, 30]]}
]
`)
		specs, err := Generate(src, testSite())
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if _, ok := specs[0].(panel.TriangleSpec); !ok {
			t.Fatalf("expected TriangleSpec, got %T", specs[0])
		}
		if _, ok := specs[1].(panel.RightTriangleSpec); !ok {
			t.Fatalf("expected RightTriangleSpec, got %T", specs[1])
		}
		poly, ok := specs[2].(panel.PolygonSpec)
		if !ok {
			t.Fatalf("expected PolygonSpec, got %T", specs[2])
		}
		if len(poly.Corners) != 3 || poly.Corners[1].X != 40 {
			t.Fatalf("corners: %+v", poly.Corners)
		}
	})

	t.Run("unknown_shape", func(t *testing.T) {
		src := []byte(`panels = [{roll: "R", panel: "P", shape: "hexagon"}]`)
		if _, err := Generate(src, testSite()); err == nil || !strings.Contains(err.Error(), "hexagon") {
			t.Fatalf("expected unknown shape error, got %v", err)
		}
	})

	t.Run("bad_entry", func(t *testing.T) {
		src := []byte(`panels = ["not a map"]`)
		if _, err := Generate(src, testSite()); err == nil {
			t.Fatal("expected an error for non-map entry")
		}
	})

	t.Run("script_error", func(t *testing.T) {
		src := []byte(`panels = undefined_fn()`)
		if _, err := Generate(src, testSite()); err == nil {
			t.Fatal("expected a compile error")
		}
	})

	t.Run("generated_specs_validate", func(t *testing.T) {
		src := []byte(`panels = [{roll: "R", panel: "P", width: 20, length: 40}]`)
		specs, err := Generate(src, testSite())
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		store := panel.NewStore(testSite())
		for _, spec := range specs {
			if _, err := store.AddPanel(spec); err != nil {
				t.Fatalf("AddPanel: %v", err)
			}
		}
		if store.Len() != 1 {
			t.Fatalf("expected 1 panel, got %d", store.Len())
		}
	})
}
