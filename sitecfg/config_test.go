package sitecfg

import (
	"testing"
)

func TestParse(t *testing.T) {
	t.Run("full_config", func(t *testing.T) {
		src := []byte(`
site:
  width: 300
  height: 250
  grid_size: 2.5
  units: m
snap:
  enabled: false
  edge_threshold: 0.5
optimizer_url: http://localhost:9090
presets:
  - name: "Standard Roll"
    width: 15
    length: 100
`)
		c, err := Parse(src)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if c.Site.Width != 300 || c.Site.Height != 250 || c.Site.GridSize != 2.5 || c.Site.Units != "m" {
			t.Fatalf("site: %+v", c.Site)
		}
		if c.Snap.Enabled || c.Snap.EdgeThreshold != 0.5 {
			t.Fatalf("snap: %+v", c.Snap)
		}
		if c.OptimizerURL != "http://localhost:9090" {
			t.Fatalf("optimizer url: %q", c.OptimizerURL)
		}
		if len(c.Presets) != 1 || c.Presets[0].Name != "Standard Roll" || c.Presets[0].Width != 15 {
			t.Fatalf("presets: %+v", c.Presets)
		}
	})

	t.Run("missing_fields_fall_back", func(t *testing.T) {
		c, err := Parse([]byte("site:\n  width: 100\n  height: 100\n"))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		def := Default()
		if c.Site.GridSize != def.Site.GridSize {
			t.Fatalf("grid size: %v", c.Site.GridSize)
		}
		if c.Snap.EdgeThreshold != def.Snap.EdgeThreshold {
			t.Fatalf("threshold: %v", c.Snap.EdgeThreshold)
		}
	})

	t.Run("bad_dimensions", func(t *testing.T) {
		if _, err := Parse([]byte("site:\n  width: -5\n  height: 100\n")); err == nil {
			t.Fatal("expected an error for negative width")
		}
	})

	t.Run("bad_yaml", func(t *testing.T) {
		if _, err := Parse([]byte("site: [")); err == nil {
			t.Fatal("expected a parse error")
		}
	})
}

func TestSiteFor(t *testing.T) {
	c := Default()
	site := c.SiteFor()
	if site.Width != 400 || site.Height != 400 || site.GridSize != 5 {
		t.Fatalf("site: %+v", site)
	}
	if !site.SnapEnabled || site.Units != "ft" {
		t.Fatalf("site: %+v", site)
	}
}
