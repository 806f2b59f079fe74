// Package script generates panel batches from Tengo layout scripts. A script
// receives the site dimensions and grid size and fills a `panels` array;
// every generated spec still passes through the store's normal validation.
package script

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"

	"panelcad/panel"
)

// Generate compiles and runs src and converts its `panels` entries into
// specs. Each entry is a map with roll, panel, shape, and either
// width/length or corners ([[x, y], ...]).
func Generate(src []byte, site panel.Site) ([]panel.Spec, error) {
	s := tengo.NewScript(src)
	_ = s.Add("site_width", site.Width)
	_ = s.Add("site_height", site.Height)
	_ = s.Add("grid_size", site.GridSize)
	_ = s.Add("panels", []interface{}{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Run()
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}

	raw := compiled.Get("panels").Array()
	specs := make([]panel.Spec, 0, len(raw))
	for i, entry := range raw {
		m, ok := entry.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("script: panels[%d] is not a map", i)
		}
		spec, err := specFromMap(m)
		if err != nil {
			return nil, fmt.Errorf("script: panels[%d]: %w", i, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func specFromMap(m map[string]interface{}) (panel.Spec, error) {
	roll := asString(m["roll"])
	num := asString(m["panel"])
	shape := asString(m["shape"])

	switch shape {
	case "", "rectangle":
		return panel.RectangleSpec{
			RollNumber:  roll,
			PanelNumber: num,
			Width:       asFloat(m["width"]),
			Length:      asFloat(m["length"]),
		}, nil
	case "triangle":
		return panel.TriangleSpec{
			RollNumber:  roll,
			PanelNumber: num,
			Width:       asFloat(m["width"]),
			Length:      asFloat(m["length"]),
		}, nil
	case "right-triangle":
		return panel.RightTriangleSpec{
			RollNumber:  roll,
			PanelNumber: num,
			Width:       asFloat(m["width"]),
			Length:      asFloat(m["length"]),
		}, nil
	case "polygon":
		corners, err := asCorners(m["corners"])
		if err != nil {
			return nil, err
		}
		return panel.PolygonSpec{RollNumber: roll, PanelNumber: num, Corners: corners}, nil
	default:
		return nil, fmt.Errorf("unknown shape %q", shape)
	}
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

func asCorners(v interface{}) ([]cp.Vector, error) {
	arr, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("corners is not an array")
	}
	corners := make([]cp.Vector, 0, len(arr))
	for _, item := range arr {
		pair, ok := item.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("corner entries must be [x, y] pairs")
		}
		corners = append(corners, cp.Vector{X: asFloat(pair[0]), Y: asFloat(pair[1])})
	}
	return corners, nil
}
