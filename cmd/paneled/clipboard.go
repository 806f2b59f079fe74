package main

import (
	"encoding/json"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"golang.design/x/clipboard"

	"panelcad/geo"
	"panelcad/panel"
)

// clipPanel is the clipboard JSON form of one panel. Corners are absolute
// world points so a paste into a different session still lands sensibly.
type clipPanel struct {
	Shape       string       `json:"shape"`
	RollNumber  string       `json:"rollNumber"`
	PanelNumber string       `json:"panelNumber"`
	Width       float64      `json:"width"`
	Length      float64      `json:"length"`
	Rotation    float64      `json:"rotation"`
	Corners     [][2]float64 `json:"corners,omitempty"`
}

func (a *App) copySelection() {
	if !a.clipboardOK {
		return
	}
	sel := a.store.Selected()
	if sel == nil {
		return
	}
	clip := clipPanel{
		Shape:       sel.Shape.String(),
		RollNumber:  sel.RollNumber,
		PanelNumber: sel.PanelNumber,
		Width:       sel.Width,
		Length:      sel.Length,
		Rotation:    sel.Rotation,
	}
	for _, c := range sel.Corners {
		clip.Corners = append(clip.Corners, [2]float64{sel.Position.X + c.X, sel.Position.Y + c.Y})
	}
	b, err := json.Marshal(clip)
	if err != nil {
		log.Printf("copy: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, b)
}

// pasteClipboard adds a copy of the clipboard panel, offset by one grid cell
// so it does not land exactly on the original.
func (a *App) pasteClipboard() {
	if !a.clipboardOK {
		return
	}
	b := clipboard.Read(clipboard.FmtText)
	if len(b) == 0 {
		return
	}
	var clip clipPanel
	if err := json.Unmarshal(b, &clip); err != nil {
		return
	}

	offset := a.store.Site().GridSize
	var spec panel.Spec
	switch clip.Shape {
	case geo.Triangle.String():
		spec = panel.TriangleSpec{RollNumber: clip.RollNumber, PanelNumber: clip.PanelNumber, Width: clip.Width, Length: clip.Length}
	case geo.RightTriangle.String():
		spec = panel.RightTriangleSpec{RollNumber: clip.RollNumber, PanelNumber: clip.PanelNumber, Width: clip.Width, Length: clip.Length}
	case geo.Polygon.String():
		corners := make([]cp.Vector, len(clip.Corners))
		for i, c := range clip.Corners {
			corners[i] = cp.Vector{X: c[0] + offset, Y: c[1] + offset}
		}
		spec = panel.PolygonSpec{RollNumber: clip.RollNumber, PanelNumber: clip.PanelNumber, Corners: corners}
	default:
		spec = panel.RectangleSpec{RollNumber: clip.RollNumber, PanelNumber: clip.PanelNumber, Width: clip.Width, Length: clip.Length}
	}

	p, err := a.store.AddPanel(spec)
	if err != nil {
		log.Printf("paste: %v", err)
		return
	}
	if clip.Rotation != 0 {
		rot := clip.Rotation
		_ = a.store.Update(p.ID, panel.Patch{Rotation: &rot})
	}
	_ = a.store.Select(p.ID)
}

func formatDim(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isScriptPath(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
