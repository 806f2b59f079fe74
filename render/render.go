// Package render draws the site, grid, panels, and selection decorations.
// Drawing is pure: it reads the store and viewport and writes pixels, never
// mutating either.
package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"panelcad/geo"
	"panelcad/interact"
	"panelcad/panel"
	"panelcad/viewport"
)

var (
	backgroundColor = color.RGBA{R: 24, G: 26, B: 30, A: 255}
	siteFillColor   = color.RGBA{R: 34, G: 38, B: 43, A: 255}
	gridColor       = color.RGBA{R: 255, G: 255, B: 255, A: 20}
	siteEdgeColor   = colornames.Gray
	panelFillColor  = color.RGBA{R: 52, G: 96, B: 133, A: 110}
	panelEdgeColor  = colornames.Steelblue
	selectedColor   = colornames.Orange
	handleColor     = colornames.White
	previewColor    = colornames.Yellowgreen
	labelColor      = colornames.White
)

// Options carries per-frame drawing parameters. HandleSize is in screen
// pixels; RotateOffset is in world units and must match the interaction
// machine's so the drawn handle is where picking expects it.
type Options struct {
	Face          text.Face
	ShowGrid      bool
	HandleSize    float32
	RotateOffset  float64
	PolygonPoints []cp.Vector
}

var whitePixel *ebiten.Image

func whiteImage() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// Draw renders one frame: site and grid first, panels back to front, the
// selection decorations, then labels on top.
func Draw(dst *ebiten.Image, st *panel.Store, vp viewport.Viewport, opts Options) {
	dst.Fill(backgroundColor)

	site := st.Site()
	drawSite(dst, site, vp)
	if opts.ShowGrid {
		drawGrid(dst, site, vp)
	}

	for _, p := range st.Panels() {
		drawPanel(dst, p, vp, st.SelectedID() == p.ID)
	}

	if sel := st.Selected(); sel != nil {
		drawSelection(dst, sel, vp, opts)
	}

	if len(opts.PolygonPoints) > 0 {
		drawPolygonPreview(dst, opts.PolygonPoints, vp, opts.HandleSize)
	}

	if opts.Face != nil {
		for _, p := range st.Panels() {
			drawLabel(dst, p, vp, opts.Face)
		}
	}
}

func drawSite(dst *ebiten.Image, site panel.Site, vp viewport.Viewport) {
	tl := vp.ToScreen(cp.Vector{})
	br := vp.ToScreen(cp.Vector{X: site.Width, Y: site.Height})
	w := float32(br.X - tl.X)
	h := float32(br.Y - tl.Y)
	vector.DrawFilledRect(dst, float32(tl.X), float32(tl.Y), w, h, siteFillColor, false)
	vector.StrokeRect(dst, float32(tl.X), float32(tl.Y), w, h, 1.5, siteEdgeColor, true)
}

func drawGrid(dst *ebiten.Image, site panel.Site, vp viewport.Viewport) {
	if site.GridSize <= 0 {
		return
	}
	// Grid lines thinner than ~4px apart are noise; skip at far zoom.
	if site.GridSize*vp.Scale < 4 {
		return
	}
	for x := site.GridSize; x < site.Width; x += site.GridSize {
		a := vp.ToScreen(cp.Vector{X: x})
		b := vp.ToScreen(cp.Vector{X: x, Y: site.Height})
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, gridColor, false)
	}
	for y := site.GridSize; y < site.Height; y += site.GridSize {
		a := vp.ToScreen(cp.Vector{Y: y})
		b := vp.ToScreen(cp.Vector{X: site.Width, Y: y})
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, gridColor, false)
	}
}

func drawPanel(dst *ebiten.Image, p *panel.Panel, vp viewport.Viewport, selected bool) {
	verts := p.Vertices()
	if len(verts) < 3 {
		return
	}
	screen := make([]cp.Vector, len(verts))
	for i, v := range verts {
		screen[i] = vp.ToScreen(v)
	}

	// Rectangles and triangles are convex, so a fan from vertex 0 fills them
	// exactly. Authored polygons may be concave; those get an outline only.
	if p.Shape != geo.Polygon {
		fillFan(dst, screen, panelFillColor)
	}

	edge := panelEdgeColor
	width := float32(1.5)
	if selected {
		edge = selectedColor
		width = 2.5
	}
	strokeLoop(dst, screen, width, edge)
}

func fillFan(dst *ebiten.Image, pts []cp.Vector, clr color.RGBA) {
	vs := make([]ebiten.Vertex, len(pts))
	cr := float32(clr.R) / 255
	cg := float32(clr.G) / 255
	cb := float32(clr.B) / 255
	ca := float32(clr.A) / 255
	for i, p := range pts {
		vs[i] = ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   0,
			SrcY:   0,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}
	is := make([]uint16, 0, (len(pts)-2)*3)
	for i := 2; i < len(pts); i++ {
		is = append(is, 0, uint16(i-1), uint16(i))
	}
	dst.DrawTriangles(vs, is, whiteImage(), nil)
}

func strokeLoop(dst *ebiten.Image, pts []cp.Vector, width float32, clr color.Color) {
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr, true)
	}
}

func drawSelection(dst *ebiten.Image, p *panel.Panel, vp viewport.Viewport, opts Options) {
	size := opts.HandleSize
	if size <= 0 {
		size = 8
	}

	if p.Shape != geo.Polygon {
		for _, hp := range interact.HandlePositions(p) {
			s := vp.ToScreen(hp)
			vector.DrawFilledRect(dst, float32(s.X)-size/2, float32(s.Y)-size/2, size, size, handleColor, true)
			vector.StrokeRect(dst, float32(s.X)-size/2, float32(s.Y)-size/2, size, size, 1, selectedColor, true)
		}
	}

	// Rotate handle with its stem from the top-edge midpoint.
	top := geo.RotateAbout(cp.Vector{X: p.Position.X + p.Width/2, Y: p.Position.Y}, p.Center(), p.Rotation)
	handle := interact.RotateHandlePosition(p, opts.RotateOffset)
	st := vp.ToScreen(top)
	sh := vp.ToScreen(handle)
	vector.StrokeLine(dst, float32(st.X), float32(st.Y), float32(sh.X), float32(sh.Y), 1, selectedColor, true)
	vector.DrawFilledCircle(dst, float32(sh.X), float32(sh.Y), size/2, selectedColor, true)
}

func drawPolygonPreview(dst *ebiten.Image, points []cp.Vector, vp viewport.Viewport, size float32) {
	if size <= 0 {
		size = 8
	}
	screen := make([]cp.Vector, len(points))
	for i, pt := range points {
		screen[i] = vp.ToScreen(pt)
	}
	for i := 1; i < len(screen); i++ {
		a := screen[i-1]
		b := screen[i]
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1.5, previewColor, true)
	}
	for _, s := range screen {
		vector.DrawFilledCircle(dst, float32(s.X), float32(s.Y), size/3, previewColor, true)
	}
}

// drawLabel renders the labels and dimensions at the panel center at a fixed
// screen size, so they stay readable regardless of zoom.
func drawLabel(dst *ebiten.Image, p *panel.Panel, vp viewport.Viewport, face text.Face) {
	label := fmt.Sprintf("%s / %s  %.4g x %.4g", p.RollNumber, p.PanelNumber, p.Width, p.Length)
	c := vp.ToScreen(p.Center())
	op := &text.DrawOptions{}
	op.GeoM.Translate(c.X, c.Y)
	op.ColorScale.ScaleWithColor(labelColor)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, label, face, op)
}
