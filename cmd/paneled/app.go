package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/ebitenui/ebitenui"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/jakecoffman/cp"

	"panelcad/geo"
	"panelcad/interact"
	"panelcad/optimize"
	"panelcad/panel"
	"panelcad/render"
	"panelcad/script"
	"panelcad/sitecfg"
	"panelcad/viewport"
)

// Screen-pixel sizes for selection decorations; divided by the current zoom
// so they keep a constant on-screen size.
const (
	handlePickPx   = 8.0
	rotateOffsetPx = 24.0
)

// fitPadding is the world-unit margin added around the site when fitting.
const fitPadding = 40.0

const optimizeTimeout = 30 * time.Second

// App is the editor's ebiten.Game: it routes input between the UI layer and
// the canvas interaction machine and draws both.
type App struct {
	store   *panel.Store
	vp      *viewport.Viewport
	machine *interact.Machine

	ui      *ebitenui.UI
	form    *Form
	toolBar *ToolBar
	face    text.Face

	cfg       sitecfg.Config
	watcher   *sitecfg.Watcher
	optimizer *optimize.Client

	showGrid     bool
	clipboardOK  bool
	lastSelected string

	panning   bool
	lastMouse cp.Vector

	width, height int
}

func NewApp(cfg sitecfg.Config, watcher *sitecfg.Watcher, clipboardOK bool) *App {
	a := &App{
		cfg:         cfg,
		watcher:     watcher,
		showGrid:    true,
		clipboardOK: clipboardOK,
		width:       1280,
		height:      800,
	}

	a.store = panel.NewStore(cfg.SiteFor())
	a.vp = viewport.New()
	a.machine = interact.NewMachine(a.store, interact.Config{
		SnapThreshold: cfg.Snap.EdgeThreshold,
		PickRadius:    handlePickPx,
		RotateOffset:  rotateOffsetPx,
	})
	if cfg.OptimizerURL != "" {
		a.optimizer = optimize.NewClient(cfg.OptimizerURL)
	}

	a.ui, a.form, a.toolBar, a.face = BuildUI(cfg.Presets, Callbacks{
		OnAdd:           a.addPanel,
		OnApply:         a.applyForm,
		OnDelete:        a.deleteSelection,
		OnClear:         a.store.Clear,
		OnFinishPolygon: a.finishPolygon,
		OnToolSelected:  a.selectTool,
		OnPreset:        a.applyPreset,
		OnToggleSnap:    a.toggleSnap,
		OnToggleGrid:    a.toggleGrid,
		OnZoomIn:        a.vp.ZoomIn,
		OnZoomOut:       a.vp.ZoomOut,
		OnFit:           a.fitView,
		OnReset:         a.vp.Reset,
		OnOptimize:      a.runOptimize,
		OnExport:        a.runExport,
	})
	a.form.SetSnapState(cfg.Snap.Enabled)
	a.form.SetGridState(a.showGrid)
	return a
}

func (a *App) Update() error {
	a.drainWatcher()

	if err := a.ui.Update(); err != nil {
		return err
	}

	a.machine.SetConfig(interact.Config{
		SnapThreshold: a.cfg.Snap.EdgeThreshold,
		PickRadius:    handlePickPx / a.vp.Scale,
		RotateOffset:  rotateOffsetPx / a.vp.Scale,
	})

	a.handleHotkeys()
	a.handleMouse()

	// Mirror a newly selected panel into the form once, not every frame,
	// so the fields stay editable.
	if id := a.store.SelectedID(); id != a.lastSelected {
		a.lastSelected = id
		a.form.SetSelection(a.store.Selected())
	}
	return nil
}

// handleHotkeys processes keyboard shortcuts, suppressed while the user is
// typing in a UI text field.
func (a *App) handleHotkeys() {
	if fw := a.ui.GetFocusedWidget(); fw != nil {
		if _, ok := fw.(*widget.TextInput); ok {
			return
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.deleteSelection()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if a.machine.PolygonToolActive() {
			a.toolBar.SetTool(ToolSelect)
		} else {
			_ = a.store.Select("")
		}
	}
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.copySelection()
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		a.pasteClipboard()
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.Key0) {
		a.vp.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		a.fitView()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.toggleSnap()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		a.toggleGrid()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		a.vp.ZoomIn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		a.vp.ZoomOut()
	}
}

// pointerInput is one frame's mouse state, gathered once in handleMouse so
// the routing in dispatchPointer stays testable without real devices.
type pointerInput struct {
	leftJustPressed   bool
	leftPressed       bool
	leftJustReleased  bool
	middleJustPressed bool
	middlePressed     bool
	wheelY            float64
	overUI            bool
}

func (a *App) handleMouse() {
	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	a.dispatchPointer(cp.Vector{X: float64(mx), Y: float64(my)}, pointerInput{
		leftJustPressed:   inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		leftPressed:       ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		leftJustReleased:  inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		middleJustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle),
		middlePressed:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle),
		wheelY:            wy,
		overUI:            ebuiinput.UIHovered,
	})
}

func (a *App) dispatchPointer(cursor cp.Vector, in pointerInput) {
	if cursor.X < 0 || cursor.Y < 0 || cursor.X >= float64(a.width) || cursor.Y >= float64(a.height) {
		a.machine.Cancel()
		a.panning = false
		return
	}

	// Middle-drag pans regardless of UI hover.
	if in.middleJustPressed {
		a.panning = true
		a.lastMouse = cursor
	}
	if a.panning {
		if in.middlePressed {
			a.vp.Pan = a.vp.Pan.Add(cursor.Sub(a.lastMouse))
			a.lastMouse = cursor
		} else {
			a.panning = false
		}
	}

	// A release must reach the machine even when it lands on a widget, or a
	// gesture that ends over the toolbar stays active forever.
	if in.leftJustReleased {
		a.machine.PointerUp()
	}

	// Presses and wheel over UI widgets must not reach the canvas underneath.
	if in.overUI {
		return
	}

	if in.wheelY != 0 {
		factor := viewport.ZoomStep
		if in.wheelY < 0 {
			factor = 1 / viewport.ZoomStep
		}
		a.vp.ZoomAt(cursor, factor)
	}

	world := a.vp.ToWorld(cursor)
	if in.leftJustPressed {
		a.machine.PointerDown(world)
	} else if in.leftPressed {
		a.machine.PointerMove(world)
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	render.Draw(screen, a.store, *a.vp, render.Options{
		Face:          a.face,
		ShowGrid:      a.showGrid,
		HandleSize:    handlePickPx,
		RotateOffset:  rotateOffsetPx / a.vp.Scale,
		PolygonPoints: a.machine.PolygonPoints(),
	})
	a.ui.Draw(screen)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.width = outsideWidth
	a.height = outsideHeight
	return outsideWidth, outsideHeight
}

func (a *App) addPanel() {
	roll, num, w, l := a.form.Values()
	var spec panel.Spec
	switch a.form.Shape() {
	case geo.Triangle:
		spec = panel.TriangleSpec{RollNumber: roll, PanelNumber: num, Width: w, Length: l}
	case geo.RightTriangle:
		spec = panel.RightTriangleSpec{RollNumber: roll, PanelNumber: num, Width: w, Length: l}
	default:
		spec = panel.RectangleSpec{RollNumber: roll, PanelNumber: num, Width: w, Length: l}
	}
	p, err := a.store.AddPanel(spec)
	if err != nil {
		log.Printf("add panel: %v", err)
		return
	}
	_ = a.store.Select(p.ID)
}

// applyForm writes the form fields back onto the selected panel.
func (a *App) applyForm() {
	sel := a.store.Selected()
	if sel == nil {
		return
	}
	roll, num, w, l := a.form.Values()
	patch := panel.Patch{RollNumber: &roll, PanelNumber: &num}
	if sel.Shape != geo.Polygon && w > 0 && l > 0 {
		patch.Width = &w
		patch.Length = &l
	}
	if err := a.store.Update(sel.ID, patch); err != nil {
		log.Printf("apply: %v", err)
	}
}

func (a *App) deleteSelection() {
	id := a.store.SelectedID()
	if id == "" {
		return
	}
	if err := a.store.Delete(id); err != nil && !errors.Is(err, panel.ErrNotFound) {
		log.Printf("delete: %v", err)
	}
}

func (a *App) finishPolygon() {
	roll, num, _, _ := a.form.Values()
	if _, err := a.machine.FinishPolygon(roll, num); err != nil {
		log.Printf("finish polygon: %v", err)
	}
}

func (a *App) selectTool(t Tool) {
	a.machine.SetPolygonTool(t == ToolPolygon)
}

func (a *App) applyPreset(p sitecfg.Preset) {
	a.form.widthInput.SetText(formatDim(p.Width))
	a.form.lengthInput.SetText(formatDim(p.Length))
}

func (a *App) toggleSnap() {
	site := a.store.Site()
	site.SnapEnabled = !site.SnapEnabled
	a.store.SetSite(site)
	a.form.SetSnapState(site.SnapEnabled)
}

func (a *App) toggleGrid() {
	a.showGrid = !a.showGrid
	a.form.SetGridState(a.showGrid)
}

func (a *App) fitView() {
	site := a.store.Site()
	bb := cp.BB{L: 0, B: 0, R: site.Width, T: site.Height}
	a.vp.FitToContent(bb, float64(a.width), float64(a.height), fitPadding)
}

func (a *App) runOptimize() {
	if a.optimizer == nil {
		log.Print("optimize: no optimizer URL configured")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), optimizeTimeout)
	defer cancel()
	summary, err := a.optimizer.Optimize(ctx, a.store)
	if err != nil {
		log.Printf("optimize: %v", err)
		return
	}
	log.Printf("optimize: %d panels placed, %.1f%% utilization", summary.PanelCount, summary.Utilization*100)
}

func (a *App) runExport() {
	if a.optimizer == nil {
		log.Print("export: no optimizer URL configured")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), optimizeTimeout)
	defer cancel()
	if err := a.optimizer.Export(ctx, a.store); err != nil {
		log.Printf("export: %v", err)
		return
	}
	log.Printf("export: %d panels sent", a.store.Len())
}

// drainWatcher applies queued config and script file changes without
// blocking the frame.
func (a *App) drainWatcher() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-a.watcher.Events:
			if !ok {
				a.watcher = nil
				return
			}
			a.reloadPath(path)
		case err, ok := <-a.watcher.Errors:
			if ok {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

func (a *App) reloadPath(path string) {
	switch {
	case isScriptPath(path):
		a.runScript(path)
	default:
		c, err := sitecfg.Load(path)
		if err != nil {
			log.Printf("reload %s: %v", path, err)
			return
		}
		a.applyConfig(c)
		log.Printf("reloaded config from %s", path)
	}
}

func (a *App) applyConfig(c sitecfg.Config) {
	a.cfg = c
	a.store.SetSite(c.SiteFor())
	a.form.SetSnapState(c.Snap.Enabled)
	if c.OptimizerURL != "" {
		a.optimizer = optimize.NewClient(c.OptimizerURL)
	}
}

// runScript generates a panel batch from a layout script and adds every
// panel that validates; the rest are logged and skipped.
func (a *App) runScript(path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		log.Printf("script %s: %v", path, err)
		return
	}
	specs, err := script.Generate(src, a.store.Site())
	if err != nil {
		log.Printf("script %s: %v", path, err)
		return
	}
	added := 0
	for _, spec := range specs {
		if _, err := a.store.AddPanel(spec); err != nil {
			log.Printf("script %s: %v", path, err)
			continue
		}
		added++
	}
	log.Printf("script %s: added %d panels", path, added)
}
