package main

import (
	"bytes"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"panelcad/geo"
	"panelcad/sitecfg"
)

// Callbacks wires UI events to the app.
type Callbacks struct {
	OnAdd           func()
	OnApply         func()
	OnDelete        func()
	OnClear         func()
	OnFinishPolygon func()
	OnToolSelected  func(tool Tool)
	OnPreset        func(p sitecfg.Preset)
	OnToggleSnap    func()
	OnToggleGrid    func()
	OnZoomIn        func()
	OnZoomOut       func()
	OnFit           func()
	OnReset         func()
	OnOptimize      func()
	OnExport        func()
}

func BuildUI(presets []sitecfg.Preset, cb Callbacks) (*ebitenui.UI, *Form, *ToolBar, text.Face) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}
	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newAppTheme(&fontFace)

	form := &Form{}

	leftPanel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{40, 40, 40, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)

	addLabelSection(leftPanel, ui.PrimaryTheme, &fontFace, form)
	addShapeSection(leftPanel, ui.PrimaryTheme, &fontFace, form)
	addDimensionSection(leftPanel, ui.PrimaryTheme, &fontFace, form, presets, cb)
	addActionSection(leftPanel, ui.PrimaryTheme, &fontFace, form, cb)
	addViewSection(leftPanel, ui.PrimaryTheme, &fontFace, form, cb)

	toolbarContainer, toolBar := buildToolBar(ui.PrimaryTheme, &fontFace, cb.OnToolSelected, cb.OnFinishPolygon)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	leftPanel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	toolbarContainer.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(leftPanel)
	root.AddChild(toolbarContainer)
	ui.Container = root

	return ui, form, toolBar, fontFace
}

func newFormInput(fontFace *text.Face) *widget.TextInput {
	return widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(180, 28),
		),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(color.RGBA{245, 245, 245, 255}),
			Disabled: solidNineSlice(color.RGBA{200, 200, 200, 255}),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     color.Black,
			Disabled: color.Gray{Y: 120},
			Caret:    color.Black,
		}),
		widget.TextInputOpts.Face(fontFace),
	)
}

func addLabelSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, form *Form) {
	parent.AddChild(widget.NewLabel(widget.LabelOpts.Text("Roll number", fontFace, labelColor())))
	form.rollInput = newFormInput(fontFace)
	parent.AddChild(form.rollInput)

	parent.AddChild(widget.NewLabel(widget.LabelOpts.Text("Panel number", fontFace, labelColor())))
	form.panelInput = newFormInput(fontFace)
	parent.AddChild(form.panelInput)
}

func addShapeSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, form *Form) {
	parent.AddChild(widget.NewLabel(widget.LabelOpts.Text("Shape", fontFace, labelColor())))

	row := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(4),
			),
		),
	)

	names := []string{"Rect", "Tri", "Right Tri"}
	for _, name := range names {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(name, fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(56, 32)),
		)
		form.shapeButtons = append(form.shapeButtons, btn)
		row.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(form.shapeButtons))
	for _, b := range form.shapeButtons {
		elements = append(elements, b)
	}
	form.shapeGroup = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			for idx, b := range form.shapeButtons {
				if args.Active == b {
					form.shape = geo.ShapeKind(idx)
					return
				}
			}
		}),
	)
	form.shapeGroup.SetActive(form.shapeButtons[int(geo.Rectangle)])

	parent.AddChild(row)
}

func addDimensionSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, form *Form, presets []sitecfg.Preset, cb Callbacks) {
	parent.AddChild(widget.NewLabel(widget.LabelOpts.Text("Width", fontFace, labelColor())))
	form.widthInput = newFormInput(fontFace)
	parent.AddChild(form.widthInput)

	parent.AddChild(widget.NewLabel(widget.LabelOpts.Text("Length", fontFace, labelColor())))
	form.lengthInput = newFormInput(fontFace)
	parent.AddChild(form.lengthInput)

	if len(presets) == 0 {
		return
	}
	parent.AddChild(widget.NewLabel(widget.LabelOpts.Text("Presets", fontFace, labelColor())))
	for _, p := range presets {
		preset := p
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(preset.Name, fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(180, 28)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if cb.OnPreset != nil {
					cb.OnPreset(preset)
				}
			}),
		)
		parent.AddChild(btn)
	}
}

func addActionSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, form *Form, cb Callbacks) {
	actions := []struct {
		name string
		fn   func()
	}{
		{"Add Panel", cb.OnAdd},
		{"Apply", cb.OnApply},
		{"Delete", cb.OnDelete},
		{"Clear All", cb.OnClear},
		{"Optimize", cb.OnOptimize},
		{"Export", cb.OnExport},
	}
	for _, a := range actions {
		fn := a.fn
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(a.name, fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(180, 32)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if fn != nil {
					fn()
				}
			}),
		)
		parent.AddChild(btn)
	}
}

func addViewSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, form *Form, cb Callbacks) {
	parent.AddChild(widget.NewLabel(widget.LabelOpts.Text("View", fontFace, labelColor())))

	form.snapBtn = newViewButton(theme, fontFace, "Snap: On", cb.OnToggleSnap)
	parent.AddChild(form.snapBtn)
	form.gridBtn = newViewButton(theme, fontFace, "Grid: On", cb.OnToggleGrid)
	parent.AddChild(form.gridBtn)

	row := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(4),
			),
		),
	)
	row.AddChild(newViewButton(theme, fontFace, "+", cb.OnZoomIn))
	row.AddChild(newViewButton(theme, fontFace, "-", cb.OnZoomOut))
	row.AddChild(newViewButton(theme, fontFace, "Fit", cb.OnFit))
	row.AddChild(newViewButton(theme, fontFace, "1:1", cb.OnReset))
	parent.AddChild(row)
}

func newViewButton(theme *widget.Theme, fontFace *text.Face, name string, fn func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text(name, fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(40, 32)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if fn != nil {
				fn()
			}
		}),
	)
}
