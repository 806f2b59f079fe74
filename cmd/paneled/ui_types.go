package main

import (
	"strconv"

	"github.com/ebitenui/ebitenui/widget"

	"panelcad/geo"
	"panelcad/panel"
)

// Tool is the active canvas tool.
type Tool int

const (
	ToolSelect Tool = iota
	ToolPolygon
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "Select"
	case ToolPolygon:
		return "Polygon"
	default:
		return "Unknown"
	}
}

// ToolBar contains the radio-group state for the tool buttons.
type ToolBar struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
}

func (tb *ToolBar) SetTool(t Tool) {
	idx := int(t)
	if tb == nil || tb.group == nil || idx < 0 || idx >= len(tb.buttons) {
		return
	}
	tb.group.SetActive(tb.buttons[idx])
}

// Form holds the panel-creation and selection widgets on the left panel.
type Form struct {
	rollInput   *widget.TextInput
	panelInput  *widget.TextInput
	widthInput  *widget.TextInput
	lengthInput *widget.TextInput

	shapeGroup   *widget.RadioGroup
	shapeButtons []*widget.Button
	shape        geo.ShapeKind

	snapBtn *widget.Button
	gridBtn *widget.Button
}

// Shape returns the shape selected in the form's radio group.
func (f *Form) Shape() geo.ShapeKind {
	if f == nil {
		return geo.Rectangle
	}
	return f.shape
}

// Values returns the current label and dimension fields. Unparseable
// dimensions come back as 0 and fail spec validation downstream.
func (f *Form) Values() (roll, panelNum string, w, l float64) {
	roll = f.rollInput.GetText()
	panelNum = f.panelInput.GetText()
	w, _ = strconv.ParseFloat(f.widthInput.GetText(), 64)
	l, _ = strconv.ParseFloat(f.lengthInput.GetText(), 64)
	return roll, panelNum, w, l
}

// SetSelection mirrors the selected panel into the form fields, or clears
// the dimension fields when nothing is selected.
func (f *Form) SetSelection(p *panel.Panel) {
	if f == nil {
		return
	}
	if p == nil {
		f.widthInput.SetText("")
		f.lengthInput.SetText("")
		return
	}
	f.rollInput.SetText(p.RollNumber)
	f.panelInput.SetText(p.PanelNumber)
	f.widthInput.SetText(strconv.FormatFloat(p.Width, 'f', -1, 64))
	f.lengthInput.SetText(strconv.FormatFloat(p.Length, 'f', -1, 64))
}

func (f *Form) SetSnapState(on bool) {
	setToggleLabel(f.snapBtn, "Snap: On", "Snap: Off", on)
}

func (f *Form) SetGridState(on bool) {
	setToggleLabel(f.gridBtn, "Grid: On", "Grid: Off", on)
}

func setToggleLabel(btn *widget.Button, onLabel, offLabel string, on bool) {
	if btn == nil {
		return
	}
	label := offLabel
	if on {
		label = onLabel
	}
	if text := btn.Text(); text != nil {
		text.Label = label
	}
}
