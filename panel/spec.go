package panel

import (
	"errors"
	"strings"

	"github.com/jakecoffman/cp"

	"panelcad/geo"
)

var (
	ErrMissingLabel  = errors.New("panel: roll and panel numbers are required")
	ErrBadDimensions = errors.New("panel: width and length must be positive")
	ErrTooFewCorners = errors.New("panel: polygon needs at least 3 corners")
	ErrNotFound      = errors.New("panel: no panel with that id")
)

// Spec describes a panel to create. It is a closed union over shape kind:
// each variant carries only the fields its shape needs.
type Spec interface {
	Kind() geo.ShapeKind
	validate() error
}

type RectangleSpec struct {
	RollNumber  string
	PanelNumber string
	Width       float64
	Length      float64
}

type TriangleSpec struct {
	RollNumber  string
	PanelNumber string
	Width       float64
	Length      float64
}

type RightTriangleSpec struct {
	RollNumber  string
	PanelNumber string
	Width       float64
	Length      float64
}

// PolygonSpec creates a panel from an ordered ring of world points, as
// collected by the polygon authoring tool.
type PolygonSpec struct {
	RollNumber  string
	PanelNumber string
	Corners     []cp.Vector
}

func (s RectangleSpec) Kind() geo.ShapeKind     { return geo.Rectangle }
func (s TriangleSpec) Kind() geo.ShapeKind      { return geo.Triangle }
func (s RightTriangleSpec) Kind() geo.ShapeKind { return geo.RightTriangle }
func (s PolygonSpec) Kind() geo.ShapeKind       { return geo.Polygon }

func labelsValid(roll, num string) bool {
	return strings.TrimSpace(roll) != "" && strings.TrimSpace(num) != ""
}

func (s RectangleSpec) validate() error {
	if !labelsValid(s.RollNumber, s.PanelNumber) {
		return ErrMissingLabel
	}
	if s.Width <= 0 || s.Length <= 0 {
		return ErrBadDimensions
	}
	return nil
}

func (s TriangleSpec) validate() error {
	if !labelsValid(s.RollNumber, s.PanelNumber) {
		return ErrMissingLabel
	}
	if s.Width <= 0 || s.Length <= 0 {
		return ErrBadDimensions
	}
	return nil
}

func (s RightTriangleSpec) validate() error {
	if !labelsValid(s.RollNumber, s.PanelNumber) {
		return ErrMissingLabel
	}
	if s.Width <= 0 || s.Length <= 0 {
		return ErrBadDimensions
	}
	return nil
}

func (s PolygonSpec) validate() error {
	if !labelsValid(s.RollNumber, s.PanelNumber) {
		return ErrMissingLabel
	}
	if len(s.Corners) < 3 {
		return ErrTooFewCorners
	}
	return nil
}
