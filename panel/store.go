package panel

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"

	"panelcad/geo"
)

// staggerStep offsets each newly added panel so fresh panels don't pile up
// exactly on top of each other.
const staggerStep = 10.0

// Store owns the canonical panel list and the selection. Panels are kept in
// insertion order; later panels render and hit-test on top.
type Store struct {
	site     Site
	panels   []*Panel
	selected string
	added    int
}

func NewStore(site Site) *Store {
	return &Store{site: site}
}

func (s *Store) Site() Site { return s.site }

// SetSite swaps the container and re-clamps every panel into it.
func (s *Store) SetSite(site Site) {
	s.site = site
	for _, p := range s.panels {
		s.clamp(p)
	}
}

// Panels returns the panels in store order (first added first).
func (s *Store) Panels() []*Panel { return s.panels }

// Len reports the number of panels.
func (s *Store) Len() int { return len(s.panels) }

// Get looks a panel up by id.
func (s *Store) Get(id string) (*Panel, bool) {
	for _, p := range s.panels {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// AddPanel validates spec and appends a new panel at a staggered default
// offset. On validation failure the store is left untouched.
func (s *Store) AddPanel(spec Spec) (*Panel, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	p := &Panel{ID: uuid.NewString(), Shape: spec.Kind()}
	switch v := spec.(type) {
	case RectangleSpec:
		p.RollNumber, p.PanelNumber = v.RollNumber, v.PanelNumber
		p.Width, p.Length = v.Width, v.Length
	case TriangleSpec:
		p.RollNumber, p.PanelNumber = v.RollNumber, v.PanelNumber
		p.Width, p.Length = v.Width, v.Length
	case RightTriangleSpec:
		p.RollNumber, p.PanelNumber = v.RollNumber, v.PanelNumber
		p.Width, p.Length = v.Width, v.Length
	case PolygonSpec:
		p.RollNumber, p.PanelNumber = v.RollNumber, v.PanelNumber
		bb := geo.BoundsOf(v.Corners)
		p.Position = cp.Vector{X: bb.L, Y: bb.B}
		p.Width, p.Length = bb.R-bb.L, bb.T-bb.B
		p.Corners = make([]cp.Vector, len(v.Corners))
		for i, c := range v.Corners {
			p.Corners[i] = c.Sub(p.Position)
		}
	default:
		return nil, fmt.Errorf("panel: unsupported spec %T", spec)
	}

	if p.Shape != geo.Polygon {
		off := float64(s.added%8) * staggerStep
		p.Position = cp.Vector{X: off, Y: off}
	}
	s.clamp(p)
	s.panels = append(s.panels, p)
	s.added++
	return p, nil
}

// Select marks the panel with the given id as selected; an empty id clears
// the selection.
func (s *Store) Select(id string) error {
	if id == "" {
		s.selected = ""
		return nil
	}
	if _, ok := s.Get(id); !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.selected = id
	return nil
}

// SelectedID returns the selected panel id, or "" when nothing is selected.
func (s *Store) SelectedID() string { return s.selected }

// Selected returns the selected panel, or nil.
func (s *Store) Selected() *Panel {
	if s.selected == "" {
		return nil
	}
	p, _ := s.Get(s.selected)
	return p
}

// Patch is a partial panel update; nil fields are left unchanged. A non-nil
// Corners slice replaces the polygon ring (relative to Position).
type Patch struct {
	RollNumber  *string
	PanelNumber *string
	Position    *cp.Vector
	Width       *float64
	Length      *float64
	Rotation    *float64
	Corners     []cp.Vector
}

// Update merges patch into the panel and re-applies the min-size, rotation
// and container-bounds invariants before committing. This is the single
// funnel through which every geometry mutation passes.
func (s *Store) Update(id string, patch Patch) error {
	p, ok := s.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if patch.RollNumber != nil {
		p.RollNumber = *patch.RollNumber
	}
	if patch.PanelNumber != nil {
		p.PanelNumber = *patch.PanelNumber
	}
	if patch.Position != nil {
		p.Position = *patch.Position
	}
	if patch.Width != nil {
		p.Width = *patch.Width
	}
	if patch.Length != nil {
		p.Length = *patch.Length
	}
	if patch.Rotation != nil {
		p.Rotation = *patch.Rotation
	}
	if patch.Corners != nil {
		p.Corners = make([]cp.Vector, len(patch.Corners))
		copy(p.Corners, patch.Corners)
	}
	s.clamp(p)
	return nil
}

// clamp enforces the data-model invariants in place: minimum size,
// normalized rotation, and the whole outline inside [0, site] on both axes.
func (s *Store) clamp(p *Panel) {
	p.Rotation = geo.NormalizeDegrees(p.Rotation)
	if p.Shape == geo.Polygon {
		// Corner extents are authoritative for polygons. Re-anchor so the
		// relative ring's minimum stays at the origin.
		bb := geo.BoundsOf(p.Corners)
		if bb.L != 0 || bb.B != 0 {
			shift := cp.Vector{X: bb.L, Y: bb.B}
			p.Position = p.Position.Add(shift)
			for i := range p.Corners {
				p.Corners[i] = p.Corners[i].Sub(shift)
			}
		}
		p.Width, p.Length = bb.R-bb.L, bb.T-bb.B
	} else {
		p.Width = math.Max(p.Width, MinSize)
		p.Length = math.Max(p.Length, MinSize)
	}

	if s.site.Width <= 0 || s.site.Height <= 0 {
		return
	}
	bb := p.Bounds()
	var dx, dy float64
	if bb.R > s.site.Width {
		dx = s.site.Width - bb.R
	}
	if bb.L+dx < 0 {
		dx = -bb.L
	}
	if bb.T > s.site.Height {
		dy = s.site.Height - bb.T
	}
	if bb.B+dy < 0 {
		dy = -bb.B
	}
	p.Position.X += dx
	p.Position.Y += dy
}

// Delete removes the panel and clears the selection if it pointed at it.
func (s *Store) Delete(id string) error {
	for i, p := range s.panels {
		if p.ID == id {
			s.panels = append(s.panels[:i], s.panels[i+1:]...)
			if s.selected == id {
				s.selected = ""
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Clear removes every panel and the selection.
func (s *Store) Clear() {
	s.panels = nil
	s.selected = ""
	s.added = 0
}

// PanelAt returns the topmost panel containing pt: panels are checked from
// last added to first, matching render order, so overlaps resolve to the
// panel drawn on top.
func (s *Store) PanelAt(pt cp.Vector) *Panel {
	for i := len(s.panels) - 1; i >= 0; i-- {
		p := s.panels[i]
		if p.Degenerate() {
			continue
		}
		if p.Contains(pt) {
			return p
		}
	}
	return nil
}

// NeighborBounds returns the bounding boxes of every non-degenerate panel
// except the one with the given id, for use as edge-snap anchors.
func (s *Store) NeighborBounds(exceptID string) []cp.BB {
	out := make([]cp.BB, 0, len(s.panels))
	for _, p := range s.panels {
		if p.ID == exceptID || p.Degenerate() {
			continue
		}
		out = append(out, p.Bounds())
	}
	return out
}

// Placement is one entry of an optimizer reply.
type Placement struct {
	ID       string
	Position cp.Vector
	Rotation float64
}

// ReplacePlacements applies an optimizer result atomically: if any placement
// references an unknown panel the store is left completely untouched.
func (s *Store) ReplacePlacements(placements []Placement) error {
	for _, pl := range placements {
		if _, ok := s.Get(pl.ID); !ok {
			return fmt.Errorf("%w: placement %s", ErrNotFound, pl.ID)
		}
	}
	for _, pl := range placements {
		p, _ := s.Get(pl.ID)
		p.Position = pl.Position
		p.Rotation = pl.Rotation
		s.clamp(p)
	}
	return nil
}
