// Package interact is the pointer interaction state machine: it turns
// world-space pointer events into validated Store mutations, consulting the
// snapping engine on drags and resizes. Exactly one non-idle state is active
// at a time; pointer-up or cancel returns any drag, resize, or rotate
// gesture to idle, while click-driven polygon authoring ends only through
// FinishPolygon or tool deactivation.
package interact

import (
	"math"

	"github.com/jakecoffman/cp"

	"panelcad/geo"
	"panelcad/panel"
	"panelcad/snap"
)

type State int

const (
	Idle State = iota
	Dragging
	Resizing
	Rotating
	CreatingPolygon
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	case Rotating:
		return "rotating"
	case CreatingPolygon:
		return "creating-polygon"
	default:
		return "unknown"
	}
}

// Handle identifies one of the four corner resize handles.
type Handle int

const (
	HandleNW Handle = iota
	HandleNE
	HandleSE
	HandleSW
)

// opposite returns the diagonal handle, whose corner stays anchored.
func (h Handle) opposite() Handle {
	switch h {
	case HandleNW:
		return HandleSE
	case HandleNE:
		return HandleSW
	case HandleSE:
		return HandleNW
	default:
		return HandleNE
	}
}

// localSign gives the direction from the anchor corner to the dragged corner
// in the panel's unrotated frame.
func (h Handle) localSign() (sx, sy float64) {
	switch h {
	case HandleNW:
		return -1, -1
	case HandleNE:
		return 1, -1
	case HandleSE:
		return 1, 1
	default:
		return -1, 1
	}
}

// Config tunes pointer picking and snapping. PickRadius and RotateOffset are
// in world units; the app derives them from the current zoom each frame so
// handles keep a constant on-screen size.
type Config struct {
	SnapThreshold float64
	PickRadius    float64
	RotateOffset  float64
}

// Machine drives the Store from pointer events. All methods run on the
// single event loop; state transitions are synchronous.
type Machine struct {
	store *panel.Store
	cfg   Config

	state   State
	panelID string

	grabOffset cp.Vector

	handle Handle
	anchor cp.Vector

	center        cp.Vector
	startAngle    float64
	startRotation float64

	polygonTool bool
	points      []cp.Vector
}

func NewMachine(store *panel.Store, cfg Config) *Machine {
	return &Machine{store: store, cfg: cfg}
}

func (m *Machine) State() State            { return m.state }
func (m *Machine) ActivePanel() string     { return m.panelID }
func (m *Machine) Config() Config          { return m.cfg }
func (m *Machine) SetConfig(cfg Config)    { m.cfg = cfg }
func (m *Machine) PolygonToolActive() bool { return m.polygonTool }

// SetPolygonTool switches the polygon authoring tool. Turning it off
// abandons any uncommitted points.
func (m *Machine) SetPolygonTool(on bool) {
	m.polygonTool = on
	if !on && m.state == CreatingPolygon {
		m.points = nil
		m.state = Idle
	}
}

// PolygonPoints returns the world points collected so far, for preview.
func (m *Machine) PolygonPoints() []cp.Vector { return m.points }

// HandlePositions returns the four corner-handle world positions of p
// (unrotated box corners rotated about the center): NW, NE, SE, SW.
func HandlePositions(p *panel.Panel) [4]cp.Vector {
	v := geo.RectVertices(p.Position, p.Width, p.Length, p.Rotation)
	return [4]cp.Vector{v[0], v[1], v[2], v[3]}
}

// RotateHandlePosition returns the rotate handle's world position: offset
// above the top-edge midpoint, following the panel's rotation.
func RotateHandlePosition(p *panel.Panel, offset float64) cp.Vector {
	top := cp.Vector{X: p.Position.X + p.Width/2, Y: p.Position.Y - offset}
	return geo.RotateAbout(top, p.Center(), p.Rotation)
}

// PointerDown resolves a press in world coordinates. Priority: polygon tool,
// rotate handle, corner handle of the selected panel, then panel body.
// A press over empty canvas clears the selection.
func (m *Machine) PointerDown(world cp.Vector) {
	if m.state != Idle && m.state != CreatingPolygon {
		return
	}

	if m.polygonTool {
		m.points = append(m.points, world)
		m.state = CreatingPolygon
		return
	}

	if sel := m.store.Selected(); sel != nil {
		if world.Distance(RotateHandlePosition(sel, m.cfg.RotateOffset)) <= m.cfg.PickRadius {
			m.state = Rotating
			m.panelID = sel.ID
			m.center = sel.Center()
			m.startAngle = math.Atan2(world.Y-m.center.Y, world.X-m.center.X)
			m.startRotation = sel.Rotation
			return
		}
		if sel.Shape != geo.Polygon {
			for i, hp := range HandlePositions(sel) {
				if world.Distance(hp) <= m.cfg.PickRadius {
					h := Handle(i)
					m.state = Resizing
					m.panelID = sel.ID
					m.handle = h
					m.anchor = HandlePositions(sel)[h.opposite()]
					return
				}
			}
		}
	}

	if hit := m.store.PanelAt(world); hit != nil {
		_ = m.store.Select(hit.ID)
		m.state = Dragging
		m.panelID = hit.ID
		m.grabOffset = world.Sub(hit.Position)
		return
	}

	_ = m.store.Select("")
}

// PointerMove recomputes the active gesture's geometry and commits it
// through the Store immediately, so the panel tracks the pointer live.
func (m *Machine) PointerMove(world cp.Vector) {
	switch m.state {
	case Dragging:
		m.moveDrag(world)
	case Resizing:
		m.moveResize(world)
	case Rotating:
		m.moveRotate(world)
	}
}

// PointerUp ends any drag/resize/rotate gesture. Polygon authoring is
// click-driven and survives release; it ends via Finish or tool switch.
func (m *Machine) PointerUp() {
	if m.state == CreatingPolygon {
		return
	}
	m.reset()
}

// Cancel aborts the active gesture (pointer left the canvas). The gesture's
// last committed position stands; captured offsets are dropped.
func (m *Machine) Cancel() {
	if m.state == CreatingPolygon {
		return
	}
	m.reset()
}

func (m *Machine) reset() {
	m.state = Idle
	m.panelID = ""
	m.grabOffset = cp.Vector{}
	m.anchor = cp.Vector{}
	m.center = cp.Vector{}
	m.startAngle = 0
	m.startRotation = 0
}

// FinishPolygon commits the collected points as a new polygon panel with the
// given labels. Fewer than 3 points (or bad labels) is a recoverable
// rejection: the points are kept and the machine stays in authoring state.
func (m *Machine) FinishPolygon(rollNumber, panelNumber string) (*panel.Panel, error) {
	p, err := m.store.AddPanel(panel.PolygonSpec{
		RollNumber:  rollNumber,
		PanelNumber: panelNumber,
		Corners:     m.points,
	})
	if err != nil {
		return nil, err
	}
	m.points = nil
	m.state = Idle
	_ = m.store.Select(p.ID)
	return p, nil
}

func (m *Machine) moveDrag(world cp.Vector) {
	p, ok := m.store.Get(m.panelID)
	if !ok {
		m.reset()
		return
	}
	proposed := world.Sub(m.grabOffset)

	site := m.store.Site()
	if site.SnapEnabled {
		proposed = snap.GridPoint(proposed, site.GridSize)

		// Neighbor-edge snap overrides the grid-snapped coordinate per axis.
		delta := proposed.Sub(p.Position)
		bb := p.Bounds()
		moving := cp.BB{L: bb.L + delta.X, B: bb.B + delta.Y, R: bb.R + delta.X, T: bb.T + delta.Y}
		dx, dy, sx, sy := snap.Edges(moving, m.store.NeighborBounds(p.ID), m.cfg.SnapThreshold)
		if sx {
			proposed.X += dx
		}
		if sy {
			proposed.Y += dy
		}
	}

	_ = m.store.Update(p.ID, panel.Patch{Position: &proposed})
}

// moveResize recomputes width/length from the pointer in the panel's local
// frame anchored at the fixed corner, so the anchor's world position is
// preserved exactly, including under rotation.
func (m *Machine) moveResize(world cp.Vector) {
	p, ok := m.store.Get(m.panelID)
	if !ok {
		m.reset()
		return
	}

	sx, sy := m.handle.localSign()
	local := geo.RotateAbout(world, m.anchor, -p.Rotation).Sub(m.anchor)
	w := math.Max(panel.MinSize, sx*local.X)
	l := math.Max(panel.MinSize, sy*local.Y)

	site := m.store.Site()
	if site.SnapEnabled {
		w = math.Max(panel.MinSize, snap.Grid(w, site.GridSize))
		l = math.Max(panel.MinSize, snap.Grid(l, site.GridSize))
	}

	// Rebuild position from the anchor: the new center sits half a diagonal
	// (rotated back to world space) away from the fixed corner.
	half := cp.Vector{X: sx * w / 2, Y: sy * l / 2}
	center := geo.RotateAbout(m.anchor.Add(half), m.anchor, p.Rotation)
	pos := cp.Vector{X: center.X - w/2, Y: center.Y - l/2}

	_ = m.store.Update(p.ID, panel.Patch{Position: &pos, Width: &w, Length: &l})
}

func (m *Machine) moveRotate(world cp.Vector) {
	p, ok := m.store.Get(m.panelID)
	if !ok {
		m.reset()
		return
	}
	angle := math.Atan2(world.Y-m.center.Y, world.X-m.center.X)
	rot := geo.NormalizeDegrees(m.startRotation + geo.Degrees(angle-m.startAngle))
	_ = m.store.Update(p.ID, panel.Patch{Rotation: &rot})
}
