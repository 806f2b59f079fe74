// Package optimize talks to the external layout optimizer and export
// services. Both calls are plain request/response; a reply is applied to the
// store atomically as a full placement replacement, and any failure leaves
// the local store untouched.
package optimize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jakecoffman/cp"

	"panelcad/panel"
)

// PanelPayload is the wire form of one panel sent to the optimizer or the
// export service. Corners are absolute world points and only set for
// polygons; width/length describe every other shape.
type PanelPayload struct {
	ID          string       `json:"id"`
	RollNumber  string       `json:"rollNumber"`
	PanelNumber string       `json:"panelNumber"`
	Shape       string       `json:"shape"`
	X           float64      `json:"x"`
	Y           float64      `json:"y"`
	Width       float64      `json:"width"`
	Length      float64      `json:"length"`
	Rotation    float64      `json:"rotation"`
	Corners     [][2]float64 `json:"corners,omitempty"`
}

// SitePayload is the container description sent alongside the panels.
type SitePayload struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	GridSize float64 `json:"gridSize"`
	Units    string  `json:"units"`
}

type optimizeRequest struct {
	Site   SitePayload    `json:"site"`
	Panels []PanelPayload `json:"panels"`
}

type placementPayload struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// Summary is the optimizer's report on the returned placement.
type Summary struct {
	Utilization float64 `json:"utilization"`
	WasteArea   float64 `json:"wasteArea"`
	PanelCount  int     `json:"panelCount"`
}

type optimizeResponse struct {
	Placements []placementPayload `json:"placements"`
	Summary    Summary            `json:"summary"`
}

// Client calls the optimizer/export HTTP endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Payload converts the store's current panels to wire form.
func Payload(st *panel.Store) ([]PanelPayload, SitePayload) {
	site := st.Site()
	sp := SitePayload{Width: site.Width, Height: site.Height, GridSize: site.GridSize, Units: site.Units}
	panels := make([]PanelPayload, 0, st.Len())
	for _, p := range st.Panels() {
		pp := PanelPayload{
			ID:          p.ID,
			RollNumber:  p.RollNumber,
			PanelNumber: p.PanelNumber,
			Shape:       p.Shape.String(),
			X:           p.Position.X,
			Y:           p.Position.Y,
			Width:       p.Width,
			Length:      p.Length,
			Rotation:    p.Rotation,
		}
		if len(p.Corners) > 0 {
			pp.Corners = make([][2]float64, len(p.Corners))
			for i, c := range p.Corners {
				pp.Corners[i] = [2]float64{p.Position.X + c.X, p.Position.Y + c.Y}
			}
		}
		panels = append(panels, pp)
	}
	return panels, sp
}

// Optimize posts the site and full panel list and applies the returned
// placements to the store as one atomic replacement. On any error (network,
// HTTP status, decode, or an unknown placement id) the store is unchanged.
func (c *Client) Optimize(ctx context.Context, st *panel.Store) (Summary, error) {
	panels, site := Payload(st)
	body, err := json.Marshal(optimizeRequest{Site: site, Panels: panels})
	if err != nil {
		return Summary{}, fmt.Errorf("optimize: %w", err)
	}

	var out optimizeResponse
	if err := c.post(ctx, "/optimize", body, &out); err != nil {
		return Summary{}, err
	}

	placements := make([]panel.Placement, len(out.Placements))
	for i, pl := range out.Placements {
		placements[i] = panel.Placement{
			ID:       pl.ID,
			Position: cp.Vector{X: pl.X, Y: pl.Y},
			Rotation: pl.Rotation,
		}
	}
	if err := st.ReplacePlacements(placements); err != nil {
		return Summary{}, fmt.Errorf("optimize: %w", err)
	}
	return out.Summary, nil
}

// Export hands the finalized panel list to the export service as-is.
func (c *Client) Export(ctx context.Context, st *panel.Store) error {
	panels, site := Payload(st)
	body, err := json.Marshal(optimizeRequest{Site: site, Panels: panels})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return c.post(ctx, "/export", body, nil)
}

func (c *Client) post(ctx context.Context, path string, body []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: server returned %s", strings.TrimPrefix(path, "/"), resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
